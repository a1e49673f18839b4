package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// acm-hello prints the settings it receives.
	helloSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%[1]s=%%s\n", os.Getenv("%[1]s"))
	fmt.Printf("%[2]s=%%s\n", os.Getenv("%[2]s"))
	fmt.Printf("%[3]s=%%s\n", os.Getenv("%[3]s"))
	fmt.Printf("args=%%s\n", os.Args[1:])
	os.Exit(3)
}
`, EnvStore, EnvLogLevel, EnvScryptCost)

	helloPath := filepath.Join(tempDir, ExtensionPrefix+"hello")
	srcFile := helloPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloSource), 0644); err != nil {
		t.Fatalf("Failed to write %s source: %v", ExtensionPrefix+"hello", err)
	}
	build := exec.Command("go", "build", "-o", helloPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile %s: %v", ExtensionPrefix+"hello", err)
	}

	acmPath := filepath.Join(tempDir, "acm")
	build = exec.Command("go", "build", "-o", acmPath, "../acm")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile acm binary: %v", err)
	}

	store := filepath.Join(tempDir, "random.mgr")
	acm := exec.Command(acmPath, "-store", store, "-v", "-scrypt-cost", "4", "hello", "world")
	acm.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}
	acm.Dir = tempDir

	var stdout, stderr bytes.Buffer
	acm.Stdout = &stdout
	acm.Stderr = &stderr
	err := acm.Run()

	// The exit code of the extension is the exit code of acm.
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 3 {
		t.Fatalf("acm hello: got %v, want exit status 3\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvStore + "=" + store,
		EnvLogLevel + "=debug",
		EnvScryptCost + "=4",
		"args=[world]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestExtensionMechanism_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension(zerolog.Nop(), "nothing-here", nil); found {
		t.Errorf("RunExtension() found a missing extension")
	}
}
