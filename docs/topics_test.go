package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced blocks with these info strings are executed by TestCodeBlocks.
//
// A "bash setup" block starts a scenario in a new folder, "bash run" output
// is compared to the next "console check" block, and a "bash check" block
// must exit successfully.
const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

func TestTopics(t *testing.T) {
	index, err := GetTopic(readme)
	if err != nil {
		t.Fatal(err)
	}
	var listed []string
	for _, m := range regexp.MustCompile(`(?m)^\*\s+([^:]+):`).FindAllStringSubmatch(index, -1) {
		listed = append(listed, strings.TrimSpace(m[1]))
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("readme lists %q: %v", topic, err)
		}
	}

	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) unexpected error: %v", err)
	}
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		content, _ := GetTopic(topic)
		if !strings.Contains(all, content) {
			t.Errorf("GetTopics(*) does not contain topic %q", topic)
		}
	}
	if strings.Contains(all, "Run `acm topic <topic>`") {
		t.Errorf("GetTopics(*) contains the readme")
	}
	if _, err := GetTopics("readme", "no-such-topic"); err == nil {
		t.Errorf("GetTopics() with an unknown topic returned no error")
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	scenarios := make(map[string][]codeBlock)
	for _, file := range files {
		if blocks := codeBlocks(t, file); len(blocks) > 0 {
			scenarios[file] = blocks
		}
	}
	if len(scenarios) == 0 {
		return
	}

	env := scenarioEnv(filepath.Dir(buildAcm(t)))
	for file, blocks := range scenarios {
		t.Run(file, func(t *testing.T) {
			runScenario(t, env, blocks)
		})
	}
}

type codeBlock struct {
	info string
	code string
	pos  string // file:line
}

// codeBlocks returns the executable fenced blocks of a markdown file.
func codeBlocks(t *testing.T, file string) []codeBlock {
	t.Helper()
	src, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	var blocks []codeBlock
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		info := string(fcb.Info.Segment.Value(src))
		switch info {
		case bashSetup, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var code strings.Builder
		for i := range fcb.Lines().Len() {
			line := fcb.Lines().At(i)
			code.Write(line.Value(src))
		}
		line := bytes.Count(src[:fcb.Info.Segment.Start], []byte("\n")) + 1
		blocks = append(blocks, codeBlock{info: info, code: code.String(), pos: fmt.Sprintf("%s:%d", file, line)})
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return blocks
}

// buildAcm builds the acm binary in a temporary folder.
func buildAcm(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "acm")
	if out, err := exec.Command("go", "build", "-o", bin, "../acm/").CombinedOutput(); err != nil {
		t.Fatalf("cannot build acm: %v\n%s", err, out)
	}
	return bin
}

// scenarioEnv is the environment of the test, without ACM_ settings, and with bin first in PATH.
func scenarioEnv(bin string) []string {
	env := slices.DeleteFunc(os.Environ(), func(kv string) bool {
		return strings.HasPrefix(kv, "ACM_") || strings.HasPrefix(kv, "PATH=")
	})
	return append(env, "PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func runScenario(t *testing.T, env []string, blocks []codeBlock) {
	dir := t.TempDir()
	var last string
	for _, b := range blocks {
		if b.info == consoleCheck {
			got := strings.ReplaceAll(strings.TrimSpace(last), "\t", "        ")
			if want := strings.TrimSpace(b.code); got != want {
				t.Errorf("%s: got:\n%s\nwant:\n%s", b.pos, got, want)
			}
			continue
		}
		if b.info == bashSetup {
			dir = t.TempDir()
		}

		cmd := exec.Command("bash", "-c", "set -e; "+b.code)
		cmd.Dir, cmd.Env = dir, env
		out, err := cmd.CombinedOutput()
		if b.info == bashRun {
			last = string(out)
		}
		switch {
		case err == nil:
		case b.info == bashCheck:
			t.Errorf("%s: %s failed: %v\n%s", b.pos, b.info, err, out)
		default:
			t.Fatalf("%s: %s failed: %v\n%s", b.pos, b.info, err, out)
		}
	}
}
