package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// ExtensionPrefix is the prefix of external subcommands: 'acm foo' runs 'acm-foo' when foo is not a builtin.
const ExtensionPrefix = "acm-"

// RunExtension attempts to find and execute an external acm-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the resolved global settings as environment variables.
func RunExtension(log zerolog.Logger, subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("extension not found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvStore+"="+Store(),
		EnvLogLevel+"="+LogLevel(),
	)
	if *scryptCost != 0 {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%d", EnvScryptCost, *scryptCost))
	}

	log.Debug().Str("extension", lp).Strs("args", args).Msg("running extension")
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
