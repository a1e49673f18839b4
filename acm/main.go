// Command acm manages personal accounts in an encrypted ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/accounts/cmd"
	"github.com/etnz/accounts/internal/logger"
	"github.com/google/subcommands"
)

func main() {
	if err := cmd.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	cmd.Completion(flag.CommandLine, cmd.Commands).Complete(path.Base(os.Args[0]))

	flag.Parse()

	log, err := cmd.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	if name := flag.Arg(0); name != "" && !isBuiltin(name) {
		if found, code := cmd.RunExtension(log, name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	ctx := logger.WithContext(context.Background(), log)
	os.Exit(int(commander.Execute(ctx)))
}

func isBuiltin(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}
