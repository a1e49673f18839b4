package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

type accountCmd struct{}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "create accounts" }
func (*accountCmd) Usage() string {
	return `acm account <name>...

  Creates an account for each name. Account names are unique.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing account name")
		return subcommands.ExitUsageError
	}

	l, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer l.Close()

	for _, name := range f.Args() {
		if strings.TrimSpace(name) == "" {
			fmt.Fprintln(os.Stderr, "Error: empty account name")
			return subcommands.ExitUsageError
		}
		id, err := l.NewAccount(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(out, "Created account %q (%s)\n", name, id)
	}

	if err := l.save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
