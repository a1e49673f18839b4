package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/internal/logger"
	"github.com/etnz/accounts/store"
	"github.com/etnz/accounts/vault"
	"github.com/google/subcommands"
)

type initCmd struct {
	accounts stringList
	force    bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new encrypted ledger" }
func (*initCmd) Usage() string {
	return `acm init [-a <account>]... [-force]

  Creates an empty ledger, encrypted with a new password, at the -store location.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.accounts, "a", "Name of an account to create. Can be repeated.")
	f.BoolVar(&c.force, "force", false, "Overwrite an existing ledger")
}

func (c *initCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := store.Open(ctx, Store())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	logN, err := cost()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	v, err := vault.New(logN)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	m := accounts.NewManager(accounts.WithLogger(logger.FromContext(ctx)))
	for _, name := range c.accounts {
		if _, err := m.NewAccount(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	pw, err := password(EnvPassword, "New password: ", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := accounts.SaveManager(ctx, s, m, v, pw, c.force); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(out, "Created ledger %s with %d account(s)\n", Store(), m.Len())
	return subcommands.ExitSuccess
}
