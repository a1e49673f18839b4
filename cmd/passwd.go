package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type passwdCmd struct{}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change the password of the ledger" }
func (*passwdCmd) Usage() string {
	return `acm passwd

  Encrypts the ledger with a new password, read from $` + EnvNewPassword + ` or asked twice.
  The ledger is also encrypted with the current -scrypt-cost.
`
}

func (c *passwdCmd) SetFlags(f *flag.FlagSet) {}

func (c *passwdCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer l.Close()

	pw, err := password(EnvNewPassword, "New password: ", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return subcommands.ExitFailure
	}
	l.password = pw
	if err := l.save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(out, "Password changed")
	return subcommands.ExitSuccess
}
