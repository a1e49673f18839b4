package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/accounts"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export accounts and movements as JSON" }
func (*exportCmd) Usage() string {
	return `acm export [-o <file>]

  Writes all accounts, their balance and their movements as indented JSON.
  The export is not encrypted.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the export to this file instead of the standard output")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer l.Close()

	data, err := json.MarshalIndent(l.Manager, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	data = append(data, '\n')

	if c.output == "" {
		out.Write(data)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, data, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(out, "Exported %d account(s) to %s\n", l.Len(), c.output)
	return subcommands.ExitSuccess
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the ledger with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `acm query <jsonpath>

  Evaluates a JSONPath expression on the JSON export of the ledger, and prints the result as JSON.
  For instance:

    acm query '$.accounts[?(@.name == "Checking")].balance'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}

	l, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer l.Close()

	v, err := accounts.Query(l.Manager, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(out, "%s\n", data)
	return subcommands.ExitSuccess
}
