package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/accounts/date"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	start string
	end   string
	short bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display accounts and their movements" }
func (*showCmd) Usage() string {
	return `acm show [<account>] [-s <start_date>] [-d <end_date>] [-short]

  Without argument, displays the balance of every account.
  With an account name, displays the statement of that account.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Only list movements on or after this date")
	f.StringVar(&c.end, "d", "", "Only list movements on or before this date")
	f.BoolVar(&c.short, "short", false, "Do not display categories and keywords")
}

// dates returns the range of the statement.
func (c *showCmd) dates() (date.Range, error) {
	var r date.Range
	var err error
	if c.start != "" {
		if r.From, err = date.Parse(c.start); err != nil {
			return r, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if c.end != "" {
		if r.To, err = date.Parse(c.end); err != nil {
			return r, fmt.Errorf("invalid end date: %w", err)
		}
	}
	return r, nil
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one account can be shown")
		return subcommands.ExitUsageError
	}
	r, err := c.dates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	l, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer l.Close()

	if f.NArg() == 0 {
		printMarkdown(renderer.RenderLedger(renderer.NewLedger(l.Manager)))
		return subcommands.ExitSuccess
	}

	a, ok := l.Account(f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown account %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderStatement(renderer.NewStatement(a, r), renderer.StatementRenderOptions{SkipDetails: c.short}))
	return subcommands.ExitSuccess
}
