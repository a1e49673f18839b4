package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/date"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type moveCmd struct {
	from, to    string
	amount      string
	currency    string
	rate        string
	date        string
	lat, lon    string
	description string
	category    string
	keywords    string
	recurrent   bool
}

func (*moveCmd) Name() string     { return "move" }
func (*moveCmd) Synopsis() string { return "record money moving between accounts" }
func (*moveCmd) Usage() string {
	return `acm move [-from <account>] [-to <account>] -a <amount> [-c <currency> -r <rate>] [-d <date>]
         [-m <description>] [-cat <main>[/<sub>]] [-k <keyword>,...] [-recurrent] [-lat <lat> -lon <lon>]

  Records a move of money. At least one of -from and -to must be an account of
  the ledger, the other side can be any name (an employer, a shop...).

  A move from an account is an expense of that account. When both sides are
  accounts of the ledger, the move is a transfer and the destination account
  is credited with the amount converted to USD.
`
}

func (c *moveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Account, or outside source, the money comes from")
	f.StringVar(&c.to, "to", "", "Account, or outside destination, the money goes to")
	f.StringVar(&c.amount, "a", "", "Amount, in the currency of the move")
	f.StringVar(&c.currency, "c", accounts.ReferenceCurrency, "Currency of the amount (ISO 4217 code)")
	f.StringVar(&c.rate, "r", "1", "Exchange rate from the currency to USD")
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the move. See 'acm topic dates' for supported formats.")
	f.StringVar(&c.lat, "lat", "0", "Latitude where the move happened")
	f.StringVar(&c.lon, "lon", "0", "Longitude where the move happened")
	f.StringVar(&c.description, "m", "", "Description")
	f.StringVar(&c.category, "cat", "", "Category, as <main>/<sub>")
	f.StringVar(&c.keywords, "k", "", "Comma separated keywords")
	f.BoolVar(&c.recurrent, "recurrent", false, "The move happens regularly")
}

// move validates the flags and returns the move they describe.
func (c *moveCmd) move() (accounts.Move, error) {
	var mv accounts.Move
	var err error
	if c.from == "" && c.to == "" {
		return mv, fmt.Errorf("at least one of -from and -to is required")
	}
	if c.amount == "" {
		return mv, fmt.Errorf("missing amount")
	}
	if mv.Amount, err = decimal.NewFromString(c.amount); err != nil {
		return mv, fmt.Errorf("invalid amount %q: %w", c.amount, err)
	}
	mv.Currency = strings.ToUpper(c.currency)
	if !accounts.KnownCurrency(mv.Currency) {
		return mv, fmt.Errorf("unknown currency %q", c.currency)
	}
	if mv.TypeOfChange, err = decimal.NewFromString(c.rate); err != nil || !mv.TypeOfChange.IsPositive() {
		return mv, fmt.Errorf("invalid rate %q: must be a positive number", c.rate)
	}
	if mv.Date, err = date.Parse(c.date); err != nil {
		return mv, err
	}
	if mv.Lat, err = decimal.NewFromString(c.lat); err != nil {
		return mv, fmt.Errorf("invalid latitude %q: %w", c.lat, err)
	}
	if mv.Lon, err = decimal.NewFromString(c.lon); err != nil {
		return mv, fmt.Errorf("invalid longitude %q: %w", c.lon, err)
	}
	mv.From, mv.To = c.from, c.to
	mv.Description = c.description
	mv.MainCategory, mv.SubCategory, _ = strings.Cut(c.category, "/")
	for _, k := range strings.Split(c.keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			mv.Keywords = append(mv.Keywords, k)
		}
	}
	mv.IsRecurrent = c.recurrent
	return mv, nil
}

func (c *moveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mv, err := c.move()
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

	if err := l.RegisterMove(mv); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering move: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := l.save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, name := range []string{mv.From, mv.To} {
		if a, ok := l.Account(name); ok {
			fmt.Fprintf(out, "%s: %s, balance %s\n", a.Name(), renderer.Movement(last(a)), accounts.M(a.Balance(), accounts.ReferenceCurrency))
		}
	}
	return subcommands.ExitSuccess
}

// last returns the latest movement applied to a.
func last(a *accounts.Account) accounts.Movement {
	var mv accounts.Movement
	for _, m := range a.Movements() {
		mv = m
	}
	return mv
}
