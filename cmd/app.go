// Package cmd implements the CLI application to manage accounts.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/accounts"
	"github.com/etnz/accounts/internal/logger"
	"github.com/etnz/accounts/store"
	"github.com/etnz/accounts/vault"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Commands are all the subcommands of the application.
var Commands = []subcommands.Command{
	&initCmd{},
	&accountCmd{},
	&moveCmd{},
	&showCmd{},
	&exportCmd{},
	&queryCmd{},
	&passwdCmd{},
	&topicCmd{},
}

// Environment variables read by the application. They can also be set in a .env file.
const (
	EnvStore       = "ACM_STORE"
	EnvPassword    = "ACM_PASSWORD"
	EnvNewPassword = "ACM_NEW_PASSWORD"
	EnvLogLevel    = "ACM_LOG_LEVEL"
	EnvScryptCost  = "ACM_SCRYPT_COST"
)

// DefaultStore is the ledger used when neither -store nor ACM_STORE is set.
const DefaultStore = "my_accounts.mgr"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeURI   = flag.String("store", "", "Ledger location: a .mgr file, a folder, or sqlite://<db>#<name>. Defaults to $"+EnvStore+" or "+DefaultStore)
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error). Defaults to $"+EnvLogLevel+" or warn")
	scryptCost = flag.Uint("scrypt-cost", 0, "Scrypt cost (log2 N) used to encrypt the ledger. Defaults to $"+EnvScryptCost+" or 15")
	verbose    = flag.Bool("v", false, "Verbose output, same as -log-level=debug")
	raw        = flag.Bool("raw", false, "Print markdown without rendering it")
)

// out is where commands print their results.
var out io.Writer = os.Stdout

// LoadEnv reads the .env file of the current directory, if any. Variables already set are kept.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Store returns the ledger location.
func Store() string {
	if *storeURI != "" {
		return *storeURI
	}
	if s := os.Getenv(EnvStore); s != "" {
		return s
	}
	return DefaultStore
}

// LogLevel returns the configured log level.
func LogLevel() string {
	switch {
	case *verbose:
		return "debug"
	case *logLevel != "":
		return *logLevel
	case os.Getenv(EnvLogLevel) != "":
		return os.Getenv(EnvLogLevel)
	}
	return "warn"
}

// Logger creates the application logger on stderr.
func Logger() (zerolog.Logger, error) {
	return logger.New(os.Stderr, LogLevel())
}

// cost returns the configured scrypt cost.
func cost() (uint8, error) {
	if *scryptCost != 0 {
		return uint8(min(*scryptCost, 255)), nil
	}
	env := os.Getenv(EnvScryptCost)
	if env == "" {
		return vault.DefaultCost, nil
	}
	n, err := strconv.ParseUint(env, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", EnvScryptCost, env, err)
	}
	return uint8(n), nil
}

// stdin is where passwords are read from when the standard input is not a terminal.
var stdin = bufio.NewReader(os.Stdin)

// password returns the password from the env variable, or asks for it.
// When confirm is set, the password is asked twice.
func password(env, prompt string, confirm bool) (string, error) {
	if pw := os.Getenv(env); pw != "" {
		return pw, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, _ := stdin.ReadString('\n')
		pw := strings.TrimRight(line, "\r\n")
		if pw == "" {
			return "", fmt.Errorf("no password: set %s or use a terminal", env)
		}
		return pw, nil
	}

	read := func(prompt string) (string, error) {
		fmt.Fprint(os.Stderr, prompt)
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(pw), err
	}
	pw, err := read(prompt)
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := read("Confirm password: ")
		if err != nil {
			return "", err
		}
		if again != pw {
			return "", errors.New("passwords do not match")
		}
	}
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

// ledger is an opened ledger.
type ledger struct {
	store    store.Store
	vault    *vault.Vault
	password string
	*accounts.Manager
}

// openLedger opens the store, asks for the password and loads the manager.
func openLedger(ctx context.Context) (*ledger, error) {
	s, err := store.Open(ctx, Store())
	if err != nil {
		return nil, err
	}
	l, err := loadLedger(ctx, s)
	if err != nil {
		s.Close()
		return nil, err
	}
	return l, nil
}

func loadLedger(ctx context.Context, s store.Store) (*ledger, error) {
	logN, err := cost()
	if err != nil {
		return nil, err
	}
	v, err := vault.New(logN)
	if err != nil {
		return nil, err
	}
	pw, err := password(EnvPassword, "Password: ", false)
	if err != nil {
		return nil, err
	}
	m, err := accounts.LoadManager(ctx, s, v, pw, accounts.WithLogger(logger.FromContext(ctx)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w, run 'acm init' first", err)
	}
	if err != nil {
		return nil, err
	}
	return &ledger{store: s, vault: v, password: pw, Manager: m}, nil
}

// save writes the ledger back to its store.
func (l *ledger) save(ctx context.Context) error {
	return accounts.SaveManager(ctx, l.store, l.Manager, l.vault, l.password, true)
}

func (l *ledger) Close() error { return l.store.Close() }

// printMarkdown renders md for the terminal, or prints it as is.
func printMarkdown(md string) {
	f, ok := out.(*os.File)
	if *raw || !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, md)
		return
	}
	width := 100
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		width = w
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		fmt.Fprint(out, md)
		return
	}
	rendered, err := r.Render(md)
	if err != nil {
		fmt.Fprint(out, md)
		return
	}
	fmt.Fprint(out, rendered)
}
