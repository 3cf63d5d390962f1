package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/shell"
	"github.com/smileynet/rolodex/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Start the interactive contact shell."`
}

// ShellCmd starts the interactive command loop.
type ShellCmd struct {
	NoTUI bool `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run builds real dependencies and starts the shell.
func (s *ShellCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	session := shell.NewSession(book.New(), shell.Options{
		WindowDays: cfg.Birthdays.WindowDays,
		Rollover:   cfg.Birthdays.Rollover,
		AtomicEdit: cfg.Contacts.AtomicEdit,
	}, nil)

	display := tui.NewDisplay(tui.DisplayOptions{
		Writer:     os.Stdout,
		ForcePlain: s.NoTUI,
		Prompt:     cfg.Shell.Prompt,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, display, session)
}

// run drives the display with the given session, enabling testable wiring.
// Interrupt-driven cancellation is a normal way to leave the shell.
func (s *ShellCmd) run(ctx context.Context, display tui.Display, ex tui.Executor) error {
	err := display.Run(ctx, ex)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
