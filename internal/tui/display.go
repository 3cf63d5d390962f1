// Package tui renders the interactive shell: a plain line loop when
// output is not a terminal, or a Bubble Tea program when it is.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/rolodex/internal/shell"
)

// Executor runs one command line. Implemented by *shell.Session.
type Executor interface {
	Execute(line string) shell.Result
}

// Display drives a command session until the user quits.
type Display interface {
	Run(ctx context.Context, ex Executor) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Input      io.Reader // Command source for the plain shell (default: os.Stdin).
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force the line loop even if stdout is a TTY.
	Prompt     string    // Input prompt (default: "Enter a command: ").
}

// NewDisplay returns a Bubble Tea shell when stdout is a TTY, or a plain
// line loop otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = "Enter a command: "
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainShell{in: opts.Input, w: opts.Writer, prompt: opts.Prompt}
	}

	return &TeaShell{in: opts.Input, w: opts.Writer, prompt: opts.Prompt}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainShell reads commands line by line and prints each result.
type PlainShell struct {
	in     io.Reader
	w      io.Writer
	prompt string
}

// Run loops until the session quits, input ends, or ctx is cancelled.
// End of input without an exit command is not an error.
func (d *PlainShell) Run(ctx context.Context, ex Executor) error {
	_, _ = fmt.Fprintln(d.w, shell.Greeting)

	scanner := bufio.NewScanner(d.in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, _ = fmt.Fprint(d.w, d.prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("tui: reading input: %w", err)
			}
			return nil
		}

		res := ex.Execute(scanner.Text())
		if res.Output != "" {
			_, _ = fmt.Fprintln(d.w, res.Output)
		}
		if res.Quit {
			return nil
		}
	}
}

// TeaShell renders the session as a Bubble Tea terminal UI.
// Falls back to PlainShell if the TUI program fails to start.
type TeaShell struct {
	in     io.Reader
	w      io.Writer
	prompt string
}

// Run starts the Bubble Tea program over the session.
func (d *TeaShell) Run(ctx context.Context, ex Executor) error {
	model := NewModel(ex, d.prompt)
	p := tea.NewProgram(model, tea.WithOutput(d.w), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		// Fall back to plain text for the rest of the session.
		plain := &PlainShell{in: d.in, w: d.w, prompt: d.prompt}
		return plain.Run(ctx, ex)
	}
	return nil
}
