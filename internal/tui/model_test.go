package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/rolodex/internal/shell"
)

func typeLine(m Model, line string) Model {
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestNewModel(t *testing.T) {
	m := NewModel(testSession(), "Enter a command: ")

	if m.done {
		t.Error("new model should not be done")
	}
	if len(m.transcript) != 0 {
		t.Errorf("transcript len = %d, want 0", len(m.transcript))
	}
	if got := m.input.Prompt; got != "Enter a command: " {
		t.Errorf("prompt = %q, want %q", got, "Enter a command: ")
	}
}

func TestModel_ExecutesCommandOnEnter(t *testing.T) {
	m := NewModel(testSession(), "> ")
	m = typeLine(m, "hello")

	view := m.View()
	if !strings.Contains(view, "How can I help you?") {
		t.Errorf("view missing command output:\n%s", view)
	}
	if got := m.input.Value(); got != "" {
		t.Errorf("input not cleared after enter, value = %q", got)
	}
}

func TestModel_BlankLineIgnored(t *testing.T) {
	m := NewModel(testSession(), "> ")
	m = typeLine(m, "   ")

	if len(m.transcript) != 0 {
		t.Errorf("transcript len = %d, want 0 for blank input", len(m.transcript))
	}
}

func TestModel_QuitsOnExitCommand(t *testing.T) {
	m := NewModel(testSession(), "> ")
	m.input.SetValue("exit")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !m.done {
		t.Error("model should be done after exit command")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !strings.Contains(m.View(), shell.Farewell) {
		t.Errorf("view missing farewell:\n%s", m.View())
	}
}

func TestModel_QuitsOnCtrlC(t *testing.T) {
	m := NewModel(testSession(), "> ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)

	if !m.done {
		t.Error("model should be done after ctrl+c")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
}

func TestModel_TranscriptTrimmed(t *testing.T) {
	m := NewModel(testSession(), "> ")
	for i := 0; i < transcriptLimit; i++ {
		m = typeLine(m, "hello")
	}

	if got := len(m.transcript); got > transcriptLimit {
		t.Errorf("transcript len = %d, want at most %d", got, transcriptLimit)
	}
}

func TestModel_ViewTailRespectsHeight(t *testing.T) {
	m := NewModel(testSession(), "> ")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(Model)
	for i := 0; i < 20; i++ {
		m = typeLine(m, "hello")
	}

	lines := strings.Split(strings.TrimRight(m.View(), "\n"), "\n")
	if got := len(lines); got > 10 {
		t.Errorf("view has %d lines, want at most the window height of 10", got)
	}
}

// TestModel_Teatest_FullSession drives a complete add/query/exit session
// through the Bubble Tea runtime.
func TestModel_Teatest_FullSession(t *testing.T) {
	m := NewModel(testSession(), "> ")
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	for _, line := range []string{"add Mia 0991234567", "phone Mia", "exit"} {
		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	}

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.done {
		t.Error("final model should be done")
	}
	joined := strings.Join(final.transcript, "\n")
	for _, want := range []string{
		"Contact Mia added with phone number 0991234567",
		"Mia's phones: 0991234567",
		shell.Farewell,
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("transcript missing %q\ntranscript:\n%s", want, joined)
		}
	}
}
