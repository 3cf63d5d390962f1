package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/rolodex/internal/shell"
)

// transcriptLimit bounds retained transcript lines so long sessions do
// not grow without bound.
const transcriptLimit = 500

var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	entryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Model is the Bubble Tea model for the interactive shell: a scrolling
// transcript above a focused text input.
type Model struct {
	ex         Executor
	input      textinput.Model
	transcript []string
	width      int
	height     int
	done       bool
}

// NewModel creates a shell model with a focused text input.
func NewModel(ex Executor, prompt string) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()

	return Model{ex: ex, input: ti}
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input, executing a command line on enter.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			return m.execute(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs line against the session and appends the exchange to the
// transcript.
func (m Model) execute(line string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.transcript = append(m.transcript, entryStyle.Render(m.input.Prompt+line))

	res := m.ex.Execute(line)
	if res.Output != "" {
		out := res.Output
		if strings.HasPrefix(out, "Error: ") {
			out = errorStyle.Render(out)
		}
		m.transcript = append(m.transcript, strings.Split(out, "\n")...)
	}
	if len(m.transcript) > transcriptLimit {
		m.transcript = m.transcript[len(m.transcript)-transcriptLimit:]
	}

	if res.Quit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the banner, the visible tail of the transcript, and the
// input line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(shell.Greeting))
	b.WriteString("\n\n")

	lines := m.transcript
	if m.height > 0 {
		// Banner, blank line, input line, and a spare row.
		visible := m.height - 4
		if visible > 0 && len(lines) > visible {
			lines = lines[len(lines)-visible:]
		}
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}
