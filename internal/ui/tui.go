// Package ui provides the optional full-screen terminal shell.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirbrooks/yap/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Run starts the terminal UI over eng and blocks until the user leaves.
func Run(eng session.Engine) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(newModel(eng), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type speaker int

const (
	bot speaker = iota
	user
)

type entry struct {
	from speaker
	text string
}

type model struct {
	eng        session.Engine
	input      textinput.Model
	transcript []entry
	width      int
	height     int
	done       bool
}

func newModel(eng session.Engine) *model {
	ti := textinput.New()
	ti.Placeholder = "type a command, or 'help'"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	return &model{
		eng:        eng,
		input:      ti,
		transcript: []entry{{from: bot, text: eng.Greeting()}},
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if msg.Width > 8 {
			m.input.Width = msg.Width - 8
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.finish()
		case "enter":
			return m, m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) submit() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.transcript = append(m.transcript, entry{from: user, text: line})
	if reply := m.eng.HandleLine(line); reply != "" {
		m.transcript = append(m.transcript, entry{from: bot, text: reply})
	}
	if m.eng.ExitRequested() {
		return m.finish()
	}
	return nil
}

func (m *model) finish() tea.Cmd {
	if !m.done {
		m.done = true
		m.transcript = append(m.transcript, entry{from: bot, text: m.eng.Goodbye()})
	}
	return tea.Quit
}

func (m *model) View() string {
	var lines []string
	for _, e := range m.transcript {
		for _, l := range strings.Split(e.text, "\n") {
			if e.from == user {
				lines = append(lines, userStyle.Render("you: "+l))
			} else {
				lines = append(lines, botStyle.Render(l))
			}
		}
	}
	// Title, input panel and hint take six rows.
	if room := m.height - 6; m.height > 0 && room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Yap"))
	b.WriteString("\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	if m.done {
		return b.String()
	}
	b.WriteString(panelStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter to send, esc or ctrl+c to quit"))
	return b.String()
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
