package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type scriptEngine struct {
	lines []string
	exit  bool
}

func (e *scriptEngine) Greeting() string { return "hello there" }
func (e *scriptEngine) Goodbye() string  { return "bye now" }
func (e *scriptEngine) ExitRequested() bool {
	return e.exit
}

func (e *scriptEngine) HandleLine(line string) string {
	e.lines = append(e.lines, line)
	if line == "exit" {
		e.exit = true
		return ""
	}
	return "echo: " + line
}

func typeLine(t *testing.T, m *model, s string) tea.Cmd {
	t.Helper()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEnterSendsLineToEngine(t *testing.T) {
	eng := &scriptEngine{}
	m := newModel(eng)

	if cmd := typeLine(t, m, "list"); isQuit(cmd) {
		t.Fatal("should not quit after a normal command")
	}
	if len(eng.lines) != 1 || eng.lines[0] != "list" {
		t.Fatalf("engine got %v", eng.lines)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	view := m.View()
	for _, want := range []string{"hello there", "you: list", "echo: list"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestExitCommandQuits(t *testing.T) {
	eng := &scriptEngine{}
	m := newModel(eng)

	if cmd := typeLine(t, m, "exit"); !isQuit(cmd) {
		t.Fatal("expected quit after exit")
	}
	if !m.done {
		t.Fatal("model should be done")
	}
	if last := m.transcript[len(m.transcript)-1]; last.text != "bye now" {
		t.Errorf("last entry: %q", last.text)
	}
}

func TestCtrlCQuitsOnce(t *testing.T) {
	eng := &scriptEngine{}
	m := newModel(eng)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatal("ctrl+c should quit")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	goodbyes := 0
	for _, e := range m.transcript {
		if e.text == "bye now" {
			goodbyes++
		}
	}
	if goodbyes != 1 {
		t.Errorf("goodbye shown %d times", goodbyes)
	}
	if len(eng.lines) != 0 {
		t.Errorf("engine should not see input: %v", eng.lines)
	}
}

func TestViewKeepsLatestLinesOnSmallScreen(t *testing.T) {
	eng := &scriptEngine{}
	m := newModel(eng)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	for _, s := range []string{"one", "two", "three", "four"} {
		typeLine(t, m, s)
	}
	view := m.View()
	if strings.Contains(view, "hello there") {
		t.Error("oldest lines should scroll off")
	}
	if !strings.Contains(view, "echo: four") {
		t.Error("newest reply missing")
	}
}

func TestIsTTYRejectsBuffers(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Fatal("buffer is not a terminal")
	}
}
