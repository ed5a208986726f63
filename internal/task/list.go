package task

import (
	"strconv"
	"strings"
)

// List is an ordered task collection addressed from 1 by callers.
type List struct {
	tasks []Task
}

func NewList(initial []Task) *List {
	l := &List{tasks: make([]Task, 0, len(initial))}
	l.tasks = append(l.tasks, initial...)
	return l
}

func (l *List) Len() int { return len(l.tasks) }

func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

func (l *List) Get(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return nil, err
	}
	return l.tasks[i-1], nil
}

func (l *List) Remove(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return nil, err
	}
	t := l.tasks[i-1]
	l.tasks = append(l.tasks[:i-1], l.tasks[i:]...)
	return t, nil
}

func (l *List) check(i int) error {
	if i < 1 || i > len(l.tasks) {
		return &IndexError{Index: i, Size: len(l.tasks)}
	}
	return nil
}

// FindIndices returns the 1-based positions of tasks whose name contains
// keyword, ignoring case. A blank keyword matches nothing.
func (l *List) FindIndices(keyword string) []int {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}
	var out []int
	for i, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Name()), needle) {
			out = append(out, i+1)
		}
	}
	return out
}

func (l *List) IndicesByName(name string) []int {
	var out []int
	for i, t := range l.tasks {
		if t.Name() == name {
			out = append(out, i+1)
		}
	}
	return out
}

// Render lists every task, numbered from 1, one per line.
func (l *List) Render() string {
	var b strings.Builder
	for i, t := range l.tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(t.String())
	}
	return b.String()
}

// RenderIndices lists the tasks at the given positions, renumbered from 1.
// Positions outside the list are ignored.
func (l *List) RenderIndices(indices []int) string {
	var b strings.Builder
	n := 0
	for _, i := range indices {
		if i < 1 || i > len(l.tasks) {
			continue
		}
		if n > 0 {
			b.WriteByte('\n')
		}
		n++
		b.WriteString(strconv.Itoa(n))
		b.WriteString(". ")
		b.WriteString(l.tasks[i-1].String())
	}
	return b.String()
}

func (l *List) Snapshot() []Task {
	out := make([]Task, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = t.Clone()
	}
	return out
}
