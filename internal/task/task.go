// Package task holds the task variants and the ordered list the session works on.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Textual forms accepted on input and written to disk.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "1504"
)

const (
	displayDate = "Jan 02 2006"
	displayTime = "3:04PM"
)

// Kind identifies a task variant.
type Kind int

const (
	KindToDo Kind = iota
	KindDeadline
	KindEvent
)

// Marker returns the one-letter tag used in listings and on disk.
func (k Kind) Marker() string {
	switch k {
	case KindToDo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// Task is implemented only by *ToDo, *Deadline and *Event. Code that needs
// variant fields type-switches over exactly those three.
type Task interface {
	Kind() Kind
	Name() string
	Done() bool
	MarkDone()
	String() string
	Clone() Task

	sealed()
}

type base struct {
	name string
	done bool
}

func (b *base) Name() string { return b.name }
func (b *base) Done() bool   { return b.done }
func (b *base) MarkDone()    { b.done = true }
func (b *base) sealed()      {}

func (b *base) rename(name string) error {
	n, err := cleanName(name)
	if err != nil {
		return err
	}
	b.name = n
	return nil
}

func (b *base) prefix(k Kind) string {
	glyph := " "
	if b.done {
		glyph = "X"
	}
	return fmt.Sprintf("[%s][%s] %s", k.Marker(), glyph, b.name)
}

// FieldSeparator splits fields in the task file, so names may not contain it.
const FieldSeparator = "|"

func cleanName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", Formatf("Name cannot be empty.")
	}
	if strings.Contains(n, FieldSeparator) {
		return "", Formatf("Name cannot contain %q.", FieldSeparator)
	}
	return n, nil
}

// ValidateName reports whether name is acceptable for any task variant.
func ValidateName(name string) error {
	_, err := cleanName(name)
	return err
}

type ToDo struct {
	base
}

func NewToDo(name string) (*ToDo, error) {
	n, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	return &ToDo{base{name: n}}, nil
}

func (t *ToDo) Kind() Kind               { return KindToDo }
func (t *ToDo) String() string           { return t.prefix(KindToDo) }
func (t *ToDo) Rename(name string) error { return t.rename(name) }

func (t *ToDo) Clone() Task {
	c := *t
	return &c
}

// Deadline is a task due on a calendar date.
type Deadline struct {
	base
	due time.Time
}

func NewDeadline(name string, due time.Time) (*Deadline, error) {
	n, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	return &Deadline{base: base{name: n}, due: dateOnly(due)}, nil
}

func ParseDeadline(name, isoDate string) (*Deadline, error) {
	due, err := ParseDate(isoDate)
	if err != nil {
		return nil, err
	}
	return NewDeadline(name, due)
}

func (d *Deadline) Kind() Kind               { return KindDeadline }
func (d *Deadline) Due() time.Time           { return d.due }
func (d *Deadline) Rename(name string) error { return d.rename(name) }
func (d *Deadline) SetDue(due time.Time)     { d.due = dateOnly(due) }

func (d *Deadline) String() string {
	return fmt.Sprintf("%s (by: %s)", d.prefix(KindDeadline), d.due.Format(displayDate))
}

func (d *Deadline) Clone() Task {
	c := *d
	return &c
}

// Event happens on a date between two times of day. Start is always
// strictly before End.
type Event struct {
	base
	date  time.Time
	start time.Time
	end   time.Time
}

func NewEvent(name string, date, start, end time.Time) (*Event, error) {
	n, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	e := &Event{base: base{name: n}}
	if err := e.Reschedule(date, start, end); err != nil {
		return nil, err
	}
	return e, nil
}

func ParseEvent(name, isoDate, startHHmm, endHHmm string) (*Event, error) {
	date, err := ParseDate(isoDate)
	if err != nil {
		return nil, err
	}
	start, err := ParseClock(startHHmm)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(endHHmm)
	if err != nil {
		return nil, err
	}
	return NewEvent(name, date, start, end)
}

func (e *Event) Kind() Kind               { return KindEvent }
func (e *Event) Date() time.Time          { return e.date }
func (e *Event) Start() time.Time         { return e.start }
func (e *Event) End() time.Time           { return e.end }
func (e *Event) Rename(name string) error { return e.rename(name) }

// Reschedule replaces date, start and end together. The event is left
// unchanged when start is not before end.
func (e *Event) Reschedule(date, start, end time.Time) error {
	start, end = clockOnly(start), clockOnly(end)
	if !start.Before(end) {
		return Formatf("Start must be before end (got %s-%s).",
			start.Format(TimeLayout), end.Format(TimeLayout))
	}
	e.date, e.start, e.end = dateOnly(date), start, end
	return nil
}

func (e *Event) String() string {
	return fmt.Sprintf("%s (from: %s %s to: %s)", e.prefix(KindEvent),
		e.date.Format(displayDate), e.start.Format(displayTime), e.end.Format(displayTime))
}

func (e *Event) Clone() Task {
	c := *e
	return &c
}

// ParseDate parses a yyyy-MM-dd calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Formatf("Date %q must be a real date in yyyy-MM-dd form.", s)
	}
	return t, nil
}

// ParseClock parses a 24-hour HHmm time of day. Exactly four digits are required.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsClockToken(s) {
		return time.Time{}, Formatf("Time %q must be 4 digits (HHmm).", s)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, Formatf("Time %q is not a valid 24-hour time.", s)
	}
	return t, nil
}

func IsClockToken(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clockOnly(t time.Time) time.Time {
	return time.Date(0, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}
