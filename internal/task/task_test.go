package task

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderVariants(t *testing.T) {
	todo, err := NewToDo("buy milk")
	if err != nil {
		t.Fatalf("NewToDo: %v", err)
	}
	dl, err := ParseDeadline("return book", "2019-12-02")
	if err != nil {
		t.Fatalf("ParseDeadline: %v", err)
	}
	ev, err := ParseEvent("project meeting", "2019-12-02", "1800", "2000")
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	dl.MarkDone()

	tests := []struct {
		task Task
		want string
	}{
		{todo, "[T][ ] buy milk"},
		{dl, "[D][X] return book (by: Dec 02 2019)"},
		{ev, "[E][ ] project meeting (from: Dec 02 2019 6:00PM to: 8:00PM)"},
	}
	for _, tt := range tests {
		if got := tt.task.String(); got != tt.want {
			t.Errorf("String(): got %q, want %q", got, tt.want)
		}
	}
}

func TestNewToDoRejectsBlankName(t *testing.T) {
	if _, err := NewToDo("   "); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestNamesCannotContainFieldSeparator(t *testing.T) {
	if _, err := NewToDo("milk | eggs"); !errors.Is(err, ErrFormat) {
		t.Fatalf("todo: expected ErrFormat, got %v", err)
	}
	if _, err := ParseEvent("sync|review", "2025-01-01", "0900", "1000"); !errors.Is(err, ErrFormat) {
		t.Fatalf("event: expected ErrFormat, got %v", err)
	}
	td, err := NewToDo("milk")
	if err != nil {
		t.Fatal(err)
	}
	if err := td.Rename("milk|eggs"); !errors.Is(err, ErrFormat) {
		t.Fatalf("rename: expected ErrFormat, got %v", err)
	}
	if td.Name() != "milk" {
		t.Errorf("rejected rename changed the name to %q", td.Name())
	}
	if err := ValidateName("milk & eggs"); err != nil {
		t.Errorf("ValidateName: %v", err)
	}
}

func TestEventRequiresStartBeforeEnd(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"reversed", "1800", "1700"},
		{"equal", "0900", "0900"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvent("standup", "2025-01-01", tt.start, tt.end)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestEventRescheduleKeepsOldValuesOnError(t *testing.T) {
	ev, err := ParseEvent("standup", "2025-01-01", "0900", "0930")
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	start, _ := ParseClock("1000")
	end, _ := ParseClock("0800")
	if err := ev.Reschedule(ev.Date(), start, end); err == nil {
		t.Fatal("expected error for end before start")
	}
	if got := ev.Start().Format(TimeLayout); got != "0900" {
		t.Errorf("start changed to %s", got)
	}
	if got := ev.End().Format(TimeLayout); got != "0930" {
		t.Errorf("end changed to %s", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0000", false},
		{"2359", false},
		{"2400", true},
		{"0960", true},
		{"930", true},
		{"09:30", true},
		{"abcd", true},
	}
	for _, tt := range tests {
		_, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
	}
}

func TestParseDateRejectsImpossibleDates(t *testing.T) {
	for _, in := range []string{"2025-02-30", "2025/01/01", "tomorrow", ""} {
		if _, err := ParseDate(in); !errors.Is(err, ErrFormat) {
			t.Errorf("ParseDate(%q): expected ErrFormat, got %v", in, err)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig, _ := NewToDo("read")
	c := orig.Clone()
	orig.MarkDone()
	if c.Done() {
		t.Fatal("clone should not observe MarkDone on the original")
	}
	if err := orig.Rename("write"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if c.Name() != "read" {
		t.Fatalf("clone name changed to %q", c.Name())
	}
}

func TestMatchConflictErrorMessage(t *testing.T) {
	err := error(&MatchConflictError{Name: "read", Indices: []int{1, 3}})
	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected errors.Is(err, ErrConflict)")
	}
	if !strings.Contains(err.Error(), "1, 3") {
		t.Errorf("message should list positions, got %q", err.Error())
	}
}
