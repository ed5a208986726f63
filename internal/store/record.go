package store

import (
	"strings"

	"github.com/amirbrooks/yap/internal/task"
)

const fieldSep = " " + task.FieldSeparator + " "

// EncodeRecord renders t as one line without the trailing newline.
func EncodeRecord(t task.Task) string {
	status := "0"
	if t.Done() {
		status = "1"
	}
	switch v := t.(type) {
	case *task.ToDo:
		return strings.Join([]string{"T", status, v.Name()}, fieldSep)
	case *task.Deadline:
		return strings.Join([]string{"D", status, v.Name(), v.Due().Format(task.DateLayout)}, fieldSep)
	case *task.Event:
		return strings.Join([]string{
			"E", status, v.Name(),
			v.Date().Format(task.DateLayout),
			v.Start().Format(task.TimeLayout),
			v.End().Format(task.TimeLayout),
		}, fieldSep)
	default:
		panic("store: unknown task variant")
	}
}

// DecodeRecord parses one non-comment line. ok is false for any corrupted record.
// Only a status of exactly "1" marks the task done.
func DecodeRecord(line string) (task.Task, bool) {
	parts := strings.Split(line, task.FieldSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return nil, false
	}
	done := parts[1] == "1"

	var (
		t   task.Task
		err error
	)
	switch parts[0] {
	case "T":
		t, err = task.NewToDo(parts[2])
	case "D":
		if len(parts) < 4 {
			return nil, false
		}
		t, err = task.ParseDeadline(parts[2], parts[3])
	case "E":
		if len(parts) < 6 {
			return nil, false
		}
		t, err = task.ParseEvent(parts[2], parts[3], parts[4], parts[5])
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	if done {
		t.MarkDone()
	}
	return t, true
}
