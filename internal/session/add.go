package session

import (
	"strings"

	"github.com/amirbrooks/yap/internal/task"
)

// addLine parses one batch-add line:
//
//	t <name>
//	d <name>/<yyyy-MM-dd>
//	e <name>/<yyyy-MM-dd>/<HHmm>/<HHmm>
//
// Nothing is added or saved when the line is malformed.
func (s *Session) addLine(line string) (string, error) {
	t, err := parseAddLine(line)
	if err != nil {
		return "", err
	}
	s.tasks.Add(t)
	return s.persisted("Added: " + t.String()), nil
}

func parseAddLine(line string) (task.Task, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, task.Formatf("Empty add line.")
	}

	kind := trimmed[0] | 0x20 // ASCII lower-case
	if kind != 't' && kind != 'd' && kind != 'e' {
		return nil, task.Formatf("Unknown add-line type. Use t/d/e.")
	}
	payload := ""
	if len(trimmed) > 1 {
		if trimmed[1] != ' ' && trimmed[1] != '\t' {
			return nil, task.Formatf("Put a space after the task type, e.g. %c <name>.", kind)
		}
		payload = strings.TrimSpace(trimmed[2:])
	}

	var (
		t   task.Task
		err error
	)
	switch kind {
	case 't':
		if payload == "" {
			return nil, task.Formatf("ToDo name is empty.")
		}
		t, err = task.NewToDo(payload)
	case 'd':
		parts := strings.SplitN(payload, "/", 2)
		if len(parts) != 2 {
			return nil, task.Formatf("Deadline needs: d <name>/<yyyy-MM-dd>")
		}
		t, err = task.ParseDeadline(parts[0], parts[1])
	default:
		parts := strings.Split(payload, "/")
		if len(parts) != 4 {
			return nil, task.Formatf("Event needs: e <name>/<yyyy-MM-dd>/<HHmm>/<HHmm>")
		}
		t, err = task.ParseEvent(parts[0], parts[1], parts[2], parts[3])
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
