package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrFormat   = errors.New("invalid format")
	ErrNotFound = errors.New("not found")
	ErrIndex    = errors.New("index out of range")
	ErrConflict = errors.New("conflict")
)

// FormatError reports a malformed command payload. The message is shown to
// the user as-is. It satisfies errors.Is(err, ErrFormat).
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	if e == nil || strings.TrimSpace(e.Msg) == "" {
		return ErrFormat.Error()
	}
	return e.Msg
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Formatf builds a *FormatError.
func Formatf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a target that matched no task.
type NotFoundError struct {
	Target string
}

func (e *NotFoundError) Error() string {
	return "Task not found: " + e.Target
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IndexError reports a 1-based index outside [1, Size].
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("Invalid index %d: the list is empty.", e.Index)
	}
	return fmt.Sprintf("Invalid index %d: choose a number from 1 to %d.", e.Index, e.Size)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// MatchConflictError is returned when a name selects more than one task.
// It still satisfies errors.Is(err, ErrConflict).
type MatchConflictError struct {
	Name    string
	Indices []int
}

func (e *MatchConflictError) Error() string {
	if e == nil {
		return ErrConflict.Error()
	}
	nums := make([]string, 0, len(e.Indices))
	for _, i := range e.Indices {
		nums = append(nums, strconv.Itoa(i))
	}
	return fmt.Sprintf("%d tasks are named %q (numbers %s); use the task number instead.",
		len(e.Indices), e.Name, strings.Join(nums, ", "))
}

func (e *MatchConflictError) Is(target error) bool {
	return target == ErrConflict
}
