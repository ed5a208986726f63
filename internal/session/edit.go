package session

import (
	"github.com/amirbrooks/yap/internal/parser"
	"github.com/amirbrooks/yap/internal/task"
)

// edit applies "<target> [n/NAME] [d/DATE] [t/HHmm-HHmm]". Which fields are
// allowed depends on the task variant. Every new value is validated before
// the task is touched, so a rejected edit leaves it as it was.
func (s *Session) edit(rest string) (string, error) {
	target, fields, err := parser.SplitEditTarget(rest)
	if err != nil {
		return "", err
	}
	idx, err := s.resolve(target)
	if err != nil {
		return "", err
	}
	args, err := parser.ParseEditArgs(fields)
	if err != nil {
		return "", err
	}
	if args.Empty() {
		return "", task.Formatf("No fields to change. Provide n/, d/, or t/.")
	}
	t, err := s.tasks.Get(idx)
	if err != nil {
		return "", err
	}

	name := t.Name()
	if args.Name != nil {
		name = *args.Name
	}
	if err := task.ValidateName(name); err != nil {
		return "", err
	}

	switch v := t.(type) {
	case *task.ToDo:
		if args.Date != nil || args.HasTime() {
			return "", task.Formatf("Todo can only change name (use n/).")
		}
		if err := v.Rename(name); err != nil {
			return "", err
		}
	case *task.Deadline:
		if args.HasTime() {
			return "", task.Formatf("Deadline can change name and date only (n/, d/).")
		}
		due := v.Due()
		if args.Date != nil {
			if due, err = task.ParseDate(*args.Date); err != nil {
				return "", err
			}
		}
		if err := v.Rename(name); err != nil {
			return "", err
		}
		v.SetDue(due)
	case *task.Event:
		date, start, end := v.Date(), v.Start(), v.End()
		if args.Date != nil {
			if date, err = task.ParseDate(*args.Date); err != nil {
				return "", err
			}
		}
		if args.HasTime() {
			if start, err = task.ParseClock(deref(args.TimeStart)); err != nil {
				return "", err
			}
			if end, err = task.ParseClock(deref(args.TimeEnd)); err != nil {
				return "", err
			}
		}
		if err := v.Reschedule(date, start, end); err != nil {
			return "", err
		}
		if err := v.Rename(name); err != nil {
			return "", err
		}
	default:
		panic("session: unknown task variant")
	}

	return s.persisted("Edited: " + t.String()), nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
