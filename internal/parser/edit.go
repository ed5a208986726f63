package parser

import (
	"strings"

	"github.com/amirbrooks/yap/internal/task"
)

// EditArgs holds the fields of an edit command. A nil field was not given;
// a non-nil field was given, possibly empty.
type EditArgs struct {
	Name      *string
	Date      *string
	TimeStart *string
	TimeEnd   *string
}

func (a EditArgs) Empty() bool {
	return a.Name == nil && a.Date == nil && a.TimeStart == nil && a.TimeEnd == nil
}

func (a EditArgs) HasTime() bool {
	return a.TimeStart != nil || a.TimeEnd != nil
}

var editMarkers = []string{"n/", "d/", "t/"}

// ParseEditArgs parses "[n/NAME] [d/yyyy-MM-dd] [t/HHmm-HHmm]" in any order.
// Dates are not validated here.
func ParseEditArgs(s string) (EditArgs, error) {
	var a EditArgs
	s = strings.TrimSpace(s)
	if s == "" {
		return a, nil
	}

	pos := make(map[string]int, len(editMarkers))
	for _, m := range editMarkers {
		pos[m] = markerIndex(s, m)
	}

	a.Name = fieldValue(s, "n/", pos)
	a.Date = fieldValue(s, "d/", pos)

	if v := fieldValue(s, "t/", pos); v != nil {
		parts := strings.Split(*v, "-")
		if len(parts) != 2 {
			return EditArgs{}, task.Formatf("Time uses t/HHmm-HHmm (e.g., t/0900-1030).")
		}
		start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if !task.IsClockToken(start) || !task.IsClockToken(end) {
			return EditArgs{}, task.Formatf("Time uses t/HHmm-HHmm (e.g., t/0900-1030).")
		}
		a.TimeStart, a.TimeEnd = &start, &end
	}
	return a, nil
}

// SplitEditTarget splits an edit payload into the task selector and the
// field text starting at the first marker.
func SplitEditTarget(rest string) (target, fields string, err error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", "", task.Formatf("Usage: edit <index|exact name> [n/NAME] [d/YYYY-MM-DD] [t/HHmm-HHmm]")
	}
	first := -1
	for _, m := range editMarkers {
		if i := markerIndex(rest, m); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	if first < 0 {
		return "", "", task.Formatf("No fields to change. Provide n/, d/, or t/.")
	}
	target = strings.TrimSpace(rest[:first])
	if target == "" {
		return "", "", task.Formatf("Usage: edit <index|exact name> [n/NAME] [d/YYYY-MM-DD] [t/HHmm-HHmm]")
	}
	return target, rest[first:], nil
}

// markerIndex returns where marker starts in s, either at 0 or right after a
// space, or -1.
func markerIndex(s, marker string) int {
	if strings.HasPrefix(s, marker) {
		return 0
	}
	i := strings.Index(s, " "+marker)
	if i < 0 {
		return -1
	}
	return i + 1
}

func fieldValue(s, marker string, pos map[string]int) *string {
	start := pos[marker]
	if start < 0 {
		return nil
	}
	end := len(s)
	for m, p := range pos {
		if m != marker && p > start && p < end {
			end = p
		}
	}
	v := strings.TrimSpace(s[start+len(marker) : end])
	return &v
}
