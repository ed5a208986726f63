// Package parser classifies input lines and parses edit fields.
package parser

import "strings"

// Kind is the command class of an input line.
type Kind int

const (
	Unknown Kind = iota
	Show
	Add
	Delete
	Complete
	Find
	Edit
	Help
	Exit
)

func (k Kind) String() string {
	switch k {
	case Show:
		return "show"
	case Add:
		return "add"
	case Delete:
		return "delete"
	case Complete:
		return "complete"
	case Find:
		return "find"
	case Edit:
		return "edit"
	case Help:
		return "help"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// DoneWord is the Add payload that ends batch-add mode.
const DoneWord = "done"

// Command is a classified input line. Rest keeps the user's casing.
type Command struct {
	Kind Kind
	Rest string
}

// Parse classifies raw. It never fails: unrecognised input is Unknown with
// the trimmed line as Rest.
func Parse(raw string) Command {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Command{Kind: Unknown}
	}
	lower := strings.ToLower(s)

	switch {
	case lower == "list" || lower == "show":
		return Command{Kind: Show}
	case strings.HasPrefix(lower, "add"):
		return Command{Kind: Add, Rest: after(s, 3)}
	case strings.HasPrefix(lower, "delete"):
		return Command{Kind: Delete, Rest: after(s, 6)}
	case strings.HasPrefix(lower, "complete"):
		return Command{Kind: Complete, Rest: after(s, 8)}
	case strings.HasPrefix(lower, "done "):
		return Command{Kind: Complete, Rest: after(s, 5)}
	case lower == DoneWord:
		return Command{Kind: Add, Rest: DoneWord}
	case strings.HasPrefix(lower, "find"):
		return Command{Kind: Find, Rest: after(s, 4)}
	case strings.HasPrefix(lower, "edit"):
		return Command{Kind: Edit, Rest: after(s, 4)}
	case lower == "help":
		return Command{Kind: Help}
	case lower == "exit" || lower == "quit":
		return Command{Kind: Exit}
	}
	return Command{Kind: Unknown, Rest: s}
}

// after slices by byte offset; every keyword is ASCII so ToLower kept the
// prefix length unchanged.
func after(s string, n int) string {
	if n >= len(s) {
		return ""
	}
	return strings.TrimSpace(s[n:])
}
