// Package session runs the conversation: it owns the task list, the
// batch-add mode and the user's name, and turns each input line into a reply.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/amirbrooks/yap/internal/logging"
	"github.com/amirbrooks/yap/internal/parser"
	"github.com/amirbrooks/yap/internal/task"
)

// Engine is what a shell needs to drive a conversation. The console REPL,
// the one-shot CLI and the terminal UI all go through it.
type Engine interface {
	Greeting() string
	HandleLine(line string) string
	ExitRequested() bool
	Goodbye() string
}

type Storage interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
}

type Mode int

const (
	Normal Mode = iota
	BatchAdd
)

func (m Mode) String() string {
	if m == BatchAdd {
		return "batch-add"
	}
	return "normal"
}

const (
	errorPrefix   = "☹ OOPS! "
	botIntro      = "Hello! I'm Yap your new best friend!"
	askName       = "May I know what's your name?"
	askNameAgain  = "Sorry, I didn't catch that. What's your name?"
	helpHint      = "For a list of available commands, type 'help'."
	loadFailed    = "I couldn't load your saved tasks. Starting fresh!"
	batchAddIntro = "Entered Add mode. Use:\n" +
		"  t <name>\n" +
		"  d <name>/<yyyy-MM-dd>\n" +
		"  e <name>/<yyyy-MM-dd>/<HHmm>/<HHmm>\n" +
		"Type 'done' to exit Add mode."
)

type Options struct {
	// UserName skips the name prompt when set.
	UserName string
	Logger   *log.Logger
}

// Reply is the outcome of one input line. Err is the error that was
// reported to the user, if any. SaveErr is set when the command succeeded
// in memory but could not be persisted.
type Reply struct {
	Text    string
	Err     error
	SaveErr error
}

type Session struct {
	id       string
	store    Storage
	tasks    *task.List
	logger   *log.Logger
	mode     Mode
	userName string
	named    bool
	exit     bool
	loadErr  error
	saveErr  error
}

var _ Engine = (*Session)(nil)

// New loads the task list from st. A load failure is logged and reported
// in the greeting; the session then starts with an empty list.
func New(st Storage, opts Options) *Session {
	s := &Session{
		id:     ulid.Make().String(),
		store:  st,
		logger: opts.Logger,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if name := strings.TrimSpace(opts.UserName); name != "" {
		s.userName, s.named = name, true
	}

	loaded, err := st.Load()
	if err != nil {
		s.loadErr = err
		s.logger.Warn("starting with an empty task list", "session", s.id, "err", err)
		loaded = nil
	}
	s.tasks = task.NewList(loaded)
	s.logger.Debug("session started", "session", s.id, "tasks", s.tasks.Len())
	return s
}

func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) UserName() string    { return s.userName }
func (s *Session) ExitRequested() bool { return s.exit }
func (s *Session) LoadError() error    { return s.loadErr }

func (s *Session) Tasks() []task.Task { return s.tasks.Snapshot() }

// Greeting is shown once before the first input line.
func (s *Session) Greeting() string {
	lines := []string{botIntro}
	if s.loadErr != nil {
		lines = append(lines, errorPrefix+loadFailed)
	}
	if s.named {
		lines = append(lines, fmt.Sprintf("Welcome back, %s! %s", s.userName, helpHint))
	} else {
		lines = append(lines, askName)
	}
	return strings.Join(lines, "\n")
}

func (s *Session) Goodbye() string {
	name := s.userName
	if name == "" {
		name = "friend"
	}
	return fmt.Sprintf("Goodbye, %s!", name)
}

func (s *Session) SetUserName(name string) Reply {
	name = strings.TrimSpace(name)
	if name == "" {
		return Reply{Text: askNameAgain}
	}
	s.userName, s.named = name, true
	s.logger.Debug("user named", "session", s.id)
	return Reply{Text: fmt.Sprintf("Nice to meet you, %s!\nHow can I help you today? %s", name, helpHint)}
}

func (s *Session) HandleLine(line string) string {
	return s.Dispatch(line).Text
}

// Dispatch handles one input line. Until a name is known the line is taken
// as the user's name.
func (s *Session) Dispatch(line string) Reply {
	if !s.named {
		return s.SetUserName(line)
	}
	if s.exit {
		return Reply{}
	}

	cmd := parser.Parse(line)
	s.logger.Debug("dispatch", "session", s.id, "kind", cmd.Kind, "mode", s.mode)

	s.saveErr = nil
	text, err := s.dispatch(cmd, line)
	if err != nil {
		s.logger.Debug("command failed", "session", s.id, "kind", cmd.Kind, "err", err)
		return Reply{Text: errorPrefix + err.Error(), Err: err}
	}
	return Reply{Text: text, SaveErr: s.saveErr}
}

func (s *Session) dispatch(cmd parser.Command, line string) (string, error) {
	if s.mode == BatchAdd {
		if cmd.Kind == parser.Add && strings.EqualFold(cmd.Rest, parser.DoneWord) {
			s.mode = Normal
			return "Exited Add mode.", nil
		}
		return s.addLine(line)
	}

	switch cmd.Kind {
	case parser.Help:
		return helpText, nil
	case parser.Show:
		if s.tasks.Len() == 0 {
			return "No tasks yet.", nil
		}
		return s.tasks.Render(), nil
	case parser.Add:
		if strings.EqualFold(cmd.Rest, parser.DoneWord) {
			return "", task.Formatf("Say 'add' first to enter Add mode.")
		}
		s.mode = BatchAdd
		return batchAddIntro, nil
	case parser.Delete:
		return s.delete(cmd.Rest)
	case parser.Complete:
		return s.complete(cmd.Rest)
	case parser.Find:
		return s.find(cmd.Rest), nil
	case parser.Edit:
		return s.edit(cmd.Rest)
	case parser.Exit:
		s.exit = true
		return "", nil
	default:
		return "", task.Formatf("I don't understand. Type 'help' for commands.")
	}
}

// AddLine handles one add-line outside batch-add mode, for one-shot use.
func (s *Session) AddLine(line string) Reply {
	s.saveErr = nil
	text, err := s.addLine(line)
	if err != nil {
		return Reply{Text: errorPrefix + err.Error(), Err: err}
	}
	return Reply{Text: text, SaveErr: s.saveErr}
}

func (s *Session) delete(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", task.Formatf("Delete needs a number or exact task name.")
	}
	idx, err := s.resolve(arg)
	if err != nil {
		return "", err
	}
	removed, err := s.tasks.Remove(idx)
	if err != nil {
		return "", err
	}
	return s.persisted(fmt.Sprintf("Removed: %s\nNow you have %d %s in the list.",
		removed, s.tasks.Len(), plural(s.tasks.Len(), "task"))), nil
}

func (s *Session) complete(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", task.Formatf("Complete needs a number or exact task name.")
	}
	idx, err := s.resolve(arg)
	if err != nil {
		return "", err
	}
	t, err := s.tasks.Get(idx)
	if err != nil {
		return "", err
	}
	if t.Done() {
		return "Task already completed: " + t.String(), nil
	}
	t.MarkDone()
	return s.persisted("Marked as done: " + t.String()), nil
}

func (s *Session) find(keyword string) string {
	if strings.TrimSpace(keyword) == "" {
		return "Please provide a keyword. Usage: find <keyword>"
	}
	hits := s.tasks.FindIndices(keyword)
	if len(hits) == 0 {
		return "No matching tasks found."
	}
	return "Here are the matching tasks in your list:\n" + s.tasks.RenderIndices(hits)
}

// resolve turns a number or an exact name into a 1-based position. A name
// shared by several tasks is rejected rather than guessed.
func (s *Session) resolve(target string) (int, error) {
	target = strings.TrimSpace(target)
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > s.tasks.Len() {
			return 0, &task.IndexError{Index: n, Size: s.tasks.Len()}
		}
		return n, nil
	}
	matches := s.tasks.IndicesByName(target)
	switch len(matches) {
	case 0:
		return 0, &task.NotFoundError{Target: target}
	case 1:
		return matches[0], nil
	default:
		return 0, &task.MatchConflictError{Name: target, Indices: matches}
	}
}

// persisted saves the list and returns msg, plus a warning if the save failed.
func (s *Session) persisted(msg string) string {
	if err := s.store.Save(s.tasks.Snapshot()); err != nil {
		s.saveErr = err
		s.logger.Warn("save failed", "session", s.id, "err", err)
		return msg + "\nWarning: could not save your tasks (" + err.Error() + "). Changes are kept for this session only."
	}
	return msg
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
