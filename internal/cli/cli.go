package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/amirbrooks/yap/internal/config"
	"github.com/amirbrooks/yap/internal/logging"
	"github.com/amirbrooks/yap/internal/parser"
	"github.com/amirbrooks/yap/internal/session"
	"github.com/amirbrooks/yap/internal/store"
	"github.com/amirbrooks/yap/internal/task"
	"github.com/amirbrooks/yap/internal/ui"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitConflict = 4
	ExitInternal = 10
)

const divider = "____________________________________________________________"

type GlobalFlags struct {
	ConfigPath string
	DataFile   string
	UserName   string
	LogLevel   string
	LogFormat  string
	TUI        bool
}

// env is the process surface Run talks to.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	runTUI func(eng session.Engine) error
}

func Run(args []string) int {
	return run(args, env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		runTUI: ui.Run,
	})
}

var takesValue = map[string]bool{
	"-config": true, "--config": true,
	"-data": true, "--data": true,
	"-name": true, "--name": true,
	"-log-level": true, "--log-level": true,
	"-log-format": true, "--log-format": true,
}

func reorderFlags(args []string) []string {
	if len(args) == 0 {
		return args
	}
	var flags []string
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			if i+1 < len(args) {
				rest = append(rest, args[i+1:]...)
			}
			break
		}
		if strings.HasPrefix(a, "-") && len(a) > 1 && !isNumber(a[1:]) {
			flags = append(flags, a)
			if takesValue[a] && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		rest = append(rest, a)
	}
	if len(rest) > 0 {
		flags = append(flags, "--")
	}
	return append(flags, rest...)
}

// isNumber keeps "delete -1" a command word rather than an unknown flag.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseGlobalFlags(args []string) (GlobalFlags, []string, bool, error) {
	var gf GlobalFlags
	fs := flag.NewFlagSet("yap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&gf.ConfigPath, "config", "", "")
	fs.StringVar(&gf.DataFile, "data", "", "")
	fs.StringVar(&gf.UserName, "name", "", "")
	fs.StringVar(&gf.LogLevel, "log-level", "", "")
	fs.StringVar(&gf.LogFormat, "log-format", "", "")
	fs.BoolVar(&gf.TUI, "tui", false, "")
	if err := fs.Parse(reorderFlags(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return gf, nil, true, nil
		}
		return gf, nil, false, err
	}
	return gf, fs.Args(), false, nil
}

func run(args []string, e env) int {
	gf, rest, help, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(e.stderr, "yap:", err)
		return ExitUsage
	}
	if help {
		printHelp(e.stdout)
		return ExitOK
	}

	cfgPath := gf.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath(e.getenv)
	}
	cfg, err := config.Load(cfgPath, gf.ConfigPath != "")
	if err != nil {
		fmt.Fprintln(e.stderr, "yap:", err)
		return ExitUsage
	}
	cfg.ApplyEnv(e.getenv)
	applyFlags(&cfg, gf)

	// config stays reachable with an invalid file so it can be repaired.
	if len(rest) > 0 && (rest[0] == "config" || rest[0] == "cfg") {
		return cmdConfig(e, cfgPath, cfg, rest[1:])
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(e.stderr, "yap: config:", err)
		return ExitUsage
	}

	logger, err := logging.New(e.stderr, cfg.LogOptions())
	if err != nil {
		fmt.Fprintln(e.stderr, "yap:", err)
		return ExitUsage
	}
	file := store.Open(cfg.DataFile, logger)

	if len(rest) > 0 {
		return oneShot(e, file, cfg, logger, rest)
	}

	s := session.New(file, session.Options{UserName: cfg.UserName, Logger: logger})
	if cfg.TUI {
		if err := e.runTUI(s); err != nil {
			fmt.Fprintln(e.stderr, "yap:", err)
			return ExitInternal
		}
		return ExitOK
	}
	return repl(s, e.stdin, e.stdout)
}

func applyFlags(cfg *config.Config, gf GlobalFlags) {
	if gf.DataFile != "" {
		cfg.DataFile = gf.DataFile
	}
	if gf.UserName != "" {
		cfg.UserName = gf.UserName
	}
	if gf.LogLevel != "" {
		cfg.LogLevel = gf.LogLevel
	}
	if gf.LogFormat != "" {
		cfg.LogFormat = gf.LogFormat
	}
	if gf.TUI {
		cfg.TUI = true
	}
}

// repl drives eng line by line until the user exits or input ends.
func repl(eng session.Engine, in io.Reader, out io.Writer) int {
	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, eng.Greeting())
	fmt.Fprintln(out, divider)

	sc := bufio.NewScanner(in)
	for !eng.ExitRequested() && sc.Scan() {
		reply := eng.HandleLine(strings.TrimSpace(sc.Text()))
		if reply != "" {
			fmt.Fprintln(out, divider)
			fmt.Fprintln(out, reply)
			fmt.Fprintln(out, divider)
		}
	}
	fmt.Fprintln(out, eng.Goodbye())
	if err := sc.Err(); err != nil {
		fmt.Fprintln(out, "read input:", err)
		return ExitInternal
	}
	return ExitOK
}

// oneShot runs a single command from the argument words. Batch-add needs a
// conversation, so "add <add-line>" adds one task directly instead.
func oneShot(e env, st session.Storage, cfg config.Config, logger *log.Logger, words []string) int {
	name := cfg.UserName
	if name == "" {
		name = "friend"
	}
	s := session.New(st, session.Options{UserName: name, Logger: logger})
	if err := s.LoadError(); err != nil {
		fmt.Fprintln(e.stderr, "yap: load tasks:", err)
		return ExitInternal
	}

	line := strings.Join(words, " ")
	cmd := parser.Parse(line)
	var r session.Reply
	switch {
	case cmd.Kind == parser.Add && cmd.Rest == "":
		fmt.Fprintln(e.stderr, `Usage: yap add <t|d|e> ... (e.g. yap add t buy milk)`)
		return ExitUsage
	case cmd.Kind == parser.Add && !strings.EqualFold(cmd.Rest, parser.DoneWord):
		r = s.AddLine(cmd.Rest)
	case cmd.Kind == parser.Exit:
		fmt.Fprintln(e.stdout, s.Goodbye())
		return ExitOK
	default:
		r = s.Dispatch(line)
	}

	if r.Err != nil {
		fmt.Fprintln(e.stderr, r.Text)
		return exitCodeFor(r.Err)
	}
	fmt.Fprintln(e.stdout, r.Text)
	if r.SaveErr != nil {
		return ExitInternal
	}
	return ExitOK
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, task.ErrFormat):
		return ExitUsage
	case errors.Is(err, task.ErrIndex), errors.Is(err, task.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, task.ErrConflict):
		return ExitConflict
	default:
		return ExitInternal
	}
}

func cmdConfig(e env, path string, cfg config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(e.stderr, "Usage: yap config <show|path|set> ...")
		return ExitUsage
	}
	switch args[0] {
	case "show":
		_, err := os.Stat(path)
		fmt.Fprintf(e.stdout, "# config_path: %s (exists: %t)\n", path, err == nil)
		b, err := yaml.Marshal(&cfg)
		if err != nil {
			fmt.Fprintln(e.stderr, "config show:", err)
			return ExitInternal
		}
		fmt.Fprint(e.stdout, string(b))
		return ExitOK
	case "path":
		fmt.Fprintln(e.stdout, path)
		return ExitOK
	case "set":
		return cmdConfigSet(e, path, args[1:])
	default:
		fmt.Fprintln(e.stderr, "Usage: yap config <show|path|set> ...")
		return ExitUsage
	}
}

// cmdConfigSet edits the file only, so env and flag overrides are not
// written back.
func cmdConfigSet(e env, path string, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(e.stderr, "Usage: yap config set <key> <value>")
		return ExitUsage
	}
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(strings.Join(args[1:], " "))

	cfg, err := config.Load(path, false)
	if err != nil {
		fmt.Fprintln(e.stderr, "config set:", err)
		return ExitUsage
	}
	switch key {
	case "data_file":
		if value == "" {
			return configSetInvalid(e, key, value)
		}
		cfg.DataFile = value
	case "user_name":
		cfg.UserName = value
	case "log_level":
		if _, err := logging.ParseLevel(value); err != nil {
			return configSetInvalid(e, key, value)
		}
		cfg.LogLevel = value
	case "log_format":
		if _, err := logging.ParseFormatter(value); err != nil {
			return configSetInvalid(e, key, value)
		}
		cfg.LogFormat = value
	case "log_timestamps":
		v, ok := parseBool(value)
		if !ok {
			return configSetInvalid(e, key, value)
		}
		cfg.LogTimestamps = v
	case "tui":
		v, ok := parseBool(value)
		if !ok {
			return configSetInvalid(e, key, value)
		}
		cfg.TUI = v
	default:
		fmt.Fprintln(e.stderr, "Unknown config key:", key)
		fmt.Fprintln(e.stderr, "Allowed keys: data_file, user_name, log_level, log_format, log_timestamps, tui")
		return ExitUsage
	}

	if err := config.Save(path, cfg); err != nil {
		fmt.Fprintln(e.stderr, "config set:", err)
		return ExitInternal
	}
	fmt.Fprintf(e.stdout, "Updated %s\n", key)
	return ExitOK
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func configSetInvalid(e env, key, value string) int {
	fmt.Fprintf(e.stderr, "Invalid value for %s: %q\n", key, value)
	return ExitUsage
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `yap - a chatty task list for the terminal

Usage:
  yap [flags]                 start a conversation
  yap [flags] <command ...>   run one command and exit

Flags:
  --config <path>      Config file (default: $YAP_CONFIG or ~/.config/yap/config.yaml)
  --data <path>        Task file (default: data/tasks.txt or YAP_DATA_FILE)
  --name <name>        Your name; skips the name prompt (YAP_USER_NAME)
  --log-level <lvl>    debug|info|warn|error (default: warn)
  --log-format <fmt>   text|json|logfmt (default: text)
  --tui                Full-screen terminal UI

One-shot examples:
  yap list
  yap add t buy milk
  yap add d return book/2019-12-02
  yap add e project meeting/2019-12-02/1800/2000
  yap complete 1
  yap edit 2 d/2020-01-15
  yap find book
  yap delete "return book"

Config:
  yap config show
  yap config path
  yap config set <key> <value>   (data_file, user_name, log_level, log_format, log_timestamps, tui)
`)
}
