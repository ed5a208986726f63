// Package store reads and writes the task file.
//
// One record per line, fields joined by " | ":
//
//	T | 1 | read book
//	D | 0 | return book | 2019-12-02
//	E | 0 | project meeting | 2019-12-02 | 1800 | 2000
//
// Blank lines, lines starting with '#', and corrupted records are skipped on load.
package store

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/amirbrooks/yap/internal/logging"
	"github.com/amirbrooks/yap/internal/task"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	ErrPersistence = errors.New("persistence failure")
	timeNow        = func() time.Time { return time.Now().UTC() }
	renameFile     = os.Rename
)

// PersistenceError wraps an I/O failure on the task file.
// It satisfies errors.Is(err, ErrPersistence).
type PersistenceError struct {
	Op   string // load|save
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// File is the task file at Path.
type File struct {
	Path   string
	logger *log.Logger
}

// Open returns a File for path. It does not touch the disk.
func Open(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = logging.Discard()
	}
	return &File{Path: expandHome(path), logger: logger}
}

// Load reads all well-formed records. A missing file yields an empty list.
func (f *File) Load() ([]task.Task, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []task.Task{}, nil
		}
		return nil, &PersistenceError{Op: "load", Path: f.Path, Err: err}
	}

	out := []task.Task{}
	skipped := 0
	// No per-line length limit: an oversized line is skipped like any other.
	for i, line := range strings.Split(string(b), "\n") {
		raw := strings.TrimSpace(line)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		t, ok := DecodeRecord(raw)
		if !ok {
			skipped++
			f.logger.Debug("skipping corrupted record", "path", f.Path, "line", i+1)
			continue
		}
		out = append(out, t)
	}
	if skipped > 0 {
		f.logger.Info("loaded task file with corrupted records", "path", f.Path, "tasks", len(out), "skipped", skipped)
	}
	return out, nil
}

// Save replaces the file with tasks. The previous content stays intact
// until the new content is fully written.
func (f *File) Save(tasks []task.Task) error {
	var buf bytes.Buffer
	for _, t := range tasks {
		buf.WriteString(EncodeRecord(t))
		buf.WriteByte('\n')
	}
	if err := atomicWriteFile(f.Path, buf.Bytes(), 0o644); err != nil {
		return &PersistenceError{Op: "save", Path: f.Path, Err: err}
	}
	f.logger.Debug("saved task file", "path", f.Path, "tasks", len(tasks))
	return nil
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), newULID()))
	if err := writeSynced(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := renameFile(tmp, path); err != nil {
		// Some platforms refuse to rename over an existing file.
		if _, statErr := os.Stat(path); statErr != nil {
			_ = os.Remove(tmp)
			return err
		}
		if rmErr := os.Remove(path); rmErr != nil {
			_ = os.Remove(tmp)
			return err
		}
		if err := renameFile(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return err
		}
	}
	return nil
}

func writeSynced(path string, data []byte, perm fs.FileMode) error {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := fh.Write(data); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Sync(); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
