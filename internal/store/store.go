package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirbrooks/absorb/internal/history"
	"github.com/amirbrooks/absorb/internal/timeparsing"
)

var (
	ErrNotFound = errors.New("not found")
	ErrCorrupt  = errors.New("corrupt collection")
	ErrInvalid  = errors.New("invalid")
	// ErrInput wraps a failed Field.Prompt.
	ErrInput = errors.New("input unavailable")
	timeNow     = func() time.Time { return time.Now() }
)

// Collection files, one per domain, directly under the workspace root.
const (
	TasksFile  = "tasks.json"
	KanbanFile = "kanban.json"
	IdeasFile  = "ideas.json"
)

// Workspace is the per-invocation context shared by every domain operation.
// It replaces process-wide state: the CLI builds one and hands it down.
type Workspace struct {
	Root  string
	Dates timeparsing.Parser
	Sink  history.Sink
	Log   *slog.Logger
}

// Open opens a workspace rooted at root, creating the directory if needed.
// Collection files are created lazily on first read.
func Open(root string) (*Workspace, error) {
	root = ExpandHome(strings.TrimSpace(root))
	if root == "" {
		return nil, fmt.Errorf("%w: workspace root is required", ErrInvalid)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Workspace{
		Root: root,
		Sink: history.Nop{},
		Log:  slog.New(slog.DiscardHandler),
	}, nil
}

func (w *Workspace) TasksPath() string  { return filepath.Join(w.Root, TasksFile) }
func (w *Workspace) KanbanPath() string { return filepath.Join(w.Root, KanbanFile) }
func (w *Workspace) IdeasPath() string  { return filepath.Join(w.Root, IdeasFile) }

func (w *Workspace) now() time.Time {
	if w.Dates.Now != nil {
		return w.Dates.Now()
	}
	return timeNow()
}

func (w *Workspace) logger() *slog.Logger {
	if w.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.Log
}

// load reads a collection for a write operation. A missing file has already
// been recreated as [] by Load, so it is logged and treated as empty.
func load[R any, P record[R]](w *Workspace, c Collection[R, P]) ([]R, error) {
	items, err := c.Load()
	if errors.Is(err, ErrNotFound) {
		w.logger().Warn("collection missing, created empty file", "path", c.Path)
		return items, nil
	}
	return items, err
}

// commit records a saved change. Sink failures never fail the operation.
func (w *Workspace) commit(ctx context.Context, path, message string) {
	if w.Sink == nil {
		return
	}
	if err := w.Sink.Record(ctx, []string{path}, message); err != nil {
		w.logger().Warn("history record failed", "path", path, "message", message, "err", err)
	}
}

// parseDate evaluates a due-date expression. Format problems degrade to the
// returned time with a warning; malformed offsets are returned to the caller.
func (w *Workspace) parseDate(expr, reference string) (string, error) {
	t, err := w.Dates.Parse(expr, reference)
	if err != nil {
		if !errors.Is(err, timeparsing.ErrDateFormat) {
			return "", err
		}
		w.logger().Warn("invalid date string provided, continued with current date", "input", expr, "err", err)
	}
	return timeparsing.Format(t), nil
}

// dueExpr is the date expression for a due-date argument. A file cannot
// hold a date, so +file is treated like "." with a warning.
func (w *Workspace) dueExpr(f Field) string {
	switch f.Kind {
	case Literal:
		return f.Text
	case FromFile:
		w.logger().Warn("file input is not accepted for due dates, continued with current date", "input", SentinelFile)
	}
	return SentinelUnchanged
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%s-%d", filepath.Base(path), timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
