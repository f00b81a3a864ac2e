// Package logging builds the process logger: human-readable warnings on the
// console and a rotating JSON error log on disk.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	// Console receives text records at ConsoleLevel and above.
	Console      io.Writer
	ConsoleLevel slog.Level

	// Dir and File locate the JSON log. Empty Dir disables it.
	Dir        string
	File       string
	FileLevel  slog.Level
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger wraps the slog logger with the file it owns.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New builds the logger. The file sink is optional: when its directory
// cannot be created the console logger is still returned along with the error.
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: opts.ConsoleLevel}),
	}

	var closer io.Closer
	var fileErr error
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			fileErr = err
		} else {
			lj := &lumberjack.Logger{
				Filename:   filepath.Join(opts.Dir, opts.File),
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAgeDays,
			}
			closer = lj
			handlers = append(handlers, slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: opts.FileLevel}))
		}
	}
	return &Logger{Logger: slog.New(fanout(handlers)), closer: closer}, fileErr
}

func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// fanout sends each record to every handler enabled for its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
