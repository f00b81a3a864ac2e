// Package history records a trail entry after each saved change to a
// collection. Recording is best effort: callers log failures and move on.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Backend names accepted by New.
const (
	BackendGit   = "git"
	BackendAudit = "audit"
	BackendBoth  = "both"
	BackendNone  = "none"
)

// ErrUnknownBackend is returned by New for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown history backend")

// Sink records one history entry for a set of changed files.
type Sink interface {
	Record(ctx context.Context, paths []string, message string) error
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Record(context.Context, []string, string) error { return nil }

// Multi fans an entry out to several sinks and joins their errors.
type Multi []Sink

func (m Multi) Record(ctx context.Context, paths []string, message string) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, paths, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Options configures New.
type Options struct {
	Backend string
	// Root is the workspace directory; the git repository lives here.
	Root string
	// AuditFile is relative to Root unless absolute.
	AuditFile string
	Log       *slog.Logger
}

// New builds the sink named by opts.Backend.
func New(opts Options) (Sink, error) {
	audit := func() *AuditLog {
		path := opts.AuditFile
		if path == "" {
			path = "history.jsonl"
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.Root, path)
		}
		return NewAuditLog(path)
	}
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendGit:
		return NewGit(opts.Root, opts.Log), nil
	case BackendAudit:
		return audit(), nil
	case BackendBoth:
		return Multi{NewGit(opts.Root, opts.Log), audit()}, nil
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
