package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrGitNotAvailable is returned when the git binary is not on PATH.
var ErrGitNotAvailable = errors.New("git binary not available")

// Git commits changed files to a repository at the workspace root,
// initialising it on first use.
type Git struct {
	repoRoot string
	log      *slog.Logger
}

func NewGit(repoRoot string, log *slog.Logger) *Git {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Git{repoRoot: repoRoot, log: log}
}

func (g *Git) Record(ctx context.Context, paths []string, message string) error {
	if message == "" {
		return fmt.Errorf("commit message is required")
	}
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotAvailable
	}
	if err := g.ensureRepo(ctx); err != nil {
		return err
	}

	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		if r, err := filepath.Rel(g.repoRoot, p); err == nil {
			p = r
		}
		rel = append(rel, p)
	}
	if err := g.add(ctx, rel); err != nil {
		return err
	}

	args := []string{"commit", "-m", message}
	// Add paths with -- to ensure they're treated as paths
	if len(rel) > 0 {
		args = append(args, "--")
		args = append(args, rel...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git commit failed: %w\n%s", err, string(output))
	}
	g.log.Debug("committed", "message", message, "paths", rel)
	return nil
}

func (g *Git) ensureRepo(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(g.repoRoot, ".git")); err == nil {
		return nil
	}
	cmd := exec.CommandContext(ctx, "git", "init")
	cmd.Dir = g.repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git init failed: %w\n%s", err, string(output))
	}
	g.log.Info("initialised history repository", "root", g.repoRoot)
	return nil
}

// add stages files for commit
func (g *Git) add(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add"}, paths...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git add failed: %w\n%s", err, string(output))
	}
	return nil
}
