package history

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	messages []string
	err      error
}

func (r *recordingSink) Record(_ context.Context, _ []string, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func TestNewBackends(t *testing.T) {
	root := t.TempDir()

	s, err := New(Options{Backend: "", Root: root})
	require.NoError(t, err)
	assert.IsType(t, &Git{}, s)

	s, err = New(Options{Backend: "AUDIT", Root: root})
	require.NoError(t, err)
	audit, ok := s.(*AuditLog)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "history.jsonl"), audit.Path)

	s, err = New(Options{Backend: "both", Root: root, AuditFile: "trail/log.jsonl"})
	require.NoError(t, err)
	assert.Len(t, s.(Multi), 2)

	s, err = New(Options{Backend: "none"})
	require.NoError(t, err)
	assert.Equal(t, Nop{}, s)

	_, err = New(Options{Backend: "svn"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{}
	b := &recordingSink{err: boom}
	err := Multi{a, b}.Record(context.Background(), nil, "msg")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"msg"}, a.messages)
	assert.Equal(t, []string{"msg"}, b.messages)
}

func TestAuditLogAppendsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.jsonl")
	a := NewAuditLog(path)

	ctx := context.Background()
	require.NoError(t, a.Record(ctx, []string{"/tmp/tasks.json"}, `Added "Write report" in tasks.`))
	require.NoError(t, a.Record(ctx, []string{"/tmp/tasks.json"}, "Deleted Task #1 from tasks."))

	events, err := ReadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, strings.HasPrefix(events[0].ID, "evt_"))
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.Equal(t, `Added "Write report" in tasks.`, events[0].Message)
	assert.Equal(t, []string{"/tmp/tasks.json"}, events[1].Paths)
}

func TestGitRecordCommits(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	root := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = root
	require.NoError(t, cmd.Run())
	// Configure git user for commits
	require.NoError(t, exec.Command("git", "-C", root, "config", "user.name", "Test User").Run())
	require.NoError(t, exec.Command("git", "-C", root, "config", "user.email", "test@example.com").Run())
	require.NoError(t, exec.Command("git", "-C", root, "config", "commit.gpgsign", "false").Run())

	path := filepath.Join(root, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	g := NewGit(root, nil)
	require.NoError(t, g.Record(context.Background(), []string{path}, `Added "Write report" in tasks.`))

	out, err := exec.Command("git", "-C", root, "log", "--format=%s").Output()
	require.NoError(t, err)
	assert.Equal(t, `Added "Write report" in tasks.`, strings.TrimSpace(string(out)))
}

func TestGitRequiresMessage(t *testing.T) {
	g := NewGit(t.TempDir(), nil)
	assert.Error(t, g.Record(context.Background(), nil, ""))
}
