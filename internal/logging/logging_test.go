package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsPerSink(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	log, err := New(Options{
		Console:      &console,
		ConsoleLevel: slog.LevelWarn,
		Dir:          dir,
		File:         "absorb-logs.log",
		FileLevel:    slog.LevelError,
		MaxSizeMB:    1,
	})
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("collection missing", "path", "tasks.json")
	log.Error("save failed", "err", "disk full")
	require.NoError(t, log.Close())

	out := console.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "collection missing")
	assert.Contains(t, out, "save failed")

	b, err := os.ReadFile(filepath.Join(dir, "absorb-logs.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "save failed", rec["msg"])
	assert.Equal(t, "ERROR", rec["level"])
}

func TestWithAttrsReachesAllSinks(t *testing.T) {
	var a, b bytes.Buffer
	h := fanout{
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	}
	slog.New(h).With("cmd", "tasks").Info("hello")
	assert.Contains(t, a.String(), "cmd=tasks")
	assert.Contains(t, b.String(), "cmd=tasks")
}

func TestConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	log, err := New(Options{Console: &console})
	require.NoError(t, err)
	log.Info("hi")
	assert.Contains(t, console.String(), "hi")
	assert.NoError(t, log.Close())
}
