package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("root", "", "")
	fs.String("history", "", "")
	fs.String("log-dir", "", "")
	fs.Bool("natural-dates", false, "")
	fs.String("color", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ABSORB_ROOT", root)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "logs"), cfg.Log.Dir)
	assert.Equal(t, "absorb-logs.log", cfg.Log.File)
	assert.Equal(t, "git", cfg.History.Backend)
	assert.Equal(t, "auto", cfg.Display.Color)
	assert.False(t, cfg.Dates.NaturalLanguage)
}

func TestLoadExpandsHomeRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ABSORB_ROOT", "~/data")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), cfg.Root)
	assert.Equal(t, filepath.Join(home, "data", "logs"), cfg.Log.Dir)
	assert.Equal(t, filepath.Join(home, "data", FileName), Path("~/data"))
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	root := t.TempDir()
	content := "history:\n  backend: audit\n  audit_file: trail.jsonl\ndates:\n  natural_language: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644))

	t.Setenv("ABSORB_DISPLAY_COLOR", "never")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--root", root}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "audit", cfg.History.Backend)
	assert.Equal(t, "trail.jsonl", cfg.History.AuditFile)
	assert.True(t, cfg.Dates.NaturalLanguage)
	assert.Equal(t, "never", cfg.Display.Color)

	// Changed flags beat the file.
	fs = newFlags()
	require.NoError(t, fs.Parse([]string{"--root", root, "--history", "none"}))
	cfg, err = Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.History.Backend)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	root := t.TempDir()
	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--root", root, "--history", "svn"}))
	_, err := Load(fs)
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("history: [unclosed"), 0o644))
	fs = newFlags()
	require.NoError(t, fs.Parse([]string{"--root", root}))
	_, err = Load(fs)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	require.NoError(t, WriteDefault(path, false))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Config
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, "git", got.History.Backend)
	assert.Empty(t, got.Root)

	assert.ErrorIs(t, WriteDefault(path, false), ErrExists)
	assert.NoError(t, WriteDefault(path, true))
}
