package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Root: "~/.absorb",
		Log: LogConfig{
			File:       "absorb-logs.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		History: HistoryConfig{
			Backend:   "git",
			AuditFile: "history.jsonl",
		},
		Display: DisplayConfig{
			Color: "auto",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("root", d.Root)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("history.backend", d.History.Backend)
	v.SetDefault("history.audit_file", d.History.AuditFile)
	v.SetDefault("dates.natural_language", d.Dates.NaturalLanguage)
	v.SetDefault("display.color", d.Display.Color)
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteDefault writes the default configuration to path. An existing file is
// only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	d := DefaultConfig()
	// The root is implied by where the file lives.
	d.Root = ""
	b, err := Marshal(d)
	if err != nil {
		return err
	}
	content := "# absorb configuration\n" + string(b)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
