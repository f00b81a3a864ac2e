package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/amirbrooks/absorb/internal/store"
)

// FileName is looked up inside the workspace root.
const FileName = "config.yaml"

var (
	ErrInvalid = errors.New("invalid config")
	ErrExists  = errors.New("config file already exists")
)

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"root":          "root",
	"history":       "history.backend",
	"log-dir":       "log.dir",
	"natural-dates": "dates.natural_language",
	"color":         "display.color",
}

// Load merges defaults, <root>/config.yaml, ABSORB_* environment variables
// and any changed flags, in increasing priority. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ABSORB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	root := store.ExpandHome(v.GetString("root"))
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	// A root written inside the root's own config file cannot move it.
	cfg.Root = root
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = filepath.Join(root, "logs")
	}
	cfg.Log.Dir = store.ExpandHome(cfg.Log.Dir)
	cfg.History.Backend = strings.ToLower(strings.TrimSpace(cfg.History.Backend))
	cfg.Display.Color = strings.ToLower(strings.TrimSpace(cfg.Display.Color))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.History.Backend {
	case "git", "audit", "both", "none":
	default:
		return fmt.Errorf("%w: history.backend %q (want git|audit|both|none)", ErrInvalid, c.History.Backend)
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: display.color %q (want auto|always|never)", ErrInvalid, c.Display.Color)
	}
	if c.Log.File == "" {
		return fmt.Errorf("%w: log.file is required", ErrInvalid)
	}
	return nil
}

// Path returns the config file location for a workspace root.
func Path(root string) string {
	return filepath.Join(store.ExpandHome(root), FileName)
}

