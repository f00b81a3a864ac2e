package config

// Config represents the full absorb configuration
type Config struct {
	// Workspace directory holding the collection files
	Root string `yaml:"root,omitempty" mapstructure:"root"`

	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
	Dates   DatesConfig   `yaml:"dates" mapstructure:"dates"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
}

// LogConfig configures the diagnostic log file
type LogConfig struct {
	// Empty means <root>/logs
	Dir        string `yaml:"dir" mapstructure:"dir"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// HistoryConfig selects where change history is recorded
type HistoryConfig struct {
	Backend   string `yaml:"backend" mapstructure:"backend"` // git|audit|both|none
	AuditFile string `yaml:"audit_file" mapstructure:"audit_file"`
}

type DatesConfig struct {
	NaturalLanguage bool `yaml:"natural_language" mapstructure:"natural_language"`
}

type DisplayConfig struct {
	Color string `yaml:"color" mapstructure:"color"` // auto|always|never
}
