package config

import (
	"time"

	"hospitalops/internal/layout"
)

// Config is the on-disk configuration of a hospitalops server
type Config struct {
	Version   int             `yaml:"version"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Directory DirectoryConfig `yaml:"directory"`
	Layout    LayoutConfig    `yaml:"layout"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	ReadTimeout Duration `yaml:"read_timeout,omitempty"`
	// WriteTimeout of zero leaves event streams open indefinitely
	WriteTimeout    Duration `yaml:"write_timeout,omitempty"`
	IdleTimeout     Duration `yaml:"idle_timeout,omitempty"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout,omitempty"`
	// StaticDir serves a directory instead of the embedded page
	StaticDir string `yaml:"static_dir,omitempty"`
}

// DatabaseConfig configures storage
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DirectoryConfig configures the seeded hospital directory
type DirectoryConfig struct {
	// SeedPath is a YAML or JSON directory file; empty uses the built-in list
	SeedPath string   `yaml:"seed_path,omitempty"`
	Watch    bool     `yaml:"watch"`
	Debounce Duration `yaml:"debounce,omitempty"`
}

// LayoutConfig holds the radial layout constants
type LayoutConfig struct {
	Params       layout.Params `yaml:",inline"`
	AnchorRadius float64       `yaml:"anchor_radius"`
}

// MonitorConfig schedules background checks. A negative interval disables
// the check.
type MonitorConfig struct {
	InventoryInterval Duration `yaml:"inventory_interval,omitempty"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development,omitempty"`
}

// Duration wraps time.Duration for YAML marshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the time.Duration value
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
