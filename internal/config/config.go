// Package config provides configuration management for hospitalops.
//
// The config file holds deployment settings and layout constants; hospitals,
// beds and inventory live in the database.
//
// Config file locations (priority order):
//  1. $HOSPITALOPS_CONFIG
//  2. ./hospitalops.yaml
//  3. $XDG_CONFIG_HOME/hospitalops/config.yaml
//  4. ~/.config/hospitalops/config.yaml
//  5. /etc/hospitalops/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"hospitalops/internal/layout"
)

const (
	DefaultAddr         = ":8080"
	DefaultDatabasePath = "./hospitalops.db"
	// DefaultAnchorRadius is the user circle radius when the page does not
	// report a measured one
	DefaultAnchorRadius = 56
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(15 * time.Second)
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = Duration(60 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Directory.Debounce == 0 {
		c.Directory.Debounce = Duration(500 * time.Millisecond)
	}
	if c.Monitor.InventoryInterval == 0 {
		c.Monitor.InventoryInterval = Duration(5 * time.Minute)
	}
	if c.Layout.AnchorRadius == 0 {
		c.Layout.AnchorRadius = DefaultAnchorRadius
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	// each layout constant defaults on its own so a file can override one
	def := layout.DefaultParams()
	p := &c.Layout.Params
	if p.ContainerHeight == 0 {
		p.ContainerHeight = def.ContainerHeight
	}
	if p.CardWidth == 0 {
		p.CardWidth = def.CardWidth
	}
	if p.CardHeight == 0 {
		p.CardHeight = def.CardHeight
	}
	if p.BaseRadius == 0 {
		p.BaseRadius = def.BaseRadius
	}
	if p.RadiusSpread == 0 {
		p.RadiusSpread = def.RadiusSpread
	}
	if p.MovementLimitFraction == 0 {
		p.MovementLimitFraction = def.MovementLimitFraction
	}
	if p.ConnectorBow == 0 {
		p.ConnectorBow = def.ConnectorBow
	}
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	p := c.Layout.Params
	if p.ContainerHeight < 0 || p.CardWidth < 0 || p.CardHeight < 0 || p.BaseRadius < 0 || p.RadiusSpread < 0 {
		return fmt.Errorf("layout: sizes must not be negative")
	}
	if p.MovementLimitFraction < 0 || p.MovementLimitFraction > 1 {
		return fmt.Errorf("layout: movement_limit_fraction must be within [0, 1], got %g", p.MovementLimitFraction)
	}
	if c.Layout.AnchorRadius < 0 {
		return fmt.Errorf("layout: anchor_radius must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	seed := c.Directory.SeedPath
	if seed == "" {
		seed = "built-in"
	}
	summary := fmt.Sprintf("Listen: %s, Database: %s\n", c.Server.Addr, c.Database.Path)
	summary += fmt.Sprintf("Directory: %s (watch=%v)\n", seed, c.Directory.Watch)
	summary += fmt.Sprintf("Layout: %gpx high, card %gx%g, radius %g+%g, drag limit %g",
		c.Layout.Params.ContainerHeight, c.Layout.Params.CardWidth, c.Layout.Params.CardHeight,
		c.Layout.Params.BaseRadius, c.Layout.Params.RadiusSpread, c.Layout.Params.MovementLimitFraction)
	return summary
}
