package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"hospitalops/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want %s", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should not be empty")
	}
	if cfg.Server.WriteTimeout != 0 {
		t.Errorf("Server.WriteTimeout = %s, want 0 so event streams stay open", cfg.Server.WriteTimeout.Duration())
	}
	if diff := cmp.Diff(layout.DefaultParams(), cfg.Layout.Params); diff != "" {
		t.Errorf("Layout.Params mismatch (-want +got):\n%s", diff)
	}
	if cfg.Layout.AnchorRadius != DefaultAnchorRadius {
		t.Errorf("Layout.AnchorRadius = %g, want %d", cfg.Layout.AnchorRadius, DefaultAnchorRadius)
	}
	if cfg.Monitor.InventoryInterval.Duration() != 5*time.Minute {
		t.Errorf("Monitor.InventoryInterval = %s, want 5m", cfg.Monitor.InventoryInterval.Duration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadPartialLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: "127.0.0.1:9000"
layout:
  card_width: 280
  base_radius: 120
directory:
  seed_path: /srv/directory.yaml
  watch: true
  debounce: 2s
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %s", cfg.Server.Addr)
	}
	// untouched constants keep their defaults
	want := layout.DefaultParams()
	want.CardWidth = 280
	want.BaseRadius = 120
	if diff := cmp.Diff(want, cfg.Layout.Params); diff != "" {
		t.Errorf("Layout.Params mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Directory.Watch || cfg.Directory.Debounce.Duration() != 2*time.Second {
		t.Errorf("Directory = %+v", cfg.Directory)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "server: [", "parse config"},
		{"bad duration", "server:\n  read_timeout: soon\n", "parse config"},
		{"fraction above one", "layout:\n  movement_limit_fraction: 1.5\n", "movement_limit_fraction"},
		{"negative radius", "layout:\n  anchor_radius: -4\n", "anchor_radius"},
		{"log level", "log:\n  level: loud\n", "unknown level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, _, err := LoadFromPath(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFromPath() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = "/var/lib/hospitalops/ops.db"
	cfg.Directory.SeedPath = "/etc/hospitalops/directory.yaml"
	cfg.Layout.Params.ConnectorBow = 45
	cfg.Server.WriteTimeout = Duration(time.Minute)

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	if loaded.Database.Path != cfg.Database.Path {
		t.Errorf("Database.Path = %s, want %s", loaded.Database.Path, cfg.Database.Path)
	}
	if loaded.Directory.SeedPath != cfg.Directory.SeedPath {
		t.Errorf("Directory.SeedPath = %s, want %s", loaded.Directory.SeedPath, cfg.Directory.SeedPath)
	}
	if loaded.Layout.Params.ConnectorBow != 45 {
		t.Errorf("ConnectorBow = %g, want 45", loaded.Layout.Params.ConnectorBow)
	}
	if loaded.Server.WriteTimeout.Duration() != time.Minute {
		t.Errorf("WriteTimeout = %s, want 1m", loaded.Server.WriteTimeout.Duration())
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if found := FindConfigPath(); found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// missing explicit path falls back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(); found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/xdg", ConfigDirName, "config.yaml") {
		t.Errorf("DefaultConfigPath() = %s", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/nurse")
	if got := DefaultConfigPath(); got != filepath.Join("/home/nurse", ".config", ConfigDirName, "config.yaml") {
		t.Errorf("DefaultConfigPath() = %s", got)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}

func TestSummary(t *testing.T) {
	s := DefaultConfig().Summary()
	for _, want := range []string{DefaultAddr, "built-in", "900px"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() = %q, missing %q", s, want)
		}
	}
}
