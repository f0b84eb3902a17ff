package service

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"hospitalops/internal/codec"
	"hospitalops/internal/domain"
	"hospitalops/internal/metrics"
)

//go:embed seed/directory.yaml
var builtinDirectory []byte

// Seed holds the hospitals listed in the seed directory file. They fill the
// nearby-hospitals view alongside registered hospitals.
type Seed struct {
	path    string
	bus     *EventBus
	metrics *metrics.Registry
	logger  *zap.Logger

	mu      sync.RWMutex
	entries []domain.DirectoryEntry
}

// NewSeed creates a seed store reading path. An empty path uses the built-in
// list. Nothing is loaded until Reload is called.
func NewSeed(path string, bus *EventBus, m *metrics.Registry, logger *zap.Logger) *Seed {
	return &Seed{path: path, bus: bus, metrics: m, logger: logger}
}

// Path returns the watched file, empty for the built-in list
func (s *Seed) Path() string {
	return s.path
}

// Entries returns a copy of the current seed entries
func (s *Seed) Entries() []domain.DirectoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DirectoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reload re-reads the seed file. On failure the previous entries stay in
// place.
func (s *Seed) Reload() error {
	dir, err := s.read()
	if s.metrics != nil {
		n := 0
		if dir != nil {
			n = len(dir.Hospitals)
		}
		s.metrics.RecordDirectoryReload(n, err)
	}
	if err != nil {
		s.logger.Warn("seed directory reload failed, keeping previous entries",
			zap.String("path", s.path), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.entries = dir.Hospitals
	s.mu.Unlock()

	s.logger.Info("seed directory loaded", zap.String("path", s.path), zap.Int("hospitals", len(dir.Hospitals)))
	if s.bus != nil {
		s.bus.Publish(Event{Type: EventDirectoryReloaded, Payload: map[string]int{"count": len(dir.Hospitals)}})
	}
	return nil
}

func (s *Seed) read() (*domain.Directory, error) {
	if s.path == "" {
		return codec.NewYAMLCodec().Parse(bytes.NewReader(builtinDirectory))
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read seed directory: %w", err)
	}

	format := "yaml"
	if filepath.Ext(s.path) == ".json" {
		format = "json"
	}
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return c.Parse(bytes.NewReader(data))
}
