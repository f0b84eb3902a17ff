// Package monitor runs periodic background checks such as re-evaluating
// critical stock levels.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultInterval is used when a check is registered without one
const DefaultInterval = time.Minute

// Check is one periodic job
type Check interface {
	// Name returns the unique identifier for this check
	Name() string

	// Run performs the check once
	Run(ctx context.Context) error
}

type funcCheck struct {
	name string
	fn   func(context.Context) error
}

func (c funcCheck) Name() string                  { return c.name }
func (c funcCheck) Run(ctx context.Context) error { return c.fn(ctx) }

// Func adapts a function to a Check
func Func(name string, fn func(context.Context) error) Check {
	return funcCheck{name: name, fn: fn}
}

// CheckConfig holds the schedule of a registered check
type CheckConfig struct {
	Enabled  bool
	Interval time.Duration
}

// CheckInfo provides read-only information about a check
type CheckInfo struct {
	Name      string        `json:"name"`
	Enabled   bool          `json:"enabled"`
	Interval  time.Duration `json:"interval"`
	Runs      int           `json:"runs"`
	LastRun   *time.Time    `json:"last_run,omitempty"`
	LastError string        `json:"last_error,omitempty"`
}

type entry struct {
	check  Check
	config CheckConfig

	runs    int
	lastRun *time.Time
	lastErr error
}

// Registry manages registered checks and their schedules
type Registry struct {
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty check registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{logger: logger, entries: make(map[string]*entry)}
}

// Register adds a check. A zero interval uses DefaultInterval.
func (r *Registry) Register(c Check, cfg CheckConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("check %s already registered", name)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	r.entries[name] = &entry{check: c, config: cfg}
	r.logger.Debug("registered check",
		zap.String("check", name), zap.Bool("enabled", cfg.Enabled), zap.Duration("interval", cfg.Interval))
	return nil
}

// Run starts one polling loop per enabled check and blocks until ctx is
// cancelled. Every loop runs its check once immediately.
func (r *Registry) Run(ctx context.Context) error {
	r.mu.RLock()
	var active []*entry
	for _, e := range r.entries {
		if e.config.Enabled {
			active = append(active, e)
		}
	}
	r.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range active {
		g.Go(func() error {
			r.poll(gctx, e)
			return nil
		})
	}
	return g.Wait()
}

func (r *Registry) poll(ctx context.Context, e *entry) {
	name := e.check.Name()
	r.logger.Info("started check loop", zap.String("check", name), zap.Duration("interval", e.config.Interval))

	if err := r.run(ctx, e); err != nil {
		r.logger.Warn("initial check failed", zap.String("check", name), zap.Error(err))
	}

	ticker := time.NewTicker(e.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("stopping check loop", zap.String("check", name))
			return
		case <-ticker.C:
			if err := r.run(ctx, e); err != nil {
				r.logger.Warn("check failed", zap.String("check", name), zap.Error(err))
			}
		}
	}
}

// Trigger runs a single check now
func (r *Registry) Trigger(ctx context.Context, name string) error {
	r.mu.RLock()
	e, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("check %s not found", name)
	}
	if !e.config.Enabled {
		return fmt.Errorf("check %s is disabled", name)
	}
	return r.run(ctx, e)
}

// TriggerAll runs every enabled check now and joins their errors
func (r *Registry) TriggerAll(ctx context.Context) error {
	var errs []error
	for _, info := range r.List() {
		if !info.Enabled {
			continue
		}
		if err := r.Trigger(ctx, info.Name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", info.Name, err))
		}
	}
	return errors.Join(errs...)
}

// List returns the registered checks sorted by name
func (r *Registry) List() []CheckInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]CheckInfo, 0, len(r.entries))
	for name, e := range r.entries {
		info := CheckInfo{
			Name:     name,
			Enabled:  e.config.Enabled,
			Interval: e.config.Interval,
			Runs:     e.runs,
			LastRun:  e.lastRun,
		}
		if e.lastErr != nil {
			info.LastError = e.lastErr.Error()
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (r *Registry) run(ctx context.Context, e *entry) error {
	start := time.Now()
	err := e.check.Run(ctx)

	r.mu.Lock()
	e.runs++
	e.lastRun = &start
	e.lastErr = err
	r.mu.Unlock()

	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	r.logger.Debug("check complete", zap.String("check", e.check.Name()), zap.Duration("took", time.Since(start)))
	return nil
}
