package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/layout"
	"hospitalops/internal/metrics"
	"hospitalops/internal/repository/sqlite"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

var (
	staff   = domain.Identity{UserID: "u-staff", Email: "ops@lilavati.example", Name: "Lilavati Hospital"}
	other   = domain.Identity{UserID: "u-other", Email: "ops@hinduja.example", Name: "Hinduja"}
	patient = domain.Identity{UserID: "u-patient", Email: "asha@example.com", Name: "Asha"}
)

// testEnv wires every service onto one in-memory database
type testEnv struct {
	repo      *sqlite.Repository
	bus       *EventBus
	events    chan Event
	metrics   *metrics.Registry
	seed      *Seed
	hospitals *HospitalService
	beds      *BedService
	patients  *PatientService
	contacts  *ContactService
	inventory *InventoryService
	alerts    *AlertService
	layout    *LayoutService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	logger := zap.NewNop()
	m := metrics.NewRegistry()
	bus := NewEventBus(m)
	events := make(chan Event, 256)
	bus.Subscribe(events)

	seed := NewSeed("", bus, m, logger)
	require.NoError(t, seed.Reload())

	env := &testEnv{repo: repo, bus: bus, events: events, metrics: m, seed: seed}
	env.alerts = NewAlertService(repo, bus, m, logger)
	env.hospitals = NewHospitalService(repo, bus, seed, logger)
	env.beds = NewBedService(repo, bus, env.alerts, logger)
	env.patients = NewPatientService(repo, bus, logger)
	env.contacts = NewContactService(repo, bus, logger)
	env.inventory = NewInventoryService(repo, bus, env.alerts, logger)
	env.layout = NewLayoutService(layout.NewViews(), layout.DefaultParams(), 56,
		env.hospitals, env.patients, bus, m, logger)

	clock := func() time.Time { return fixedNow }
	env.alerts.now = clock
	env.hospitals.now = clock
	env.beds.now = clock
	env.patients.now = clock
	env.inventory.now = clock

	return env
}

// drain returns the events published so far
func (e *testEnv) drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-e.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func ctx() context.Context {
	return context.Background()
}
