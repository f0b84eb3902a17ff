package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitalops/internal/domain"
)

func TestAlertRaiseDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	env.drain()

	a, err := env.alerts.Raise(ctx(), "ICU full", domain.SeverityCritical, "No ICU beds", "Divert")
	require.NoError(t, err)
	assert.Equal(t, domain.AlertActive, a.Status)
	assert.Equal(t, fixedNow, a.CreatedAt)

	b, err := env.alerts.Raise(ctx(), "ICU full", domain.SeverityCritical, "Still no ICU beds", "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, []EventType{EventAlertRaised}, eventTypes(env.drain()))

	_, err = env.alerts.Raise(ctx(), "", domain.SeverityWarning, "", "")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAlertResolve(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.alerts.Raise(ctx(), "Generator test", domain.SeverityWarning, "Scheduled", "")
	require.NoError(t, err)

	resolved, err := env.alerts.Resolve(ctx(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	again, err := env.alerts.Resolve(ctx(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertResolved, again.Status)

	_, err = env.alerts.Resolve(ctx(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// a resolved alert no longer blocks a new one with the same title
	fresh, err := env.alerts.Raise(ctx(), "Generator test", domain.SeverityWarning, "Again", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, fresh.ID)

	active, err := env.alerts.List(ctx(), domain.AlertActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := env.alerts.List(ctx(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = env.alerts.List(ctx(), "muted")
	assert.ErrorIs(t, err, ErrInvalid)
}
