package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitalops/internal/domain"
)

func TestBedCreate(t *testing.T) {
	env := newTestEnv(t)

	bed, err := env.beds.Create(ctx(), staff, &domain.Bed{BedType: domain.BedTypeICU, BedNumber: 12})
	require.NoError(t, err)
	assert.NotEmpty(t, bed.ID)
	assert.Equal(t, domain.BedStatusAvailable, bed.Status)
	assert.Equal(t, staff.Email, bed.OwnerEmail)

	beds, err := env.beds.List(ctx(), staff)
	require.NoError(t, err)
	assert.Len(t, beds, 1)

	beds, err = env.beds.List(ctx(), other)
	require.NoError(t, err)
	assert.Empty(t, beds)
}

func TestBedCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		id   domain.Identity
		bed  domain.Bed
		want error
	}{
		{"anonymous", domain.Identity{}, domain.Bed{BedType: domain.BedTypeICU, BedNumber: 1}, ErrUnauthenticated},
		{"missing type", staff, domain.Bed{BedNumber: 1}, ErrInvalid},
		{"missing number", staff, domain.Bed{BedType: domain.BedTypeICU}, ErrInvalid},
		{"bad status", staff, domain.Bed{BedType: domain.BedTypeICU, BedNumber: 1, Status: "Gone"}, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bed := tt.bed
			_, err := env.beds.Create(ctx(), tt.id, &bed)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBedOwnership(t *testing.T) {
	env := newTestEnv(t)
	bed, err := env.beds.Create(ctx(), staff, &domain.Bed{BedType: domain.BedTypeGeneral, BedNumber: 3})
	require.NoError(t, err)

	_, err = env.beds.UpdateStatus(ctx(), other, bed.ID, domain.BedStatusCleaning)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, env.beds.Delete(ctx(), other, bed.ID), ErrForbidden)

	_, err = env.beds.UpdateStatus(ctx(), staff, "missing", domain.BedStatusCleaning)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.beds.UpdateStatus(ctx(), staff, bed.ID, "Broken")
	assert.ErrorIs(t, err, ErrInvalid)

	updated, err := env.beds.UpdateStatus(ctx(), staff, bed.ID, domain.BedStatusCleaning)
	require.NoError(t, err)
	assert.Equal(t, domain.BedStatusCleaning, updated.Status)

	require.NoError(t, env.beds.Delete(ctx(), staff, bed.ID))
	beds, err := env.beds.List(ctx(), staff)
	require.NoError(t, err)
	assert.Empty(t, beds)
}

func TestBedOccupancyAlert(t *testing.T) {
	env := newTestEnv(t)

	// 4 of 5 occupied is exactly 80%: no alert yet
	for i := 1; i <= 5; i++ {
		status := domain.BedStatusOccupied
		if i == 1 {
			status = domain.BedStatusAvailable
		}
		_, err := env.beds.Create(ctx(), staff, &domain.Bed{BedType: domain.BedTypeNormal, BedNumber: i, Status: status})
		require.NoError(t, err)
	}
	alerts, err := env.alerts.List(ctx(), domain.AlertActive)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	stats, err := env.beds.Stats(ctx(), staff)
	require.NoError(t, err)
	assert.Equal(t, 80, stats.OccupancyRate)
	assert.Equal(t, 1, stats.PendingAdmissions)

	beds, err := env.beds.List(ctx(), staff)
	require.NoError(t, err)
	for _, b := range beds {
		if b.Status == domain.BedStatusAvailable {
			_, err = env.beds.UpdateStatus(ctx(), staff, b.ID, domain.BedStatusOccupied)
			require.NoError(t, err)
		}
	}

	alerts, err = env.alerts.List(ctx(), domain.AlertActive)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, fmt.Sprintf("Bed occupancy critical (%s)", staff.Email), alerts[0].Title)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)

	// further changes above the threshold do not duplicate the alert
	_, err = env.beds.Create(ctx(), staff, &domain.Bed{BedType: domain.BedTypeNormal, BedNumber: 6, Status: domain.BedStatusOccupied})
	require.NoError(t, err)
	alerts, err = env.alerts.List(ctx(), domain.AlertActive)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}
