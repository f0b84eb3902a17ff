package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/repository"
)

// OccupancyAlertThreshold is the occupancy rate above which an alert is raised
const OccupancyAlertThreshold = 80

// BedService manages the beds of the caller's hospital
type BedService struct {
	repo   repository.Repository
	bus    *EventBus
	alerts *AlertService
	logger *zap.Logger
	now    func() time.Time
}

// NewBedService creates a new bed service
func NewBedService(repo repository.Repository, bus *EventBus, alerts *AlertService, logger *zap.Logger) *BedService {
	return &BedService{repo: repo, bus: bus, alerts: alerts, logger: logger, now: time.Now}
}

func ownerEmail(id domain.Identity) (string, error) {
	if id.Anonymous() {
		return "", ErrUnauthenticated
	}
	if id.Email == "" {
		return "", invalid("authenticated user has no email")
	}
	return id.Email, nil
}

func validBedStatus(s domain.BedStatus) bool {
	switch s {
	case domain.BedStatusAvailable, domain.BedStatusOccupied, domain.BedStatusCleaning, domain.BedStatusMaintenance:
		return true
	}
	return false
}

// Create registers a bed under the caller's email. Type and number are
// required; status defaults to Available.
func (s *BedService) Create(ctx context.Context, id domain.Identity, bed *domain.Bed) (*domain.Bed, error) {
	email, err := ownerEmail(id)
	if err != nil {
		return nil, err
	}
	if bed.BedType == "" {
		return nil, invalid("bed type required")
	}
	if bed.BedNumber < 1 {
		return nil, invalid("bed number required")
	}
	if bed.Status == "" {
		bed.Status = domain.BedStatusAvailable
	}
	if !validBedStatus(bed.Status) {
		return nil, invalid("unknown bed status %q", bed.Status)
	}

	bed.ID = uuid.NewString()
	bed.OwnerEmail = email
	bed.CreatedAt = s.now()

	if err := s.repo.CreateBed(ctx, bed); err != nil {
		return nil, err
	}

	s.logger.Info("bed created",
		zap.String("bed_id", bed.ID), zap.String("type", string(bed.BedType)), zap.Int("number", bed.BedNumber))
	s.bus.Publish(Event{Type: EventBedCreated, Payload: bed})
	s.checkOccupancy(ctx, email)
	return bed, nil
}

// List returns the caller's beds
func (s *BedService) List(ctx context.Context, id domain.Identity) ([]domain.Bed, error) {
	email, err := ownerEmail(id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBeds(ctx, email)
}

// Stats summarizes the caller's beds
func (s *BedService) Stats(ctx context.Context, id domain.Identity) (domain.BedStats, error) {
	beds, err := s.List(ctx, id)
	if err != nil {
		return domain.BedStats{}, err
	}
	return domain.ComputeBedStats(beds, s.now()), nil
}

// UpdateStatus changes the status of one of the caller's beds
func (s *BedService) UpdateStatus(ctx context.Context, id domain.Identity, bedID string, status domain.BedStatus) (*domain.Bed, error) {
	if !validBedStatus(status) {
		return nil, invalid("unknown bed status %q", status)
	}
	bed, err := s.owned(ctx, id, bedID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBedStatus(ctx, bedID, status); err != nil {
		return nil, err
	}
	bed.Status = status

	s.bus.Publish(Event{Type: EventBedUpdated, Payload: bed})
	s.checkOccupancy(ctx, bed.OwnerEmail)
	return bed, nil
}

// Delete removes one of the caller's beds
func (s *BedService) Delete(ctx context.Context, id domain.Identity, bedID string) error {
	bed, err := s.owned(ctx, id, bedID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBed(ctx, bedID); err != nil {
		return err
	}
	s.bus.Publish(Event{Type: EventBedDeleted, Payload: map[string]string{"bed_id": bedID}})
	s.checkOccupancy(ctx, bed.OwnerEmail)
	return nil
}

func (s *BedService) owned(ctx context.Context, id domain.Identity, bedID string) (*domain.Bed, error) {
	email, err := ownerEmail(id)
	if err != nil {
		return nil, err
	}
	bed, err := s.repo.GetBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		return nil, notFound("bed", bedID)
	}
	if bed.OwnerEmail != email {
		return nil, fmt.Errorf("bed %s: %w", bedID, ErrForbidden)
	}
	return bed, nil
}

// checkOccupancy raises an alert once the owner's occupancy passes the
// threshold. Failures are logged; they never fail the bed operation.
func (s *BedService) checkOccupancy(ctx context.Context, email string) {
	if s.alerts == nil {
		return
	}
	beds, err := s.repo.ListBeds(ctx, email)
	if err != nil {
		s.logger.Error("occupancy check failed", zap.Error(err))
		return
	}
	stats := domain.ComputeBedStats(beds, s.now())
	if stats.OccupancyRate <= OccupancyAlertThreshold {
		return
	}

	title := fmt.Sprintf("Bed occupancy critical (%s)", email)
	desc := fmt.Sprintf("Occupancy at %d%% (%d of %d beds)", stats.OccupancyRate, stats.Occupied, stats.Total)
	if _, err := s.alerts.Raise(ctx, title, domain.SeverityCritical, desc, "Activate surge protocol and divert non-critical admissions"); err != nil {
		s.logger.Error("failed to raise occupancy alert", zap.Error(err))
	}
}
