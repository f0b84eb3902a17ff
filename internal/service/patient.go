package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/repository"
)

// PatientService manages portal user profiles
type PatientService struct {
	repo   repository.Repository
	bus    *EventBus
	logger *zap.Logger
	now    func() time.Time
}

// NewPatientService creates a new patient service
func NewPatientService(repo repository.Repository, bus *EventBus, logger *zap.Logger) *PatientService {
	return &PatientService{repo: repo, bus: bus, logger: logger, now: time.Now}
}

// Ensure returns the caller's profile, creating it from the identity on
// first use
func (s *PatientService) Ensure(ctx context.Context, id domain.Identity) (*domain.Patient, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}

	existing, err := s.repo.GetPatientByUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	p := &domain.Patient{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		Name:      id.Name,
		Contact:   id.Email,
		CreatedAt: s.now(),
	}
	if p.Name == "" {
		p.Name = id.Email
	}
	if err := s.repo.UpsertPatient(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("patient profile created", zap.String("user_id", id.UserID))
	return p, nil
}

// Location returns the caller's stored location, empty when unknown
func (s *PatientService) Location(ctx context.Context, id domain.Identity) (string, error) {
	if id.Anonymous() {
		return "", nil
	}
	p, err := s.repo.GetPatientByUser(ctx, id.UserID)
	if err != nil || p == nil {
		return "", err
	}
	return p.Location, nil
}

// Update changes only the submitted fields of the caller's profile,
// creating the profile when missing
func (s *PatientService) Update(ctx context.Context, id domain.Identity, patch domain.PatientPatch) (*domain.Patient, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}

	p, err := s.repo.GetPatientByUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &domain.Patient{
			ID:        uuid.NewString(),
			UserID:    id.UserID,
			CreatedAt: s.now(),
		}
	}
	patch.Apply(p)

	if err := s.repo.UpsertPatient(ctx, p); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventPatientUpdated, Payload: map[string]string{"user_id": id.UserID}})
	return p, nil
}
