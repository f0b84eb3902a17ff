package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospitalops/internal/codec"
	"hospitalops/internal/domain"
	"hospitalops/internal/repository"
)

// HospitalService manages staff-owned hospitals and the directory shown to
// patients
type HospitalService struct {
	repo   repository.Repository
	bus    *EventBus
	seed   *Seed
	logger *zap.Logger
	now    func() time.Time
}

// NewHospitalService creates a new hospital service
func NewHospitalService(repo repository.Repository, bus *EventBus, seed *Seed, logger *zap.Logger) *HospitalService {
	return &HospitalService{
		repo:   repo,
		bus:    bus,
		seed:   seed,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureForUser returns the hospital registered under the caller's email,
// creating a minimal one on first use
func (s *HospitalService) EnsureForUser(ctx context.Context, id domain.Identity) (*domain.Hospital, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}
	if id.Email == "" {
		return nil, invalid("authenticated user has no email")
	}

	existing, err := s.repo.ListHospitalsByEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	name := id.Name
	if name == "" {
		name = "Unnamed Hospital"
	}
	h := domain.NewHospital(uuid.NewString(), name, "Unknown")
	h.CreatedAt = s.now()
	h.Email = id.Email
	h.OwnerID = id.UserID

	if err := s.repo.UpsertHospital(ctx, h); err != nil {
		return nil, err
	}

	s.logger.Info("hospital created", zap.String("hospital_id", h.ID), zap.String("owner", id.UserID))
	s.bus.Publish(Event{
		Type:    EventHospitalCreated,
		Payload: map[string]string{"hospital_id": h.ID},
	})
	return h, nil
}

// ListForUser returns the hospitals registered under the caller's email.
// Anonymous callers get an empty list.
func (s *HospitalService) ListForUser(ctx context.Context, id domain.Identity) ([]domain.Hospital, error) {
	if id.Anonymous() || id.Email == "" {
		return []domain.Hospital{}, nil
	}
	return s.repo.ListHospitalsByEmail(ctx, id.Email)
}

// Get returns a hospital by id
func (s *HospitalService) Get(ctx context.Context, hospitalID string) (*domain.Hospital, error) {
	h, err := s.repo.GetHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, notFound("hospital", hospitalID)
	}
	return h, nil
}

// Update applies patch to a hospital. The caller must own it, either by user
// id or by a case-insensitive email match.
func (s *HospitalService) Update(ctx context.Context, id domain.Identity, hospitalID string, patch domain.HospitalPatch) (*domain.Hospital, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}

	h, err := s.Get(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	ownerMatches := h.OwnerID != "" && h.OwnerID == id.UserID
	emailMatches := id.Email != "" && h.Email != "" && strings.EqualFold(id.Email, h.Email)
	if !ownerMatches && !emailMatches {
		s.logger.Warn("hospital update refused",
			zap.String("hospital_id", hospitalID), zap.String("user_id", id.UserID))
		return nil, fmt.Errorf("update hospital %s: %w", hospitalID, ErrForbidden)
	}

	if patch.Empty() {
		return h, nil
	}
	patch.Apply(h)
	if err := s.repo.UpsertHospital(ctx, h); err != nil {
		return nil, err
	}

	s.bus.Publish(Event{
		Type:    EventHospitalUpdated,
		Payload: map[string]string{"hospital_id": h.ID},
	})
	return h, nil
}

// Directory returns the hospitals to lay out around a patient.
//
// Registered hospitals come first, followed by seed hospitals not already
// present under the same name and address. When location is set only
// registered hospitals mentioning it are returned, falling back to all
// registered hospitals and finally to the seed list so the view is never
// empty.
func (s *HospitalService) Directory(ctx context.Context, location string) ([]domain.DirectoryEntry, error) {
	stored, err := s.repo.ListHospitals(ctx)
	if err != nil {
		return nil, err
	}

	registered := make([]domain.DirectoryEntry, 0, len(stored))
	for i := range stored {
		registered = append(registered, domain.FromHospital(&stored[i]))
	}
	seed := s.seed.Entries()

	if strings.TrimSpace(location) != "" {
		matched := make([]domain.DirectoryEntry, 0, len(registered))
		for _, e := range registered {
			if e.MatchesLocation(location) {
				matched = append(matched, e)
			}
		}
		switch {
		case len(matched) > 0:
			return matched, nil
		case len(registered) > 0:
			return registered, nil
		default:
			return seed, nil
		}
	}

	merged := make([]domain.DirectoryEntry, 0, len(registered)+len(seed))
	seen := make(map[string]bool, len(registered)+len(seed))
	for _, list := range [][]domain.DirectoryEntry{registered, seed} {
		for _, e := range list {
			if seen[e.Key()] {
				continue
			}
			seen[e.Key()] = true
			merged = append(merged, e)
		}
	}
	return merged, nil
}

// DirectoryEntry looks up one entry of the full directory by id
func (s *HospitalService) DirectoryEntry(ctx context.Context, entryID string) (*domain.DirectoryEntry, error) {
	entries, err := s.Directory(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == entryID {
			return &entries[i], nil
		}
	}
	return nil, notFound("hospital", entryID)
}

// ImportResult reports the outcome of a directory import
type ImportResult struct {
	Imported int    `json:"imported"`
	Format   string `json:"format"`
}

// ImportDirectory stores the hospitals of a directory file as registered
// hospitals. Existing hospitals with the same id are updated.
func (s *HospitalService) ImportDirectory(ctx context.Context, data []byte, format string) (*ImportResult, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, invalid("%v", err)
	}
	dir, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, invalid("%v", err)
	}

	now := s.now()
	hospitals := make([]domain.Hospital, 0, len(dir.Hospitals))
	for _, e := range dir.Hospitals {
		hospitals = append(hospitals, hospitalFromEntry(e, now))
	}
	if err := s.repo.ImportHospitals(ctx, hospitals); err != nil {
		return nil, err
	}

	result := &ImportResult{Imported: len(hospitals), Format: c.Format()}
	s.logger.Info("directory imported", zap.Int("hospitals", result.Imported), zap.String("format", result.Format))
	s.bus.Publish(Event{Type: EventDirectoryImported, Payload: result})
	return result, nil
}

// ExportDirectory writes the full directory in the given format
func (s *HospitalService) ExportDirectory(ctx context.Context, format string, w io.Writer) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return invalid("%v", err)
	}
	entries, err := s.Directory(ctx, "")
	if err != nil {
		return err
	}
	return c.Export(&domain.Directory{Hospitals: entries}, w)
}

func hospitalFromEntry(e domain.DirectoryEntry, now time.Time) domain.Hospital {
	distance, occupancy, rating := e.Distance, e.Occupancy, e.Rating
	beds, wait := e.Beds, e.WaitTime
	return domain.Hospital{
		ID:              e.ID,
		Name:            e.Name,
		Location:        e.Address,
		CreatedAt:       now,
		Distance:        &distance,
		Beds:            &beds,
		Occupancy:       &occupancy,
		Rating:          &rating,
		Specializations: e.Specializations,
		EmergencyRating: e.EmergencyRating,
		WaitTime:        &wait,
	}
}
