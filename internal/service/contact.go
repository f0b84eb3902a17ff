package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/repository"
)

// ContactService manages emergency contacts
type ContactService struct {
	repo   repository.Repository
	bus    *EventBus
	logger *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(repo repository.Repository, bus *EventBus, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, bus: bus, logger: logger}
}

// List returns all contacts
func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.ListContacts(ctx)
}

// Add stores a new contact
func (s *ContactService) Add(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Role = strings.TrimSpace(c.Role)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" || c.Role == "" || c.Phone == "" {
		return nil, invalid("name, role and phone are required")
	}

	c.ID = uuid.NewString()
	if err := s.repo.CreateContact(ctx, &c); err != nil {
		return nil, err
	}
	s.logger.Info("contact added", zap.String("contact_id", c.ID), zap.String("role", c.Role))
	s.bus.Publish(Event{Type: EventContactCreated, Payload: c})
	return &c, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, contactID string) error {
	c, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return err
	}
	if c == nil {
		return notFound("contact", contactID)
	}
	if err := s.repo.DeleteContact(ctx, contactID); err != nil {
		return err
	}
	s.bus.Publish(Event{Type: EventContactDeleted, Payload: map[string]string{"contact_id": contactID}})
	return nil
}
