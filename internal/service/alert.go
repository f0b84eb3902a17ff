package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/metrics"
	"hospitalops/internal/repository"
)

// AlertService raises and resolves staff alerts
type AlertService struct {
	repo    repository.Repository
	bus     *EventBus
	metrics *metrics.Registry
	logger  *zap.Logger
	now     func() time.Time
}

// NewAlertService creates a new alert service. m may be nil.
func NewAlertService(repo repository.Repository, bus *EventBus, m *metrics.Registry, logger *zap.Logger) *AlertService {
	return &AlertService{repo: repo, bus: bus, metrics: m, logger: logger, now: time.Now}
}

// List returns alerts with the given status, or all alerts when status is empty
func (s *AlertService) List(ctx context.Context, status domain.AlertStatus) ([]domain.Alert, error) {
	switch status {
	case "", domain.AlertActive, domain.AlertResolved:
	default:
		return nil, invalid("unknown alert status %q", status)
	}
	return s.repo.ListAlerts(ctx, status)
}

// Raise records an alert unless an active alert with the same title exists,
// in which case that one is returned unchanged
func (s *AlertService) Raise(ctx context.Context, title string, severity domain.AlertSeverity, description, action string) (*domain.Alert, error) {
	if title == "" {
		return nil, invalid("alert title required")
	}

	existing, err := s.repo.FindActiveAlert(ctx, title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	a := &domain.Alert{
		ID:          uuid.NewString(),
		Title:       title,
		Severity:    severity,
		Description: description,
		Action:      action,
		Status:      domain.AlertActive,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateAlert(ctx, a); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordAlert(string(severity))
	}
	s.logger.Warn("alert raised", zap.String("title", title), zap.String("severity", string(severity)))
	s.bus.Publish(Event{Type: EventAlertRaised, Payload: a})
	return a, nil
}

// Resolve marks an alert resolved. Resolving twice is a no-op.
func (s *AlertService) Resolve(ctx context.Context, alertID string) (*domain.Alert, error) {
	a, err := s.repo.GetAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFound("alert", alertID)
	}
	if a.Status == domain.AlertResolved {
		return a, nil
	}

	at := s.now()
	if err := s.repo.ResolveAlert(ctx, alertID, at); err != nil {
		return nil, err
	}
	a.Status = domain.AlertResolved
	a.ResolvedAt = &at

	s.bus.Publish(Event{Type: EventAlertResolved, Payload: map[string]string{"alert_id": alertID}})
	return a, nil
}
