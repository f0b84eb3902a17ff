package domain

import "time"

// AlertSeverity ranks alerts
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "Critical"
	SeverityWarning  AlertSeverity = "Warning"
)

// AlertStatus tracks whether an alert still needs attention
type AlertStatus string

const (
	AlertActive   AlertStatus = "active"
	AlertResolved AlertStatus = "resolved"
)

// Alert is a notification broadcast to staff
type Alert struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Severity    AlertSeverity `json:"severity"`
	Description string        `json:"description"`
	Action      string        `json:"action,omitempty"`
	Status      AlertStatus   `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
}
