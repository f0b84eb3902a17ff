package service

import (
	"sync"

	"hospitalops/internal/metrics"
)

// EventType defines the type of event
type EventType string

const (
	EventHospitalCreated   EventType = "hospital_created"
	EventHospitalUpdated   EventType = "hospital_updated"
	EventDirectoryReloaded EventType = "directory_reloaded"
	EventDirectoryImported EventType = "directory_imported"
	EventBedCreated        EventType = "bed_created"
	EventBedUpdated        EventType = "bed_updated"
	EventBedDeleted        EventType = "bed_deleted"
	EventPatientUpdated    EventType = "patient_updated"
	EventContactCreated    EventType = "contact_created"
	EventContactDeleted    EventType = "contact_deleted"
	EventInventoryUpdated  EventType = "inventory_updated"
	EventAlertRaised       EventType = "alert_raised"
	EventAlertResolved     EventType = "alert_resolved"
	EventViewOpened        EventType = "view_opened"
	EventViewClosed        EventType = "view_closed"
	EventLayoutUpdated     EventType = "layout_updated"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
	metrics     *metrics.Registry
}

// NewEventBus creates a new event bus. m may be nil.
func NewEventBus(m *metrics.Registry) *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
		metrics:     m,
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Unsubscribe removes a subscriber
func (eb *EventBus) Unsubscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	for i, sub := range eb.subscribers {
		if sub == ch {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	if eb.metrics != nil {
		eb.metrics.RecordEvent(string(event.Type))
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
