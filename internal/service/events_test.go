package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusPublish(t *testing.T) {
	bus := NewEventBus(nil)
	a := make(chan Event, 1)
	b := make(chan Event, 1)
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(Event{Type: EventBedCreated})
	assert.Equal(t, EventBedCreated, (<-a).Type)
	assert.Equal(t, EventBedCreated, (<-b).Type)
}

func TestEventBusSkipsSlowSubscriber(t *testing.T) {
	bus := NewEventBus(nil)
	full := make(chan Event) // unbuffered, nobody reading
	ok := make(chan Event, 1)
	bus.Subscribe(full)
	bus.Subscribe(ok)

	bus.Publish(Event{Type: EventAlertRaised})
	assert.Equal(t, EventAlertRaised, (<-ok).Type)
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus(nil)
	ch := make(chan Event, 1)
	bus.Subscribe(ch)
	bus.Unsubscribe(ch)

	bus.Publish(Event{Type: EventAlertRaised})
	assert.Len(t, ch, 0)
}
