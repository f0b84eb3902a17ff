package layout

import "sync"

// PointerEventType identifies a pointer event delivered at root scope
type PointerEventType string

const (
	PointerMove  PointerEventType = "move"
	PointerUp    PointerEventType = "up"
	PointerLeave PointerEventType = "leave"
)

// PointerEvent is a pointer event observed outside any particular card
type PointerEvent struct {
	Type       PointerEventType `json:"type"`
	At         Point            `json:"at"`
	ButtonHeld bool             `json:"button_held"`
}

// PointerHandler receives root-scoped pointer events
type PointerHandler func(PointerEvent)

// Subscription is released when the subscriber no longer wants events
type Subscription interface {
	Close()
}

// PointerSource is the broadest-scope pointer event source of a view (the
// browser window). Drag sessions subscribe to it while they are open.
type PointerSource interface {
	Subscribe(h PointerHandler) Subscription
}

// RootSource fans pointer events out to the current subscribers
type RootSource struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]PointerHandler
}

// NewRootSource creates an empty root pointer source
func NewRootSource() *RootSource {
	return &RootSource{handlers: make(map[int]PointerHandler)}
}

// Subscribe registers h until the returned subscription is closed
func (s *RootSource) Subscribe(h PointerHandler) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.handlers[id] = h
	return &rootSubscription{source: s, id: id}
}

// Dispatch delivers ev to every subscriber. Handlers run without the source
// lock held so they may close their own subscription.
func (s *RootSource) Dispatch(ev PointerEvent) {
	s.mu.Lock()
	handlers := make([]PointerHandler, 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Subscribers returns the number of open subscriptions
func (s *RootSource) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

type rootSubscription struct {
	source *RootSource
	id     int
	once   sync.Once
}

func (r *rootSubscription) Close() {
	r.once.Do(func() {
		r.source.mu.Lock()
		delete(r.source.handlers, r.id)
		r.source.mu.Unlock()
	})
}
