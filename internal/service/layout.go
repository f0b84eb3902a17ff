package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/layout"
	"hospitalops/internal/metrics"
	"hospitalops/internal/render"
)

// PointerScope says where the browser observed a pointer event
type PointerScope string

const (
	ScopeCard PointerScope = "card"
	ScopeRoot PointerScope = "root"
)

// PointerInput is one pointer event forwarded by the browser
type PointerInput struct {
	Type       string
	Scope      PointerScope
	EntityID   string
	At         layout.Point
	ButtonHeld bool
}

// ViewOptions describes the page mounting a view
type ViewOptions struct {
	Width          float64
	ViewportHeight float64
	// AnchorRadius is the measured radius of the anchor circle; zero uses
	// the configured default
	AnchorRadius float64
	// Location narrows the directory; empty uses the caller's profile
	Location string
}

// ViewSnapshot is what the browser needs to draw one frame
type ViewSnapshot struct {
	ViewID        string            `json:"view_id"`
	Scene         layout.Scene      `json:"scene"`
	Cards         []render.CardView `json:"cards"`
	ActiveID      string            `json:"active_id,omitempty"`
	MovementLimit float64           `json:"movement_limit"`
}

type viewState struct {
	location     string
	anchorRadius float64
	entries      map[string]domain.DirectoryEntry
}

// LayoutService hosts the nearby-hospitals layout of every mounted page
type LayoutService struct {
	views               *layout.Views
	params              layout.Params
	defaultAnchorRadius float64
	hospitals           *HospitalService
	patients            *PatientService
	bus                 *EventBus
	metrics             *metrics.Registry
	logger              *zap.Logger

	mu    sync.Mutex
	state map[string]*viewState
}

// NewLayoutService creates a layout service over the given view registry.
// m may be nil.
func NewLayoutService(views *layout.Views, params layout.Params, anchorRadius float64,
	hospitals *HospitalService, patients *PatientService, bus *EventBus,
	m *metrics.Registry, logger *zap.Logger) *LayoutService {
	return &LayoutService{
		views:               views,
		params:              params,
		defaultAnchorRadius: anchorRadius,
		hospitals:           hospitals,
		patients:            patients,
		bus:                 bus,
		metrics:             m,
		logger:              logger,
		state:               make(map[string]*viewState),
	}
}

// Params returns the layout constants used for new views
func (s *LayoutService) Params() layout.Params {
	return s.params
}

// Open mounts a view over the directory for the caller
func (s *LayoutService) Open(ctx context.Context, id domain.Identity, opts ViewOptions) (*ViewSnapshot, error) {
	if opts.Width <= 0 || opts.ViewportHeight <= 0 {
		return nil, invalid("width and viewport height must be positive")
	}

	location := opts.Location
	if location == "" && s.patients != nil {
		loc, err := s.patients.Location(ctx, id)
		if err != nil {
			return nil, err
		}
		location = loc
	}

	entries, err := s.hospitals.Directory(ctx, location)
	if err != nil {
		return nil, err
	}

	viewID := uuid.NewString()
	v, err := s.views.Open(viewID, s.params, opts.Width, opts.ViewportHeight)
	if err != nil {
		return nil, err
	}

	radius := opts.AnchorRadius
	if radius <= 0 {
		radius = s.defaultAnchorRadius
	}
	st := &viewState{location: location, anchorRadius: radius}
	s.setEntries(v, st, entries)

	s.mu.Lock()
	s.state[viewID] = st
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ViewsOpen.Inc()
	}
	s.logger.Debug("view opened",
		zap.String("view_id", viewID), zap.Int("entities", len(entries)), zap.String("location", location))
	s.bus.Publish(Event{Type: EventViewOpened, Payload: map[string]string{"view_id": viewID}})

	return s.snapshot(v), nil
}

// Close unmounts a view
func (s *LayoutService) Close(viewID string) error {
	if !s.views.Close(viewID) {
		return notFound("view", viewID)
	}
	s.mu.Lock()
	delete(s.state, viewID)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ViewsOpen.Dec()
	}
	s.bus.Publish(Event{Type: EventViewClosed, Payload: map[string]string{"view_id": viewID}})
	return nil
}

// Scene returns the current frame of a view
func (s *LayoutService) Scene(viewID string) (*ViewSnapshot, error) {
	v, ok := s.views.Get(viewID)
	if !ok {
		return nil, notFound("view", viewID)
	}
	return s.snapshot(v), nil
}

// WriteSVG writes the current frame of a view as a standalone SVG document
func (s *LayoutService) WriteSVG(viewID string, w io.Writer) error {
	v, ok := s.views.Get(viewID)
	if !ok {
		return notFound("view", viewID)
	}
	st := s.stateOf(viewID)
	scene := s.render(v, st)

	labels := make(map[string]string, len(st.entries))
	for id, e := range st.entries {
		labels[id] = e.Name
	}
	return render.SceneSVG(w, scene, v.Params(), labels)
}

// CardPosition returns where a card is currently drawn in a view
func (s *LayoutService) CardPosition(viewID, entityID string) (left, top float64, ok bool) {
	v, found := s.views.Get(viewID)
	if !found {
		return 0, 0, false
	}
	base, found := v.BasePosition(entityID)
	if !found {
		return 0, 0, false
	}
	final := base.Offset(v.Drag().Offset(entityID))
	return final.Left, final.Top, true
}

// Resize records a new container width for a view
func (s *LayoutService) Resize(viewID string, width float64) (*ViewSnapshot, error) {
	if width <= 0 {
		return nil, invalid("width must be positive")
	}
	v, ok := s.views.Get(viewID)
	if !ok {
		return nil, notFound("view", viewID)
	}
	v.Resize(width)

	s.publishLayout(viewID, "resize")
	return s.snapshot(v), nil
}

// Pointer applies one forwarded pointer event to a view.
//
// Card-scoped events drive the drag controller directly. Root-scoped events
// go to the view's root source, where only an open drag session listens, so
// a release outside every card still ends the drag.
func (s *LayoutService) Pointer(viewID string, in PointerInput) (*ViewSnapshot, error) {
	v, ok := s.views.Get(viewID)
	if !ok {
		return nil, notFound("view", viewID)
	}
	if in.Scope == "" {
		in.Scope = ScopeCard
	}

	drag := v.Drag()
	_, wasActive := drag.ActiveID()
	started := false

	switch in.Scope {
	case ScopeCard:
		switch in.Type {
		case "down":
			if _, placed := v.BasePosition(in.EntityID); !placed {
				return nil, notFound("card", in.EntityID)
			}
			started = drag.PointerDown(in.EntityID, in.At)
		case "move":
			drag.PointerMove(in.At)
		case "up":
			drag.PointerUp()
		case "leave":
			drag.PointerLeave(in.ButtonHeld)
		default:
			return nil, invalid("unknown pointer event %q", in.Type)
		}
	case ScopeRoot:
		var t layout.PointerEventType
		switch in.Type {
		case "move":
			t = layout.PointerMove
		case "up":
			t = layout.PointerUp
		case "leave":
			t = layout.PointerLeave
		case "down":
			// a press outside every card never starts a drag
			return s.snapshot(v), nil
		default:
			return nil, invalid("unknown pointer event %q", in.Type)
		}
		v.Root().Dispatch(layout.PointerEvent{Type: t, At: in.At, ButtonHeld: in.ButtonHeld})
	default:
		return nil, invalid("unknown pointer scope %q", in.Scope)
	}

	if s.metrics != nil {
		s.metrics.RecordPointerEvent(in.Type, string(in.Scope), started)
	}
	if wasActive || started {
		s.publishLayout(viewID, in.Type)
	}
	return s.snapshot(v), nil
}

// Refresh reloads the directory of every open view. Each reload is a new
// entity list, so base positions are regenerated; drag offsets are kept.
func (s *LayoutService) Refresh(ctx context.Context) {
	s.views.Each(func(v *layout.View) {
		s.mu.Lock()
		st, ok := s.state[v.ID]
		var location string
		if ok {
			location = st.location
		}
		s.mu.Unlock()
		if !ok {
			// closed while iterating
			return
		}

		entries, err := s.hospitals.Directory(ctx, location)
		if err != nil {
			s.logger.Error("view refresh failed", zap.String("view_id", v.ID), zap.Error(err))
			return
		}
		s.setEntries(v, st, entries)
		s.publishLayout(v.ID, "refresh")
	})
}

// Run refreshes open views whenever the directory changes, until ctx is
// cancelled
func (s *LayoutService) Run(ctx context.Context) error {
	events := make(chan Event, 16)
	s.bus.Subscribe(events)
	defer s.bus.Unsubscribe(events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev.Type {
			case EventDirectoryReloaded, EventDirectoryImported, EventHospitalCreated, EventHospitalUpdated:
				s.Refresh(ctx)
			}
		}
	}
}

func (s *LayoutService) setEntries(v *layout.View, st *viewState, entries []domain.DirectoryEntry) {
	byID := make(map[string]domain.DirectoryEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	s.mu.Lock()
	st.entries = byID
	s.mu.Unlock()

	v.SetEntities(domain.Entities(entries))
}

func (s *LayoutService) stateOf(viewID string) viewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.state[viewID]; ok {
		return *st
	}
	return viewState{anchorRadius: s.defaultAnchorRadius}
}

func (s *LayoutService) render(v *layout.View, st viewState) layout.Scene {
	start := time.Now()
	scene := v.Render(st.anchorRadius)
	if s.metrics != nil {
		s.metrics.RecordSceneRender(len(scene.Cards), time.Since(start))
	}
	return scene
}

func (s *LayoutService) snapshot(v *layout.View) *ViewSnapshot {
	st := s.stateOf(v.ID)
	scene := s.render(v, st)

	cards := make([]render.CardView, 0, len(scene.Cards))
	for _, c := range scene.Cards {
		if e, ok := st.entries[c.EntityID]; ok {
			cards = append(cards, render.NewCardView(e, "/api/hospitals/"+e.ID+"/card"))
		}
	}

	snap := &ViewSnapshot{
		ViewID:        v.ID,
		Scene:         scene,
		Cards:         cards,
		MovementLimit: v.Drag().MovementLimit(),
	}
	if id, ok := v.Drag().ActiveID(); ok {
		snap.ActiveID = id
	}
	return snap
}

func (s *LayoutService) publishLayout(viewID, cause string) {
	s.bus.Publish(Event{
		Type:    EventLayoutUpdated,
		Payload: map[string]string{"view_id": viewID, "cause": cause},
	})
}
