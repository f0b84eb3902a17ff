// Package layout places hospital cards around the central "you" anchor.
//
// The package is split the same way the view is driven:
//
// GeneratePositions assigns every entity an angular slot and a radius derived
// from its distance, clamped so the card stays inside the container.
//
// Controller tracks the single active drag session and the per-entity offsets
// layered on top of the base positions. Move and release events are taken from
// a root-scoped PointerSource for the duration of a session, so releasing the
// pointer outside a card still ends the drag.
//
// Connect draws the bowed connector from the anchor boundary to the boundary of
// the (possibly dragged) card.
//
// View ties the three together for one mounted layout and Views is the
// registry the service layer uses to look views up by id.
//
// Nothing here performs I/O. Degenerate geometry (no entities, zero distances,
// zero-length vectors) resolves to safe defaults instead of NaN.
package layout
