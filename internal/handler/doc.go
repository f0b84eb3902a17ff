// Package handler implements the HTTP layer of hospitalops.
//
// Handler serves the JSON REST API for hospitals, beds, patients, contacts,
// inventory, alerts and the nearby-hospitals layout views. NewRouter mounts
// it on a ServeMux together with the SSE stream, the Prometheus endpoint and
// the health check, wrapped in the middleware chain.
//
// # Identity
//
// Authentication happens in front of the service. The caller is read from the
// X-User-Id, X-User-Email and X-User-Name headers; a request without
// X-User-Id is anonymous.
//
// # Response Format
//
// Success responses return JSON data with 200 or 201. Error responses return
// JSON with the {error, details} structure. Service errors are mapped with
// errors.Is: ErrNotFound to 404, ErrForbidden to 403, ErrInvalid to 400 and
// ErrUnauthenticated to 401.
//
// # Layout Views
//
// A page mounts a view with POST /api/views and then forwards its pointer
// events to /api/views/{id}/pointer. Events observed on a card carry scope
// "card"; events observed anywhere else in the window carry scope "root", so
// a release outside every card still ends the drag.
package handler
