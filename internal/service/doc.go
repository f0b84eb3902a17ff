// Package service implements the business logic of hospitalops.
//
// Services sit between the HTTP handlers and the repository. They own
// authorization and input guards, and they publish an Event on the EventBus
// for every change so connected browsers can refresh over Server-Sent Events.
//
// # Services
//
// HospitalService manages staff-owned hospitals and builds the patient
// directory by merging registered hospitals with the seed directory file.
//
// BedService, PatientService, ContactService, InventoryService and
// AlertService back the dashboard views of the same names. Bed occupancy and
// inventory levels raise alerts through AlertService.
//
// LayoutService hosts the radial nearby-hospitals layout for every mounted
// page: it opens views over the directory, applies forwarded pointer events
// to their drag controllers and renders scenes.
//
// # Errors
//
// Failures the caller can act on wrap ErrNotFound, ErrForbidden, ErrInvalid
// or ErrUnauthenticated; test for them with errors.Is.
package service
