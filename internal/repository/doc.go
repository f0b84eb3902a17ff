// Package repository defines the data access interface for hospitalops.
//
// The sqlite subpackage implements it on an embedded SQLite database
// (modernc.org/sqlite, no cgo). The schema is migrated on open and every
// statement is idempotent, so opening an existing database is safe.
//
// Tables:
//
//   - hospitals: staff-owned hospital records plus optional directory attributes
//   - beds: beds per owning staff email, with occupant details
//   - patients: one profile per portal user
//   - contacts: emergency contacts
//   - inventory: tracked supplies and fill levels
//   - alerts: staff notifications, active or resolved
package repository
