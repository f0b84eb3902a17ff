// Package domain defines the core types of the hospital operations dashboard.
//
// # Core Types
//
// Hospital is a hospital record owned by a staff account. DirectoryEntry is the
// same hospital as shown to portal users browsing nearby hospitals, with every
// display attribute filled in.
//
// Bed tracks a bed, its ward, its status and the patient occupying it.
// BedStats summarizes beds for the bed management view.
//
// Patient is the profile of a portal user; its location narrows the hospital
// directory.
//
// InventoryItem tracks a supply level and computes restock recommendations
// from a forecast patient count.
//
// Alert and Contact support the emergency workflow.
//
// # Design Principles
//
// - No database or external dependencies
// - Patches carry pointers so absent fields are left untouched
// - Derived display values are deterministic
package domain
