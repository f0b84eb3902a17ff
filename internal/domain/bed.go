package domain

import (
	"strings"
	"time"
)

// BedType is the ward a bed belongs to
type BedType string

const (
	BedTypeICU     BedType = "ICU"
	BedTypeDeluxe  BedType = "Deluxe"
	BedTypeNormal  BedType = "Normal"
	BedTypeGeneral BedType = "General"
)

// BedStatus is the occupancy state of a bed
type BedStatus string

const (
	BedStatusAvailable   BedStatus = "Available"
	BedStatusOccupied    BedStatus = "Occupied"
	BedStatusCleaning    BedStatus = "Cleaning"
	BedStatusMaintenance BedStatus = "Maintenance"
)

// PatientCondition is the normalized condition of a bed's occupant
type PatientCondition string

const (
	ConditionStable     PatientCondition = "Stable"
	ConditionCritical   PatientCondition = "Critical"
	ConditionRecovering PatientCondition = "Recovering"
)

// Bed is a hospital bed and, when occupied, its patient
type Bed struct {
	ID           string    `json:"id"`
	OwnerEmail   string    `json:"owner_email"`
	BedType      BedType   `json:"bed_type"`
	HospitalName string    `json:"hospital_name,omitempty"`
	BedNumber    int       `json:"bed_number"`
	Status       BedStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	PatientName       string     `json:"patient_name,omitempty"`
	PatientAge        *int       `json:"patient_age,omitempty"`
	PatientAdmittedAt *time.Time `json:"patient_admitted_at,omitempty"`
	PatientDischarge  *time.Time `json:"patient_est_discharge_at,omitempty"`
	PatientHeartRate  *int       `json:"patient_vital_bpm,omitempty"`
	PatientSpO2       *int       `json:"patient_vital_spo2,omitempty"`
	PatientBP         string     `json:"patient_bp,omitempty"`
	PatientConditions string     `json:"patient_conditions,omitempty"`
}

// HasPatient reports whether any patient field is recorded
func (b *Bed) HasPatient() bool {
	return b.PatientName != "" || b.PatientAge != nil || b.PatientAdmittedAt != nil ||
		b.PatientHeartRate != nil || b.PatientBP != ""
}

// Condition maps the free-text conditions to a normalized value
func (b *Bed) Condition() PatientCondition {
	c := strings.ToLower(strings.TrimSpace(b.PatientConditions))
	switch {
	case strings.Contains(c, "critical"):
		return ConditionCritical
	case c != "":
		return ConditionRecovering
	default:
		return ConditionStable
	}
}

// BedStats summarizes a set of beds for the bed management view
type BedStats struct {
	Total             int `json:"total"`
	Occupied          int `json:"occupied"`
	OccupancyRate     int `json:"occupancy_rate"`
	PendingAdmissions int `json:"pending_admissions"`
	DischargesToday   int `json:"discharges_today"`
}

// ComputeBedStats counts beds by status. Discharges are counted when the
// estimated discharge falls on the same UTC date as now.
func ComputeBedStats(beds []Bed, now time.Time) BedStats {
	stats := BedStats{Total: len(beds)}
	today := now.UTC().Format(time.DateOnly)

	for _, b := range beds {
		switch b.Status {
		case BedStatusOccupied:
			stats.Occupied++
		case BedStatusAvailable:
			stats.PendingAdmissions++
		}
		if b.PatientDischarge != nil && b.PatientDischarge.UTC().Format(time.DateOnly) == today {
			stats.DischargesToday++
		}
	}

	if stats.Total > 0 {
		stats.OccupancyRate = int(float64(stats.Occupied)/float64(stats.Total)*100 + 0.5)
	}
	return stats
}
