package domain

import "time"

// EmergencyRating is the coarse load indicator shown on a hospital card
type EmergencyRating string

const (
	EmergencyHigh   EmergencyRating = "high"
	EmergencyMedium EmergencyRating = "medium"
	EmergencyLow    EmergencyRating = "low"
)

// Hospital is a hospital record owned by a staff account
type Hospital struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Email        string    `json:"email,omitempty"`
	HospitalName string    `json:"hospital_name,omitempty"`
	OwnerID      string    `json:"owner_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Directory attributes; nil when never recorded
	Distance        *float64        `json:"distance,omitempty"`
	Beds            *int            `json:"beds,omitempty"`
	Occupancy       *float64        `json:"occupancy,omitempty"`
	Rating          *float64        `json:"rating,omitempty"`
	Specializations []string        `json:"specializations,omitempty"`
	EmergencyRating EmergencyRating `json:"emergency_rating,omitempty"`
	WaitTime        *int            `json:"wait_time,omitempty"`
}

// NewHospital creates a hospital with a creation timestamp
func NewHospital(id, name, location string) *Hospital {
	return &Hospital{
		ID:        id,
		Name:      name,
		Location:  location,
		CreatedAt: time.Now(),
	}
}

// HospitalPatch lists the fields an owner may change; nil fields are untouched
type HospitalPatch struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	HospitalName *string `json:"hospital_name,omitempty" validate:"omitempty,max=200"`
}

// Apply copies the set fields of the patch onto h
func (p HospitalPatch) Apply(h *Hospital) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Location != nil {
		h.Location = *p.Location
	}
	if p.Email != nil {
		h.Email = *p.Email
	}
	if p.HospitalName != nil {
		h.HospitalName = *p.HospitalName
	}
}

// Empty reports whether the patch changes nothing
func (p HospitalPatch) Empty() bool {
	return p.Name == nil && p.Location == nil && p.Email == nil && p.HospitalName == nil
}
