package domain

import "time"

// Patient is the profile of a portal user browsing hospitals
type Patient struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PatientPatch carries the profile fields a user submitted
type PatientPatch struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Contact  *string `json:"contact,omitempty" validate:"omitempty,max=200"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// Apply copies the set fields onto p
func (pp PatientPatch) Apply(p *Patient) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Contact != nil {
		p.Contact = *pp.Contact
	}
	if pp.Location != nil {
		p.Location = *pp.Location
	}
}
