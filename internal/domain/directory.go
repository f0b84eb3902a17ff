package domain

import (
	"hash/fnv"
	"math"
	"strings"

	"hospitalops/internal/layout"
)

// DefaultSpecializations is shown for hospitals that never listed any
var DefaultSpecializations = []string{"General", "Emergency", "Outpatient"}

// DirectoryEntry is a hospital as shown in the nearby-hospitals view
type DirectoryEntry struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Distance        float64         `json:"distance" yaml:"distance"`
	Beds            int             `json:"beds" yaml:"beds"`
	Occupancy       float64         `json:"occupancy" yaml:"occupancy"`
	Rating          float64         `json:"rating" yaml:"rating"`
	Address         string          `json:"address" yaml:"address"`
	Specializations []string        `json:"specializations" yaml:"specializations"`
	EmergencyRating EmergencyRating `json:"emergency_rating" yaml:"emergency_rating"`
	WaitTime        int             `json:"wait_time" yaml:"wait_time"`
}

// Key identifies an entry for de-duplication across sources
func (e DirectoryEntry) Key() string {
	return e.Name + "::" + e.Address
}

// Entity returns the layout entity for the entry
func (e DirectoryEntry) Entity() layout.Entity {
	return layout.Entity{ID: e.ID, Distance: e.Distance}
}

// AvailableBeds estimates free beds from capacity and occupancy
func (e DirectoryEntry) AvailableBeds() int {
	return int(math.Ceil(float64(e.Beds) * (1 - e.Occupancy/100)))
}

// MatchesLocation reports whether the entry's name or address mentions loc
func (e DirectoryEntry) MatchesLocation(loc string) bool {
	loc = strings.ToLower(strings.TrimSpace(loc))
	if loc == "" {
		return false
	}
	return strings.Contains(strings.ToLower(e.Address), loc) ||
		strings.Contains(strings.ToLower(e.Name), loc)
}

// RatingForOccupancy derives an emergency rating from occupancy percent
func RatingForOccupancy(occupancy float64) EmergencyRating {
	switch {
	case occupancy > 80:
		return EmergencyHigh
	case occupancy > 65:
		return EmergencyMedium
	default:
		return EmergencyLow
	}
}

// FromHospital converts a stored hospital into a directory entry. Attributes
// that were never recorded are filled from a hash of the id so the same
// hospital always lands in the same place.
func FromHospital(h *Hospital) DirectoryEntry {
	seed := newSeed(h.ID + h.Email)

	entry := DirectoryEntry{
		ID:      h.ID,
		Name:    h.Name,
		Address: h.Location,
	}
	if entry.Name == "" {
		entry.Name = h.HospitalName
	}
	if entry.Name == "" {
		entry.Name = "Unnamed Hospital"
	}
	if entry.Address == "" {
		entry.Address = "Unknown"
	}

	if h.Distance != nil {
		entry.Distance = *h.Distance
	} else {
		entry.Distance = math.Round((seed.next()*4+0.5)*10) / 10
	}
	if h.Beds != nil {
		entry.Beds = *h.Beds
	} else {
		entry.Beds = int(seed.next()*300) + 150
	}
	if h.Occupancy != nil {
		entry.Occupancy = *h.Occupancy
	} else {
		entry.Occupancy = float64(int(seed.next()*40) + 50)
	}
	if h.Rating != nil {
		entry.Rating = *h.Rating
	} else {
		entry.Rating = math.Round((seed.next()*0.9+4.0)*10) / 10
	}
	if len(h.Specializations) > 0 {
		entry.Specializations = append([]string(nil), h.Specializations...)
	} else {
		entry.Specializations = append([]string(nil), DefaultSpecializations...)
	}
	if h.EmergencyRating != "" {
		entry.EmergencyRating = h.EmergencyRating
	} else {
		entry.EmergencyRating = RatingForOccupancy(entry.Occupancy)
	}
	if h.WaitTime != nil {
		entry.WaitTime = *h.WaitTime
	} else {
		entry.WaitTime = int(seed.next()*30) + 10
	}

	return entry
}

// seed is a small deterministic generator of values in [0,1)
type seed struct {
	state uint64
}

func newSeed(key string) *seed {
	h := fnv.New64a()
	h.Write([]byte(key))
	s := h.Sum64()
	if s == 0 {
		s = 1
	}
	return &seed{state: s}
}

// next advances a xorshift64 generator
func (s *seed) next() float64 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 7
	s.state ^= s.state << 17
	return float64(s.state>>11) / float64(1<<53)
}

// Entities returns the layout entities for a list of entries, in order
func Entities(entries []DirectoryEntry) []layout.Entity {
	out := make([]layout.Entity, len(entries))
	for i, e := range entries {
		out[i] = e.Entity()
	}
	return out
}

// Directory is the file form of a hospital list
type Directory struct {
	Hospitals []DirectoryEntry `json:"hospitals" yaml:"hospitals"`
}
