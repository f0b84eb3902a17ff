package domain

import (
	"reflect"
	"testing"
)

func TestFromHospitalKeepsRecordedAttributes(t *testing.T) {
	distance := 2.3
	beds := 450
	occupancy := 78.0
	rating := 4.8
	wait := 15

	h := &Hospital{
		ID:              "h1",
		Name:            "Apollo Hospitals",
		Location:        "Bandra, Mumbai",
		Distance:        &distance,
		Beds:            &beds,
		Occupancy:       &occupancy,
		Rating:          &rating,
		Specializations: []string{"Cardiology"},
		WaitTime:        &wait,
	}

	e := FromHospital(h)

	if e.Distance != 2.3 || e.Beds != 450 || e.Occupancy != 78 || e.Rating != 4.8 || e.WaitTime != 15 {
		t.Errorf("recorded attributes not kept: %+v", e)
	}
	if e.Address != "Bandra, Mumbai" {
		t.Errorf("expected address from location, got %q", e.Address)
	}
	if !reflect.DeepEqual(e.Specializations, []string{"Cardiology"}) {
		t.Errorf("unexpected specializations %v", e.Specializations)
	}
	if e.EmergencyRating != EmergencyMedium {
		t.Errorf("expected medium rating for 78%%, got %s", e.EmergencyRating)
	}
}

func TestFromHospitalFillsMissingAttributes(t *testing.T) {
	h := &Hospital{ID: "abc", Email: "ops@example.org"}

	a := FromHospital(h)
	b := FromHospital(h)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("fill must be deterministic: %+v vs %+v", a, b)
	}
	if a.Name != "Unnamed Hospital" || a.Address != "Unknown" {
		t.Errorf("unexpected defaults: %q %q", a.Name, a.Address)
	}
	if a.Distance < 0.5 || a.Distance > 4.5 {
		t.Errorf("distance %v out of range", a.Distance)
	}
	if a.Beds < 150 || a.Beds >= 450 {
		t.Errorf("beds %d out of range", a.Beds)
	}
	if a.Occupancy < 50 || a.Occupancy >= 90 {
		t.Errorf("occupancy %v out of range", a.Occupancy)
	}
	if a.Rating < 4.0 || a.Rating > 4.9 {
		t.Errorf("rating %v out of range", a.Rating)
	}
	if a.WaitTime < 10 || a.WaitTime >= 40 {
		t.Errorf("wait time %d out of range", a.WaitTime)
	}
	if !reflect.DeepEqual(a.Specializations, DefaultSpecializations) {
		t.Errorf("expected default specializations, got %v", a.Specializations)
	}
	if a.EmergencyRating != RatingForOccupancy(a.Occupancy) {
		t.Errorf("rating should derive from occupancy")
	}
}

func TestFromHospitalUsesHospitalName(t *testing.T) {
	e := FromHospital(&Hospital{ID: "x", HospitalName: "City General"})
	if e.Name != "City General" {
		t.Errorf("expected hospital name fallback, got %q", e.Name)
	}
}

func TestRatingForOccupancy(t *testing.T) {
	tests := []struct {
		occupancy float64
		want      EmergencyRating
	}{
		{95, EmergencyHigh},
		{81, EmergencyHigh},
		{80, EmergencyMedium},
		{66, EmergencyMedium},
		{65, EmergencyLow},
		{10, EmergencyLow},
	}

	for _, tt := range tests {
		if got := RatingForOccupancy(tt.occupancy); got != tt.want {
			t.Errorf("RatingForOccupancy(%v) = %s, want %s", tt.occupancy, got, tt.want)
		}
	}
}

func TestDirectoryEntryHelpers(t *testing.T) {
	e := DirectoryEntry{ID: "1", Name: "Jaslok Hospital", Address: "Peddar Road, Mumbai", Beds: 350, Occupancy: 68, Distance: 2.8}

	if got := e.AvailableBeds(); got != 112 {
		t.Errorf("AvailableBeds() = %d, want 112", got)
	}
	if e.Key() != "Jaslok Hospital::Peddar Road, Mumbai" {
		t.Errorf("unexpected key %q", e.Key())
	}
	if !e.MatchesLocation("  mumbai ") {
		t.Error("expected case-insensitive address match")
	}
	if !e.MatchesLocation("jaslok") {
		t.Error("expected name match")
	}
	if e.MatchesLocation("") {
		t.Error("empty location must not match")
	}
	if ent := e.Entity(); ent.ID != "1" || ent.Distance != 2.8 {
		t.Errorf("unexpected entity %+v", ent)
	}
}
