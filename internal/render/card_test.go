package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitalops/internal/domain"
)

func sampleEntry() domain.DirectoryEntry {
	return domain.DirectoryEntry{
		ID:              "h1",
		Name:            "Lilavati Hospital",
		Distance:        2.5,
		Beds:            200,
		Occupancy:       75,
		Rating:          4.5,
		Address:         "Bandra West, Mumbai",
		Specializations: []string{"Cardiology", "Neurology"},
		EmergencyRating: domain.EmergencyMedium,
		WaitTime:        25,
	}
}

func TestBandForOccupancy(t *testing.T) {
	tests := []struct {
		occupancy float64
		want      OccupancyBand
	}{
		{95, BandCritical},
		{80.5, BandCritical},
		{80, BandElevated},
		{61, BandElevated},
		{60, BandNormal},
		{0, BandNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandForOccupancy(tt.occupancy), "occupancy %v", tt.occupancy)
	}
}

func TestNewCardView(t *testing.T) {
	v := NewCardView(sampleEntry(), "/api/hospitals/h1/card")

	assert.Equal(t, "Lilavati Hospital", v.Name)
	assert.Equal(t, "4.5", v.Rating)
	assert.Equal(t, "2.5 km", v.Distance)
	assert.Equal(t, "25 min", v.WaitTime)
	assert.Equal(t, "75%", v.Occupancy)
	assert.Equal(t, BandElevated, v.Band)
	assert.Equal(t, 200, v.TotalBeds)
	assert.Equal(t, 50, v.AvailableBeds)
	assert.Equal(t, domain.EmergencyMedium, v.EmergencyRating)
}

func TestRenderCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCard(&buf, NewCardView(sampleEntry(), "/api/hospitals/h1/card"), 402.5, 30))

	out := buf.String()
	assert.Contains(t, out, `data-entity-id="h1"`)
	assert.Contains(t, out, "left:402.5px")
	assert.Contains(t, out, "top:30px")
	assert.Contains(t, out, "Lilavati Hospital")
	assert.Contains(t, out, "occupancy-elevated")
	assert.Contains(t, out, "<li>Cardiology</li>")
	assert.Contains(t, out, `href="/api/hospitals/h1/card"`)
}

func TestRenderCardEscapesText(t *testing.T) {
	e := sampleEntry()
	e.Name = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, RenderCard(&buf, NewCardView(e, "#"), 0, 0))
	assert.NotContains(t, buf.String(), "<script>")
}
