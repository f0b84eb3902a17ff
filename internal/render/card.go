// Package render turns directory entries and layout scenes into markup.
//
// Cards are opaque to the layout engine: the engine hands over final
// coordinates and nothing else.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"hospitalops/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var cardTemplate = template.Must(template.ParseFS(templateFS, "templates/card.html"))

// OccupancyBand colours the occupancy bar
type OccupancyBand string

const (
	BandCritical OccupancyBand = "critical"
	BandElevated OccupancyBand = "elevated"
	BandNormal   OccupancyBand = "normal"
)

// BandForOccupancy classifies an occupancy percentage
func BandForOccupancy(occupancy float64) OccupancyBand {
	switch {
	case occupancy > 80:
		return BandCritical
	case occupancy > 60:
		return BandElevated
	default:
		return BandNormal
	}
}

// CardView is the presentation model of one hospital card. The compact view
// shows the first block of fields; the expanded view adds the rest.
type CardView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Address   string        `json:"address"`
	Rating    string        `json:"rating"`
	Distance  string        `json:"distance"`
	WaitTime  string        `json:"wait_time"`
	Occupancy string        `json:"occupancy"`
	Band      OccupancyBand `json:"band"`

	TotalBeds       int                    `json:"total_beds"`
	AvailableBeds   int                    `json:"available_beds"`
	Specializations []string               `json:"specializations"`
	EmergencyRating domain.EmergencyRating `json:"emergency_rating"`
	DetailsURL      string                 `json:"details_url"`
}

// NewCardView builds the card for a directory entry. detailsURL is what the
// "view details" action opens.
func NewCardView(e domain.DirectoryEntry, detailsURL string) CardView {
	return CardView{
		ID:              e.ID,
		Name:            e.Name,
		Address:         e.Address,
		Rating:          strconv.FormatFloat(e.Rating, 'f', -1, 64),
		Distance:        strconv.FormatFloat(e.Distance, 'f', -1, 64) + " km",
		WaitTime:        fmt.Sprintf("%d min", e.WaitTime),
		Occupancy:       strconv.FormatFloat(e.Occupancy, 'f', -1, 64) + "%",
		Band:            BandForOccupancy(e.Occupancy),
		TotalBeds:       e.Beds,
		AvailableBeds:   e.AvailableBeds(),
		Specializations: e.Specializations,
		EmergencyRating: e.EmergencyRating,
		DetailsURL:      detailsURL,
	}
}

type cardData struct {
	CardView
	Left float64
	Top  float64
}

// RenderCard writes the card as an absolutely positioned HTML fragment
func RenderCard(w io.Writer, view CardView, left, top float64) error {
	if err := cardTemplate.Execute(w, cardData{CardView: view, Left: left, Top: top}); err != nil {
		return fmt.Errorf("render card %s: %w", view.ID, err)
	}
	return nil
}
