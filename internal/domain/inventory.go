package domain

import (
	"math"
	"time"
)

// InventoryCategory groups stock items
type InventoryCategory string

const (
	CategoryMedical  InventoryCategory = "Medical"
	CategoryPharma   InventoryCategory = "Pharma"
	CategorySurgical InventoryCategory = "Surgical"
	CategoryGeneral  InventoryCategory = "General"
)

// StockStatus describes how healthy a stock level is
type StockStatus string

const (
	StockOptimal  StockStatus = "Optimal"
	StockGood     StockStatus = "Good"
	StockLow      StockStatus = "Low"
	StockCritical StockStatus = "Critical"
	StockOrdered  StockStatus = "Ordered"
)

// RestockThreshold is the projected level below which a restock is advised
const RestockThreshold = 30.0

// InventoryItem is a tracked supply with its fill level in percent
type InventoryItem struct {
	ID                        string            `json:"id"`
	Name                      string            `json:"name"`
	Category                  InventoryCategory `json:"category"`
	Level                     float64           `json:"level"`
	Status                    StockStatus       `json:"status"`
	UnitPrice                 float64           `json:"unit_price"`
	Supplier                  string            `json:"supplier"`
	LastRestocked             time.Time         `json:"last_restocked"`
	ConsumptionPer100Patients float64           `json:"consumption_per_100_patients"`
	RecommendedRestock        *int              `json:"recommended_restock,omitempty"`
}

// StatusForLevel classifies a fill level
func StatusForLevel(level float64) StockStatus {
	switch {
	case level >= 90:
		return StockOptimal
	case level >= 60:
		return StockGood
	case level >= RestockThreshold:
		return StockLow
	default:
		return StockCritical
	}
}

// ProjectedLevel is the level left after serving the forecast patient count
func (i *InventoryItem) ProjectedLevel(forecastPatients int) float64 {
	depletion := float64(forecastPatients) / 100 * i.ConsumptionPer100Patients
	return math.Max(0, i.Level-depletion)
}

// RecommendRestock returns the units to order for the forecast, or nil when
// the projected level stays above the threshold
func (i *InventoryItem) RecommendRestock(forecastPatients int) *int {
	projected := i.ProjectedLevel(forecastPatients)
	if projected >= RestockThreshold {
		return nil
	}
	qty := int(math.Ceil((100 - projected) * 10))
	return &qty
}
