package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hospitalops/internal/domain"
	"hospitalops/internal/repository"
)

// defaultInventory is stocked into an empty database
var defaultInventory = []domain.InventoryItem{
	{ID: "1", Name: "Oxygen Cylinders", Category: domain.CategoryMedical, Level: 98, UnitPrice: 150, Supplier: "AirLiquide", ConsumptionPer100Patients: 5},
	{ID: "2", Name: "PPE Kits", Category: domain.CategoryGeneral, Level: 25, UnitPrice: 25, Supplier: "SafetyFirst", ConsumptionPer100Patients: 15},
	{ID: "3", Name: "IV Fluids (NS)", Category: domain.CategoryPharma, Level: 82, UnitPrice: 12, Supplier: "PharmaCorp", ConsumptionPer100Patients: 8},
	{ID: "4", Name: "Surgical Masks", Category: domain.CategorySurgical, Level: 45, UnitPrice: 0.5, Supplier: "SafetyFirst", ConsumptionPer100Patients: 20},
	{ID: "5", Name: "Paracetamol 500mg", Category: domain.CategoryPharma, Level: 90, UnitPrice: 2, Supplier: "PharmaCorp", ConsumptionPer100Patients: 2},
	{ID: "6", Name: "Syringes 5ml", Category: domain.CategorySurgical, Level: 15, UnitPrice: 0.2, Supplier: "MediEquip", ConsumptionPer100Patients: 12},
	{ID: "7", Name: "Bandages", Category: domain.CategoryGeneral, Level: 60, UnitPrice: 5, Supplier: "MediEquip", ConsumptionPer100Patients: 5},
}

// InventoryService tracks supply levels and restock recommendations
type InventoryService struct {
	repo   repository.Repository
	bus    *EventBus
	alerts *AlertService
	logger *zap.Logger
	now    func() time.Time
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo repository.Repository, bus *EventBus, alerts *AlertService, logger *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, bus: bus, alerts: alerts, logger: logger, now: time.Now}
}

// SeedDefaults stocks the default items when the inventory is empty
func (s *InventoryService) SeedDefaults(ctx context.Context) error {
	n, err := s.repo.CountInventory(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := s.now()
	for _, item := range defaultInventory {
		item.Status = domain.StatusForLevel(item.Level)
		item.LastRestocked = now
		if err := s.repo.UpsertInventoryItem(ctx, &item); err != nil {
			return fmt.Errorf("seed inventory %s: %w", item.Name, err)
		}
	}
	s.logger.Info("inventory seeded", zap.Int("items", len(defaultInventory)))
	return nil
}

// List returns the inventory, restricted to category unless it is empty
func (s *InventoryService) List(ctx context.Context, category domain.InventoryCategory) ([]domain.InventoryItem, error) {
	switch category {
	case "", domain.CategoryMedical, domain.CategoryPharma, domain.CategorySurgical, domain.CategoryGeneral:
	default:
		return nil, invalid("unknown category %q", category)
	}
	return s.repo.ListInventory(ctx, category)
}

// Forecast stores a restock recommendation on every item whose level would
// fall below the threshold after serving the forecast patient count. Current
// statuses are left alone. A warning alert is raised per recommendation.
func (s *InventoryService) Forecast(ctx context.Context, patients int) ([]domain.InventoryItem, error) {
	if patients < 0 {
		return nil, invalid("patient forecast must not be negative")
	}

	items, err := s.repo.ListInventory(ctx, "")
	if err != nil {
		return nil, err
	}

	for i := range items {
		item := &items[i]
		if item.Status == domain.StockOrdered {
			continue
		}
		item.RecommendedRestock = item.RecommendRestock(patients)
		if err := s.repo.UpsertInventoryItem(ctx, item); err != nil {
			return nil, err
		}
		if item.RecommendedRestock != nil {
			s.raise(ctx, fmt.Sprintf("Restock needed: %s", item.Name), domain.SeverityWarning,
				fmt.Sprintf("Projected level %.0f%% for %d patients", item.ProjectedLevel(patients), patients),
				fmt.Sprintf("Order %d units from %s", *item.RecommendedRestock, item.Supplier))
		}
	}

	s.logger.Info("inventory forecast applied", zap.Int("patients", patients))
	s.bus.Publish(Event{Type: EventInventoryUpdated, Payload: map[string]int{"forecast_patients": patients}})
	return items, nil
}

// MarkOrdered records that a restock order was placed for an item
func (s *InventoryService) MarkOrdered(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Status = domain.StockOrdered
	item.RecommendedRestock = nil
	return item, s.save(ctx, item)
}

// Restock fills an item back to 100%
func (s *InventoryService) Restock(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Level = 100
	item.Status = domain.StockOptimal
	item.RecommendedRestock = nil
	item.LastRestocked = s.now()
	return item, s.save(ctx, item)
}

// CheckCritical raises an alert for every item whose current level is
// critical
func (s *InventoryService) CheckCritical(ctx context.Context) error {
	items, err := s.repo.ListInventory(ctx, "")
	if err != nil {
		return err
	}
	for _, item := range items {
		if domain.StatusForLevel(item.Level) != domain.StockCritical || item.Status == domain.StockOrdered {
			continue
		}
		s.raise(ctx, fmt.Sprintf("Critical stock: %s", item.Name), domain.SeverityCritical,
			fmt.Sprintf("%s at %.0f%%", item.Name, item.Level),
			fmt.Sprintf("Restock from %s", item.Supplier))
	}
	return nil
}

func (s *InventoryService) get(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.repo.GetInventoryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("inventory item", itemID)
	}
	return item, nil
}

func (s *InventoryService) save(ctx context.Context, item *domain.InventoryItem) error {
	if err := s.repo.UpsertInventoryItem(ctx, item); err != nil {
		return err
	}
	s.logger.Info("inventory item updated",
		zap.String("item", item.Name), zap.String("status", string(item.Status)))
	s.bus.Publish(Event{Type: EventInventoryUpdated, Payload: item})
	return nil
}

func (s *InventoryService) raise(ctx context.Context, title string, sev domain.AlertSeverity, desc, action string) {
	if s.alerts == nil {
		return
	}
	if _, err := s.alerts.Raise(ctx, title, sev, desc, action); err != nil {
		s.logger.Error("failed to raise inventory alert", zap.String("title", title), zap.Error(err))
	}
}
