package repository

import (
	"context"
	"time"

	"hospitalops/internal/domain"
)

// Repository defines the interface for hospital operations data access.
// Single-record reads return (nil, nil) when the record does not exist.
type Repository interface {
	// Hospitals
	ListHospitals(ctx context.Context) ([]domain.Hospital, error)
	ListHospitalsByEmail(ctx context.Context, email string) ([]domain.Hospital, error)
	GetHospital(ctx context.Context, id string) (*domain.Hospital, error)
	UpsertHospital(ctx context.Context, h *domain.Hospital) error
	ImportHospitals(ctx context.Context, hospitals []domain.Hospital) error

	// Beds
	ListBeds(ctx context.Context, ownerEmail string) ([]domain.Bed, error)
	GetBed(ctx context.Context, id string) (*domain.Bed, error)
	CreateBed(ctx context.Context, bed *domain.Bed) error
	UpdateBedStatus(ctx context.Context, id string, status domain.BedStatus) error
	DeleteBed(ctx context.Context, id string) error

	// Patients
	GetPatientByUser(ctx context.Context, userID string) (*domain.Patient, error)
	UpsertPatient(ctx context.Context, p *domain.Patient) error

	// Emergency contacts
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	CreateContact(ctx context.Context, c *domain.Contact) error
	DeleteContact(ctx context.Context, id string) error

	// Inventory
	ListInventory(ctx context.Context, category domain.InventoryCategory) ([]domain.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	UpsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error
	CountInventory(ctx context.Context) (int, error)

	// Alerts
	ListAlerts(ctx context.Context, status domain.AlertStatus) ([]domain.Alert, error)
	GetAlert(ctx context.Context, id string) (*domain.Alert, error)
	FindActiveAlert(ctx context.Context, title string) (*domain.Alert, error)
	CreateAlert(ctx context.Context, a *domain.Alert) error
	ResolveAlert(ctx context.Context, id string, at time.Time) error

	// Close releases resources
	Close() error
}
