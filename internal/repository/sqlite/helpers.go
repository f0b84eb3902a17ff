package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hospitalops/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullToTimePtr safely converts sql.NullTime to *time.Time
func nullToTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		t := nt.Time
		return &t
	}
	return nil
}

func nullToFloatPtr(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		v := nf.Float64
		return &v
	}
	return nil
}

func nullToIntPtr(ni sql.NullInt64) *int {
	if ni.Valid {
		v := int(ni.Int64)
		return &v
	}
	return nil
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// timePtrToNull safely converts *time.Time to sql.NullTime
func timePtrToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func floatPtrToNull(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func intPtrToNull(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalStrings stores a string list as JSON; empty lists are stored as NULL
func marshalStrings(v []string) (sql.NullString, error) {
	if len(v) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a column to a table:
// 1. Add the field to the row struct below
// 2. APPEND it to scanArgs() and to the matching columns constant
// 3. Map it in toDomain() and in the insert args helper
// 4. Add a migration in sqlite.go migrate() using addColumnIfNotExists()
//
// CRITICAL: column order must match between the columns constant,
// scanArgs() and every SELECT that uses the constant.

// ============================================================================
// Hospital Row Scanner
// ============================================================================

type hospitalRow struct {
	ID                  string
	Name                string
	Location            string
	Email               sql.NullString
	HospitalName        sql.NullString
	OwnerID             sql.NullString
	CreatedAt           time.Time
	Distance            sql.NullFloat64
	Beds                sql.NullInt64
	Occupancy           sql.NullFloat64
	Rating              sql.NullFloat64
	SpecializationsJSON sql.NullString
	EmergencyRating     sql.NullString
	WaitTime            sql.NullInt64
}

// scanArgs MUST match hospitalColumns order exactly
func (r *hospitalRow) scanArgs() []any {
	return []any{
		&r.ID,                  // 1
		&r.Name,                // 2
		&r.Location,            // 3
		&r.Email,               // 4
		&r.HospitalName,        // 5
		&r.OwnerID,             // 6
		&r.CreatedAt,           // 7
		&r.Distance,            // 8
		&r.Beds,                // 9
		&r.Occupancy,           // 10
		&r.Rating,              // 11
		&r.SpecializationsJSON, // 12
		&r.EmergencyRating,     // 13
		&r.WaitTime,            // 14
	}
}

func (r *hospitalRow) toDomain() (*domain.Hospital, error) {
	h := &domain.Hospital{
		ID:              r.ID,
		Name:            r.Name,
		Location:        r.Location,
		Email:           nullToString(r.Email),
		HospitalName:    nullToString(r.HospitalName),
		OwnerID:         nullToString(r.OwnerID),
		CreatedAt:       r.CreatedAt,
		Distance:        nullToFloatPtr(r.Distance),
		Beds:            nullToIntPtr(r.Beds),
		Occupancy:       nullToFloatPtr(r.Occupancy),
		Rating:          nullToFloatPtr(r.Rating),
		EmergencyRating: domain.EmergencyRating(nullToString(r.EmergencyRating)),
		WaitTime:        nullToIntPtr(r.WaitTime),
	}
	if err := unmarshalJSONField(r.SpecializationsJSON, &h.Specializations); err != nil {
		return nil, fmt.Errorf("unmarshal specializations: %w", err)
	}
	return h, nil
}

const hospitalColumns = `id, name, location, email, hospital_name, owner_id, created_at,
	distance, beds, occupancy, rating, specializations, emergency_rating, wait_time`

// hospitalInsertArgs follows hospitalColumns order
func hospitalInsertArgs(h *domain.Hospital) ([]any, error) {
	specs, err := marshalStrings(h.Specializations)
	if err != nil {
		return nil, fmt.Errorf("marshal specializations: %w", err)
	}
	return []any{
		h.ID,
		h.Name,
		h.Location,
		stringToNull(h.Email),
		stringToNull(h.HospitalName),
		stringToNull(h.OwnerID),
		h.CreatedAt,
		floatPtrToNull(h.Distance),
		intPtrToNull(h.Beds),
		floatPtrToNull(h.Occupancy),
		floatPtrToNull(h.Rating),
		specs,
		stringToNull(string(h.EmergencyRating)),
		intPtrToNull(h.WaitTime),
	}, nil
}

// ============================================================================
// Bed Row Scanner
// ============================================================================

type bedRow struct {
	ID                string
	OwnerEmail        string
	BedType           string
	HospitalName      sql.NullString
	BedNumber         int
	Status            string
	CreatedAt         time.Time
	PatientName       sql.NullString
	PatientAge        sql.NullInt64
	PatientAdmittedAt sql.NullTime
	PatientDischarge  sql.NullTime
	PatientHeartRate  sql.NullInt64
	PatientSpO2       sql.NullInt64
	PatientBP         sql.NullString
	PatientConditions sql.NullString
}

// scanArgs MUST match bedColumns order exactly
func (r *bedRow) scanArgs() []any {
	return []any{
		&r.ID,                // 1
		&r.OwnerEmail,        // 2
		&r.BedType,           // 3
		&r.HospitalName,      // 4
		&r.BedNumber,         // 5
		&r.Status,            // 6
		&r.CreatedAt,         // 7
		&r.PatientName,       // 8
		&r.PatientAge,        // 9
		&r.PatientAdmittedAt, // 10
		&r.PatientDischarge,  // 11
		&r.PatientHeartRate,  // 12
		&r.PatientSpO2,       // 13
		&r.PatientBP,         // 14
		&r.PatientConditions, // 15
	}
}

func (r *bedRow) toDomain() domain.Bed {
	return domain.Bed{
		ID:                r.ID,
		OwnerEmail:        r.OwnerEmail,
		BedType:           domain.BedType(r.BedType),
		HospitalName:      nullToString(r.HospitalName),
		BedNumber:         r.BedNumber,
		Status:            domain.BedStatus(r.Status),
		CreatedAt:         r.CreatedAt,
		PatientName:       nullToString(r.PatientName),
		PatientAge:        nullToIntPtr(r.PatientAge),
		PatientAdmittedAt: nullToTimePtr(r.PatientAdmittedAt),
		PatientDischarge:  nullToTimePtr(r.PatientDischarge),
		PatientHeartRate:  nullToIntPtr(r.PatientHeartRate),
		PatientSpO2:       nullToIntPtr(r.PatientSpO2),
		PatientBP:         nullToString(r.PatientBP),
		PatientConditions: nullToString(r.PatientConditions),
	}
}

const bedColumns = `id, owner_email, bed_type, hospital_name, bed_number, status, created_at,
	patient_name, patient_age, patient_admitted_at, patient_discharge_at,
	patient_heart_rate, patient_spo2, patient_bp, patient_conditions`

func bedInsertArgs(b *domain.Bed) []any {
	return []any{
		b.ID,
		b.OwnerEmail,
		string(b.BedType),
		stringToNull(b.HospitalName),
		b.BedNumber,
		string(b.Status),
		b.CreatedAt,
		stringToNull(b.PatientName),
		intPtrToNull(b.PatientAge),
		timePtrToNull(b.PatientAdmittedAt),
		timePtrToNull(b.PatientDischarge),
		intPtrToNull(b.PatientHeartRate),
		intPtrToNull(b.PatientSpO2),
		stringToNull(b.PatientBP),
		stringToNull(b.PatientConditions),
	}
}

// ============================================================================
// Inventory Row Scanner
// ============================================================================

type inventoryRow struct {
	ID                 string
	Name               string
	Category           string
	Level              float64
	Status             string
	UnitPrice          float64
	Supplier           sql.NullString
	LastRestocked      time.Time
	Consumption        float64
	RecommendedRestock sql.NullInt64
}

// scanArgs MUST match inventoryColumns order exactly
func (r *inventoryRow) scanArgs() []any {
	return []any{
		&r.ID,                 // 1
		&r.Name,               // 2
		&r.Category,           // 3
		&r.Level,              // 4
		&r.Status,             // 5
		&r.UnitPrice,          // 6
		&r.Supplier,           // 7
		&r.LastRestocked,      // 8
		&r.Consumption,        // 9
		&r.RecommendedRestock, // 10
	}
}

func (r *inventoryRow) toDomain() domain.InventoryItem {
	return domain.InventoryItem{
		ID:                        r.ID,
		Name:                      r.Name,
		Category:                  domain.InventoryCategory(r.Category),
		Level:                     r.Level,
		Status:                    domain.StockStatus(r.Status),
		UnitPrice:                 r.UnitPrice,
		Supplier:                  nullToString(r.Supplier),
		LastRestocked:             r.LastRestocked,
		ConsumptionPer100Patients: r.Consumption,
		RecommendedRestock:        nullToIntPtr(r.RecommendedRestock),
	}
}

const inventoryColumns = `id, name, category, level, status, unit_price, supplier,
	last_restocked, consumption_per_100, recommended_restock`

func inventoryInsertArgs(i *domain.InventoryItem) []any {
	return []any{
		i.ID,
		i.Name,
		string(i.Category),
		i.Level,
		string(i.Status),
		i.UnitPrice,
		stringToNull(i.Supplier),
		i.LastRestocked,
		i.ConsumptionPer100Patients,
		intPtrToNull(i.RecommendedRestock),
	}
}

// ============================================================================
// Alert Row Scanner
// ============================================================================

type alertRow struct {
	ID          string
	Title       string
	Severity    string
	Description string
	Action      sql.NullString
	Status      string
	CreatedAt   time.Time
	ResolvedAt  sql.NullTime
}

// scanArgs MUST match alertColumns order exactly
func (r *alertRow) scanArgs() []any {
	return []any{
		&r.ID,          // 1
		&r.Title,       // 2
		&r.Severity,    // 3
		&r.Description, // 4
		&r.Action,      // 5
		&r.Status,      // 6
		&r.CreatedAt,   // 7
		&r.ResolvedAt,  // 8
	}
}

func (r *alertRow) toDomain() domain.Alert {
	return domain.Alert{
		ID:          r.ID,
		Title:       r.Title,
		Severity:    domain.AlertSeverity(r.Severity),
		Description: r.Description,
		Action:      nullToString(r.Action),
		Status:      domain.AlertStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  nullToTimePtr(r.ResolvedAt),
	}
}

const alertColumns = `id, title, severity, description, action, status, created_at, resolved_at`
