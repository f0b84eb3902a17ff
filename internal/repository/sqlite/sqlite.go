package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospitalops/internal/domain"
	"hospitalops/internal/repository"

	_ "modernc.org/sqlite"
)

var _ repository.Repository = (*Repository)(nil)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and migrates it.
// ":memory:" gives a private in-memory database.
func New(dbPath string) (*Repository, error) {
	memory := dbPath == ":memory:"

	dsn := dbPath
	if !memory {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if memory {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS hospitals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		email TEXT,
		hospital_name TEXT,
		owner_id TEXT,
		created_at DATETIME NOT NULL,
		distance REAL,
		beds INTEGER,
		occupancy REAL,
		rating REAL,
		specializations JSON,
		emergency_rating TEXT,
		wait_time INTEGER
	);

	CREATE TABLE IF NOT EXISTS beds (
		id TEXT PRIMARY KEY,
		owner_email TEXT NOT NULL,
		bed_type TEXT NOT NULL,
		hospital_name TEXT,
		bed_number INTEGER NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		patient_name TEXT,
		patient_age INTEGER,
		patient_admitted_at DATETIME,
		patient_discharge_at DATETIME,
		patient_heart_rate INTEGER,
		patient_spo2 INTEGER,
		patient_bp TEXT,
		patient_conditions TEXT
	);

	CREATE TABLE IF NOT EXISTS patients (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		name TEXT,
		contact TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		phone TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS inventory (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		level REAL NOT NULL,
		status TEXT NOT NULL,
		unit_price REAL NOT NULL DEFAULT 0,
		supplier TEXT,
		last_restocked DATETIME NOT NULL,
		consumption_per_100 REAL NOT NULL DEFAULT 0,
		recommended_restock INTEGER
	);

	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		severity TEXT NOT NULL,
		description TEXT NOT NULL,
		action TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL,
		resolved_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_hospitals_email ON hospitals(email);
	CREATE INDEX IF NOT EXISTS idx_beds_owner ON beds(owner_email);
	CREATE INDEX IF NOT EXISTS idx_inventory_category ON inventory(category);
	CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts(status);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return err
	}

	// patients gained a location after the first release
	return r.addColumnIfNotExists("patients", "location", "TEXT")
}

// addColumnIfNotExists adds a column when an older database lacks it
func (r *Repository) addColumnIfNotExists(table, column, decl string) error {
	rows, err := r.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return fmt.Errorf("failed to scan column info: %w", err)
		}
		if strings.EqualFold(name, column) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if _, err := r.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)); err != nil {
		return fmt.Errorf("failed to add %s.%s: %w", table, column, err)
	}
	return nil
}

// ============================================================================
// Hospitals
// ============================================================================

// ListHospitals returns every hospital, oldest first
func (r *Repository) ListHospitals(ctx context.Context) ([]domain.Hospital, error) {
	return r.queryHospitals(ctx, `SELECT `+hospitalColumns+` FROM hospitals ORDER BY created_at, id`)
}

// ListHospitalsByEmail returns the hospitals registered under email
func (r *Repository) ListHospitalsByEmail(ctx context.Context, email string) ([]domain.Hospital, error) {
	return r.queryHospitals(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE email = ? ORDER BY created_at, id`, email)
}

func (r *Repository) queryHospitals(ctx context.Context, query string, args ...any) ([]domain.Hospital, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := []domain.Hospital{}
	for rows.Next() {
		var row hospitalRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan hospital: %w", err)
		}
		h, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("hospital %s: %w", row.ID, err)
		}
		hospitals = append(hospitals, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hospitals: %w", err)
	}
	return hospitals, nil
}

// GetHospital retrieves a single hospital by ID
func (r *Repository) GetHospital(ctx context.Context, id string) (*domain.Hospital, error) {
	var row hospitalRow
	err := r.db.QueryRowContext(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE id = ?`, id).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query hospital: %w", err)
	}
	return row.toDomain()
}

const hospitalUpsert = `
	INSERT INTO hospitals (` + hospitalColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		location = excluded.location,
		email = excluded.email,
		hospital_name = excluded.hospital_name,
		owner_id = excluded.owner_id,
		distance = COALESCE(excluded.distance, hospitals.distance),
		beds = COALESCE(excluded.beds, hospitals.beds),
		occupancy = COALESCE(excluded.occupancy, hospitals.occupancy),
		rating = COALESCE(excluded.rating, hospitals.rating),
		specializations = COALESCE(excluded.specializations, hospitals.specializations),
		emergency_rating = COALESCE(excluded.emergency_rating, hospitals.emergency_rating),
		wait_time = COALESCE(excluded.wait_time, hospitals.wait_time)
`

// UpsertHospital inserts or updates a hospital. Directory attributes that are
// unset on h keep their stored values.
func (r *Repository) UpsertHospital(ctx context.Context, h *domain.Hospital) error {
	args, err := hospitalInsertArgs(h)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, hospitalUpsert, args...); err != nil {
		return fmt.Errorf("failed to upsert hospital: %w", err)
	}
	return nil
}

// ImportHospitals upserts a batch of hospitals in one transaction
func (r *Repository) ImportHospitals(ctx context.Context, hospitals []domain.Hospital) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, hospitalUpsert)
	if err != nil {
		return fmt.Errorf("failed to prepare hospital statement: %w", err)
	}
	defer stmt.Close()

	for i := range hospitals {
		args, err := hospitalInsertArgs(&hospitals[i])
		if err != nil {
			return fmt.Errorf("hospital %s: %w", hospitals[i].ID, err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to import hospital %s: %w", hospitals[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ============================================================================
// Beds
// ============================================================================

// ListBeds returns the beds registered by ownerEmail ordered by ward and number
func (r *Repository) ListBeds(ctx context.Context, ownerEmail string) ([]domain.Bed, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bedColumns+` FROM beds WHERE owner_email = ? ORDER BY bed_type, bed_number`, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to query beds: %w", err)
	}
	defer rows.Close()

	beds := []domain.Bed{}
	for rows.Next() {
		var row bedRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan bed: %w", err)
		}
		beds = append(beds, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beds: %w", err)
	}
	return beds, nil
}

// GetBed retrieves a single bed by ID
func (r *Repository) GetBed(ctx context.Context, id string) (*domain.Bed, error) {
	var row bedRow
	err := r.db.QueryRowContext(ctx, `SELECT `+bedColumns+` FROM beds WHERE id = ?`, id).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bed: %w", err)
	}
	bed := row.toDomain()
	return &bed, nil
}

// CreateBed inserts a new bed
func (r *Repository) CreateBed(ctx context.Context, bed *domain.Bed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO beds (`+bedColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, bedInsertArgs(bed)...)
	if err != nil {
		return fmt.Errorf("failed to insert bed: %w", err)
	}
	return nil
}

// UpdateBedStatus sets the status of a bed
func (r *Repository) UpdateBedStatus(ctx context.Context, id string, status domain.BedStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE beds SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return fmt.Errorf("failed to update bed status: %w", err)
	}
	return nil
}

// DeleteBed removes a bed
func (r *Repository) DeleteBed(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM beds WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete bed: %w", err)
	}
	return nil
}

// ============================================================================
// Patients
// ============================================================================

// GetPatientByUser retrieves the profile of a portal user
func (r *Repository) GetPatientByUser(ctx context.Context, userID string) (*domain.Patient, error) {
	var (
		p                       domain.Patient
		name, contact, location sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, contact, location, created_at
		FROM patients WHERE user_id = ?
	`, userID).Scan(&p.ID, &p.UserID, &name, &contact, &location, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	p.Name = nullToString(name)
	p.Contact = nullToString(contact)
	p.Location = nullToString(location)
	return &p, nil
}

// UpsertPatient inserts or updates the profile keyed by user
func (r *Repository) UpsertPatient(ctx context.Context, p *domain.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (id, user_id, name, contact, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			contact = excluded.contact,
			location = excluded.location
	`, p.ID, p.UserID, stringToNull(p.Name), stringToNull(p.Contact), stringToNull(p.Location), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert patient: %w", err)
	}
	return nil
}

// ============================================================================
// Contacts
// ============================================================================

// ListContacts returns all emergency contacts ordered by role then name
func (r *Repository) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, role, phone FROM contacts ORDER BY role, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Role, &c.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return contacts, nil
}

// GetContact retrieves a single contact by ID
func (r *Repository) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	var c domain.Contact
	err := r.db.QueryRowContext(ctx, `SELECT id, name, role, phone FROM contacts WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Role, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}
	return &c, nil
}

// CreateContact inserts a new contact
func (r *Repository) CreateContact(ctx context.Context, c *domain.Contact) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, role, phone) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Role, c.Phone); err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// DeleteContact removes a contact
func (r *Repository) DeleteContact(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// ============================================================================
// Inventory
// ============================================================================

// ListInventory returns the inventory, restricted to category when set
func (r *Repository) ListInventory(ctx context.Context, category domain.InventoryCategory) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var row inventoryRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}
	return items, nil
}

// GetInventoryItem retrieves a single item by ID
func (r *Repository) GetInventoryItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var row inventoryRow
	err := r.db.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE id = ?`, id).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory item: %w", err)
	}
	item := row.toDomain()
	return &item, nil
}

// UpsertInventoryItem inserts or replaces an item
func (r *Repository) UpsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (`+inventoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			level = excluded.level,
			status = excluded.status,
			unit_price = excluded.unit_price,
			supplier = excluded.supplier,
			last_restocked = excluded.last_restocked,
			consumption_per_100 = excluded.consumption_per_100,
			recommended_restock = excluded.recommended_restock
	`, inventoryInsertArgs(item)...)
	if err != nil {
		return fmt.Errorf("failed to upsert inventory item: %w", err)
	}
	return nil
}

// CountInventory returns the number of tracked items
func (r *Repository) CountInventory(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return n, nil
}

// ============================================================================
// Alerts
// ============================================================================

// ListAlerts returns alerts newest first, restricted to status when set
func (r *Repository) ListAlerts(ctx context.Context, status domain.AlertStatus) ([]domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.Alert{}
	for rows.Next() {
		var row alertRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}
	return alerts, nil
}

// GetAlert retrieves a single alert by ID
func (r *Repository) GetAlert(ctx context.Context, id string) (*domain.Alert, error) {
	return r.queryAlert(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = ?`, id)
}

// FindActiveAlert returns the active alert with the given title, if any
func (r *Repository) FindActiveAlert(ctx context.Context, title string) (*domain.Alert, error) {
	return r.queryAlert(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE title = ? AND status = ? LIMIT 1`,
		title, string(domain.AlertActive))
}

func (r *Repository) queryAlert(ctx context.Context, query string, args ...any) (*domain.Alert, error) {
	var row alertRow
	err := r.db.QueryRowContext(ctx, query, args...).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query alert: %w", err)
	}
	a := row.toDomain()
	return &a, nil
}

// CreateAlert inserts a new alert
func (r *Repository) CreateAlert(ctx context.Context, a *domain.Alert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts (`+alertColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Title, string(a.Severity), a.Description, stringToNull(a.Action),
		string(a.Status), a.CreatedAt, timePtrToNull(a.ResolvedAt))
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// ResolveAlert marks an alert resolved at the given time
func (r *Repository) ResolveAlert(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET status = ?, resolved_at = ? WHERE id = ?`,
		string(domain.AlertResolved), at, id); err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
