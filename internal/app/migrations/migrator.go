package migrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// table is one CREATE TABLE IF NOT EXISTS statement
type table struct {
	name string
	ddl  string
}

// schema lists the tables in foreign-key dependency order
var schema = []table{
	{
		name: "users",
		ddl: `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(10) NOT NULL DEFAULT 'staff' CHECK (role IN ('admin', 'staff')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	},
	{
		name: "rooms",
		ddl: `
	CREATE TABLE IF NOT EXISTS rooms (
		room_no VARCHAR(10) PRIMARY KEY,
		room_type VARCHAR(50) NOT NULL,
		capacity INT NOT NULL CHECK (capacity > 0),
		occupied INT NOT NULL DEFAULT 0 CHECK (occupied >= 0),
		rent NUMERIC(10, 2) NOT NULL CHECK (rent > 0),
		status VARCHAR(12) NOT NULL DEFAULT 'Available' CHECK (status IN ('Available', 'Full', 'Maintenance'))
	);`,
	},
	{
		name: "students",
		ddl: `
	CREATE TABLE IF NOT EXISTS students (
		student_id VARCHAR(20) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		gender VARCHAR(10),
		age INT,
		email VARCHAR(100) UNIQUE,
		contact VARCHAR(20),
		admission_date DATE,
		room_no VARCHAR(10) REFERENCES rooms(room_no) ON DELETE SET NULL
	);`,
	},
	{
		name: "payments",
		ddl: `
	CREATE TABLE IF NOT EXISTS payments (
		payment_id SERIAL PRIMARY KEY,
		student_id VARCHAR(20) REFERENCES students(student_id) ON DELETE SET NULL,
		amount NUMERIC(10, 2) NOT NULL CHECK (amount > 0),
		payment_date DATE NOT NULL,
		method VARCHAR(10) NOT NULL DEFAULT 'Cash' CHECK (method IN ('Cash', 'UPI', 'Card', 'Other'))
	);`,
	},
	{
		name: "attendance",
		ddl: `
	CREATE TABLE IF NOT EXISTS attendance (
		attendance_id SERIAL PRIMARY KEY,
		student_id VARCHAR(20) REFERENCES students(student_id) ON DELETE CASCADE,
		attendance_date DATE NOT NULL,
		status VARCHAR(10) NOT NULL CHECK (status IN ('Present', 'Absent')),
		UNIQUE (student_id, attendance_date)
	);`,
	},
}

// Migrator creates the schema on startup
type Migrator struct {
	db db.Querier
}

// NewMigrator creates a new migrator
func NewMigrator(q db.Querier) *Migrator {
	return &Migrator{
		db: q,
	}
}

// Tables returns the managed table names in creation order.
func Tables() []string {
	names := make([]string, 0, len(schema))
	for _, t := range schema {
		names = append(names, t.name)
	}
	return names
}

// EnsureSchema creates every missing table. A failing statement does not
// stop the ones after it; all failures are returned joined together.
func (m *Migrator) EnsureSchema(ctx context.Context) error {
	var errs []error
	for _, t := range schema {
		if _, err := m.db.Exec(ctx, t.ddl); err != nil {
			logger.Error().Err(err).Str("table", t.name).Msg("Failed to ensure table")
			errs = append(errs, fmt.Errorf("create table %s: %w", t.name, err))
			continue
		}
		logger.Debug().Str("table", t.name).Msg("Table ensured")
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info().Int("tables", len(schema)).Msg("Database schema is up to date")
	return nil
}
