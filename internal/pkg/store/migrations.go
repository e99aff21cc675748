package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

// migration is one schema version. Statements run together in a transaction.
type migration struct {
	version    int
	name       string
	statements []string
}

// migrations must stay append-only: never edit or reorder an applied version.
// Version 1 uses IF NOT EXISTS so databases created before versioning was
// introduced are adopted as they are.
var migrations = []migration{
	{
		version: 1,
		name:    "create tables",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS status_groups (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				is_default BOOLEAN DEFAULT FALSE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS billing_statuses (
				id SERIAL PRIMARY KEY,
				status_group_id INTEGER REFERENCES status_groups(id) ON DELETE CASCADE,
				name VARCHAR(100) NOT NULL,
				color VARCHAR(20) NOT NULL,
				sort_order INTEGER DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS facility_groups (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				billing_type VARCHAR(50) NOT NULL,
				billing_day INTEGER,
				status_group_id INTEGER REFERENCES status_groups(id) DEFAULT 1,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS facilities (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				group_id INTEGER REFERENCES facility_groups(id) ON DELETE CASCADE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS billing_records (
				id SERIAL PRIMARY KEY,
				facility_id INTEGER REFERENCES facilities(id) ON DELETE CASCADE,
				cycle INTEGER NOT NULL,
				billing_date VARCHAR(8),
				from_date VARCHAR(8),
				through_date VARCHAR(8),
				billed_amount VARCHAR(50),
				status_id INTEGER REFERENCES billing_statuses(id) ON DELETE SET NULL,
				paid_amount VARCHAR(50),
				paid_date VARCHAR(8),
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(facility_id, cycle)
			)`,
			`CREATE TABLE IF NOT EXISTS custom_dates (
				id SERIAL PRIMARY KEY,
				group_id INTEGER REFERENCES facility_groups(id) ON DELETE CASCADE,
				date VARCHAR(8) NOT NULL,
				frequency VARCHAR(50),
				custom_from VARCHAR(10),
				custom_through VARCHAR(10),
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS settings (
				id SERIAL PRIMARY KEY,
				key VARCHAR(100) UNIQUE NOT NULL,
				value TEXT,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		version: 2,
		name:    "status columns on older schemas",
		statements: []string{
			`ALTER TABLE facility_groups ADD COLUMN IF NOT EXISTS status_group_id INTEGER DEFAULT 1`,
			`ALTER TABLE billing_records ADD COLUMN IF NOT EXISTS billed_amount VARCHAR(50)`,
			`ALTER TABLE billing_records ADD COLUMN IF NOT EXISTS status_id INTEGER`,
		},
	},
	{
		version: 3,
		name:    "updated_at on statuses and custom dates",
		statements: []string{
			`ALTER TABLE billing_statuses ADD COLUMN IF NOT EXISTS updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP`,
			`ALTER TABLE custom_dates ADD COLUMN IF NOT EXISTS updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP`,
		},
	},
	{
		version: 4,
		name:    "lookup indexes",
		statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_facilities_group_id ON facilities(group_id)`,
			`CREATE INDEX IF NOT EXISTS idx_custom_dates_group_id ON custom_dates(group_id)`,
			`CREATE INDEX IF NOT EXISTS idx_billing_statuses_group_id ON billing_statuses(status_group_id)`,
		},
	},
}

// MigrationError reports a schema version that could not be applied.
type MigrationError struct {
	Version int
	Name    string
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration v%d (%s): %s", e.Version, e.Name, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Migrate applies every pending version in order and stops at the first failure.
// It returns the versions applied during this call.
func Migrate(ctx context.Context, pool Pool) ([]int, error) {
	return migrate(ctx, pool, migrations)
}

func migrate(ctx context.Context, pool Pool, list []migration) ([]int, error) {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return nil, &MigrationError{Name: "schema_migrations", Err: err}
	}

	var current int
	versionQuery := builder().Select("coalesce(max(version), 0)").From(tableSchemaMigrations)
	if err = xpgx.Getx(ctx, pool, &current, versionQuery); err != nil {
		return nil, &MigrationError{Name: "read version", Err: err}
	}

	applied := make([]int, 0)
	for _, m := range list {
		if m.version <= current {
			continue
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			for _, stmt := range m.statements {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return err
				}
			}
			record := builder().Insert(tableSchemaMigrations).
				Columns("version").
				Values(m.version).
				Suffix("ON CONFLICT (version) DO NOTHING")
			_, err := xpgx.Execx(ctx, tx, record)
			return err
		})
		if err != nil {
			return applied, &MigrationError{Version: m.version, Name: m.name, Err: err}
		}

		logger.Infof(ctx, "applied migration v%d: %s", m.version, m.name)
		applied = append(applied, m.version)
	}

	return applied, nil
}
