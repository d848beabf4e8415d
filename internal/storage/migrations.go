package storage

import (
	_ "embed"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// RunMigrations executes the database schema and any necessary migrations.
// This function is idempotent and safe to run multiple times.
func RunMigrations(db *sqlx.DB) error {
	// Execute the embedded schema
	_, err := db.Exec(schemaSQL)
	if err != nil {
		return err
	}

	// Migration: add the role column to User for databases created before
	// roles existed. Idempotent via pragma_table_info.
	var colExists int
	err = db.Get(&colExists, `SELECT COUNT(*) FROM pragma_table_info('User') WHERE name = 'role'`)
	if err != nil {
		return err
	}
	if colExists == 0 {
		_, err = db.Exec(`ALTER TABLE User ADD COLUMN role TEXT NOT NULL DEFAULT 'user'`)
		if err != nil {
			return err
		}
	}

	// Migration: add notification_ts to Watchlist for databases created
	// before pending reviews existed.
	var tsColExists int
	err = db.Get(&tsColExists, `SELECT COUNT(*) FROM pragma_table_info('Watchlist') WHERE name = 'notification_ts'`)
	if err != nil {
		return err
	}
	if tsColExists == 0 {
		_, err = db.Exec(`ALTER TABLE Watchlist ADD COLUMN notification_ts TIMESTAMP`)
		if err != nil {
			return err
		}
	}

	return nil
}
