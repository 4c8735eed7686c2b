package db

import (
	"database/sql"
	"fmt"
)

// schema covers both roles of the database file: the client keeps its
// session in settings, the stand-in API server uses every table.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    full_name     TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id              INTEGER PRIMARY KEY,
    hotel_code      TEXT NOT NULL,
    department_code TEXT NOT NULL,
    asset_name      TEXT NOT NULL,
    asset_type      TEXT NOT NULL CHECK (asset_type IN ('Hardware', 'Software', 'Virtual')),
    category        TEXT NOT NULL,
    status          TEXT NOT NULL CHECK (status IN ('Fixed Asset', 'Leased Asset', 'Disposal Asset')),
    brand_model     TEXT,
    serial_number   TEXT,
    barcode         TEXT,
    image           TEXT,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_report
    ON items(hotel_code, department_code, status);

CREATE TABLE IF NOT EXISTS uploads (
    id         INTEGER PRIMARY KEY,
    file_name  TEXT NOT NULL,
    mime       TEXT NOT NULL,
    data       BLOB NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{}

// EnsureSchema creates all tables and indexes if they don't already exist and
// applies pending migrations.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
