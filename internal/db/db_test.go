package db

import (
	"path/filepath"
	"testing"
)

func TestOpenFileAndEnsureSchemaTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.sqlite3")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	for i := 0; i < 2; i++ {
		if err := EnsureSchema(database); err != nil {
			t.Fatalf("EnsureSchema run %d: %v", i+1, err)
		}
	}

	for _, table := range []string{"users", "items", "uploads", "settings"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestItemsStatusCheck(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(`INSERT INTO items (hotel_code, department_code, asset_name, asset_type, category, status)
		VALUES ('HO', 'IT', 'PC', 'Hardware', 'PC', 'Lost')`)
	if err == nil {
		t.Error("expected CHECK constraint failure for unknown status")
	}
}
