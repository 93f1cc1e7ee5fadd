package storage

import (
	"context"
	"testing"
)

func TestMigrate_FreshDatabase(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var version int
	err := store.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, ExpectedSchemaVersion)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Running migrations again on an up-to-date database is a no-op.
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}
}

func TestMigrate_TablesExist(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	tables := []string{
		"bills", "projects", "tasks", "time_entries",
		"job_applications", "transactions", "transaction_types", "payment_methods",
	}

	for _, table := range tables {
		var name string
		err := store.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing: %v", table, err)
		}
	}
}
