package store

import (
	"context"
	"testing"

	"github.com/erazemk/popis/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, ok, _ := GetSetting(ctx, database, "k"); ok {
		t.Fatal("expected missing setting")
	}
	if err := SetSetting(ctx, database, "k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := SetSetting(ctx, database, "k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := GetSetting(ctx, database, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("GetSetting = %q, %v, %v", v, ok, err)
	}
	if err := DeleteSetting(ctx, database, "k"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteSetting(ctx, database, "k"); err != nil {
		t.Fatalf("deleting missing key: %v", err)
	}
}
