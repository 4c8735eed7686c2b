package store

import (
	"context"
	"testing"

	"github.com/erazemk/popis/internal/db"
)

func TestTokenStoreLifecycle(t *testing.T) {
	ts := &TokenStore{DB: db.NewTestDB(t)}
	ctx := context.Background()

	token, err := ts.LoadToken(ctx)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if token != "" {
		t.Errorf("expected no token initially, got %q", token)
	}

	if err := ts.SaveToken(ctx, "tok-1"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := ts.SaveToken(ctx, "tok-2"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	token, _ = ts.LoadToken(ctx)
	if token != "tok-2" {
		t.Errorf("expected 'tok-2', got %q", token)
	}

	if err := ts.ClearToken(ctx); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	token, _ = ts.LoadToken(ctx)
	if token != "" {
		t.Errorf("expected token cleared, got %q", token)
	}
}
