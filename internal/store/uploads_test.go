package store

import (
	"context"
	"testing"

	"github.com/erazemk/popis/internal/db"
)

func TestUploadRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id, err := CreateUpload(ctx, database, "a.jpg", "image/jpeg", []byte("jpeg bytes"))
	if err != nil {
		t.Fatalf("CreateUpload: %v", err)
	}
	u, err := GetUpload(ctx, database, id)
	if err != nil {
		t.Fatalf("GetUpload: %v", err)
	}
	if u == nil || u.FileName != "a.jpg" || string(u.Data) != "jpeg bytes" {
		t.Errorf("unexpected upload: %+v", u)
	}
	missing, _ := GetUpload(ctx, database, id+1)
	if missing != nil {
		t.Error("expected nil for missing upload")
	}
}
