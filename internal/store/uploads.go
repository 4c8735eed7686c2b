package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Upload is a stored image file.
type Upload struct {
	ID       int64
	FileName string
	MIME     string
	Data     []byte
}

// CreateUpload stores image data and returns its ID.
func CreateUpload(ctx context.Context, db *sql.DB, fileName, mime string, data []byte) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO uploads (file_name, mime, data) VALUES (?, ?, ?)`,
		fileName, mime, data,
	)
	if err != nil {
		return 0, fmt.Errorf("creating upload: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting upload id: %w", err)
	}
	return id, nil
}

// GetUpload returns a stored upload, or nil if it does not exist.
func GetUpload(ctx context.Context, db *sql.DB, id int64) (*Upload, error) {
	u := &Upload{}
	err := db.QueryRowContext(ctx,
		`SELECT id, file_name, mime, data FROM uploads WHERE id = ?`, id,
	).Scan(&u.ID, &u.FileName, &u.MIME, &u.Data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting upload: %w", err)
	}
	return u, nil
}
