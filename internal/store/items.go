package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/popis/internal/model"
)

const itemColumns = `id, hotel_code, department_code, asset_name, asset_type, category, status,
	brand_model, serial_number, barcode, image`

// CreateItem inserts an item and returns it with its assigned ID.
func CreateItem(ctx context.Context, db *sql.DB, it model.Item) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (hotel_code, department_code, asset_name, asset_type, category, status,
		                    brand_model, serial_number, barcode, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.HotelCode, it.DepartmentCode, it.AssetName, it.AssetType, it.Category, it.Status,
		it.BrandModel, it.SerialNumber, it.Barcode, it.Image,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return it, nil
}

// ListItems returns items matching every non-empty criterion of filter,
// newest first. A zero filter returns all items.
func ListItems(ctx context.Context, db *sql.DB, filter model.ReportFilter) ([]model.Item, error) {
	var clauses []string
	var args []any
	if v := strings.TrimSpace(filter.HotelCode); v != "" {
		clauses = append(clauses, "hotel_code = ?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(filter.DepartmentCode); v != "" {
		clauses = append(clauses, "department_code = ?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(string(filter.Status)); v != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, v)
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// ItemsByID returns the items with the given IDs in the order requested.
// Unknown IDs are skipped.
func ItemsByID(ctx context.Context, db *sql.DB, ids []int64) ([]model.Item, error) {
	items := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		it, err := GetItem(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if it != nil {
			items = append(items, *it)
		}
	}
	return items, nil
}

// UpdateItem replaces an item's fields. It reports false if no such item exists.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, it model.Item) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET hotel_code = ?, department_code = ?, asset_name = ?, asset_type = ?,
		        category = ?, status = ?, brand_model = ?, serial_number = ?, barcode = ?, image = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		it.HotelCode, it.DepartmentCode, it.AssetName, it.AssetType, it.Category, it.Status,
		it.BrandModel, it.SerialNumber, it.Barcode, it.Image, id,
	)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return n > 0, nil
}

// DeleteItem removes an item. It reports false if no such item exists.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	var it model.Item
	var brand, serial, barcode, image sql.NullString
	err := s.Scan(&it.ID, &it.HotelCode, &it.DepartmentCode, &it.AssetName, &it.AssetType,
		&it.Category, &it.Status, &brand, &serial, &barcode, &image)
	if err != nil {
		return nil, err
	}
	it.BrandModel = brand.String
	it.SerialNumber = serial.String
	it.Barcode = barcode.String
	it.Image = image.String
	return &it, nil
}
