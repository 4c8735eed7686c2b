package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/erazemk/popis/internal/model"
)

// ImageResolver turns an image reference into a remote URL.
type ImageResolver interface {
	Upload(ctx context.Context, ref string) (string, error)
}

// ItemRepository performs item CRUD against the API.
type ItemRepository struct {
	Client *Client
	Images ImageResolver
}

// Create validates it, uploads a local image, derives the barcode and creates
// the item. Nothing is sent if validation or the upload fails.
func (r *ItemRepository) Create(ctx context.Context, it model.Item) (*model.Item, error) {
	if err := it.Validate(); err != nil {
		return nil, err
	}
	image, err := r.resolveImage(ctx, it.Image)
	if err != nil {
		return nil, err
	}
	it.ID = 0
	it.Image = image
	it.Barcode = model.DeriveBarcode(it.HotelCode, it.DepartmentCode, it.AssetName)

	req, err := jsonRequest(http.MethodPost, "/items", true, it)
	if err != nil {
		return nil, err
	}
	var created model.Item
	if _, err := r.Client.do(ctx, req, &created); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	slog.Info("item created", "id", created.ID, "barcode", created.Barcode)
	return &created, nil
}

// List returns every item in server order.
func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	req, _ := jsonRequest(http.MethodGet, "/items", true, nil)
	var items []model.Item
	if _, err := r.Client.do(ctx, req, &items); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// Get returns the item with the given ID. The API has no single-item read,
// so it is looked up in the full list.
func (r *ItemRepository) Get(ctx context.Context, id int64) (*model.Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: item %d", model.ErrNotFound, id)
}

// Update replaces the item with the given ID. The barcode is sent as held
// by it and never derived again.
func (r *ItemRepository) Update(ctx context.Context, id int64, it model.Item) (*model.Item, error) {
	if err := it.Validate(); err != nil {
		return nil, err
	}
	image, err := r.resolveImage(ctx, it.Image)
	if err != nil {
		return nil, err
	}
	it.ID = id
	it.Image = image

	req, err := jsonRequest(http.MethodPut, fmt.Sprintf("/items/%d", id), true, it)
	if err != nil {
		return nil, err
	}
	var updated model.Item
	if _, err := r.Client.do(ctx, req, &updated); err != nil {
		return nil, fmt.Errorf("updating item %d: %w", id, err)
	}
	return &updated, nil
}

// Delete removes the item with the given ID.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	req, _ := jsonRequest(http.MethodDelete, fmt.Sprintf("/items/%d", id), true, nil)
	if _, err := r.Client.do(ctx, req, nil); err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	slog.Info("item deleted", "id", id)
	return nil
}

func (r *ItemRepository) resolveImage(ctx context.Context, ref string) (string, error) {
	if !IsLocalRef(ref) {
		return ref, nil
	}
	if r.Images == nil {
		return "", fmt.Errorf("%w: no uploader configured for %s", model.ErrUpload, ref)
	}
	return r.Images.Upload(ctx, ref)
}
