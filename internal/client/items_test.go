package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/popis/internal/model"
	"github.com/erazemk/popis/internal/session"
)

func sampleItem() model.Item {
	return model.Item{
		HotelCode:      "HO",
		DepartmentCode: "IT",
		AssetName:      "Dell Latitude 5420",
		AssetType:      model.AssetTypeHardware,
		Category:       "Laptop",
		Status:         model.StatusFixed,
		BrandModel:     "Dell",
		SerialNumber:   "SN-1",
	}
}

type fakeResolver struct {
	url   string
	err   error
	calls int
}

func (f *fakeResolver) Upload(_ context.Context, ref string) (string, error) {
	f.calls++
	return f.url, f.err
}

func TestItemRepositoryRoundTrip(t *testing.T) {
	c, _ := newTestClient(t, true)
	repo := &ItemRepository{Client: c}
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleItem())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "HOITDELLLATITUDE5420001", created.Barcode)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, *created, items[0])

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SerialNumber, got.SerialNumber)

	changed := *got
	changed.AssetName = "Something Else"
	changed.Status = model.StatusDisposal
	updated, err := repo.Update(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDisposal, updated.Status)
	assert.Equal(t, "HOITDELLLATITUDE5420001", updated.Barcode)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestItemRepositoryCreateIgnoresSuppliedBarcode(t *testing.T) {
	c, _ := newTestClient(t, true)
	repo := &ItemRepository{Client: c}

	it := sampleItem()
	it.Barcode = "CUSTOM"
	it.AssetName = "  hp  probook 450 "
	created, err := repo.Create(context.Background(), it)
	require.NoError(t, err)
	assert.Equal(t, "HOITHPPROBOOK450001", created.Barcode)
}

func TestItemRepositoryNotFound(t *testing.T) {
	c, _ := newTestClient(t, true)
	repo := &ItemRepository{Client: c}
	ctx := context.Background()

	_, err := repo.Update(ctx, 404, sampleItem())
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = repo.Delete(ctx, 404)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestItemRepositoryValidatesLocally(t *testing.T) {
	c, calls := countingServer(t, 200, `{"data":{}}`)
	repo := &ItemRepository{Client: c}
	ctx := context.Background()

	missing := sampleItem()
	missing.AssetName = ""
	_, err := repo.Create(ctx, missing)
	assert.ErrorIs(t, err, model.ErrValidation)

	mismatch := sampleItem()
	mismatch.Category = "Cloud"
	_, err = repo.Create(ctx, mismatch)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = repo.Update(ctx, 1, mismatch)
	assert.ErrorIs(t, err, model.ErrValidation)

	assert.Zero(t, calls.Load())
}

func TestItemRepositoryRequiresToken(t *testing.T) {
	c, _ := newTestClient(t, false)
	repo := &ItemRepository{Client: c}

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestItemRepositoryUploadsLocalImage(t *testing.T) {
	c, _ := newTestClient(t, true)
	images := &fakeResolver{url: "https://cdn.example.com/a.jpg"}
	repo := &ItemRepository{Client: c, Images: images}

	it := sampleItem()
	it.Image = "file:///tmp/a.jpg"
	created, err := repo.Create(context.Background(), it)
	require.NoError(t, err)
	assert.Equal(t, 1, images.calls)
	assert.Equal(t, "https://cdn.example.com/a.jpg", created.Image)

	// A remote reference is passed through.
	it.Image = "https://cdn.example.com/b.jpg"
	created, err = repo.Create(context.Background(), it)
	require.NoError(t, err)
	assert.Equal(t, 1, images.calls)
	assert.Equal(t, "https://cdn.example.com/b.jpg", created.Image)
}

func TestItemRepositoryUploadFailureAbortsCreate(t *testing.T) {
	c, calls := countingServer(t, 201, `{"data":{}}`)
	images := &fakeResolver{err: errors.Join(model.ErrUpload, errors.New("disk gone"))}
	repo := &ItemRepository{Client: c, Images: images}

	it := sampleItem()
	it.Image = "file:///tmp/a.jpg"
	_, err := repo.Create(context.Background(), it)
	assert.ErrorIs(t, err, model.ErrUpload)

	_, err = (&ItemRepository{Client: c}).Create(context.Background(), it)
	assert.ErrorIs(t, err, model.ErrUpload)

	assert.Zero(t, calls.Load())
}
