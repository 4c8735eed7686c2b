package client

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/popis/internal/model"
)

func writeTestJPEG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "photo.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
	return path
}

func TestIsLocalRef(t *testing.T) {
	assert.True(t, IsLocalRef("file:///data/photo.jpg"))
	assert.True(t, IsLocalRef("file:photo.jpg"))
	assert.False(t, IsLocalRef("https://example.com/photo.jpg"))
	assert.False(t, IsLocalRef(""))
}

func TestImageName(t *testing.T) {
	assert.Equal(t, "photo.jpg", imageName("/data/photo.jpg"))
	assert.Equal(t, DefaultImageName, imageName(""))
	assert.Equal(t, DefaultImageName, imageName("/"))
}

func TestImageUploaderUploadsAndServes(t *testing.T) {
	c, _ := newTestClient(t, true)
	uploader := &ImageUploader{Client: c, MaxDimension: 64}
	path := writeTestJPEG(t, 200, 100)

	url, err := uploader.Upload(context.Background(), "file://"+path)
	require.NoError(t, err)
	require.True(t, strings.Contains(url, "/api/uploads/"), url)

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	cfg, err := jpeg.DecodeConfig(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestImageUploaderThroughRepository(t *testing.T) {
	c, _ := newTestClient(t, true)
	repo := &ItemRepository{Client: c, Images: &ImageUploader{Client: c}}

	it := sampleItem()
	it.Image = "file://" + writeTestJPEG(t, 10, 10)
	created, err := repo.Create(context.Background(), it)
	require.NoError(t, err)
	assert.Contains(t, created.Image, "/api/uploads/")
}

func TestImageUploaderRemoteRefPassthrough(t *testing.T) {
	c, calls := countingServer(t, 201, `{}`)
	uploader := &ImageUploader{Client: c}

	url, err := uploader.Upload(context.Background(), "https://example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.jpg", url)
	assert.Zero(t, calls.Load())
}

func TestImageUploaderFailures(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		c, _ := newTestClient(t, false)
		_, err := (&ImageUploader{Client: c}).Upload(context.Background(), "file://"+writeTestJPEG(t, 4, 4))
		assert.ErrorIs(t, err, model.ErrUpload)
	})

	t.Run("missing file", func(t *testing.T) {
		c, calls := countingServer(t, 201, `{"data":{"url":"x"}}`)
		_, err := (&ImageUploader{Client: c}).Upload(context.Background(), "file:///does/not/exist.jpg")
		assert.ErrorIs(t, err, model.ErrUpload)
		assert.Zero(t, calls.Load())
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.jpg")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
		c, calls := countingServer(t, 201, `{"data":{"url":"x"}}`)
		_, err := (&ImageUploader{Client: c}).Upload(context.Background(), "file://"+path)
		assert.ErrorIs(t, err, model.ErrUpload)
		assert.Zero(t, calls.Load())
	})

	t.Run("server rejects", func(t *testing.T) {
		c, calls := countingServer(t, 500, `{"error":"storage full"}`)
		_, err := (&ImageUploader{Client: c}).Upload(context.Background(), "file://"+writeTestJPEG(t, 4, 4))
		require.ErrorIs(t, err, model.ErrUpload)
		assert.ErrorIs(t, err, model.ErrNetwork)
		assert.EqualValues(t, 1, calls.Load())
	})

	t.Run("no url in response", func(t *testing.T) {
		c, _ := countingServer(t, 201, `{"data":{}}`)
		_, err := (&ImageUploader{Client: c}).Upload(context.Background(), "file://"+writeTestJPEG(t, 4, 4))
		assert.ErrorIs(t, err, model.ErrUpload)
	})
}
