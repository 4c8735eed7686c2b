// Package imaging prepares photos for upload: it checks the format, shrinks
// large images and re-encodes them as JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds the width and height of uploaded images.
const DefaultMaxDimension = 1024

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// MIME is the content type of every prepared image.
const MIME = "image/jpeg"

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Image is a prepared upload.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Prepare reads an image, sniffs its format from the bytes, downscales it so
// neither side exceeds maxDim (DefaultMaxDimension if maxDim <= 0) and
// re-encodes it as JPEG.
func Prepare(r io.Reader, maxDim int) (*Image, error) {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = fit(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := img.Bounds()
	return &Image{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales img down with Catmull-Rom so that its longer side is maxDim,
// keeping the aspect ratio. Images already within bounds are returned as is.
func fit(img image.Image, maxDim int) image.Image {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
