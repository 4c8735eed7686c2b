package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/erazemk/popis/internal/imaging"
	"github.com/erazemk/popis/internal/model"
)

// DefaultImageName is used when no file name can be derived from a reference.
const DefaultImageName = "image.jpg"

// IsLocalRef reports whether ref points at a local file rather than an
// uploaded image.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "file:")
}

// ImageUploader uploads local images and returns their remote URL.
type ImageUploader struct {
	Client *Client
	// MaxDimension bounds the uploaded image. Zero selects
	// imaging.DefaultMaxDimension.
	MaxDimension int
}

type uploadData struct {
	URL string `json:"url"`
}

// Upload sends the image at ref as a multipart form. An already-remote
// reference is returned unchanged.
func (u *ImageUploader) Upload(ctx context.Context, ref string) (string, error) {
	if !IsLocalRef(ref) {
		return ref, nil
	}
	if _, err := u.Client.Session.Token(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUpload, err)
	}

	filePath, err := localPath(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUpload, err)
	}
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: opening image: %w", model.ErrUpload, err)
	}
	defer f.Close()

	img, err := imaging.Prepare(f, u.MaxDimension)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUpload, err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, imageName(filePath)))
	h.Set("Content-Type", imaging.MIME)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("%w: building form: %w", model.ErrUpload, err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", fmt.Errorf("%w: building form: %w", model.ErrUpload, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: building form: %w", model.ErrUpload, err)
	}

	var data uploadData
	_, err = u.Client.do(ctx, request{
		method:      http.MethodPost,
		path:        "/upload",
		auth:        true,
		body:        &body,
		contentType: w.FormDataContentType(),
	}, &data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUpload, err)
	}
	if data.URL == "" {
		return "", fmt.Errorf("%w: response carried no url", model.ErrUpload)
	}
	return data.URL, nil
}

// localPath converts a file reference into a filesystem path.
func localPath(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", ref, err)
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	if p == "" {
		return "", fmt.Errorf("no path in %q", ref)
	}
	return p, nil
}

// imageName is the last path segment, or DefaultImageName.
func imageName(p string) string {
	name := path.Base(p)
	if name == "" || name == "." || name == "/" {
		return DefaultImageName
	}
	return name
}
