package imagecache

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	// Decoders available to every loader.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader opens the bytes behind a URL.
type Loader interface {
	Open(ctx context.Context, u *url.URL) (io.ReadCloser, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, u *url.URL) (io.ReadCloser, error)

func (f LoaderFunc) Open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	return f(ctx, u)
}

// FileLoader reads file URLs from the local filesystem.
type FileLoader struct{}

func (FileLoader) Open(_ context.Context, u *url.URL) (io.ReadCloser, error) {
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	return os.Open(filepath.FromSlash(p))
}

// DataLoader decodes data URLs, base64 or percent-encoded.
type DataLoader struct{}

func (DataLoader) Open(_ context.Context, u *url.URL) (io.ReadCloser, error) {
	raw := strings.TrimPrefix(u.String(), "data:")
	meta, payload, ok := strings.Cut(raw, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data url")
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data url: %w", err)
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data url: %w", err)
		}
		data = []byte(s)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// HTTPLoader fetches http and https URLs. A nil Client uses
// http.DefaultClient.
type HTTPLoader struct {
	Client *http.Client
}

func (l HTTPLoader) Open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("http status %s", resp.Status)
	}
	return resp.Body, nil
}

func load(ctx context.Context, l Loader, u *url.URL) (image.Image, error) {
	rc, err := l.Open(ctx, u)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
