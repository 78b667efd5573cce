// Package assets resolves logo references to PNG bytes ready for embedding.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
)

const (
	// MaxEdge is the longest side of a normalised logo, in pixels.
	MaxEdge = 256

	maxDownload = 5 << 20
)

var ErrUnsupportedRef = errors.New("unsupported logo reference")

type Source interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// Loader fetches logos over HTTP or from data URIs and caches the normalised
// result per reference.
type Loader struct {
	client *http.Client
	cache  *expirable.LRU[string, []byte]
}

func NewLoader(client *http.Client, size int, ttl time.Duration) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Loader{
		client: client,
		cache:  expirable.NewLRU[string, []byte](max(size, 1), nil, ttl),
	}
}

func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == document.PlaceholderLogo {
		return Placeholder(), nil
	}

	if data, ok := l.cache.Get(ref); ok {
		return data, nil
	}

	raw, err := l.read(ctx, ref)
	if err != nil {
		return nil, err
	}

	data, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalising logo %s: %w", ref, err)
	}

	l.cache.Add(ref, data)

	return data, nil
}

// Embedded reports whether ref resolves without any network access: the
// placeholder or a data URI.
func Embedded(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref == "" || ref == document.PlaceholderLogo || strings.HasPrefix(ref, "data:")
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "data:") {
		return decodeDataURI(ref)
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building logo request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching logo: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, fmt.Errorf("reading logo: %w", err)
	}

	if len(data) > maxDownload {
		return nil, fmt.Errorf("fetching logo: larger than %d bytes", maxDownload)
	}

	return data, nil
}

// decodeDataURI accepts base64 data URIs as stored by the logo upload form.
func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data URI must be base64", ErrUnsupportedRef)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data URI: %w", err)
	}

	return data, nil
}

// Normalize decodes a PNG, JPEG or GIF, shrinks it to MaxEdge on its long
// side, flattens transparency onto white and re-encodes it as PNG.
func Normalize(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxEdge || b.Dy() > MaxEdge {
		img = imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
		b = img.Bounds()
	}

	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}

	return buf.Bytes(), nil
}

var placeholder = sync.OnceValue(func() []byte {
	const size = 128

	img := imaging.New(size, size, color.NRGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF})
	inner := imaging.New(size/2, size/4, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	wheel := imaging.New(size/8, size/8, color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF})

	img = imaging.Paste(img, inner, image.Pt(size/4, size*3/8))
	img = imaging.Paste(img, wheel, image.Pt(size/4+size/16, size*5/8))
	img = imaging.Paste(img, wheel, image.Pt(size*3/4-size*3/16, size*5/8))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		panic(fmt.Sprintf("encoding placeholder logo: %v", err))
	}

	return buf.Bytes()
})

// Placeholder returns the built-in logo. The bytes are identical on every
// call and must not be modified.
func Placeholder() []byte {
	return placeholder()
}
