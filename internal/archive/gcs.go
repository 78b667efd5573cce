// Package archive keeps a copy of every generated document in Cloud Storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/render"
)

type GCS struct {
	bucket *storage.BucketHandle
	newID  func() string
}

func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{bucket: client.Bucket(bucket), newID: uuid.NewString}
}

// Archive uploads art and returns its object name. Every call creates a new
// object; regenerated documents never overwrite earlier copies.
func (g *GCS) Archive(ctx context.Context, kind document.Kind, number string, art *render.Artifact) (string, error) {
	name := ObjectName(kind, number, g.newID(), art.Ext())

	w := g.bucket.Object(name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = art.ContentType

	if _, err := io.Copy(w, bytes.NewReader(art.Data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalising %s: %w", name, err)
	}

	return name, nil
}

// ObjectName builds "<kind>/<number>/<id>.<ext>". The number is reduced to
// letters, digits, '-' and '_' so it stays a single path segment.
func ObjectName(kind document.Kind, number, id, ext string) string {
	number = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, strings.TrimSpace(number))

	if strings.Trim(number, "_") == "" {
		number = "unnumbered"
	}

	return path.Join(string(kind), number, id+"."+ext)
}
