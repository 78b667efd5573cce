// Package render draws document trees into output artifacts.
package render

import (
	"errors"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
)

// ErrRender is wrapped by every failure that leaves no artifact behind.
var ErrRender = errors.New("rendering document")

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a request value onto a Format. Empty means PDF.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case "", FormatPDF:
		return FormatPDF, true
	case FormatXLSX:
		return FormatXLSX, true
	default:
		return "", false
	}
}

type Artifact struct {
	Format      Format
	ContentType string
	Data        []byte
	// Pages is only known for PDFs.
	Pages int
}

func (a *Artifact) Ext() string {
	return string(a.Format)
}

type Renderer interface {
	Render(tree *document.Tree) (*Artifact, error)
}
