package render

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Verify parses a produced PDF and returns its page count.
func Verify(data []byte) (int, error) {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), cfg); err != nil {
		return 0, fmt.Errorf("%w: validating pdf: %v", ErrRender, err)
	}

	pages, err := api.PageCount(bytes.NewReader(data), cfg)
	if err != nil {
		return 0, fmt.Errorf("%w: counting pages: %v", ErrRender, err)
	}

	return pages, nil
}
