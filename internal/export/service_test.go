package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/generator"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/render"
)

type fakeGenerator struct {
	generateFunc func(ctx context.Context, req generator.Request) (*generator.Result, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	return f.generateFunc(ctx, req)
}

func result(name, number string, data string) *generator.Result {
	return &generator.Result{
		FileName: name,
		Artifact: &render.Artifact{Format: render.FormatPDF, Data: []byte(data), Pages: 1},
		Tree: &document.Tree{
			Kind: document.KindQuotation,
			Meta: document.Meta{Number: number, Date: "2024-05-10"},
			Totals: document.Totals{Lines: []document.TotalLine{
				{Label: "Subtotal", Display: "LKR 6,000.00"},
				{Label: "Estimated Total", Display: "LKR 6,000.00", Strong: true},
			}},
		},
	}
}

func TestExportService_Export(t *testing.T) {
	tmpDir := t.TempDir()

	gen := &fakeGenerator{
		generateFunc: func(_ context.Context, req generator.Request) (*generator.Result, error) {
			q := req.Record.(*document.Quotation)
			return result("Acme_Quotation_"+q.QuoteID+".pdf", q.QuoteID, "pdf "+q.QuoteID), nil
		},
	}

	service := NewService(gen)

	items, err := service.Export(context.Background(), []generator.Request{
		{Record: &document.Quotation{QuoteID: "1"}},
		{Record: &document.Quotation{QuoteID: "2"}},
		{Record: &document.Quotation{QuoteID: "1"}},
	}, tmpDir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	expected := []string{"Acme_Quotation_1.pdf", "Acme_Quotation_2.pdf", "Acme_Quotation_1_2.pdf"}
	for i, name := range expected {
		if filepath.Base(items[i].FilePath) != name {
			t.Errorf("item %d: expected %s, got %s", i, name, filepath.Base(items[i].FilePath))
		}
	}

	content, _ := os.ReadFile(items[1].FilePath)
	if string(content) != "pdf 2" {
		t.Errorf("file content mismatch: %q", content)
	}
}

func TestExportService_Export_Error(t *testing.T) {
	gen := &fakeGenerator{
		generateFunc: func(context.Context, generator.Request) (*generator.Result, error) {
			return nil, render.ErrRender
		},
	}

	_, err := NewService(gen).Export(context.Background(), []generator.Request{{}}, t.TempDir())
	if !errors.Is(err, render.ErrRender) {
		t.Fatalf("expected render error, got %v", err)
	}
}

func TestService_Summary(t *testing.T) {
	s := &Service{}

	items := []Item{
		{Result: result("a.pdf", "Q-7", ""), FilePath: "/tmp/out/a.pdf"},
		{Result: result("b.pdf", "", ""), FilePath: "/tmp/out/b.pdf"},
	}

	body := s.Summary(items)

	expectedSubstrings := []string{
		"2024-05-10 | quotation #Q-7 | LKR 6,000.00 | a.pdf (1 p.)",
		"2024-05-10 | quotation #N/A | LKR 6,000.00 | b.pdf (1 p.)",
	}

	for _, sub := range expectedSubstrings {
		if !strings.Contains(body, sub) {
			t.Errorf("expected body to contain %q", sub)
		}
	}
}
