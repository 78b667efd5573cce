package archive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/archive"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		name   string
		kind   document.Kind
		number string
		ext    string
		want   string
	}{
		{name: "Invoice", kind: document.KindInvoice, number: "42", ext: "pdf", want: "invoice/42/id.pdf"},
		{name: "QuotationXLSX", kind: document.KindQuotation, number: "Q-7", ext: "xlsx", want: "quotation/Q-7/id.xlsx"},
		{name: "SlashInNumber", kind: document.KindQuotation, number: "2024/05/1", ext: "pdf", want: "quotation/2024_05_1/id.pdf"},
		{name: "NoNumber", kind: document.KindQuotation, number: " ", ext: "pdf", want: "quotation/unnumbered/id.pdf"},
		{name: "DotDot", kind: document.KindQuotation, number: "..", ext: "pdf", want: "quotation/unnumbered/id.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, archive.ObjectName(tt.kind, tt.number, "id", tt.ext))
		})
	}
}
