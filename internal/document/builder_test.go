package document_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

const backend = "http://api.rentals.test:8000/v1"

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func invoiceFixture(total, deposit string) *document.Invoice {
	return &document.Invoice{
		SaleID:        42,
		RentalID:      7,
		CustomerName:  "Nimal Perera",
		CustomerEmail: "nimal@example.com",
		Vehicle:       document.Vehicle{Year: 2019, Make: "Toyota", Model: "Axio"},
		StartDate:     "2024-03-01",
		EndDate:       "2024-03-05",
		TotalCost:     amount(total),
		DepositAmount: amount(deposit),
		IsPaid:        true,
		PaymentMethod: "Cash",
		SaleDate:      "2024-03-05",
	}
}

func TestBuilder_InvoiceTotals(t *testing.T) {
	tests := []struct {
		name          string
		total         string
		deposit       string
		wantDue       string
		wantDueString string
	}{
		{name: "DepositDeducted", total: "1000.00", deposit: "300.00", wantDue: "700", wantDueString: "LKR 700.00"},
		{name: "NegativeDueNotClamped", total: "100.00", deposit: "150.00", wantDue: "-50", wantDueString: "LKR -50.00"},
		{name: "NoDeposit", total: "2500", deposit: "0", wantDue: "2500", wantDueString: "LKR 2,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := document.NewBuilder(backend).Build(invoiceFixture(tt.total, tt.deposit), settings.Defaults())
			require.NoError(t, err)

			assert.True(t, decimal.RequireFromString(tt.total).Equal(tree.Totals.Subtotal))
			assert.True(t, decimal.RequireFromString(tt.deposit).Equal(tree.Totals.Deduction))
			assert.True(t, decimal.RequireFromString(tt.wantDue).Equal(tree.Totals.AmountDue),
				"amount due %s", tree.Totals.AmountDue)

			require.Len(t, tree.Totals.Lines, 3)
			assert.Equal(t, "Deposit Paid", tree.Totals.Lines[1].Label)
			assert.Equal(t, "Total Due", tree.Totals.Lines[2].Label)
			assert.True(t, tree.Totals.Lines[2].Strong)
			assert.Equal(t, tt.wantDueString, tree.Totals.Lines[2].Display)
		})
	}
}

func TestBuilder_InvoiceLayout(t *testing.T) {
	tree, err := document.NewBuilder(backend).Build(invoiceFixture("1000", "300"), settings.Defaults())
	require.NoError(t, err)

	assert.Equal(t, document.KindInvoice, tree.Kind)
	assert.Equal(t, "INVOICE", tree.Header.Badge)
	assert.Equal(t, []string{"Invoice #: 42", "Date: 2024-03-05", "Status: Paid", "Payment: Cash"}, tree.Header.MetaLines)
	assert.Equal(t, "Bill To", tree.Parties.To.Title)
	assert.Equal(t, []string{"Nimal Perera", "nimal@example.com"}, tree.Parties.To.Lines)
	assert.Equal(t, "- LKR 300.00", tree.Totals.Lines[1].Display)

	require.Len(t, tree.Table.Rows, 1)
	assert.Equal(t, []string{
		"1",
		"Car Rental - 2019 Toyota Axio (Rental #7)\nPeriod: 2024-03-01 to 2024-03-05",
		"LKR 1,000.00",
		"LKR 1,000.00",
	}, tree.Table.Rows[0].Cells)

	assert.Contains(t, tree.Notes, "Thank you for choosing Akalanka Enterprises.")
	assert.Contains(t, tree.Notes, "Invoice #42 as the reference")
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), tree.Meta.Created)
}

func TestBuilder_InvoiceMissingAmounts(t *testing.T) {
	inv := invoiceFixture("0", "0")
	inv.TotalCost = decimal.NullDecimal{}
	inv.DepositAmount = decimal.NullDecimal{}

	tree, err := document.NewBuilder(backend).Build(inv, settings.Defaults())
	require.NoError(t, err)

	assert.True(t, tree.Totals.AmountDue.IsZero())
	assert.Equal(t, "LKR 0.00", tree.Totals.Lines[2].Display)
}

func TestBuilder_TableColumns(t *testing.T) {
	tree, err := document.NewBuilder(backend).Build(&document.Quotation{}, settings.Defaults())
	require.NoError(t, err)

	var widths []float64
	for _, c := range tree.Table.Columns {
		widths = append(widths, c.Width)
	}

	assert.Equal(t, []float64{10, 52, 18, 20}, widths)
	assert.Empty(t, tree.Table.Rows)
	assert.True(t, tree.Totals.Total.IsZero())
}

func TestBuilder_QuotationEndToEnd(t *testing.T) {
	quote := &document.Quotation{
		QuoteID:       "Q-2024-001",
		Date:          "2024-05-10",
		CustomerName:  "Kamala Silva",
		CustomerEmail: "kamala@example.com",
		Items: []document.LineItem{
			{Quantity: decimal.NewFromInt(1), Description: "Car Rental - Economy", Rate: amount("5000"), Amount: amount("5000")},
			{Quantity: decimal.NewFromInt(1), Description: "Insurance", Rate: amount("1000"), Amount: amount("1000")},
		},
	}

	tree, err := document.NewBuilder(backend).Build(quote, settings.Defaults())
	require.NoError(t, err)

	assert.Equal(t, "QUOTATION", tree.Header.Badge)
	assert.Equal(t, "LKR 6,000.00", tree.Totals.Lines[0].Display)
	assert.Equal(t, "Estimated Total", tree.Totals.Lines[1].Label)
	assert.Equal(t, "LKR 6,000.00", tree.Totals.Lines[1].Display)
	assert.Equal(t, []string{"Quote: #Q-2024-001", "Date: 2024-05-10", "Valid until: 2024-05-24"}, tree.Header.MetaLines)
	assert.Equal(t, "Quote For", tree.Parties.To.Title)
	assert.Equal(t, []string{"1", "Insurance", "LKR 1,000.00", "LKR 1,000.00"}, tree.Table.Rows[1].Cells)
	assert.Equal(t, "www.akalankaenterprises.lk", tree.Footer.Site)
	assert.Equal(t, "This is a system-generated document.", tree.Footer.Note)
}

func TestBuilder_AmountDerivedFromRate(t *testing.T) {
	quote := &document.Quotation{
		Items: []document.LineItem{
			{Quantity: decimal.NewFromInt(2), Description: "Child seat", Rate: amount("750")},
			{Quantity: decimal.NewFromInt(1), Description: "Free pickup"},
		},
	}

	tree, err := document.NewBuilder(backend).Build(quote, settings.Defaults())
	require.NoError(t, err)

	assert.Equal(t, "LKR 750.00", tree.Table.Rows[0].Cells[3])
	assert.Equal(t, "LKR 0.00", tree.Table.Rows[1].Cells[2])
	assert.Equal(t, "LKR 0.00", tree.Table.Rows[1].Cells[3])
	assert.True(t, decimal.NewFromInt(750).Equal(tree.Totals.Subtotal))
	assert.Equal(t, "Quote: #N/A", tree.Header.MetaLines[0])
	assert.Len(t, tree.Header.MetaLines, 2)
}

func TestBuilder_Logo(t *testing.T) {
	tests := []struct {
		name            string
		backend         string
		ref             string
		wantRef         string
		wantPlaceholder bool
	}{
		{name: "Empty", backend: backend, ref: "", wantRef: document.PlaceholderLogo, wantPlaceholder: true},
		{name: "Blank", backend: backend, ref: "   ", wantRef: document.PlaceholderLogo, wantPlaceholder: true},
		{name: "RootRelative", backend: backend, ref: "/static/logo.png", wantRef: "http://api.rentals.test:8000/static/logo.png"},
		{name: "Absolute", backend: backend, ref: "https://cdn.test/logo.png", wantRef: "https://cdn.test/logo.png"},
		{name: "NoBackendOrigin", backend: "", ref: "/logo.jpg", wantRef: "/logo.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := settings.Defaults()
			cfg.Branding.LogoReference = tt.ref

			tree, err := document.NewBuilder(tt.backend).Build(&document.Quotation{}, cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRef, tree.Header.Logo.Ref)
			assert.Equal(t, tt.wantPlaceholder, tree.Header.Logo.Placeholder)
		})
	}
}

func TestBuilder_Overrides(t *testing.T) {
	cfg := settings.Defaults()
	cfg.DocumentDefaults.NotesDefaultText = "Valid for {validity_days} days from {company}."
	cfg.DocumentDefaults.QuoteValidityDays = 30

	quote := &document.Quotation{QuoteID: "Q-9"}

	tree, err := document.NewBuilder(backend).Build(quote, cfg)
	require.NoError(t, err)

	assert.Equal(t, "QUOTATION", tree.Header.Badge)
	assert.Equal(t, "Valid for 30 days from Akalanka Enterprises.", tree.Notes)

	quote.Overrides = document.Overrides{Badge: "ESTIMATE", Notes: "Custom notes for {number}", FooterNote: "Draft"}

	tree, err = document.NewBuilder(backend).Build(quote, cfg)
	require.NoError(t, err)

	assert.Equal(t, "ESTIMATE", tree.Header.Badge)
	assert.Equal(t, "Custom notes for Q-9", tree.Notes)
	assert.Equal(t, "Draft", tree.Footer.Note)
}

func TestBuilder_StyleFlagsPassThrough(t *testing.T) {
	cfg := settings.Defaults()
	cfg.DocumentDefaults.ShowZebraRows = false
	cfg.DocumentDefaults.ShowTotalsCard = false
	cfg.Branding.AccentColor = "#112233"

	tree, err := document.NewBuilder(backend).Build(&document.Quotation{}, cfg)
	require.NoError(t, err)

	assert.Equal(t, document.Style{AccentColor: "#112233"}, tree.Style)
}

func TestBuilder_Deterministic(t *testing.T) {
	b := document.NewBuilder(backend)
	rec := invoiceFixture("1234.5", "200")

	first, err := b.Build(rec, settings.Defaults())
	require.NoError(t, err)

	second, err := b.Build(rec, settings.Defaults())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuilder_UnknownRecord(t *testing.T) {
	b := document.NewBuilder(backend)

	_, err := b.Build(nil, settings.Defaults())
	assert.ErrorIs(t, err, document.ErrUnknownRecord)

	var inv *document.Invoice

	_, err = b.Build(inv, settings.Defaults())
	assert.ErrorIs(t, err, document.ErrUnknownRecord)
}

func TestInvoice_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"rental_id": 7, "sale_id": 42,
		"customer_name": "Nimal Perera", "customer_email": "nimal@example.com",
		"car_make": "Toyota", "car_model": "Axio", "car_year": 2019,
		"start_date": "2024-03-01", "end_date": "2024-03-05",
		"total_cost": 1000.0, "deposit_amount": null,
		"is_paid": false, "payment_method": "N/A", "sale_date": "2024-03-05"
	}`

	var inv document.Invoice
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))

	assert.Equal(t, "Toyota", inv.Make)
	assert.Equal(t, 2019, inv.Year)
	assert.True(t, inv.TotalCost.Valid)
	assert.False(t, inv.DepositAmount.Valid)
}
