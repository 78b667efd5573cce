// Package document turns invoice and quotation records plus the resolved
// settings into a Tree: the complete, renderer-independent description of a
// printed document.
package document

import (
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindInvoice   Kind = "invoice"
	KindQuotation Kind = "quotation"
)

// Record is implemented only by *Invoice and *Quotation.
type Record interface {
	Kind() Kind
	sealed()
}

// Overrides replace the configured defaults for a single document when set.
type Overrides struct {
	Badge      string `json:"badge,omitempty"`
	Notes      string `json:"notes,omitempty"`
	FooterNote string `json:"footer_note,omitempty"`
}

type Vehicle struct {
	Year  int    `json:"car_year"`
	Make  string `json:"car_make"`
	Model string `json:"car_model"`
}

// Invoice mirrors the backend's /rentals/{id}/invoice payload. Dates are kept
// as the backend formats them.
type Invoice struct {
	SaleID        int64  `json:"sale_id"`
	RentalID      int64  `json:"rental_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Vehicle
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	TotalCost     decimal.NullDecimal `json:"total_cost"`
	DepositAmount decimal.NullDecimal `json:"deposit_amount"`
	IsPaid        bool                `json:"is_paid"`
	PaymentMethod string              `json:"payment_method"`
	SaleDate      string              `json:"sale_date"`
	Overrides     Overrides           `json:"overrides"`
}

func (*Invoice) Kind() Kind { return KindInvoice }
func (*Invoice) sealed()    {}

type LineItem struct {
	Quantity    decimal.Decimal     `json:"qty"`
	Description string              `json:"desc"`
	Rate        decimal.NullDecimal `json:"rate"`
	// Amount defaults to Rate when absent.
	Amount decimal.NullDecimal `json:"amount"`
}

type Quotation struct {
	QuoteID       string     `json:"quote_id"`
	Date          string     `json:"date"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Items         []LineItem `json:"items"`
	Overrides     Overrides  `json:"overrides"`
}

func (*Quotation) Kind() Kind { return KindQuotation }
func (*Quotation) sealed()    {}
