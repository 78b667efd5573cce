package document

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceholderLogo is the logo reference used when no logo is configured. The
// asset loader recognises it and serves the built-in image.
const PlaceholderLogo = "builtin:placeholder-logo"

// Tree is the only thing a renderer sees. It is built fresh for every
// document and never shared between renders.
type Tree struct {
	Kind    Kind
	Meta    Meta
	Style   Style
	Header  Header
	Parties Parties
	Table   Table
	Totals  Totals
	Notes   string
	Footer  Footer
}

type Meta struct {
	Title   string
	Author  string
	Subject string
	// Number is the quote or invoice number as printed.
	Number string
	// Date is the document date as printed.
	Date string
	// Created is derived from Date; zero when Date is not YYYY-MM-DD.
	Created time.Time
}

type Style struct {
	AccentColor string
	ZebraRows   bool
	TotalsCard  bool
}

type Logo struct {
	Ref         string
	Placeholder bool
	// Data holds PNG bytes once the asset has been loaded. Empty means the
	// renderer draws the placeholder.
	Data []byte
}

type Header struct {
	Logo       Logo
	BrandName  string
	BrandLines []string
	Badge      string
	MetaLines  []string
}

type Party struct {
	Title string
	Lines []string
}

type Parties struct {
	From Party
	To   Party
}

type Align string

const (
	AlignLeft  Align = "L"
	AlignRight Align = "R"
)

type Column struct {
	Key    string
	Header string
	// Width is the share of the table width, in percent.
	Width float64
	Align Align
}

type Row struct {
	Cells []string
}

type Table struct {
	Columns []Column
	Rows    []Row
}

type TotalLine struct {
	Label   string
	Amount  decimal.Decimal
	Display string
	Strong  bool
}

// Totals carries both the numbers and their printed lines. Deduction and
// AmountDue are only set on invoices.
type Totals struct {
	Subtotal  decimal.Decimal
	Deduction decimal.Decimal
	Total     decimal.Decimal
	AmountDue decimal.Decimal
	Lines     []TotalLine
}

type Footer struct {
	Site string
	Note string
}

// Columns returns the item table layout shared by every document kind.
func Columns() []Column {
	return []Column{
		{Key: "qty", Header: "Qty", Width: 10, Align: AlignLeft},
		{Key: "description", Header: "Description", Width: 52, Align: AlignLeft},
		{Key: "rate", Header: "Rate", Width: 18, Align: AlignRight},
		{Key: "amount", Header: "Amount", Width: 20, Align: AlignRight},
	}
}
