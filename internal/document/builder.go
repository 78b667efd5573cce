package document

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/money"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

var ErrUnknownRecord = errors.New("unknown document record")

const dateLayout = "2006-01-02"

// Builder maps records onto document trees. It holds no per-document state
// and is safe for concurrent use.
type Builder struct {
	origin string
}

// NewBuilder returns a Builder that qualifies root-relative logo references
// against the origin of backendURL.
func NewBuilder(backendURL string) *Builder {
	return &Builder{origin: originOf(backendURL)}
}

func originOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

// Build produces the tree for rec. It reads nothing but its arguments, so the
// same record and configuration always give the same tree.
func (b *Builder) Build(rec Record, cfg settings.Configuration) (*Tree, error) {
	switch r := rec.(type) {
	case *Invoice:
		if r == nil {
			return nil, ErrUnknownRecord
		}

		return b.invoice(r, cfg), nil
	case *Quotation:
		if r == nil {
			return nil, ErrUnknownRecord
		}

		return b.quotation(r, cfg), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownRecord, rec)
	}
}

func (b *Builder) quotation(q *Quotation, cfg settings.Configuration) *Tree {
	f := money.NewFormatter(cfg.General.Language, cfg.General.Currency)
	docs := cfg.DocumentDefaults

	number := q.QuoteID
	if number == "" {
		number = "N/A"
	}

	t := b.base(KindQuotation, cfg, q.Overrides)
	t.Header.Badge = pick(q.Overrides.Badge, docs.HeaderBadgeText)
	t.Header.MetaLines = []string{"Quote: #" + number, "Date: " + q.Date}

	if d, ok := parseDate(q.Date); ok {
		validUntil := d.AddDate(0, 0, docs.QuoteValidityDays)
		t.Header.MetaLines = append(t.Header.MetaLines, "Valid until: "+validUntil.Format(dateLayout))
	}

	t.Parties.To = Party{Title: "Quote For", Lines: nonEmpty(q.CustomerName, q.CustomerEmail)}

	subtotal := decimal.Zero
	rows := make([]Row, 0, len(q.Items))

	for _, item := range q.Items {
		amount := itemAmount(item)
		subtotal = subtotal.Add(amount)

		rows = append(rows, Row{Cells: []string{
			item.Quantity.String(),
			item.Description,
			f.FormatNull(item.Rate),
			f.Format(amount),
		}})
	}

	t.Table.Rows = rows
	t.Totals = Totals{
		Subtotal: subtotal,
		Total:    subtotal,
		Lines: []TotalLine{
			{Label: "Subtotal", Amount: subtotal, Display: f.Format(subtotal)},
			{Label: "Estimated Total", Amount: subtotal, Display: f.Format(subtotal), Strong: true},
		},
	}

	t.Notes = expandNotes(pick(q.Overrides.Notes, docs.NotesDefaultText), cfg, q.QuoteID)
	t.Meta = Meta{
		Title:   "Quotation " + number,
		Author:  cfg.General.CompanyName,
		Subject: "Quotation for " + q.CustomerName,
		Number:  q.QuoteID,
		Date:    q.Date,
		Created: createdAt(q.Date),
	}

	return t
}

func (b *Builder) invoice(inv *Invoice, cfg settings.Configuration) *Tree {
	f := money.NewFormatter(cfg.General.Language, cfg.General.Currency)
	docs := cfg.DocumentDefaults
	number := strconv.FormatInt(inv.SaleID, 10)

	status := "Unpaid"
	if inv.IsPaid {
		status = "Paid"
	}

	t := b.base(KindInvoice, cfg, inv.Overrides)
	t.Header.Badge = pick(inv.Overrides.Badge, docs.InvoiceBadgeText)
	t.Header.MetaLines = []string{"Invoice #: " + number, "Date: " + inv.SaleDate, "Status: " + status}

	if inv.PaymentMethod != "" {
		t.Header.MetaLines = append(t.Header.MetaLines, "Payment: "+inv.PaymentMethod)
	}

	t.Parties.To = Party{Title: "Bill To", Lines: nonEmpty(inv.CustomerName, inv.CustomerEmail)}

	total := inv.TotalCost.Decimal
	deposit := inv.DepositAmount.Decimal
	due := total.Sub(deposit)

	t.Table.Rows = []Row{{Cells: []string{
		"1",
		rentalDescription(inv),
		f.Format(total),
		f.Format(total),
	}}}

	t.Totals = Totals{
		Subtotal:  total,
		Deduction: deposit,
		Total:     total,
		AmountDue: due,
		Lines: []TotalLine{
			{Label: "Subtotal", Amount: total, Display: f.Format(total)},
			{Label: "Deposit Paid", Amount: deposit, Display: "- " + f.Format(deposit)},
			{Label: "Total Due", Amount: due, Display: f.Format(due), Strong: true},
		},
	}

	t.Notes = expandNotes(pick(inv.Overrides.Notes, docs.InvoiceNotesText), cfg, number)
	t.Meta = Meta{
		Title:   "Invoice " + number,
		Author:  cfg.General.CompanyName,
		Subject: "Invoice for " + inv.CustomerName,
		Number:  number,
		Date:    inv.SaleDate,
		Created: createdAt(inv.SaleDate),
	}

	return t
}

// base fills the parts shared by every kind: branding, sender, table layout
// and footer.
func (b *Builder) base(kind Kind, cfg settings.Configuration, o Overrides) *Tree {
	g := cfg.General

	return &Tree{
		Kind: kind,
		Style: Style{
			AccentColor: cfg.Branding.AccentColor,
			ZebraRows:   cfg.DocumentDefaults.ShowZebraRows,
			TotalsCard:  cfg.DocumentDefaults.ShowTotalsCard,
		},
		Header: Header{
			Logo:      b.logo(cfg.Branding.LogoReference),
			BrandName: g.CompanyName,
			BrandLines: nonEmpty(
				g.Tagline,
				joinNonEmpty(" · ", g.Address, g.Phone),
				g.Email,
			),
		},
		Parties: Parties{
			From: Party{
				Title: "From",
				Lines: nonEmpty(g.CompanyName, g.Address, labelled("Phone", g.Phone), labelled("Email", g.Email)),
			},
		},
		Table:  Table{Columns: Columns()},
		Footer: Footer{Site: g.Website, Note: pick(o.FooterNote, cfg.Branding.FooterNote)},
	}
}

func (b *Builder) logo(ref string) Logo {
	ref = strings.TrimSpace(ref)

	switch {
	case ref == "":
		return Logo{Ref: PlaceholderLogo, Placeholder: true}
	case strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") && b.origin != "":
		return Logo{Ref: b.origin + ref}
	default:
		return Logo{Ref: ref}
	}
}

func rentalDescription(inv *Invoice) string {
	vehicle := strings.Join(nonEmpty(yearString(inv.Year), inv.Make, inv.Model), " ")

	return fmt.Sprintf("Car Rental - %s (Rental #%d)\nPeriod: %s to %s",
		vehicle, inv.RentalID, inv.StartDate, inv.EndDate)
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}

	return strconv.Itoa(y)
}

// itemAmount treats a missing amount as one unit at the item's rate.
func itemAmount(item LineItem) decimal.Decimal {
	if item.Amount.Valid {
		return item.Amount.Decimal
	}

	if item.Rate.Valid {
		return item.Rate.Decimal
	}

	return decimal.Zero
}

func expandNotes(text string, cfg settings.Configuration, number string) string {
	return strings.NewReplacer(
		"{company}", cfg.General.CompanyName,
		"{number}", number,
		"{validity_days}", strconv.Itoa(cfg.DocumentDefaults.QuoteValidityDays),
	).Replace(text)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(dateLayout) {
		return time.Time{}, false
	}

	d, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}

	return d, true
}

func createdAt(s string) time.Time {
	d, _ := parseDate(s)
	return d
}

func pick(override, def string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}

	return def
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}

	return label + ": " + value
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(nonEmpty(parts...), sep)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}

	return out
}
