package settings

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

var (
	hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
	digitsRe   = regexp.MustCompile(`^[0-9]+$`)
)

// maxValidityDays bounds digit strings so Atoi cannot overflow into nonsense.
const maxValidityDays = 3650

type object = map[string]any

// Resolve merges persisted settings over the defaults. raw may be nil, empty,
// JSON null, any subset of the schema, the legacy schema written by the old
// admin page, or garbage; every field that is missing or of the wrong type
// resolves to its default. Resolve never fails.
func Resolve(raw []byte) Configuration {
	cfg := Defaults()

	var root object
	if err := json.Unmarshal(raw, &root); err != nil || root == nil {
		return cfg
	}

	if general, ok := section(root, "general"); ok {
		g := &cfg.General
		g.CompanyName = str(general, g.CompanyName, "companyName")
		g.Tagline = str(general, g.Tagline, "tagline")
		g.Email = str(general, g.Email, "email")
		g.Phone = str(general, g.Phone, "phone")
		g.Address = str(general, g.Address, "address")
		g.Website = str(general, g.Website, "website")
		g.Currency = currency(general, g.Currency)
		g.Language = lang(general, g.Language)
	}

	if branding, ok := section(root, "branding"); ok {
		b := &cfg.Branding
		b.AccentColor = hexColor(branding, b.AccentColor)
		b.LogoReference = str(branding, b.LogoReference, "logoReference", "logoUrl")
		b.FooterNote = str(branding, b.FooterNote, "footerNote")
	}

	if docs, ok := section(root, "documentDefaults", "pdf"); ok {
		d := &cfg.DocumentDefaults
		d.HeaderBadgeText = str(docs, d.HeaderBadgeText, "headerBadgeText", "headerBadge")
		d.InvoiceBadgeText = str(docs, d.InvoiceBadgeText, "invoiceBadgeText")
		d.QuoteValidityDays = validityDays(docs, "quoteValidityDays")
		d.NotesDefaultText = str(docs, d.NotesDefaultText, "notesDefaultText", "notesDefault")
		d.InvoiceNotesText = str(docs, d.InvoiceNotesText, "invoiceNotesText")
		d.ShowZebraRows = boolean(docs, d.ShowZebraRows, "showZebraRows")
		d.ShowTotalsCard = boolean(docs, d.ShowTotalsCard, "showTotalsCard")
	}

	if notify, ok := section(root, "notifications"); ok {
		n := &cfg.Notifications
		n.EmailOnInvoice = boolean(notify, n.EmailOnInvoice, "emailOnInvoice")
		n.EmailOnRentalStart = boolean(notify, n.EmailOnRentalStart, "emailOnRentalStart")
		n.EmailOnRentalEnd = boolean(notify, n.EmailOnRentalEnd, "emailOnRentalEnd")
	}

	return cfg
}

// section returns the first key holding a JSON object. Keys are listed
// canonical name first, legacy names after.
func section(root object, keys ...string) (object, bool) {
	for _, k := range keys {
		if v, ok := root[k].(object); ok {
			return v, true
		}
	}

	return nil, false
}

// lookup returns the value of the first key present in obj.
func lookup(obj object, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}

	return nil, false
}

func str(obj object, def string, keys ...string) string {
	v, ok := lookup(obj, keys...)
	if !ok {
		return def
	}

	s, ok := v.(string)
	if !ok {
		return def
	}

	return s
}

func boolean(obj object, def bool, keys ...string) bool {
	v, ok := lookup(obj, keys...)
	if !ok {
		return def
	}

	b, ok := v.(bool)
	if !ok {
		return def
	}

	return b
}

func currency(obj object, def string) string {
	code := strings.ToUpper(strings.TrimSpace(str(obj, "", "currency")))
	if !currencyRe.MatchString(code) {
		return def
	}

	return code
}

func lang(obj object, def string) string {
	tag := strings.TrimSpace(str(obj, "", "language"))
	if tag == "" {
		return def
	}

	if _, err := language.Parse(tag); err != nil {
		return def
	}

	return tag
}

func hexColor(obj object, def string) string {
	c := strings.TrimSpace(str(obj, "", "accentColor", "accent"))
	if !hexColorRe.MatchString(c) {
		return def
	}

	return c
}

// validityDays accepts JSON integers and digit-only strings (the admin form
// stores the raw input while the user types). Everything else is the default.
func validityDays(obj object, key string) int {
	v, ok := lookup(obj, key)
	if !ok {
		return DefaultQuoteValidityDays
	}

	switch n := v.(type) {
	case float64:
		if n < 0 || n > maxValidityDays || n != math.Trunc(n) {
			return DefaultQuoteValidityDays
		}

		return int(n)
	case string:
		days, _ := ParseValidityDays(n)
		return days
	}

	return DefaultQuoteValidityDays
}

// ParseValidityDays reads a validity typed as text: digits only, at most
// maxValidityDays. Anything else reports false with the default.
func ParseValidityDays(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !digitsRe.MatchString(s) || len(s) > 4 {
		return DefaultQuoteValidityDays, false
	}

	days, err := strconv.Atoi(s)
	if err != nil || days > maxValidityDays {
		return DefaultQuoteValidityDays, false
	}

	return days, true
}
