// Package money formats and parses the currency amounts printed on rental
// documents. Amounts are decimals; the currency is always printed as its
// three-letter code in front of the number so documents read the same in
// every locale.
package money

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with locale grouping and exactly two decimals.
// It is not safe for concurrent use; create one per document.
type Formatter struct {
	group    string
	point    string
	currency string
}

// NewFormatter returns a Formatter for the given BCP 47 language tag.
// Unparseable tags fall back to English grouping.
func NewFormatter(lang, currency string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	group, point := separators(message.NewPrinter(tag))

	return &Formatter{
		group:    group,
		point:    point,
		currency: currency,
	}
}

// separators reads the locale's grouping and decimal marks off a sample
// amount; the digits themselves are written from the decimal string.
func separators(p *message.Printer) (group, point string) {
	sample := []rune(p.Sprintf("%.2f", 1234.5))

	switch len(sample) {
	case 8:
		return string(sample[1]), string(sample[5])
	case 7:
		return "", string(sample[4])
	default:
		return ",", "."
	}
}

// Format renders d as "<CODE> 1,234.50".
func (f *Formatter) Format(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.group)
		}

		b.WriteRune(r)
	}

	b.WriteString(f.point)
	b.WriteString(frac)

	return strings.TrimSpace(f.currency + " " + b.String())
}

// FormatNull renders an optional amount; an absent amount is zero.
func (f *Formatter) FormatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return f.Format(decimal.Zero)
	}

	return f.Format(d.Decimal)
}

// Format renders an optional amount using English grouping.
func Format(amount decimal.NullDecimal, currency string) string {
	return NewFormatter("en", currency).FormatNull(amount)
}

// FormatFloat renders a float amount; NaN and infinities render as zero.
func FormatFloat(f float64, currency string) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}

	return NewFormatter("en", currency).Format(decimal.NewFromFloat(f))
}

// ParseAmount coerces an untrusted form or spreadsheet value into an amount.
// Leading currency labels ("LKR", "Rs.") and thousands separators are
// ignored. Blank or unparseable input yields an invalid NullDecimal.
func ParseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || r == '.' || unicode.IsSpace(r)
	})
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}

// ParseQuantity coerces a quantity field. Blank means a single unit;
// negative or unparseable input is zero.
func ParseQuantity(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NewFromInt(1)
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}

	return d
}
