package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

func TestResolve_Defaults(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "Nil", raw: nil},
		{name: "Empty", raw: []byte{}},
		{name: "Null", raw: []byte("null")},
		{name: "EmptyObject", raw: []byte("{}")},
		{name: "Garbage", raw: []byte("{not json")},
		{name: "Array", raw: []byte("[1,2,3]")},
		{name: "WrongSectionTypes", raw: []byte(`{"general":"x","branding":4,"documentDefaults":[],"notifications":null}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, settings.Defaults(), settings.Resolve(tt.raw))
		})
	}
}

func TestResolve_QuoteValidityDays(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "Integer", raw: `30`, want: 30},
		{name: "Zero", raw: `0`, want: 0},
		{name: "DigitString", raw: `"21"`, want: 21},
		{name: "NotANumber", raw: `"not-a-number"`, want: 14},
		{name: "EmptyString", raw: `""`, want: 14},
		{name: "Negative", raw: `-3`, want: 14},
		{name: "NegativeString", raw: `"-3"`, want: 14},
		{name: "Fraction", raw: `7.5`, want: 14},
		{name: "Bool", raw: `true`, want: 14},
		{name: "TooLarge", raw: `99999`, want: 14},
		{name: "TooLargeString", raw: `"1000000000000000000000"`, want: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []byte(`{"documentDefaults":{"quoteValidityDays":` + tt.raw + `}}`)
			got := settings.Resolve(raw)
			assert.Equal(t, tt.want, got.DocumentDefaults.QuoteValidityDays)
		})
	}
}

func TestParseValidityDays(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
		ok   bool
	}{
		{name: "Plain", in: "30", want: 30, ok: true},
		{name: "Padded", in: " 7 ", want: 7, ok: true},
		{name: "Zero", in: "0", want: 0, ok: true},
		{name: "Max", in: "3650", want: 3650, ok: true},
		{name: "OverMax", in: "3651", want: settings.DefaultQuoteValidityDays},
		{name: "TooLong", in: "00030", want: settings.DefaultQuoteValidityDays},
		{name: "Negative", in: "-1", want: settings.DefaultQuoteValidityDays},
		{name: "Word", in: "soon", want: settings.DefaultQuoteValidityDays},
		{name: "Empty", in: "", want: settings.DefaultQuoteValidityDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := settings.ParseValidityDays(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestResolve_PartialOverlay(t *testing.T) {
	raw := []byte(`{
		"general": {"companyName": "Lanka Wheels", "currency": "usd", "language": "de"},
		"branding": {"accentColor": "#0f0"},
		"documentDefaults": {"showZebraRows": false, "headerBadgeText": "ESTIMATE"}
	}`)

	got := settings.Resolve(raw)
	def := settings.Defaults()

	assert.Equal(t, "Lanka Wheels", got.General.CompanyName)
	assert.Equal(t, "USD", got.General.Currency)
	assert.Equal(t, "de", got.General.Language)
	assert.Equal(t, def.General.Email, got.General.Email)
	assert.Equal(t, "#0f0", got.Branding.AccentColor)
	assert.Equal(t, def.Branding.FooterNote, got.Branding.FooterNote)
	assert.False(t, got.DocumentDefaults.ShowZebraRows)
	assert.True(t, got.DocumentDefaults.ShowTotalsCard)
	assert.Equal(t, "ESTIMATE", got.DocumentDefaults.HeaderBadgeText)
	assert.Equal(t, def.Notifications, got.Notifications)
}

func TestResolve_InvalidFieldsFallBack(t *testing.T) {
	raw := []byte(`{
		"general": {"companyName": 42, "currency": "rupees", "language": "??"},
		"branding": {"accentColor": "blue", "logoReference": false},
		"documentDefaults": {"showTotalsCard": "yes"}
	}`)

	got := settings.Resolve(raw)
	def := settings.Defaults()

	assert.Equal(t, def.General.CompanyName, got.General.CompanyName)
	assert.Equal(t, def.General.Currency, got.General.Currency)
	assert.Equal(t, def.General.Language, got.General.Language)
	assert.Equal(t, def.Branding.AccentColor, got.Branding.AccentColor)
	assert.Equal(t, def.Branding.LogoReference, got.Branding.LogoReference)
	assert.Equal(t, def.DocumentDefaults.ShowTotalsCard, got.DocumentDefaults.ShowTotalsCard)
}

func TestResolve_LegacySchema(t *testing.T) {
	raw := []byte(`{
		"branding": {"accent": "#112233", "logoUrl": "/logo.jpg"},
		"pdf": {"headerBadge": "QUOTE", "notesDefault": "Legacy notes", "quoteValidityDays": "7"}
	}`)

	got := settings.Resolve(raw)

	assert.Equal(t, "#112233", got.Branding.AccentColor)
	assert.Equal(t, "/logo.jpg", got.Branding.LogoReference)
	assert.Equal(t, "QUOTE", got.DocumentDefaults.HeaderBadgeText)
	assert.Equal(t, "Legacy notes", got.DocumentDefaults.NotesDefaultText)
	assert.Equal(t, 7, got.DocumentDefaults.QuoteValidityDays)
}

func TestResolve_CanonicalKeysWin(t *testing.T) {
	raw := []byte(`{
		"branding": {"accentColor": "#AABBCC", "accent": "#112233"},
		"documentDefaults": {"headerBadgeText": "NEW"},
		"pdf": {"headerBadge": "OLD"}
	}`)

	got := settings.Resolve(raw)

	assert.Equal(t, "#AABBCC", got.Branding.AccentColor)
	assert.Equal(t, "NEW", got.DocumentDefaults.HeaderBadgeText)
}

func TestResolve_RoundTripsSavedConfiguration(t *testing.T) {
	cfg := settings.Defaults()
	cfg.General.CompanyName = "Coastline Cars"
	cfg.DocumentDefaults.QuoteValidityDays = 30
	cfg.Notifications.EmailOnRentalStart = true

	raw := []byte(`{"general":{"companyName":"Coastline Cars"},` +
		`"documentDefaults":{"quoteValidityDays":30},` +
		`"notifications":{"emailOnRentalStart":true}}`)

	assert.Equal(t, cfg, settings.Resolve(raw))
}
