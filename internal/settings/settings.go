// Package settings holds the branding and document configuration applied to
// every generated invoice and quotation, and resolves persisted (possibly
// partial or corrupt) settings into a complete Configuration.
package settings

// Configuration is the fully resolved document configuration. Every field is
// populated; it is read-only for the duration of a render.
type Configuration struct {
	General          General          `json:"general"`
	Branding         Branding         `json:"branding"`
	DocumentDefaults DocumentDefaults `json:"documentDefaults"`
	Notifications    Notifications    `json:"notifications"`
}

type General struct {
	CompanyName string `json:"companyName" validate:"required,max=120"`
	Tagline     string `json:"tagline" validate:"max=160"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=40"`
	Address     string `json:"address" validate:"max=240"`
	Website     string `json:"website" validate:"max=160"`
	Currency    string `json:"currency" validate:"len=3,alpha,uppercase"`
	Language    string `json:"language" validate:"bcp47_language_tag"`
}

type Branding struct {
	AccentColor string `json:"accentColor" validate:"hexcolor"`
	// LogoReference is an absolute URL, a backend-relative path ("/logo.jpg")
	// or empty for the built-in placeholder.
	LogoReference string `json:"logoReference" validate:"omitempty,max=2048"`
	FooterNote    string `json:"footerNote" validate:"max=240"`
}

type DocumentDefaults struct {
	HeaderBadgeText   string `json:"headerBadgeText" validate:"max=40"`
	InvoiceBadgeText  string `json:"invoiceBadgeText" validate:"max=40"`
	QuoteValidityDays int    `json:"quoteValidityDays" validate:"gte=0,lte=3650"`
	NotesDefaultText  string `json:"notesDefaultText" validate:"max=2000"`
	InvoiceNotesText  string `json:"invoiceNotesText" validate:"max=2000"`
	ShowZebraRows     bool   `json:"showZebraRows"`
	ShowTotalsCard    bool   `json:"showTotalsCard"`
}

// Notifications are persisted alongside the document settings so the admin
// page round-trips them; nothing in this service sends email.
type Notifications struct {
	EmailOnInvoice     bool `json:"emailOnInvoice"`
	EmailOnRentalStart bool `json:"emailOnRentalStart"`
	EmailOnRentalEnd   bool `json:"emailOnRentalEnd"`
}

const DefaultQuoteValidityDays = 14

// Defaults returns the configuration used for any field that is absent or
// invalid in persisted settings.
func Defaults() Configuration {
	return Configuration{
		General: General{
			CompanyName: "Akalanka Enterprises",
			Tagline:     "Vehicle Rentals & Services",
			Email:       "brinslykevin@gmail.com",
			Phone:       "+94 72 081 5252",
			Address:     "Marawila, Sri Lanka",
			Website:     "www.akalankaenterprises.lk",
			Currency:    "LKR",
			Language:    "en",
		},
		Branding: Branding{
			AccentColor:   "#2563EB",
			LogoReference: "",
			FooterNote:    "This is a system-generated document.",
		},
		DocumentDefaults: DocumentDefaults{
			HeaderBadgeText:   "QUOTATION",
			InvoiceBadgeText:  "INVOICE",
			QuoteValidityDays: DefaultQuoteValidityDays,
			NotesDefaultText: "This quotation is valid for 14 days. Prices may change based on " +
				"availability and final requirements.",
			InvoiceNotesText: "Thank you for choosing {company}. Please make payment within 7 days " +
				"of the invoice date. For bank transfers, use Invoice #{number} as the reference.",
			ShowZebraRows:  true,
			ShowTotalsCard: true,
		},
		Notifications: Notifications{
			EmailOnInvoice:     true,
			EmailOnRentalStart: false,
			EmailOnRentalEnd:   true,
		},
	}
}
