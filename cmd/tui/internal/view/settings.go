package view

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

type SettingsService interface {
	Load(ctx context.Context) settings.Configuration
	Save(ctx context.Context, cfg settings.Configuration) error
}

type settingsState int

const (
	settingsStateLoading settingsState = iota
	settingsStateEditing
	settingsStateSaving
	settingsStateResult
)

// settingsDraft mirrors Configuration with form-friendly field types.
type settingsDraft struct {
	base settings.Configuration

	companyName, tagline, email, phone, address, website string
	currency, language                                   string
	accentColor, logoReference, footerNote               string
	headerBadge, invoiceBadge, validityDays              string
	quoteNotes, invoiceNotes                             string
	zebraRows, totalsCard                                bool
}

func newSettingsDraft(cfg settings.Configuration) *settingsDraft {
	return &settingsDraft{
		base:          cfg,
		companyName:   cfg.General.CompanyName,
		tagline:       cfg.General.Tagline,
		email:         cfg.General.Email,
		phone:         cfg.General.Phone,
		address:       cfg.General.Address,
		website:       cfg.General.Website,
		currency:      cfg.General.Currency,
		language:      cfg.General.Language,
		accentColor:   cfg.Branding.AccentColor,
		logoReference: cfg.Branding.LogoReference,
		footerNote:    cfg.Branding.FooterNote,
		headerBadge:   cfg.DocumentDefaults.HeaderBadgeText,
		invoiceBadge:  cfg.DocumentDefaults.InvoiceBadgeText,
		validityDays:  strconv.Itoa(cfg.DocumentDefaults.QuoteValidityDays),
		quoteNotes:    cfg.DocumentDefaults.NotesDefaultText,
		invoiceNotes:  cfg.DocumentDefaults.InvoiceNotesText,
		zebraRows:     cfg.DocumentDefaults.ShowZebraRows,
		totalsCard:    cfg.DocumentDefaults.ShowTotalsCard,
	}
}

func (d *settingsDraft) configuration() settings.Configuration {
	cfg := d.base

	cfg.General.CompanyName = strings.TrimSpace(d.companyName)
	cfg.General.Tagline = strings.TrimSpace(d.tagline)
	cfg.General.Email = strings.TrimSpace(d.email)
	cfg.General.Phone = strings.TrimSpace(d.phone)
	cfg.General.Address = strings.TrimSpace(d.address)
	cfg.General.Website = strings.TrimSpace(d.website)
	cfg.General.Currency = strings.ToUpper(strings.TrimSpace(d.currency))
	cfg.General.Language = strings.TrimSpace(d.language)
	cfg.Branding.AccentColor = strings.TrimSpace(d.accentColor)
	cfg.Branding.LogoReference = strings.TrimSpace(d.logoReference)
	cfg.Branding.FooterNote = strings.TrimSpace(d.footerNote)
	cfg.DocumentDefaults.HeaderBadgeText = strings.TrimSpace(d.headerBadge)
	cfg.DocumentDefaults.InvoiceBadgeText = strings.TrimSpace(d.invoiceBadge)
	cfg.DocumentDefaults.NotesDefaultText = d.quoteNotes
	cfg.DocumentDefaults.InvoiceNotesText = d.invoiceNotes
	cfg.DocumentDefaults.ShowZebraRows = d.zebraRows
	cfg.DocumentDefaults.ShowTotalsCard = d.totalsCard

	cfg.DocumentDefaults.QuoteValidityDays, _ = settings.ParseValidityDays(d.validityDays)

	return cfg
}

type SettingsModel struct {
	CommonModel
	svc SettingsService

	state   settingsState
	draft   *settingsDraft
	form    *huh.Form
	spinner spinner.Model
	err     error
}

func NewSettingsModel(svc SettingsService) SettingsModel {
	return SettingsModel{
		svc:     svc,
		state:   settingsStateLoading,
		spinner: newSpinner(),
	}
}

func (m SettingsModel) Title() string { return "Document Settings" }

func (m SettingsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

type settingsLoadedMsg struct {
	cfg settings.Configuration
}

type settingsSavedMsg struct {
	err error
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != settingsStateSaving {
		return m, Back
	}

	switch msg := msg.(type) {
	case settingsLoadedMsg:
		m.draft = newSettingsDraft(msg.cfg)
		m.form = buildSettingsForm(m.draft)
		m.state = settingsStateEditing

		return m, m.form.Init()

	case settingsSavedMsg:
		m.err = msg.err
		m.state = settingsStateResult

		return m, nil
	}

	switch m.state {
	case settingsStateEditing:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		switch m.form.State {
		case huh.StateAborted:
			return m, Back
		case huh.StateCompleted:
			m.state = settingsStateSaving
			return m, tea.Batch(m.spinner.Tick, m.saveCmd(m.draft.configuration()))
		}

		return m, cmd

	case settingsStateLoading, settingsStateSaving:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m SettingsModel) View() string {
	switch m.state {
	case settingsStateLoading:
		return padded.Render(m.spinner.View() + " Loading settings...")
	case settingsStateEditing:
		return padded.Render(m.form.View())
	case settingsStateSaving:
		return padded.Render(m.spinner.View() + " Saving settings...")
	}

	var verr *settings.ValidationError
	if errors.As(m.err, &verr) {
		lines := []string{errorStyle.Render("Settings were not saved:"), ""}
		for _, field := range slices.Sorted(maps.Keys(verr.Fields)) {
			lines = append(lines, fmt.Sprintf("  %s (%s)", strings.TrimPrefix(field, "Configuration."), verr.Fields[field]))
		}

		lines = append(lines, "", hintStyle.Render("Esc: back to menu"))

		return padded.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	if m.err != nil {
		return viewError(m.err)
	}

	return padded.Render(lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("Settings saved!"),
		"",
		hintStyle.Render("Esc: back to menu"),
	))
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return settingsLoadedMsg{cfg: m.svc.Load(ctx)}
	}
}

func (m SettingsModel) saveCmd(cfg settings.Configuration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return settingsSavedMsg{err: m.svc.Save(ctx, cfg)}
	}
}

func buildSettingsForm(d *settingsDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Company Name").Value(&d.companyName),
			huh.NewInput().Title("Tagline").Value(&d.tagline),
			huh.NewInput().Title("Email").Value(&d.email),
			huh.NewInput().Title("Phone").Value(&d.phone),
			huh.NewInput().Title("Address").Value(&d.address),
			huh.NewInput().Title("Website").Value(&d.website),
		).Title("Company"),
		huh.NewGroup(
			huh.NewInput().Title("Currency").Description("ISO 4217 code, e.g. LKR").CharLimit(3).Value(&d.currency),
			huh.NewInput().Title("Language").Description("Used for number grouping, e.g. en").Value(&d.language),
			huh.NewInput().Title("Accent Color").Placeholder("#2563EB").Value(&d.accentColor),
			huh.NewInput().Title("Logo").Description("URL, /path on the backend, or blank for the placeholder").Value(&d.logoReference),
			huh.NewInput().Title("Footer Note").Value(&d.footerNote),
		).Title("Branding"),
		huh.NewGroup(
			huh.NewInput().Title("Quotation Badge").Value(&d.headerBadge),
			huh.NewInput().Title("Invoice Badge").Value(&d.invoiceBadge),
			huh.NewInput().Title("Quote Validity (days)").Validate(validateValidityDays).Value(&d.validityDays),
			huh.NewText().Title("Quotation Notes").
				Description("{company}, {number} and {validity_days} are replaced").
				Lines(3).Value(&d.quoteNotes),
			huh.NewText().Title("Invoice Notes").Lines(3).Value(&d.invoiceNotes),
			huh.NewConfirm().Title("Zebra rows in item tables?").Value(&d.zebraRows),
			huh.NewConfirm().Title("Boxed totals card?").Value(&d.totalsCard),
		).Title("Documents"),
	).WithWidth(70).WithShowHelp(false)
}
