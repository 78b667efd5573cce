package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/export"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/generator"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/lineitems"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/render"
)

type docState int

const (
	docStateForm docState = iota
	docStateGenerating
	docStateResult
)

// quotationInput is shared by pointer so the form keeps writing into the
// same values while the model is copied around by bubbletea.
type quotationInput struct {
	quoteID  string
	date     string
	customer string
	email    string
	items    string
	format   render.Format
	path     string
}

type QuotationModel struct {
	CommonModel
	exportService *export.Service

	state   docState
	input   *quotationInput
	form    *huh.Form
	spinner spinner.Model
	summary string
	err     error
}

func NewQuotationModel(svc *export.Service) QuotationModel {
	in := &quotationInput{format: render.FormatPDF, path: "./documents"}

	return QuotationModel{
		exportService: svc,
		state:         docStateForm,
		input:         in,
		form:          buildQuotationForm(in),
		spinner:       newSpinner(),
	}
}

func (m QuotationModel) Title() string { return "New Quotation" }

func (m QuotationModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m QuotationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != docStateGenerating {
		return m, Back
	}

	switch m.state {
	case docStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		switch m.form.State {
		case huh.StateAborted:
			return m, Back
		case huh.StateCompleted:
			m.state = docStateGenerating
			return m, tea.Batch(m.spinner.Tick, m.generateCmd())
		}

		return m, cmd

	case docStateGenerating:
		if res, ok := msg.(generatedMsg); ok {
			m.state = docStateResult
			m.summary, m.err = res.summary, res.err

			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m QuotationModel) View() string {
	switch m.state {
	case docStateForm:
		return padded.Render(m.form.View())
	case docStateGenerating:
		return padded.Render(fmt.Sprintf("%s Rendering quotation...", m.spinner.View()))
	}

	return viewGenerated(m.summary, m.err)
}

func buildQuotationForm(in *quotationInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("quote_id").Title("Quote #").Placeholder("Q-2024-001").Value(&in.quoteID),
			huh.NewInput().Key("date").Title("Date").Description("Blank for today").
				Placeholder("2006-01-02").Validate(validateDate).Value(&in.date),
			huh.NewInput().Key("customer").Title("Customer Name").Value(&in.customer),
			huh.NewInput().Key("email").Title("Customer Email").Value(&in.email),
		),
		huh.NewGroup(
			huh.NewText().Key("items").Title("Items").
				Description("One per line: qty; description; rate[; amount]").
				Lines(8).
				Validate(validateItems).
				Value(&in.items),
		),
		huh.NewGroup(
			huh.NewSelect[render.Format]().Key("format").Title("Format").
				Options(huh.NewOptions(formatOptions()...)...).
				Value(&in.format),
			huh.NewInput().Key("path").Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Value(&in.path),
		),
	).WithWidth(70).WithShowHelp(false)
}

func validateItems(s string) error {
	items, err := lineitems.ParseText(s)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return errors.New("add at least one item")
	}

	return nil
}

func (m QuotationModel) generateCmd() tea.Cmd {
	in := *m.input

	return func() tea.Msg {
		items, err := lineitems.ParseText(in.items)
		if err != nil {
			return generatedMsg{err: err}
		}

		q := &document.Quotation{
			QuoteID:       strings.TrimSpace(in.quoteID),
			Date:          strings.TrimSpace(in.date),
			CustomerName:  strings.TrimSpace(in.customer),
			CustomerEmail: strings.TrimSpace(in.email),
			Items:         items,
		}

		return runExport(m.exportService, generator.Request{Record: q, Format: in.format}, in.path)
	}
}

type generatedMsg struct {
	summary string
	err     error
}

func runExport(svc *export.Service, req generator.Request, path string) tea.Msg {
	ctx, cancel := OpCtx()
	defer cancel()

	items, err := svc.Export(ctx, []generator.Request{req}, path)
	if err != nil {
		return generatedMsg{err: err}
	}

	return generatedMsg{summary: svc.Summary(items)}
}

func viewGenerated(summary string, err error) string {
	if err != nil {
		return viewError(err)
	}

	return padded.Render(lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("Document saved!"),
		"",
		summary,
		hintStyle.Render("Esc: back to menu"),
	))
}
