package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/export"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/generator"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/render"
)

type invoiceInput struct {
	rentalID string
	format   render.Format
	path     string
}

// InvoiceModel renders the invoice of a completed rental fetched from the
// backend.
type InvoiceModel struct {
	CommonModel
	exportService *export.Service
	records       records.Source

	state   docState
	input   *invoiceInput
	form    *huh.Form
	spinner spinner.Model
	summary string
	err     error
}

func NewInvoiceModel(svc *export.Service, src records.Source) InvoiceModel {
	in := &invoiceInput{format: render.FormatPDF, path: "./documents"}

	return InvoiceModel{
		exportService: svc,
		records:       src,
		state:         docStateForm,
		input:         in,
		form:          buildInvoiceForm(in),
		spinner:       newSpinner(),
	}
}

func (m InvoiceModel) Title() string { return "Rental Invoice" }

func (m InvoiceModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m InvoiceModel) View() string {
	switch m.state {
	case docStateForm:
		return padded.Render(m.form.View())
	case docStateGenerating:
		return padded.Render(fmt.Sprintf("%s Fetching rental %s and rendering invoice...", m.spinner.View(), m.input.rentalID))
	}

	return viewGenerated(m.summary, m.err)
}

func buildInvoiceForm(in *invoiceInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("rental_id").Title("Rental ID").
				Validate(validatePositiveInt).
				Value(&in.rentalID),
			huh.NewSelect[render.Format]().Key("format").Title("Format").
				Options(huh.NewOptions(formatOptions()...)...).
				Value(&in.format),
			huh.NewInput().Key("path").Title("Output Path").Value(&in.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m InvoiceModel) generateCmd() tea.Cmd {
	in := *m.input

	return func() tea.Msg {
		id, err := strconv.ParseInt(strings.TrimSpace(in.rentalID), 10, 64)
		if err != nil {
			return generatedMsg{err: fmt.Errorf("invalid rental id: %w", err)}
		}

		ctx, cancel := OpCtx()
		defer cancel()

		inv, err := m.records.Invoice(ctx, id)
		if err != nil {
			return generatedMsg{err: err}
		}

		return runExport(m.exportService, generator.Request{Record: inv, Format: in.format}, in.path)
	}
}
