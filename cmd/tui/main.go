package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/cmd/tui/internal/view"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/assets"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/config"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/export"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/generator"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records/remote"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
	settingsStore "github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings/store"
)

type model struct {
	settingsService *settings.Service
	exportService   *export.Service
	records         records.Source

	currentView View

	quotationView view.QuotationModel
	invoiceView   view.InvoiceModel
	settingsView  view.SettingsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewQuotation View = 1
	ViewInvoice   View = 2
	ViewSettings  View = 3
)

func initialModel(cfg *config.Config, store settings.Store) model {
	backend := &http.Client{Timeout: cfg.Backend.Timeout}

	settingsSvc := settings.NewService(store)
	gen := generator.NewService(
		settingsSvc,
		document.NewBuilder(cfg.Backend.BaseURL),
		assets.NewLoader(backend, cfg.Assets.CacheSize, cfg.Assets.CacheTTL),
	)

	return model{
		settingsService: settingsSvc,
		exportService:   export.NewService(gen),
		records:         remote.New(cfg.Backend.BaseURL, backend),
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewQuotation
				m.quotationView = view.NewQuotationModel(m.exportService)

				return m, m.quotationView.Init()
			case "2":
				m.currentView = ViewInvoice
				m.invoiceView = view.NewInvoiceModel(m.exportService, m.records)

				return m, m.invoiceView.Init()
			case "3":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.settingsService)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewQuotation:
		var newModel tea.Model
		newModel, cmd = m.quotationView.Update(msg)
		m.quotationView = newModel.(view.QuotationModel)
	case ViewInvoice:
		var newModel tea.Model
		newModel, cmd = m.invoiceView.Update(msg)
		m.invoiceView = newModel.(view.InvoiceModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Rental Docs\n\n" +
				"1. New Quotation\n" +
				"2. Rental Invoice\n" +
				"3. Document Settings\n\n" +
				"q. Quit",
		)
	case ViewQuotation:
		return m.quotationView.View()
	case ViewInvoice:
		return m.invoiceView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := settingsStore.Open(context.Background(), cfg, &http.Client{Timeout: cfg.Backend.Timeout})
	if err != nil {
		slog.Error("failed to set up settings store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	p := tea.NewProgram(initialModel(cfg, store))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		closeStore()
		os.Exit(1)
	}
}
