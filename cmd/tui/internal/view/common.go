package view

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	padded       = lipgloss.NewStyle().Padding(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return s
}

func viewError(err error) string {
	return padded.Render(lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("Error: "+err.Error()),
		"",
		hintStyle.Render("Esc: back to menu"),
	))
}
