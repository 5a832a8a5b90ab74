package ui

import "github.com/charmbracelet/lipgloss"

// Palette roughly matching the Docker brand blues plus an orange accent for
// selection and sort markers.
var (
	ColorAccent   = lipgloss.Color("#FFB224")
	ColorBorder   = lipgloss.Color("#444444")
	ColorSelected = lipgloss.Color("#0066CC")
	ColorDim      = lipgloss.Color("#888888")
	ColorError    = lipgloss.Color("#CC0000")
	ColorOK       = lipgloss.Color("#00AA00")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	headerSortedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(ColorSelected).
				Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	panelSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent)

	rowSelectedStyle = lipgloss.NewStyle().
				Background(ColorSelected).
				Foreground(lipgloss.Color("#FFFFFF"))

	dimStyle = lipgloss.NewStyle().Foreground(ColorDim)

	infoBoxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorOK).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	errorDialogStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(ColorError).
				Padding(1, 2)

	errorTextStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	chartStyle = lipgloss.NewStyle().Foreground(ColorSelected)
)

// stateStyle colors the containers table row by lifecycle state.
func stateColor(running bool) lipgloss.Style {
	if running {
		return lipgloss.NewStyle().Foreground(ColorOK)
	}
	return dimStyle
}
