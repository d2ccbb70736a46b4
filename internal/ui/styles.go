package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used across the views.
type Styles struct {
	Title         lipgloss.Style
	TableHeader   lipgloss.Style
	SelectedRow   lipgloss.Style
	Text          lipgloss.Style
	MutedText     lipgloss.Style
	WarningText   lipgloss.Style
	DangerText    lipgloss.Style
	StatusBar     lipgloss.Style
	PaneBorder    lipgloss.Style
	FocusedBorder lipgloss.Style

	StateColors map[string]lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true),
		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Bold(true),
		SelectedRow: lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("231")),
		Text:        text,
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		PaneBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("81")),

		StateColors: map[string]lipgloss.Style{
			"RUNNING":    lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
			"PENDING":    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			"COMPLETING": lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			"COMPLETED":  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			"FAILED":     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			"CANCELLED":  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			"TIMEOUT":    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}

// stateStyle picks the color for a job state, falling back to plain text.
func (s Styles) stateStyle(state string) lipgloss.Style {
	if style, ok := s.StateColors[state]; ok {
		return style
	}
	return s.Text
}
