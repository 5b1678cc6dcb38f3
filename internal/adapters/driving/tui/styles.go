package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the interactive view.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Location lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the default theme.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#91677D")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#808A73")),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("#607D8B")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#78909C")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A26769")),
	}
}
