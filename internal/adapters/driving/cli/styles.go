package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// outputStyles holds the lipgloss styles for search and scan output.
// The palette is muted and easy on the eyes.
type outputStyles struct {
	Summary   lipgloss.Style
	File      lipgloss.Style
	Path      lipgloss.Style
	Page      lipgloss.Style
	Line      lipgloss.Style
	Highlight lipgloss.Style
}

// newOutputStyles returns the output styles. When color is disabled
// every style is a no-op passthrough.
func newOutputStyles(color bool) outputStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return outputStyles{
			Summary:   plain,
			File:      plain,
			Path:      plain,
			Page:      plain,
			Line:      plain,
			Highlight: plain,
		}
	}

	return outputStyles{
		Summary:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#364C53")),  // muted slate
		File:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#91677D")),  // muted mauve
		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("#78909C")),             // warm gray-blue
		Page:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#808A73")),  // soft olive
		Line:      lipgloss.NewStyle().Foreground(lipgloss.Color("#607D8B")),             // soft blue-gray
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#221C18")).Background(lipgloss.Color("#FCF3CF")),
	}
}

// colorEnabled reports whether stdout is a terminal.
func colorEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
