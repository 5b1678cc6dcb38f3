// Package tui provides the interactive search view: a text input over
// the extracted corpus with live keyword results.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driving"
)

// resultLimit caps how many matches one interactive query collects.
const resultLimit = 200

// Model is the bubbletea model for interactive corpus search. The corpus
// is extracted before the program starts; queries only scan cached text,
// so every keystroke-to-result round trip is fast.
type Model struct {
	input    textinput.Model
	styles   Styles
	records  []*domain.ExtractionRecord
	searcher driving.SearchService

	matches  []domain.Match
	searched bool
	err      error

	width  int
	height int
}

// New creates the interactive search model over an extracted corpus.
func New(records []*domain.ExtractionRecord, searcher driving.SearchService) Model {
	input := textinput.New()
	input.Placeholder = "keyword (case-insensitive)"
	input.Focus()
	input.CharLimit = 256

	return Model{
		input:    input,
		styles:   DefaultStyles(),
		records:  records,
		searcher: searcher,
		width:    80,
		height:   24,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.runSearch()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runSearch scans the cached corpus for the current query.
func (m *Model) runSearch() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = nil
		m.searched = false
		m.err = nil
		return
	}

	matches, err := m.searcher.Search(m.records, query, domain.SearchOptions{Limit: resultLimit})
	m.matches = matches
	m.err = err
	m.searched = true
}

// View renders the input, results and help line.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Pagehound: corpus search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	case m.searched && len(m.matches) == 0:
		b.WriteString(m.styles.Muted.Render("No matches."))
	case m.searched:
		b.WriteString(m.renderMatches())
	default:
		b.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("%d documents loaded. Type a keyword and press Enter.", len(m.records))))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("Enter: search • Esc: quit"))
	return b.String()
}

// renderMatches renders as many result lines as fit on screen.
func (m Model) renderMatches() string {
	// Input, title, help and spacing take 7 rows.
	visible := m.height - 7
	if visible < 1 {
		visible = 1
	}

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d match(es)", len(m.matches))))
	b.WriteString("\n")

	for i, match := range m.matches {
		if i >= visible {
			b.WriteString(m.styles.Muted.Render(
				fmt.Sprintf("… and %d more", len(m.matches)-visible)))
			break
		}
		location := fmt.Sprintf("%s p.%d:%d",
			filepath.Base(match.AbsolutePath), match.Page, match.Line)
		text := strings.TrimSpace(match.Text)
		// Truncate on rune boundaries; OCR text is often non-ASCII.
		if budget := m.width - len(location) - 2; budget > 0 {
			if runes := []rune(text); len(runes) > budget {
				text = string(runes[:budget])
			}
		}
		b.WriteString(m.styles.Location.Render(location))
		b.WriteString("  ")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

// Run launches the interactive search program.
func Run(records []*domain.ExtractionRecord, searcher driving.SearchService) error {
	p := tea.NewProgram(New(records, searcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
