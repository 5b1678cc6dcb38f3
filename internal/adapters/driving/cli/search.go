package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
)

var (
	searchLimit         int
	searchJSON          bool
	searchRegex         bool
	searchCaseSensitive bool
	searchNoColor       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the extracted corpus by keyword",
	Long: `Searches every cached page of the corpus for a keyword and prints
matches as file, page and line. The corpus is brought up to date first:
new or changed PDFs are OCR-extracted, unchanged ones are served from
the cache. Keywords match case-insensitively; --regex treats the query
as a regular expression instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of matches (0 = unlimited)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output matches as JSON")
	searchCmd.Flags().BoolVarP(&searchRegex, "regex", "e", false, "treat the query as a regular expression")
	searchCmd.Flags().BoolVarP(&searchCaseSensitive, "case-sensitive", "s", false, "match case exactly")
	searchCmd.Flags().BoolVar(&searchNoColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if err := initServices(); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := extractCorpus(ctx)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Regex:         searchRegex,
		CaseSensitive: searchCaseSensitive,
		Limit:         searchLimit,
	}

	matches, err := searchService.Search(records, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputMatchesJSON(cmd, matches)
	}

	re, err := searchService.CompileQuery(query, opts)
	if err != nil {
		return err
	}
	return outputMatches(cmd, matches, query, re)
}

// matchJSON is the JSON shape emitted per match by --json.
type matchJSON struct {
	Path string `json:"path"`
	Page int    `json:"page"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

func outputMatchesJSON(cmd *cobra.Command, matches []domain.Match) error {
	out := make([]matchJSON, len(matches))
	for i, m := range matches {
		out[i] = matchJSON{Path: m.AbsolutePath, Page: m.Page, Line: m.Line, Text: m.Text}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputMatches prints matches grouped by file, then page, with the
// matched spans highlighted. Matches arrive ordered by file, page, line,
// so grouping is a matter of tracking the previous keys.
func outputMatches(cmd *cobra.Command, matches []domain.Match, query string, re *regexp.Regexp) error {
	if len(matches) == 0 {
		cmd.Printf("No matches found for %q in any PDF.\n", query)
		return nil
	}

	styles := newOutputStyles(colorEnabled() && !searchNoColor)

	cmd.Println(styles.Summary.Render("=== SEARCH RESULTS ==="))
	prevPath := ""
	prevPage := 0
	for _, m := range matches {
		if m.AbsolutePath != prevPath {
			cmd.Println()
			cmd.Printf("%s  %s\n",
				styles.File.Render("File: "+filepath.Base(m.AbsolutePath)),
				styles.Path.Render("(full: "+m.AbsolutePath+")"))
			prevPath = m.AbsolutePath
			prevPage = 0
		}
		if m.Page != prevPage {
			cmd.Printf("  %s\n", styles.Page.Render(fmt.Sprintf("Page %d:", m.Page)))
			prevPage = m.Page
		}
		highlighted := re.ReplaceAllStringFunc(m.Text, styles.Highlight.Render)
		cmd.Printf("    %s %s\n", styles.Line.Render(fmt.Sprintf("Line %d:", m.Line)), highlighted)
	}

	cmd.Println()
	cmd.Println(styles.Summary.Render(
		fmt.Sprintf("%d match(es). Open the PDF and go to the reported page and line.", len(matches))))
	return nil
}
