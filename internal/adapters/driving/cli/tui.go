package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pagehound/pagehound-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search the corpus interactively",
	Long: `Extract text from every PDF in the source directory (using the
cache where possible), then open an interactive search prompt over
the extracted corpus.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := extractCorpus(ctx)
	if err != nil {
		return err
	}

	return tui.Run(records, searchService)
}
