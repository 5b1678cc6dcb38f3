package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

var (
	scanJSON  bool
	scanWatch bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract text from all PDFs in the source directory",
	Long: `Scans the source directory for PDF files and OCR-extracts any that
are new or changed since the last run. Unchanged documents are skipped
using the cache index. With --watch, keeps running and re-extracts
documents as they are created or modified.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "output a JSON summary per document")
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "keep watching the source directory for changes")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := extractCorpus(ctx)
	if err != nil {
		return err
	}

	if scanJSON {
		if err := outputScanJSON(cmd, records); err != nil {
			return err
		}
	} else {
		outputScanSummary(cmd, records)
	}

	if scanWatch {
		return watchCorpus(ctx, cmd)
	}
	return nil
}

// extractCorpus runs the extraction pipeline over every document in the
// source directory. Only a missing source directory is fatal; documents
// that cannot be read are reported and skipped.
func extractCorpus(ctx context.Context) ([]*domain.ExtractionRecord, error) {
	dir := sourceDir()
	paths, err := corpusScanner.ListDocuments(dir)
	if err != nil {
		return nil, err
	}
	logger.Info("Source directory: %s (%d documents)", dir, len(paths))

	index, err := extractionService.LoadIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	records := make([]*domain.ExtractionRecord, 0, len(paths))
	for _, path := range paths {
		record, err := extractionService.Process(ctx, path, index)
		if err != nil {
			logger.Error("Skipping %s: %v", path, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// watchCorpus re-runs extraction for documents as they change, until
// interrupted.
func watchCorpus(ctx context.Context, cmd *cobra.Command) error {
	dir := sourceDir()
	changes, err := corpusScanner.Watch(ctx, dir)
	if err != nil {
		return err
	}

	index, err := extractionService.LoadIndex(ctx)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	cmd.Printf("Watching %s (interrupt to stop)\n", dir)
	for path := range changes {
		record, err := extractionService.Process(ctx, path, index)
		if err != nil {
			logger.Error("Skipping %s: %v", path, err)
			continue
		}
		cmd.Printf("  extracted %s (%d pages)\n", record.AbsolutePath, record.PageCount())
	}
	return nil
}

// scanSummary is the JSON shape emitted per document by --json.
type scanSummary struct {
	Path   string `json:"path"`
	Digest string `json:"sha256"`
	Pages  int    `json:"pages"`
}

func outputScanJSON(cmd *cobra.Command, records []*domain.ExtractionRecord) error {
	summaries := make([]scanSummary, len(records))
	for i, record := range records {
		summaries[i] = scanSummary{
			Path:   record.AbsolutePath,
			Digest: record.Digest,
			Pages:  record.PageCount(),
		}
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputScanSummary(cmd *cobra.Command, records []*domain.ExtractionRecord) {
	styles := newOutputStyles(colorEnabled())
	pages := 0
	for _, record := range records {
		pages += record.PageCount()
	}
	cmd.Println(styles.Summary.Render(
		fmt.Sprintf("Extracted corpus: %d documents, %d pages", len(records), pages)))
	for _, record := range records {
		cmd.Printf("  %s (%d pages)\n", record.AbsolutePath, record.PageCount())
	}
}
