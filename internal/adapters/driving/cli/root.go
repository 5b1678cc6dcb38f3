// Package cli implements the cobra command surface: scan, search, tui
// and version. Commands wire the driven adapters together from the
// loaded configuration and call the core services through their driving
// ports.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	configfile "github.com/pagehound/pagehound-cli/internal/adapters/driven/config/file"
	"github.com/pagehound/pagehound-cli/internal/adapters/driven/corpus/filesystem"
	"github.com/pagehound/pagehound-cli/internal/adapters/driven/ocr/tesseract"
	"github.com/pagehound/pagehound-cli/internal/adapters/driven/raster/poppler"
	filestore "github.com/pagehound/pagehound-cli/internal/adapters/driven/storage/file"
	"github.com/pagehound/pagehound-cli/internal/adapters/driven/storage/sqlite"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driving"
	"github.com/pagehound/pagehound-cli/internal/core/services"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

var (
	version = "dev"

	verboseFlag bool
	configDir   string
	sourceFlag  string
	storeFlag   string
	workersFlag int

	cfg               *configfile.Config
	extractionService driving.ExtractionService
	searchService     driving.SearchService
	corpusScanner     driven.CorpusScanner
	storeCloser       io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "pagehound",
	Short: "OCR-extract and search a directory of PDFs",
	Long: `Pagehound extracts text from scanned PDFs with OCR, caches the
extracted text keyed by content, and searches the cached corpus by
keyword. Unchanged documents are never re-extracted: a size and
modification time check against the cache index skips them entirely.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.pagehound)")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "source directory of PDFs (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "cache backend: file or sqlite (overrides config)")
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "page OCR workers (0 = one per CPU)")
}

// Execute runs the root command. v is the build version string.
func Execute(v string) error {
	version = v
	defer closeStore()
	return rootCmd.Execute()
}

// initServices builds the adapters and services from configuration.
// Idempotent: tests preload the service vars and skip the wiring.
func initServices() error {
	if extractionService != nil {
		return nil
	}

	loaded, err := configfile.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	if sourceFlag != "" {
		cfg.SourceDir = sourceFlag
	}
	if storeFlag != "" {
		cfg.Store = storeFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if workersFlag > 0 {
		cfg.Workers = workersFlag
	}

	var store driven.CacheStore
	switch cfg.Store {
	case configfile.StoreSQLite:
		s, err := sqlite.NewStore(cfg.CacheDir)
		if err != nil {
			return fmt.Errorf("open sqlite cache: %w", err)
		}
		store = s
		storeCloser = s
	default:
		s, err := filestore.NewStore(cfg.CacheDir)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		store = s
	}

	rasterizer := poppler.New(cfg.PopplerPath, cfg.DPI)
	recognizer := tesseract.New(
		tesseract.WithLanguages(cfg.Languages...),
		tesseract.WithDPI(cfg.DPI),
	)

	extractionService = services.NewCoordinator(store, rasterizer, recognizer, cfg.Workers)
	searchService = services.NewSearcher()
	corpusScanner = filesystem.New()

	logger.Debug("Services wired: store=%s, workers=%d, dpi=%d", cfg.Store, cfg.Workers, cfg.DPI)
	return nil
}

// closeStore releases the sqlite connection if that backend is active.
func closeStore() {
	if storeCloser != nil {
		if err := storeCloser.Close(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
		storeCloser = nil
	}
}

// sourceDir returns the effective source directory.
func sourceDir() string {
	if sourceFlag != "" {
		return sourceFlag
	}
	if cfg != nil {
		return cfg.SourceDir
	}
	return ""
}
