package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
)

// configFileName is the well-known config file inside the config directory.
const configFileName = "config.toml"

// Store backend names accepted by Config.Store.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config is the full configuration surface. Values are pass-through for
// the collaborators: presence and type are validated here, semantics are
// the adapters' business.
type Config struct {
	// SourceDir is the directory scanned for PDF documents.
	SourceDir string `toml:"source_dir"`

	// CacheDir holds extraction records and the index. Empty means the
	// store default (~/.pagehound/cache).
	CacheDir string `toml:"cache_dir"`

	// Store selects the cache backend: "file" (default) or "sqlite".
	Store string `toml:"store"`

	// Workers is the page pool size. Zero means one worker per CPU.
	Workers int `toml:"workers"`

	// Languages are OCR language hints (e.g. ["eng", "deu"]).
	Languages []string `toml:"languages"`

	// DPI is the rasterization resolution hint. Zero means 300.
	DPI int `toml:"dpi"`

	// PopplerPath overrides the pdftoppm binary location. Empty means
	// PATH lookup.
	PopplerPath string `toml:"poppler_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreFile,
	}
}

// Load reads configuration from configDir/config.toml, falling back to
// ~/.pagehound, and applies PAGEHOUND_* environment overrides. A missing
// config file is fine; a malformed one is an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".pagehound")
	}

	cfg := Default()

	path := filepath.Join(configDir, configFileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file yet - defaults plus env.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides config values from PAGEHOUND_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PAGEHOUND_SOURCE_DIR"); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv("PAGEHOUND_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("PAGEHOUND_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("PAGEHOUND_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv("PAGEHOUND_LANG"); v != "" {
		c.Languages = strings.Split(v, "+")
	}
	if v := os.Getenv("PAGEHOUND_DPI"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DPI = n
		}
	}
	if v := os.Getenv("PAGEHOUND_POPPLER"); v != "" {
		c.PopplerPath = v
	}
}

// Validate checks presence and type constraints.
func (c *Config) Validate() error {
	if c.Store != StoreFile && c.Store != StoreSQLite {
		return fmt.Errorf("%w: store must be %q or %q, got %q",
			domain.ErrInvalidInput, StoreFile, StoreSQLite, c.Store)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", domain.ErrInvalidInput)
	}
	if c.DPI < 0 {
		return fmt.Errorf("%w: dpi must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// Save writes the configuration to configDir/config.toml, creating the
// directory if needed. Used by `pagehound config set`-style tooling and
// tests.
func (c *Config) Save(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, configFileName), data, 0600)
}
