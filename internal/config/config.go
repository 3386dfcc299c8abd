// =============================================================================
// Price Board - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Settings come from three
// layers, later layers winning:
//
//   1. Built-in defaults (see Default)
//   2. The YAML file (config.yaml by default)
//   3. Environment variables, optionally from a .env file
//
// ENVIRONMENT VARIABLES:
//   PRICEBOARD_CSV_URL         -> source.url
//   PRICEBOARD_CSV_FILE        -> source.file
//   PRICEBOARD_SPREADSHEET_ID  -> source.google_sheets.spreadsheet_id
//   PRICEBOARD_ICON_INDEX_URL  -> icons.index_url
//   PRICEBOARD_ADDR            -> server.addr
//   LOGLEVEL                   -> log_level
//   ENV=production             -> log_format json
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/retry"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete application configuration.
type Config struct {
	// Source selects where the price list is loaded from. Exactly one of
	// URL, File and GoogleSheets.SpreadsheetID must be set.
	Source SourceConfig `yaml:"source"`

	// Icons configures the optional icon index.
	Icons IconsConfig `yaml:"icons"`

	// Server configures the HTTP board.
	Server ServerConfig `yaml:"server"`

	// Fetch bounds the retry loop used for every download.
	Fetch FetchConfig `yaml:"fetch"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log encoding.
	// Valid values: "console", "json"
	// Default: "console"
	LogFormat string `yaml:"log_format"`
}

// SourceConfig describes the price list location.
type SourceConfig struct {
	// URL is an http(s) CSV export URL, e.g. a published spreadsheet. A path
	// ending in .xlsx is downloaded as a workbook.
	URL string `yaml:"url"`

	// File is a local .csv or .xlsx path.
	File string `yaml:"file"`

	// Sheet is the worksheet read from an .xlsx file or URL. "" means the first
	// sheet.
	Sheet string `yaml:"sheet"`

	// Encoding of CSV payloads.
	// Valid values: "utf-8", "latin1", "windows-1252"
	// Default: "utf-8"
	Encoding string `yaml:"encoding"`

	// GoogleSheets reads the values API directly instead of a CSV export.
	GoogleSheets GoogleSheetsConfig `yaml:"google_sheets"`
}

// GoogleSheetsConfig holds the Sheets API settings.
type GoogleSheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`

	// Range in A1 notation. Default: "A1:Z1000"
	Range string `yaml:"range"`

	// CredentialsFile is a service account JSON key.
	// Default: "credentials.json"
	CredentialsFile string `yaml:"credentials_file"`
}

// IconsConfig configures icon resolution.
type IconsConfig struct {
	// IndexURL points at the JSON icon index. "" disables icons.
	IndexURL string `yaml:"index_url"`

	// BaseURL is prepended to every icon path from the index.
	BaseURL string `yaml:"base_url"`

	// DefaultNamespace applies to identifiers without "namespace:".
	// Default: "minecraft"
	DefaultNamespace string `yaml:"default_namespace"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address. Default: "127.0.0.1:8080"
	Addr string `yaml:"addr"`

	// RefreshInterval reloads the price list periodically. 0 disables it.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// FetchConfig mirrors retry.Config in YAML form.
type FetchConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Retry converts the fetch settings for the retry package.
func (f FetchConfig) Retry() retry.Config {
	return retry.Config{
		MaxRetries: f.MaxRetries,
		BaseDelay:  f.BaseDelay,
		MaxDelay:   f.MaxDelay,
		Timeout:    f.Timeout,
	}
}

// =============================================================================
// SOURCE KINDS
// =============================================================================

// SourceKind names the configured price list origin.
type SourceKind string

const (
	SourceURL          SourceKind = "url"
	SourceFile         SourceKind = "file"
	SourceGoogleSheets SourceKind = "google_sheets"
)

// ErrNoSource is returned by SourceKind when no origin is configured.
var ErrNoSource = errors.New("no price list source configured (set source.url, source.file or source.google_sheets.spreadsheet_id)")

// SourceKind reports which origin is configured. It fails when none or more
// than one is set.
func (c *Config) SourceKind() (SourceKind, error) {
	var kinds []SourceKind
	if c.Source.URL != "" {
		kinds = append(kinds, SourceURL)
	}
	if c.Source.File != "" {
		kinds = append(kinds, SourceFile)
	}
	if c.Source.GoogleSheets.SpreadsheetID != "" {
		kinds = append(kinds, SourceGoogleSheets)
	}

	switch len(kinds) {
	case 0:
		return "", ErrNoSource
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("more than one price list source configured: %v", kinds)
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Encoding: "utf-8",
			GoogleSheets: GoogleSheetsConfig{
				Range:           "A1:Z1000",
				CredentialsFile: "credentials.json",
			},
		},
		Icons: IconsConfig{
			DefaultNamespace: "minecraft",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Fetch: FetchConfig{
			MaxRetries: 2,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   5 * time.Second,
			Timeout:    15 * time.Second,
		},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// LoadEnvFile loads a .env file into the process environment if one exists.
// It reports whether a file was loaded.
func LoadEnvFile() bool {
	return godotenv.Load() == nil
}

// Load reads the configuration file, applies environment overrides, fills
// defaults and validates the result.
//
// PARAMETERS:
//   - configPath: The path to the YAML file.
//   - required: When false, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or a value is invalid.
func Load(configPath string, required bool) (*Config, error) {
	config := Default()

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// Defaults and environment only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides copies set environment variables over file values.
func applyEnvOverrides(config *Config) {
	config.Source.URL = getEnvWithDefault("PRICEBOARD_CSV_URL", config.Source.URL)
	config.Source.File = getEnvWithDefault("PRICEBOARD_CSV_FILE", config.Source.File)
	config.Source.GoogleSheets.SpreadsheetID = getEnvWithDefault("PRICEBOARD_SPREADSHEET_ID", config.Source.GoogleSheets.SpreadsheetID)
	config.Icons.IndexURL = getEnvWithDefault("PRICEBOARD_ICON_INDEX_URL", config.Icons.IndexURL)
	config.Server.Addr = getEnvWithDefault("PRICEBOARD_ADDR", config.Server.Addr)
	config.LogLevel = getEnvWithDefault("LOGLEVEL", config.LogLevel)

	if os.Getenv("ENV") == "production" {
		config.LogFormat = "json"
	}
}

// applyDefaults fills values the file set to empty.
func applyDefaults(config *Config) {
	if config.Source.Encoding == "" {
		config.Source.Encoding = "utf-8"
	}
	if config.Source.GoogleSheets.Range == "" {
		config.Source.GoogleSheets.Range = "A1:Z1000"
	}
	if config.Source.GoogleSheets.CredentialsFile == "" {
		config.Source.GoogleSheets.CredentialsFile = "credentials.json"
	}
	if config.Icons.DefaultNamespace == "" {
		config.Icons.DefaultNamespace = "minecraft"
	}
	if config.Server.Addr == "" {
		config.Server.Addr = "127.0.0.1:8080"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}

	config.LogLevel = strings.ToLower(config.LogLevel)
	config.LogFormat = strings.ToLower(config.LogFormat)
	config.Source.Encoding = strings.ToLower(config.Source.Encoding)
}

// validate checks value ranges. The source itself is checked by SourceKind
// because commands like version never load a price list.
func validate(config *Config) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch config.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	if _, err := csvparser.Decode(nil, config.Source.Encoding); err != nil {
		return fmt.Errorf("source.encoding: %w", err)
	}

	if config.Server.RefreshInterval < 0 {
		return fmt.Errorf("server.refresh_interval must not be negative")
	}

	if config.Fetch.MaxRetries < 0 || config.Fetch.BaseDelay < 0 ||
		config.Fetch.MaxDelay < 0 || config.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch values must not be negative")
	}

	return nil
}

// getEnvWithDefault fetches an environment variable with a default fallback.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
