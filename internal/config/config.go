// Package config provides configuration loading and validation for the CLI and API.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Embedder names accepted in configuration
const (
	EmbedderHashing = "hashing"
	EmbedderGemini  = "gemini"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Inputs
	Transcript    string `json:"transcript,omitempty"`     // Path to transcript text file ("-" for stdin)
	TranscriptURL string `json:"transcript_url,omitempty"` // URL to fetch transcript from
	Catalog       string `json:"catalog,omitempty"`        // Path to materials catalog JSON (embedded default when empty)

	// Outputs
	Output       string `json:"output,omitempty"`        // Path of the quote JSON artifact
	FeedbackFile string `json:"feedback_file,omitempty"` // CSV feedback ledger (used when no database)

	// Pricing
	BaseMargin     *float64 `json:"base_margin,omitempty"`      // Base margin percent before feedback adjustment
	SupplierURL    string   `json:"supplier_url,omitempty"`     // Live price service (simulated when empty)
	PriceTimeoutMS int      `json:"price_timeout_ms,omitempty"` // Timeout for a single live price lookup

	// Collaborators
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Embedder    string `json:"embedder,omitempty"`     // "hashing" or "gemini"
	MemoryFile  string `json:"memory_file,omitempty"`  // Semantic memory file (used when no database)
	TopK        int    `json:"top_k,omitempty"`        // Similar quotes returned by search

	// API tokens
	TokenSecret string `json:"-"`                      // JWT_SECRET, never read from files
	TokenIssuer string `json:"token_issuer,omitempty"` // Issuer claim of estimator tokens
	TokenTTL    string `json:"token_ttl,omitempty"`    // Token lifetime as a Go duration ("12h")

	// Behavior
	Verbose   bool   `json:"verbose,omitempty"`    // Print human-readable summaries
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // text or json
}

// Defaults returns the built-in configuration values
func Defaults() Config {
	margin := 15.0
	return Config{
		Output:         filepath.Join("output", "sample_quote.json"),
		FeedbackFile:   filepath.Join("data", "feedback.csv"),
		MemoryFile:     filepath.Join("data", "memory.json"),
		BaseMargin:     &margin,
		PriceTimeoutMS: 2000,
		Embedder:       EmbedderHashing,
		TopK:           3,
		TokenIssuer:    DefaultTokenIssuer,
		TokenTTL:       DefaultTokenTTL,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the commands after merging with flags.
func (c *Config) Validate() error {
	if c.Transcript != "" && c.TranscriptURL != "" {
		return fmt.Errorf("config error: 'transcript' and 'transcript_url' are mutually exclusive")
	}

	if c.BaseMargin != nil && (*c.BaseMargin < 0 || *c.BaseMargin > 100) {
		return fmt.Errorf("config error: 'base_margin' must be between 0 and 100")
	}
	if c.PriceTimeoutMS < 0 {
		return fmt.Errorf("config error: 'price_timeout_ms' must be non-negative")
	}
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}

	if _, err := c.tokenTTL(); err != nil {
		return err
	}

	switch c.Embedder {
	case "", EmbedderHashing, EmbedderGemini:
	default:
		return fmt.Errorf("config error: unknown embedder %q (want %q or %q)", c.Embedder, EmbedderHashing, EmbedderGemini)
	}

	if c.Transcript != "" && c.Transcript != "-" {
		if _, err := os.Stat(c.Transcript); os.IsNotExist(err) {
			return fmt.Errorf("config error: transcript file not found: %s", c.Transcript)
		}
	}
	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Transcript == "" {
		result.Transcript = defaults.Transcript
	}
	if result.TranscriptURL == "" {
		result.TranscriptURL = defaults.TranscriptURL
	}
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.FeedbackFile == "" {
		result.FeedbackFile = defaults.FeedbackFile
	}
	if result.MemoryFile == "" {
		result.MemoryFile = defaults.MemoryFile
	}
	if result.SupplierURL == "" {
		result.SupplierURL = defaults.SupplierURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Embedder == "" {
		result.Embedder = defaults.Embedder
	}
	if result.TokenIssuer == "" {
		result.TokenIssuer = defaults.TokenIssuer
	}
	if result.TokenTTL == "" {
		result.TokenTTL = defaults.TokenTTL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if unset
	if result.BaseMargin == nil && defaults.BaseMargin != nil {
		margin := *defaults.BaseMargin
		result.BaseMargin = &margin
	}
	if result.PriceTimeoutMS == 0 {
		result.PriceTimeoutMS = defaults.PriceTimeoutMS
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Margin returns the base margin, or 0 when unset
func (c *Config) Margin() float64 {
	if c.BaseMargin == nil {
		return 0
	}
	return *c.BaseMargin
}

// PriceTimeout returns the live price timeout as a duration
func (c *Config) PriceTimeout() time.Duration {
	return time.Duration(c.PriceTimeoutMS) * time.Millisecond
}

// ApplyEnv fills collaborator settings from the environment when unset
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.SupplierURL == "" {
		c.SupplierURL = os.Getenv("SUPPLIER_URL")
	}
	if c.TokenSecret == "" {
		c.TokenSecret = os.Getenv("JWT_SECRET")
	}
	if c.TokenTTL == "" {
		c.TokenTTL = os.Getenv("TOKEN_TTL")
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if c.LogFormat == "" {
		c.LogFormat = os.Getenv("LOG_FORMAT")
	}
}
