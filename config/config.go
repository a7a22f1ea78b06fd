package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/folio/ledger"
)

// Config represents the complete folio configuration
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
	Ledger  LedgerConfig  `json:"ledger" yaml:"ledger"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// StorageConfig selects where ledger state is persisted
type StorageConfig struct {
	Type string `json:"type" yaml:"type"` // "json" or "sqlite"
	Path string `json:"path" yaml:"path"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
}

// FeedConfig configures the price feed used by refresh
type FeedConfig struct {
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Token    string `json:"token,omitempty" yaml:"token,omitempty"`
	Interval string `json:"interval" yaml:"interval"` // e.g. "30s"
	Timeout  string `json:"timeout" yaml:"timeout"`
}

// LedgerConfig holds ledger defaults
type LedgerConfig struct {
	Currency           string  `json:"currency" yaml:"currency"`
	EquityWindow       int     `json:"equity_window" yaml:"equity_window"`
	DefaultStopPercent float64 `json:"default_stop_percent,omitempty" yaml:"default_stop_percent,omitempty"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// IntervalDuration parses the polling interval.
func (f FeedConfig) IntervalDuration() (time.Duration, error) {
	if f.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(f.Interval)
}

// TimeoutDuration parses the per-request timeout.
func (f FeedConfig) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(f.Timeout)
}

// Settings converts the ledger section into persisted ledger settings.
func (l LedgerConfig) Settings() ledger.Settings {
	return ledger.Settings{
		Currency:           l.Currency,
		DefaultStopPercent: l.DefaultStopPercent,
		EquityWindow:       l.EquityWindow,
	}
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv loads envFile (if it exists) into the process environment and
// lets FOLIO_* variables override file settings.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	overrides := []struct {
		key string
		dst *string
	}{
		{"FOLIO_STORAGE_TYPE", &c.Storage.Type},
		{"FOLIO_STORAGE_PATH", &c.Storage.Path},
		{"FOLIO_STORAGE_KEY", &c.Storage.Key},
		{"FOLIO_FEED_URL", &c.Feed.URL},
		{"FOLIO_FEED_TOKEN", &c.Feed.Token},
		{"FOLIO_FEED_INTERVAL", &c.Feed.Interval},
		{"FOLIO_LOG_LEVEL", &c.Log.Level},
		{"FOLIO_LOG_FORMAT", &c.Log.Format},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
	return c.Validate()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage.type must be 'json' or 'sqlite'")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}

	d, err := c.Feed.IntervalDuration()
	if err != nil {
		return fmt.Errorf("feed.interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("feed.interval must be positive")
	}
	if _, err := c.Feed.TimeoutDuration(); err != nil {
		return fmt.Errorf("feed.timeout: %w", err)
	}

	if c.Ledger.EquityWindow <= 0 {
		return fmt.Errorf("ledger.equity_window must be positive")
	}
	if c.Ledger.DefaultStopPercent < 0 || c.Ledger.DefaultStopPercent >= 100 {
		return fmt.Errorf("ledger.default_stop_percent must be between 0 and 100")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type: "json",
			Path: "./folio.json",
			Key:  "folio-ledger",
		},
		Feed: FeedConfig{
			Interval: "30s",
			Timeout:  "10s",
		},
		Ledger: LedgerConfig{
			Currency:     "USD",
			EquityWindow: ledger.DefaultEquityWindow,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
