// =============================================================================
// Store POS Simulator - Configuration Module
// =============================================================================
//
// This module loads the application configuration. A single YAML file
// (store.yaml by default) holds every setting; each key may be overridden by
// an environment variable with the STORE_ prefix, for example:
//
//   STORE_CATALOG_PATH=./data/products.csv
//   STORE_CATALOG_MATCH_MODE=contains
//   STORE_LOG_LEVEL=debug
//
// The file is optional. When it is missing the defaults below are used:
// products.csv in the working directory and receipts written to
// ./receiptsFolder.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the base name of the configuration file looked up in
// the working directory when no explicit path is given.
const DefaultConfigName = "store"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "STORE"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete application configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
	Receipts ReceiptsConfig `mapstructure:"receipts" yaml:"receipts"`
	Checkout CheckoutConfig `mapstructure:"checkout" yaml:"checkout"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// CatalogConfig controls where the product catalog comes from and how
// products are looked up.
type CatalogConfig struct {
	// Path is the catalog file. Files ending in .xlsx are read as workbooks,
	// anything else as pipe-delimited text.
	Path string `mapstructure:"path" yaml:"path"`

	// LoadPolicy decides what happens to a malformed line.
	// Valid values: "abort", "skip"
	LoadPolicy string `mapstructure:"load_policy" yaml:"load_policy"`

	// MatchMode decides how an operator query selects products.
	// Valid values: "exact", "contains"
	MatchMode string `mapstructure:"match_mode" yaml:"match_mode"`
}

// ReceiptsConfig controls receipt persistence.
type ReceiptsConfig struct {
	// Dir is created on first use if it does not exist.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// WriteAttempts bounds the number of tries for a single receipt write.
	WriteAttempts int `mapstructure:"write_attempts" yaml:"write_attempts"`

	// RetryDelay is the pause between two write attempts.
	RetryDelay time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
}

// CheckoutConfig controls the checkout dialogue.
type CheckoutConfig struct {
	// PaymentAttempts is how many unparseable payment entries are tolerated
	// before the checkout is aborted.
	PaymentAttempts int `mapstructure:"payment_attempts" yaml:"payment_attempts"`

	// Currency is the symbol printed in front of amounts.
	Currency string `mapstructure:"currency" yaml:"currency"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`         // debug, info, warn, error
	Format   string `mapstructure:"format" yaml:"format"`       // console, json
	Output   string `mapstructure:"output" yaml:"output"`       // file, stdout, stderr
	FilePath string `mapstructure:"file_path" yaml:"file_path"` // used when output is file
}

// =============================================================================
// DEFAULTS
// =============================================================================

// defaults lists every configuration key with its default value. Registering
// every key with viper is also what makes the environment overrides work
// during Unmarshal.
var defaults = map[string]interface{}{
	"catalog.path":              "products.csv",
	"catalog.load_policy":       "abort",
	"catalog.match_mode":        "exact",
	"receipts.dir":              "receiptsFolder",
	"receipts.write_attempts":   3,
	"receipts.retry_delay":      100 * time.Millisecond,
	"checkout.payment_attempts": 3,
	"checkout.currency":         "$",
	"log.level":                 "info",
	"log.format":                "console",
	"log.output":                "file",
	"log.file_path":             "logs/store.log",
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// The defaults table is static; failing to decode it is a programming error.
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration.
//
// PARAMETERS:
//   - configPath: Path to a YAML file. When empty, store.yaml is looked up in
//     the working directory and silently skipped if absent. An explicit path
//     that cannot be read is an error.
//
// RETURNS:
//   - The validated configuration.
//   - An error if the file cannot be parsed or a value is invalid.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks enumerated values and numeric bounds.
func (c *Config) Validate() error {
	switch c.Catalog.LoadPolicy {
	case "abort", "skip":
	default:
		return fmt.Errorf("catalog.load_policy must be abort or skip, got %q", c.Catalog.LoadPolicy)
	}

	switch c.Catalog.MatchMode {
	case "exact", "contains":
	default:
		return fmt.Errorf("catalog.match_mode must be exact or contains, got %q", c.Catalog.MatchMode)
	}

	if c.Catalog.Path == "" {
		return errors.New("catalog.path must not be empty")
	}
	if c.Receipts.Dir == "" {
		return errors.New("receipts.dir must not be empty")
	}
	if c.Receipts.WriteAttempts < 1 {
		return fmt.Errorf("receipts.write_attempts must be at least 1, got %d", c.Receipts.WriteAttempts)
	}
	if c.Receipts.RetryDelay < 0 {
		return fmt.Errorf("receipts.retry_delay must not be negative, got %s", c.Receipts.RetryDelay)
	}
	if c.Checkout.PaymentAttempts < 1 {
		return fmt.Errorf("checkout.payment_attempts must be at least 1, got %d", c.Checkout.PaymentAttempts)
	}

	switch c.Log.Output {
	case "file", "stdout", "stderr":
	default:
		return fmt.Errorf("log.output must be file, stdout or stderr, got %q", c.Log.Output)
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return errors.New("log.file_path must be set when log.output is file")
	}

	return nil
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return out, nil
}
