// Package config loads the catalog settings from an optional YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/modelmarket-catalog/internal/catalog"
	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "modelcatalog.yaml"

// Environment overrides.
const (
	EnvRegion    = "MODELCATALOG_REGION"
	EnvCatalog   = "MODELCATALOG_CATALOG"
	EnvLogLevel  = "MODELCATALOG_LOG_LEVEL"
	EnvLogFormat = "MODELCATALOG_LOG_FORMAT"
	EnvPageSize  = "MODELCATALOG_PAGE_SIZE"
)

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds every setting of the catalog CLI.
type Config struct {
	// Region is the preferred pricing region.
	Region pricing.Region `yaml:"region"`
	// Catalog is the store directory. Empty keeps the catalog in memory.
	Catalog    string                `yaml:"catalog"`
	PageSize   int                   `yaml:"pageSize"`
	Log        LogConfig             `yaml:"log"`
	Currencies pricing.CurrencyTable `yaml:"currencies"`
	Labels     pricing.Labels        `yaml:"labels"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Region:     pricing.RegionDomestic,
		PageSize:   catalog.DefaultPageSize,
		Log:        LogConfig{Level: zerolog.InfoLevel.String(), Format: FormatConsole},
		Currencies: pricing.DefaultCurrencies(),
		Labels:     pricing.DefaultLabels(),
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path loads DefaultFile if it exists.
// Invalid environment values are logged and ignored; invalid file values are
// errors.
func Load(path string, logger zerolog.Logger) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("config file loaded")
	case explicit || !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnv(logger)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(logger zerolog.Logger) {
	if v := os.Getenv(EnvRegion); v != "" {
		if r := pricing.Region(strings.ToLower(v)); r.Valid() {
			c.Region = r
		} else {
			logger.Warn().Str("value", v).Msg("invalid " + EnvRegion + ", using configured region")
		}
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			c.Log.Level = strings.ToLower(v)
		} else {
			logger.Warn().Str("value", v).Msg("invalid " + EnvLogLevel + ", using configured level")
		}
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		if f := strings.ToLower(v); f == FormatJSON || f == FormatConsole {
			c.Log.Format = f
		} else {
			logger.Warn().Str("value", v).Msg("invalid " + EnvLogFormat + ", using configured format")
		}
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PageSize = n
		} else {
			logger.Warn().Str("value", v).Msg("invalid " + EnvPageSize + ", using configured page size")
		}
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if !c.Region.Valid() {
		errs = append(errs, fmt.Errorf("region: unknown region %q", c.Region))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("pageSize: must be positive, got %d", c.PageSize))
	}
	if c.Log.Format != FormatJSON && c.Log.Format != FormatConsole {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	for r := range c.Currencies {
		if !r.Valid() {
			errs = append(errs, fmt.Errorf("currencies: unknown region %q", r))
		}
	}
	return errors.Join(errs...)
}

// Display returns the formatter settings.
func (c Config) Display() pricing.Display {
	return pricing.Display{Currencies: c.Currencies, Labels: c.Labels}
}

// RegionForHost derives the pricing region from the host the catalog is
// served on: hosts containing ".ai" are domestic, all others international.
func RegionForHost(host string) pricing.Region {
	if strings.Contains(strings.ToLower(host), ".ai") {
		return pricing.RegionDomestic
	}
	return pricing.RegionInternational
}
