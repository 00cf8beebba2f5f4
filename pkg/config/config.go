package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dmitryk0z/income-predictor/pkg/data"
	"github.com/dmitryk0z/income-predictor/pkg/dataprep"
)

// DefaultURL is the UCI copy of the Adult training data.
const DefaultURL = "http://archive.ics.uci.edu/ml/machine-learning-databases/adult/adult.data"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds everything a pipeline run needs.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Split    SplitConfig    `yaml:"split"`
	Cleaning CleaningConfig `yaml:"cleaning"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SourceConfig selects where the raw data comes from. Path wins over URL.
type SourceConfig struct {
	URL                 string   `yaml:"url"`
	Path                string   `yaml:"path"`
	AllowedContentTypes []string `yaml:"allowed_content_types"`
	Timeout             string   `yaml:"timeout"`
}

// SplitConfig configures the positional train/test split.
type SplitConfig struct {
	TrainPercent float64 `yaml:"train_percent"`
}

// CleaningConfig configures the record cleaner.
type CleaningConfig struct {
	MissingMarker string `yaml:"missing_marker"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the settings for the UCI Adult data set.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:                 DefaultURL,
			AllowedContentTypes: append([]string(nil), data.DefaultContentTypes...),
			Timeout:             "30s",
		},
		Split: SplitConfig{
			TrainPercent: 75,
		},
		Cleaning: CleaningConfig{
			MissingMarker: dataprep.MissingMarker,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INCOME_DATA_URL"); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv("INCOME_DATA_FILE"); v != "" {
		c.Source.Path = v
	}
	if v := os.Getenv("INCOME_TRAIN_PERCENT"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			c.Split.TrainPercent = p
		}
	}
	if v := os.Getenv("INCOME_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Source.URL == "" && c.Source.Path == "" {
		return errors.Wrap(ErrInvalid, "source.url or source.path is required")
	}
	if c.Source.Path == "" && len(c.Source.AllowedContentTypes) == 0 {
		return errors.Wrap(ErrInvalid, "source.allowed_content_types must not be empty")
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}
	if p := c.Split.TrainPercent; p <= 0 || p >= 100 {
		return errors.Wrapf(ErrInvalid, "split.train_percent must be in (0, 100), got %v", p)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(ErrInvalid, "logging.level %q", c.Logging.Level)
	}
	return nil
}

// FetchTimeout parses source.timeout. Empty means no timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Source.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil || d < 0 {
		return 0, errors.Wrapf(ErrInvalid, "source.timeout %q", c.Source.Timeout)
	}
	return d, nil
}
