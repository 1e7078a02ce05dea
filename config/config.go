package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/videnhance/enhance"
)

// ErrInvalidConfig indicates a configuration value that cannot be clamped into range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete configuration file.
type Config struct {
	Enhancement Settings           `yaml:"enhancement"`
	Analysis    AnalysisThresholds `yaml:"analysis"`
	Logging     LoggingConfig      `yaml:"logging"`
}

// LoggingConfig contains logrus settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Enhancement: DefaultSettings(),
		Analysis:    *DefaultAnalysisThresholds(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, so omitted keys keep their default
// values. Out-of-range enhancement parameters are clamped with a warning;
// unknown enum strings are errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	settings, adjusted := cfg.Enhancement.Sanitize()
	if len(adjusted) > 0 {
		logrus.WithFields(logrus.Fields{
			"function": "config.Parse",
			"fields":   adjusted,
		}).Warn("Enhancement settings out of range, clamped")
	}
	cfg.Enhancement = settings
	cfg.Analysis = cfg.Analysis.Normalized()

	return cfg, nil
}

// Validate reports values that have no meaningful clamp.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}
	if _, ok := enhance.ParseBorderPolicy(cfg.Enhancement.UpscaleBorder); !ok {
		return fmt.Errorf("%w: upscale_border %q (want gap or replicate)", ErrInvalidConfig, cfg.Enhancement.UpscaleBorder)
	}
	if _, err := logrus.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (want text or json)", ErrInvalidConfig, cfg.Logging.Format)
	}
	return nil
}

// Save writes the configuration as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Apply configures the standard logrus logger.
func (l LoggingConfig) Apply() error {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	logrus.SetLevel(level)

	if strings.EqualFold(l.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
