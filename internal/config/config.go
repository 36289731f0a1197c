// Package config loads segment.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"gridlab/segment/internal/harness"
)

const (
	// FileName is the config file looked up from the working directory upward.
	FileName = "segment.toml"
	// EnvVar overrides discovery with an explicit path.
	EnvVar = "SEGMENT_CONFIG"
)

// Config is the decoded segment.toml
type Config struct {
	DB       string  `toml:"db"`
	LogLevel string  `toml:"log_level"`
	Harness  Harness `toml:"harness"`
	Report   Report  `toml:"report"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Harness holds [harness] settings
type Harness struct {
	Order   string `toml:"order"`
	Workers int    `toml:"workers"`
	Record  bool   `toml:"record"`
}

// Report holds [report] settings
type Report struct {
	TopN int `toml:"top_n"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Harness: Harness{
			Order:   string(harness.OrderSizeColor),
			Workers: 1,
			Record:  true,
		},
		Report: Report{TopN: 10},
	}
}

// Load decodes path over the defaults. Unknown keys are errors.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.DB != "" && !filepath.IsAbs(cfg.DB) {
		cfg.DB = filepath.Join(filepath.Dir(path), cfg.DB)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the config: explicit path, then SEGMENT_CONFIG,
// then segment.toml in the working directory or any parent. When nothing is
// found the defaults are returned.
func Discover(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return Load(env)
	}

	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, FileName)
			if _, err := os.Stat(candidate); err == nil {
				return Load(candidate)
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	return Default(), nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if _, err := harness.ParseOrder(c.Harness.Order); err != nil {
		errs = append(errs, fmt.Errorf("harness.order: %w", err))
	}
	if c.Harness.Workers < 1 {
		errs = append(errs, fmt.Errorf("harness.workers must be at least 1, got %d", c.Harness.Workers))
	}
	if c.Report.TopN < 0 {
		errs = append(errs, fmt.Errorf("report.top_n must not be negative, got %d", c.Report.TopN))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, info when unset or invalid.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
