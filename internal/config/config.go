// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package config loads server configuration from a YAML file, command-line
// flags, and the environment. Precedence is flags over file over defaults,
// with DATABASE_URL from the environment overriding both.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Default values for server configuration.
const (
	DefaultHTTPAddr      = ":8080"
	DefaultMetricsAddr   = "127.0.0.1:9100"
	DefaultLogFormat     = "json"
	DefaultLogLevel      = "info"
	DefaultSweepInterval = time.Hour
)

// Config holds the Taskboard server configuration.
type Config struct {
	HTTPAddr       string        `koanf:"http_addr"`
	MetricsAddr    string        `koanf:"metrics_addr"`
	DatabaseURL    string        `koanf:"database_url"`
	LogFormat      string        `koanf:"log_format"`
	LogLevel       string        `koanf:"log_level"`
	SweepInterval  time.Duration `koanf:"sweep_interval"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

// Validate checks that the configuration is usable.
func (cfg *Config) Validate() error {
	if cfg.HTTPAddr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("http_addr is required")
	}
	if cfg.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database_url is required (flag, config file, or DATABASE_URL)")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log_format", cfg.LogFormat).
			Errorf("log_format must be 'json' or 'text'")
	}
	if cfg.SweepInterval <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("sweep_interval must be positive")
	}
	return nil
}

// Load builds a Config from the optional YAML file at path and the given
// flag set. Either may be empty or nil. DATABASE_URL from the environment
// takes precedence over both.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"http_addr":      DefaultHTTPAddr,
		"metrics_addr":   DefaultMetricsAddr,
		"log_format":     DefaultLogFormat,
		"log_level":      DefaultLogLevel,
		"sweep_interval": DefaultSweepInterval,
	}
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("key", key).Wrap(err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		// Flags use dashes (e.g. --http-addr) while config keys use underscores.
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}

	return &cfg, nil
}
