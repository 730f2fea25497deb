// Package config loads syswatch settings. Viper merges defaults, an
// optional config file, and SYSWATCH_-prefixed environment variables;
// CLI flags override on top at the command layer.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ostashkin/syswatch/internal/security"
	"github.com/ostashkin/syswatch/internal/snapshot"
)

// Config holds all runtime configuration.
type Config struct {
	// ── Sampling ────────────────────────────────────────────────────────
	SampleIntervalSeconds int `mapstructure:"sample_interval_seconds"`
	Samples               int `mapstructure:"samples"`

	// ── Temp files ──────────────────────────────────────────────────────
	// TempRoots overrides the platform temp directories when non-empty.
	TempRoots     []string `mapstructure:"temp_roots"`
	TempFileLimit int      `mapstructure:"temp_file_limit"`

	// ── Security scans ──────────────────────────────────────────────────
	ScanProcesses bool     `mapstructure:"scan_processes"`
	ScanResources bool     `mapstructure:"scan_resources"`
	ScanNetwork   bool     `mapstructure:"scan_network"`
	ScanFiles     bool     `mapstructure:"scan_files"`
	ScanRoots     []string `mapstructure:"scan_roots"`
	ScanDepth     int      `mapstructure:"scan_depth"`
}

// Load reads config from ./config.yaml or ~/.syswatch/config.yaml and
// falls back to defaults. The file is optional.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("sample_interval_seconds", 2)
	v.SetDefault("samples", 5)
	v.SetDefault("temp_roots", []string{})
	v.SetDefault("temp_file_limit", 20)
	v.SetDefault("scan_processes", true)
	v.SetDefault("scan_resources", true)
	v.SetDefault("scan_network", true)
	v.SetDefault("scan_files", true)
	v.SetDefault("scan_roots", []string{})
	v.SetDefault("scan_depth", 4)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.syswatch")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SYSWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// SampleInterval returns the sampling interval as a duration.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalSeconds) * time.Second
}

// EffectiveTempRoots returns the configured temp roots, or the platform
// defaults when none are set.
func (c *Config) EffectiveTempRoots() []string {
	if len(c.TempRoots) > 0 {
		return c.TempRoots
	}
	return snapshot.DefaultTempRoots()
}

// SecurityConfig builds the scan configuration with the built-in rules.
func (c *Config) SecurityConfig() security.Config {
	sc := security.DefaultConfig()
	sc.ScanProcesses = c.ScanProcesses
	sc.ScanResources = c.ScanResources
	sc.ScanNetwork = c.ScanNetwork
	sc.ScanFiles = c.ScanFiles
	if len(c.ScanRoots) > 0 {
		sc.FileRoots = c.ScanRoots
	}
	if c.ScanDepth > 0 {
		sc.MaxDepth = c.ScanDepth
	}
	return sc
}
