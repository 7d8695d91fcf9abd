// Package config provides unified configuration management for auditor.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → env vars → local file → CLI flags
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coderite/auditor/internal/dirs"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// Config holds all configuration settings for auditor.
// Fields ending in *Set track whether that field was explicitly set in config.
// This allows distinguishing explicit 0 from "not set", enabling proper merge
// behavior where local config can override global config with zero values.
type Config struct {
	// BaseURL is the root of the backend API, including the /api prefix.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout in seconds for everything except
	// the analyze call.
	Timeout int `yaml:"timeout"`

	// AnalyzeTimeout is the timeout in seconds for the analyze call.
	AnalyzeTimeout int `yaml:"analyze_timeout"`

	// DefaultCategory is the checklist category used when none is given.
	DefaultCategory string `yaml:"default_category"`

	// Set tracking for merge behavior
	TimeoutSet        bool `yaml:"-"`
	AnalyzeTimeoutSet bool `yaml:"-"`

	// Private: track where config was loaded from
	configDir string
	localDir  string
	sources   []string // ordered list of sources that contributed to this config
}

// Sources returns a human-readable list of where config values came from.
func (c *Config) Sources() []string {
	return c.sources
}

// LocalDir returns the local project config directory if one was detected.
func (c *Config) LocalDir() string {
	return c.localDir
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// RequestTimeout returns Timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// AnalysisTimeout returns AnalyzeTimeout as a duration.
func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.AnalyzeTimeout) * time.Second
}

// Validate checks the loaded configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://: %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.AnalyzeTimeout < 0 {
		return fmt.Errorf("analyze_timeout must not be negative")
	}
	return nil
}

// Load loads all configuration from the default locations.
// It auto-detects .auditor/ in the current working directory for local
// overrides and installs defaults if needed.
func Load() (*Config, error) {
	globalDir := dirs.ConfigDir()

	var localDir string
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, ".auditor")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			localDir = candidate
		}
	}

	return LoadWithDirs(globalDir, localDir)
}

// LoadWithDirs loads configuration with explicit global and local directories.
// Local config (.auditor/) overrides global config per-field. If localDir is
// empty, only global config is used.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	if err := InstallDefaults(globalDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	// Load in order: embedded → global → env → local.
	// Each layer only overwrites fields that were explicitly set.
	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	globalPath := filepath.Join(globalDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	cfg.applyEnv()

	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	cfg.configDir = globalDir
	cfg.localDir = localDir

	return cfg, nil
}

// InstallDefaults creates the config directory and installs the default
// config file if absent.
func InstallDefaults(configDir string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data, err := defaultsFS.ReadFile("defaults/config.yaml")
		if err != nil {
			return fmt.Errorf("read embedded config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}

	return nil
}

// loadEmbedded loads config from the embedded defaults.
func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	return parseConfig(data)
}

// loadFile loads config from a file path.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	return parseConfigWithTracking(data)
}

// parseConfig parses YAML config data into a Config struct.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which fields were set.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if _, ok := raw["timeout"]; ok {
		cfg.TimeoutSet = true
	}
	if _, ok := raw["analyze_timeout"]; ok {
		cfg.AnalyzeTimeoutSet = true
	}

	return cfg, nil
}

// applyEnv applies environment variables to the config.
// Env vars sit between global and local config in precedence.
func (c *Config) applyEnv() {
	if v := os.Getenv("AUDITOR_BASE_URL"); v != "" {
		c.BaseURL = v
		c.sources = append(c.sources, "env:AUDITOR_BASE_URL")
	}

	if v := os.Getenv("AUDITOR_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Timeout = n
			c.TimeoutSet = true
			c.sources = append(c.sources, "env:AUDITOR_TIMEOUT")
		}
	}

	if v := os.Getenv("AUDITOR_ANALYZE_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AnalyzeTimeout = n
			c.AnalyzeTimeoutSet = true
			c.sources = append(c.sources, "env:AUDITOR_ANALYZE_TIMEOUT")
		}
	}

	if v := os.Getenv("AUDITOR_DEFAULT_CATEGORY"); v != "" {
		c.DefaultCategory = v
		c.sources = append(c.sources, "env:AUDITOR_DEFAULT_CATEGORY")
	}
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.BaseURL != "" {
		c.BaseURL = src.BaseURL
	}
	if src.TimeoutSet {
		c.Timeout = src.Timeout
		c.TimeoutSet = true
	}
	if src.AnalyzeTimeoutSet {
		c.AnalyzeTimeout = src.AnalyzeTimeout
		c.AnalyzeTimeoutSet = true
	}
	if src.DefaultCategory != "" {
		c.DefaultCategory = src.DefaultCategory
	}
}

// ApplyCLIFlags applies CLI flag overrides to the config.
// CLI flags have the highest precedence.
func (c *Config) ApplyCLIFlags(baseURL string, timeout int) {
	if baseURL != "" {
		c.BaseURL = baseURL
		c.sources = append(c.sources, "cli:base-url")
	}
	if timeout > 0 {
		c.Timeout = timeout
		c.TimeoutSet = true
		c.sources = append(c.sources, "cli:timeout")
	}
}
