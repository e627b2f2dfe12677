// Package config loads and validates the ctxhub configuration document.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigDirName is the directory holding all ctxhub documents.
const ConfigDirName = ".ctxhub"

// Config represents the complete ctxhub configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Project       ProjectConfig  `json:"project" mapstructure:"project"`
	Modules       []string       `json:"modules" mapstructure:"modules"`
	Indexing      IndexingConfig `json:"indexing" mapstructure:"indexing"`
	Rules         RulesConfig    `json:"rules" mapstructure:"rules"`
	ContextLimits LimitsConfig   `json:"context_limits" mapstructure:"context_limits"`
	Logging       LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ProjectConfig contains project metadata
type ProjectConfig struct {
	Name         string `json:"name" mapstructure:"name"`
	Architecture string `json:"architecture" mapstructure:"architecture"`
	RootPath     string `json:"root_path" mapstructure:"root_path"`
}

// IndexingConfig controls which files the scanner analyzes
type IndexingConfig struct {
	IgnorePatterns []string `json:"ignore_patterns" mapstructure:"ignore_patterns"`
	MaxFileSizeKB  int      `json:"max_file_size_kb" mapstructure:"max_file_size_kb"`
}

// RulesConfig controls documentation rule indexing
type RulesConfig struct {
	SourcePath string `json:"source_path" mapstructure:"source_path"`
}

// LimitsConfig contains context digest budget configuration
type LimitsConfig struct {
	// MaxTokens is the approximate digest size budget (1 token ~ 4 chars)
	MaxTokens int `json:"max_tokens" mapstructure:"max_tokens"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Project: ProjectConfig{
			Name:         "ios-template",
			Architecture: "TCA",
			RootPath:     "Sources/iOSTemplate",
		},
		Modules: []string{
			"Core",
			"Features",
			"Services",
			"Theme",
			"Network",
			"Storage",
			"Monetization",
			"Utilities",
		},
		Indexing: IndexingConfig{
			IgnorePatterns: []string{
				"*.generated.swift",
				".build",
				"DerivedData",
				"Pods",
				"Carthage",
			},
			MaxFileSizeKB: 500,
		},
		Rules: RulesConfig{
			SourcePath: ".ai/rules",
		},
		ContextLimits: LimitsConfig{
			MaxTokens: 50000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .ctxhub/config.json.
// A missing config file yields the defaults; a malformed one is an error.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ConfigDirName))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .ctxhub/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Project.RootPath == "" {
		return &ConfigError{Field: "project.root_path", Message: "source root path is required"}
	}
	if c.Indexing.MaxFileSizeKB <= 0 {
		return &ConfigError{Field: "indexing.max_file_size_kb", Message: "must be positive"}
	}
	if c.ContextLimits.MaxTokens <= 0 {
		return &ConfigError{Field: "context_limits.max_tokens", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
