package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcncl/symdump/internal/parser"
	"gopkg.in/yaml.v3"
)

// Color modes accepted by ReportConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete configuration for symdump
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Report ReportConfig `yaml:"report"`
	Dev    DevConfig    `yaml:"dev"`
}

// ParserConfig controls how strictly documents are parsed
type ParserConfig struct {
	StrictText         bool `yaml:"strict_text"`
	RejectTrailingData bool `yaml:"reject_trailing_data"`
	MaxDepth           int  `yaml:"max_depth"`
}

// ReportConfig controls which fields are reported and how they are rendered
type ReportConfig struct {
	AddressField string `yaml:"address_field"`
	NameField    string `yaml:"name_field"`
	Header       bool   `yaml:"header"`
	UppercaseHex bool   `yaml:"uppercase_hex"`
	Color        string `yaml:"color"`
	Filter       string `yaml:"filter"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// CLIOverrides carries flag values. Zero values mean the flag was not given.
type CLIOverrides struct {
	Filter       string
	Color        string
	Header       bool
	UppercaseHex bool
	Strict       bool
	Debug        bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			StrictText:         false,
			RejectTrailingData: false,
			MaxDepth:           0,
		},
		Report: ReportConfig{
			AddressField: "vaddr",
			NameField:    "name",
			Header:       false,
			UppercaseHex: false,
			Color:        ColorAuto,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".symdump.yml", ".symdump.yaml", "symdump.yml", "symdump.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate checks values that YAML decoding cannot
func (c *Config) Validate() error {
	switch c.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode '%s': want auto, always or never", c.Report.Color)
	}
	if c.Report.AddressField == "" {
		return fmt.Errorf("report.address_field must not be empty")
	}
	if c.Report.NameField == "" {
		return fmt.Errorf("report.name_field must not be empty")
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	return nil
}

// ParserOptions translates the parser section into parser options
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.Parser.StrictText {
		opts = append(opts, parser.WithStrictText())
	}
	if c.Parser.RejectTrailingData {
		opts = append(opts, parser.WithRejectTrailing())
	}
	if c.Parser.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.Parser.MaxDepth))
	}
	return opts
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Boolean flags can only switch a setting on; a config file value of true
// cannot be turned off from the command line.
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Filter != "" {
		cfg.Report.Filter = cli.Filter
	}
	if cli.Color != "" {
		cfg.Report.Color = cli.Color
	}
	if cli.Header {
		cfg.Report.Header = true
	}
	if cli.UppercaseHex {
		cfg.Report.UppercaseHex = true
	}
	if cli.Strict {
		cfg.Parser.StrictText = true
		cfg.Parser.RejectTrailingData = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
