// Package config loads the booknav tool configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ResolverKind selects how include references are fetched.
type ResolverKind string

const (
	ResolverFS   ResolverKind = "fs"
	ResolverHTTP ResolverKind = "http"
)

// Config is the tool configuration (booknav.yaml).
type Config struct {
	// Book is the path of the navigation book document.
	Book string `yaml:"book"`
	// IncludesRoot is the directory fragment references resolve under
	// when Resolver is "fs".
	IncludesRoot string `yaml:"includes_root,omitempty"`
	// Resolver picks the include transport: "fs" (default) or "http".
	Resolver ResolverKind `yaml:"resolver,omitempty"`
	// ContentDir enables the markdown cross-check when set.
	ContentDir string `yaml:"content_dir,omitempty"`
	// Strict promotes validation warnings to errors.
	Strict bool `yaml:"strict,omitempty"`

	Server ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig configures the serve daemon.
type ServerConfig struct {
	Listen  string `yaml:"listen,omitempty"`
	Metrics bool   `yaml:"metrics,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, env-expands, parses, and validates the configuration file.
// Environment variables referenced as ${VAR} in the YAML are expanded; a
// .env file in the working directory is honored when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Book == "" {
		c.Book = "_book.yaml"
	}
	if c.Resolver == "" {
		c.Resolver = ResolverFS
	}
	if c.IncludesRoot == "" {
		c.IncludesRoot = "."
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8085"
	}
}

func (c *Config) validate() error {
	switch c.Resolver {
	case ResolverFS, ResolverHTTP:
	default:
		return fmt.Errorf("unknown resolver %q (expected fs or http)", c.Resolver)
	}
	return nil
}
