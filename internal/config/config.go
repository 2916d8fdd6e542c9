// Package config provides configuration loading and defaults for the
// gh-lookup CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// APIConfig holds connection details for the GitHub API.
type APIConfig struct {
	// Token is the API token. The GITHUB_TOKEN environment variable takes
	// precedence over this value when set.
	Token string `yaml:"token"`

	// BaseURL overrides the API base address (useful against GitHub
	// Enterprise or a test server). Empty means the public API.
	BaseURL string `yaml:"base_url"`

	// Timeout is the HTTP request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Config is the top-level configuration structure for the gh-lookup CLI.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads and parses a YAML configuration file from the given path.
// Fields absent from the file keep their Default() values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment values onto cfg. GITHUB_TOKEN wins over
// the file-configured token so a checked-in config never pins credentials.
func (c *Config) ApplyEnv() {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		c.API.Token = token
	}
}
