// Package config loads the formkit CLI's YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration.
type Config struct {
	// Endpoint is the repository API root. Required.
	Endpoint string `yaml:"endpoint"`

	// AccessToken authenticates against private repositories.
	AccessToken string `yaml:"access_token"`

	// CacheDir enables the on-disk response cache when set.
	CacheDir string `yaml:"cache_dir"`

	// OAuth carries the application credentials for the login command.
	OAuth OAuthConfig `yaml:"oauth"`

	// LogLevel sets CLI log verbosity ("trace", "debug", "info", ...).
	LogLevel string `yaml:"log_level"`
}

// OAuthConfig is the OAuth application configuration.
type OAuthConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// FromFile reads and validates a configuration file.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("config is missing required field \"endpoint\"")
	}
	return &cfg, nil
}
