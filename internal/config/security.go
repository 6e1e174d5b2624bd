// Package config loads the file-based configuration for the API server.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents the security section of the server configuration.
// It controls which endpoints skip authentication and how access tokens are
// issued.
type SecurityConfig struct {
	Security struct {
		// PublicEndpoints lists paths reachable without a token. Entries
		// ending in "/" match by prefix.
		PublicEndpoints []string `yaml:"public_endpoints"`
		JWT             struct {
			// SecretEnv names the environment variable holding the
			// signing secret. The secret itself never appears in the file.
			SecretEnv   string `yaml:"secret_env"`
			ExpiryHours int    `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// DefaultSecurityConfig returns the configuration used when no file is given.
func DefaultSecurityConfig() *SecurityConfig {
	var cfg SecurityConfig
	cfg.Security.PublicEndpoints = []string{
		"/health", "/ready", "/live", "/metrics",
		"/auth/register", "/auth/token",
	}
	cfg.Security.JWT.SecretEnv = "JWT_SECRET"
	cfg.Security.JWT.ExpiryHours = 1
	return &cfg
}

// LoadSecurityConfig loads security configuration from a YAML file.
// The path comes from a trusted source (CLI argument or hardcoded default),
// never from user input.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultSecurityConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if config.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	for _, e := range config.Security.PublicEndpoints {
		if !strings.HasPrefix(e, "/") {
			return fmt.Errorf("public endpoint %q must start with /", e)
		}
	}
	return nil
}
