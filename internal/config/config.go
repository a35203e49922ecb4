// Package config loads and validates the gateway's TOML configuration.
// Configuration covers only the serving surface (listen address, CORS,
// outbound timeout, log level); Databricks credentials are never configured
// here since they arrive per request.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// ConfigFormatVersion is the current version of the configuration file format.
const ConfigFormatVersion = "0.1.0"

// ConfigParam holds all configuration parameters for the gateway.
type ConfigParam struct {
	FormatVersion  string `toml:"format_version" validate:"required"`
	ServerHostName string `toml:"server_hostname"`
	ServerPort     string `toml:"server_port" validate:"required,numeric"`
	HandleCORS     bool   `toml:"handle_cors"`
	RequestTimeout string `toml:"request_timeout" validate:"omitempty"` // outbound HTTP client timeout, e.g. "2m"
	LogLevel       string `toml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

var cfg *ConfigParam

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Config returns the current configuration.
func Config() *ConfigParam {
	return cfg
}

// GetRequestTimeout returns the outbound request timeout, defaulting to two
// minutes when unset or unparseable.
func (c *ConfigParam) GetRequestTimeout() time.Duration {
	if c.RequestTimeout == "" {
		return 2 * time.Minute
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 2 * time.Minute
	}
	return d
}

// LoadConfig loads configuration from a TOML file and validates it.
func LoadConfig(filename string) error {
	if filename == "" {
		return fmt.Errorf("config filename is required")
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	c := &ConfigParam{}
	if _, err := toml.Decode(string(content), c); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}

	if err := ValidateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	cfg = c
	return nil
}

// ValidateConfig checks required values, applies defaults, and runs
// struct-tag validation.
func ValidateConfig(c *ConfigParam) error {
	if c.FormatVersion != ConfigFormatVersion {
		return fmt.Errorf("unsupported config file format version: %s", c.FormatVersion)
	}

	if c.ServerHostName == "" {
		c.ServerHostName = "127.0.0.1"
	}
	if c.RequestTimeout != "" {
		if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
			return fmt.Errorf("invalid request_timeout: %v", err)
		}
	}

	if err := configValidator.Struct(c); err != nil {
		return err
	}
	return nil
}

// TestInit installs an in-memory default configuration for tests.
func TestInit() {
	cfg = &ConfigParam{
		FormatVersion:  ConfigFormatVersion,
		ServerHostName: "127.0.0.1",
		ServerPort:     "8650",
		HandleCORS:     false,
		RequestTimeout: "30s",
		LogLevel:       "error",
	}
}
