package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultStorePath is the catalog file used when none is configured.
const DefaultStorePath = "library.json"

// Config holds CLI configuration for bookshelf.
type Config struct {
	StorePath string

	// Output is the listing format: table, json or yaml. Empty means detect.
	Output string

	LogLevel  string
	LogFormat string

	// Quarantine moves an unreadable store aside instead of overwriting it.
	Quarantine bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		StorePath: DefaultStorePath,
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("store path is required")
	}
	if strings.HasPrefix(c.StorePath, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			c.StorePath = filepath.Join(h, c.StorePath[2:])
		}
	}

	c.Output = strings.ToLower(c.Output)
	switch c.Output {
	case "", "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output %q: must be one of table, json, yaml", c.Output)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	switch c.LogFormat {
	case "":
		c.LogFormat = "console"
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.LogFormat)
	}

	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a bool for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
