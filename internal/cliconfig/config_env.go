package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (BOOKSHELF_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("store", os.Getenv("BOOKSHELF_STORE"), &cfg.StorePath)
	s.setString("output", os.Getenv("BOOKSHELF_OUTPUT"), &cfg.Output)
	s.setString("log-level", os.Getenv("BOOKSHELF_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("BOOKSHELF_LOG_FORMAT"), &cfg.LogFormat)

	return s.setBoolFromString("quarantine-corrupt", os.Getenv("BOOKSHELF_QUARANTINE_CORRUPT"), &cfg.Quarantine)
}
