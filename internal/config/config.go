package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds process-level configuration read from the environment
type Config struct {
	// Logging
	LogLevel string
	LogJSON  bool

	// Output format: text, json, yaml
	Format string

	// Method sub-scanner used by the method command
	MethodScanner string

	// variables present in the environment
	set map[string]bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:      getEnv("CLASSSCAN_LOG_LEVEL", "info"),
		LogJSON:       getEnvBool("CLASSSCAN_LOG_JSON", false),
		Format:        getEnv("CLASSSCAN_FORMAT", "text"),
		MethodScanner: getEnv("CLASSSCAN_METHOD_SCANNER", "method"),
		set:           map[string]bool{},
	}

	for _, key := range []string{"CLASSSCAN_LOG_LEVEL", "CLASSSCAN_LOG_JSON", "CLASSSCAN_FORMAT", "CLASSSCAN_METHOD_SCANNER"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			cfg.set[key] = true
		}
	}

	return cfg, nil
}

// IsSet reports whether key was set in the environment when Load ran
func (c *Config) IsSet(key string) bool {
	return c.set[key]
}

// Validate checks that configured values are usable
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	switch strings.ToLower(c.Format) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("CLASSSCAN_FORMAT must be text, json or yaml, got %q", c.Format)
	}

	return nil
}

// Level parses LogLevel for zerolog
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid CLASSSCAN_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return defaultValue
}
