// ABOUTME: Configuration loader for the storefront CLI
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8080/api"

type Config struct {
	// Backend
	APIURL         string
	RequestTimeout int // seconds, applied to the shared HTTP client

	// Local state
	DataDir string // where session and cart files live (default: XDG config dir)

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         getEnv("INKWELL_API_URL", defaultAPIURL),
		RequestTimeout: getEnvInt("INKWELL_REQUEST_TIMEOUT", 30),
		DataDir:        getEnv("INKWELL_DATA_DIR", DefaultDataDir()),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	return cfg, nil
}

// DefaultDataDir returns the default state directory following the XDG spec.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "inkwell")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkwell")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
