// Package config loads the process configuration from the environment.
// Values are read once at startup and passed into components explicitly;
// nothing reads the environment after that.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
)

// Config holds the settings read from the environment at process start.
type Config struct {
	// APIKey is the Cal.com bearer credential (CALCOM_API_KEY). May be
	// empty; tools then answer with a configuration error envelope.
	APIKey string

	// BaseURL is the Cal.com API base URL (CALCOM_API_BASE_URL).
	// Defaults to the public v2 endpoint.
	BaseURL string

	// HTTPTimeout bounds each outgoing API call (CALCOM_HTTP_TIMEOUT,
	// seconds). Defaults to 30s.
	HTTPTimeout time.Duration

	// Port is the listen port for the HTTP transport (PORT). Used when no
	// --http-addr flag is given.
	Port int
}

// FromEnv returns a Config populated from environment variables, applying
// defaults for everything unset.
func FromEnv() Config {
	return Config{
		APIKey:      os.Getenv("CALCOM_API_KEY"),
		BaseURL:     getEnvOrDefault("CALCOM_API_BASE_URL", calcom.DefaultBaseURL),
		HTTPTimeout: time.Duration(getEnvIntOrDefault("CALCOM_HTTP_TIMEOUT", 30)) * time.Second,
		Port:        getEnvIntOrDefault("PORT", 0),
	}
}

// HTTPAddr returns the listen address derived from Port, or the fallback
// when no port is configured.
func (c Config) HTTPAddr(fallback string) string {
	if c.Port > 0 {
		return fmt.Sprintf(":%d", c.Port)
	}
	return fallback
}

// ClientConfig returns the calcom client configuration derived from this
// process configuration.
func (c Config) ClientConfig() calcom.Config {
	return calcom.Config{
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		HTTPClient: &http.Client{Timeout: c.HTTPTimeout},
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the integer value of an environment variable or a default value.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}
