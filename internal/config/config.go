package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vilaca/api-explorer/internal/domain"
)

// Config holds application configuration.
// Follows Single Responsibility - only holds configuration data.
type Config struct {
	Port int

	// Path to a YAML backend registry. Empty means the built-in registry.
	BackendsFile string

	// Initial selection for new sessions
	DefaultBackend  string
	DefaultEndpoint domain.Endpoint

	RequestTimeoutSeconds int
	SessionTTLMinutes     int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load loads configuration from environment variables.
// Invalid numeric values fall back to their defaults.
func Load() (*Config, error) {
	endpoint, err := domain.ParseEndpoint(getEnvOrDefault("DEFAULT_ENDPOINT", string(domain.EndpointGitHub)))
	if err != nil {
		endpoint = domain.EndpointGitHub
	}

	return &Config{
		Port:                  getEnvIntOrDefault("PORT", 8080),
		BackendsFile:          os.Getenv("BACKENDS_FILE"),
		DefaultBackend:        getEnvOrDefault("DEFAULT_BACKEND", domain.BackendNode),
		DefaultEndpoint:       endpoint,
		RequestTimeoutSeconds: getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 30),
		SessionTTLMinutes:     getEnvIntOrDefault("SESSION_TTL_MINUTES", 60),
		LogLevel:              strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
	}, nil
}

// RequestTimeout returns the outbound request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SessionTTL returns how long an idle web session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Backends returns the backend registry: the YAML file when configured,
// otherwise the built-in list.
func (c *Config) Backends() ([]domain.Backend, error) {
	if c.BackendsFile == "" {
		return domain.DefaultBackends(), nil
	}
	return LoadBackends(c.BackendsFile)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
