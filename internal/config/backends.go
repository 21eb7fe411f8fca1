package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vilaca/api-explorer/internal/domain"
)

// ErrNoBackends is returned when a registry file declares no backends.
var ErrNoBackends = errors.New("no backends configured")

// backendsFile is the on-disk layout of a backend registry.
type backendsFile struct {
	Backends []domain.Backend `yaml:"backends"`
}

// LoadBackends reads and validates a YAML backend registry.
func LoadBackends(path string) ([]domain.Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backends file: %w", err)
	}
	return ParseBackends(data)
}

// ParseBackends decodes and validates a YAML backend registry.
func ParseBackends(data []byte) ([]domain.Backend, error) {
	var file backendsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse backends file: %w", err)
	}

	backends := make([]domain.Backend, 0, len(file.Backends))
	for _, b := range file.Backends {
		b.ID = strings.TrimSpace(b.ID)
		b.Label = strings.TrimSpace(b.Label)
		b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
		backends = append(backends, b)
	}

	if err := ValidateBackends(backends); err != nil {
		return nil, err
	}
	return backends, nil
}

// ValidateBackends checks ids are unique and every URL is an absolute http(s) URL.
func ValidateBackends(backends []domain.Backend) error {
	if len(backends) == 0 {
		return ErrNoBackends
	}

	seen := make(map[string]bool, len(backends))
	for i, b := range backends {
		if b.ID == "" {
			return fmt.Errorf("backend %d: missing id", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("backend %q: duplicate id", b.ID)
		}
		seen[b.ID] = true

		if b.Label == "" {
			return fmt.Errorf("backend %q: missing label", b.ID)
		}

		u, err := url.Parse(b.URL)
		if err != nil {
			return fmt.Errorf("backend %q: invalid url: %w", b.ID, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("backend %q: url must be absolute http(s), got %q", b.ID, b.URL)
		}
	}
	return nil
}
