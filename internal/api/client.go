package api

import (
	"context"

	"github.com/vilaca/api-explorer/internal/domain"
)

// Client defines the interface for explorer backends.
// This follows Interface Segregation Principle - small, focused interface.
// Allows dependency inversion - consumers depend on this interface, not concrete implementations.
type Client interface {
	// Fetch requests endpoint for username from backend.
	Fetch(ctx context.Context, backend domain.Backend, endpoint domain.Endpoint, username string) (*domain.Result, error)
}
