package api

import (
	"context"
	"net/http"
)

const (
	// MaxConcurrentRequests limits concurrent outbound requests across all sessions
	MaxConcurrentRequests = 5
	// MaxResponseBytes caps how much of a backend response is read
	MaxResponseBytes = 10 << 20
)

// HTTPClient interface for HTTP operations (allows mocking in tests).
// Follows Interface Segregation Principle.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BaseClient contains the HTTP client and the request semaphore shared by
// the fetch client and the prober.
type BaseClient struct {
	HTTPClient HTTPClient
	Semaphore  chan struct{} // Limits concurrent requests
}

// NewBaseClient creates a new base client with rate limiting.
func NewBaseClient(httpClient HTTPClient) *BaseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BaseClient{
		HTTPClient: httpClient,
		Semaphore:  make(chan struct{}, MaxConcurrentRequests),
	}
}

// DoRateLimited performs fn once a semaphore slot is free.
// Returns ctx.Err() if the context ends while waiting.
func (c *BaseClient) DoRateLimited(ctx context.Context, fn func() error) error {
	select {
	case c.Semaphore <- struct{}{}:
		defer func() { <-c.Semaphore }()
	case <-ctx.Done():
		return ctx.Err()
	}

	return fn()
}
