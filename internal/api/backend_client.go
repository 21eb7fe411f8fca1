package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vilaca/api-explorer/internal/domain"
)

// BackendClient implements Client over HTTP.
// Follows Single Responsibility Principle - only handles backend communication.
type BackendClient struct {
	base *BaseClient
	now  func() time.Time
}

// NewBackendClient creates a new backend client.
// Uses dependency injection for BaseClient (IoC).
func NewBackendClient(base *BaseClient) *BackendClient {
	return &BackendClient{
		base: base,
		now:  time.Now,
	}
}

// BuildURL returns {base}/{endpoint}?username={username}.
func BuildURL(baseURL string, endpoint domain.Endpoint, username string) string {
	query := url.Values{"username": []string{username}}
	return fmt.Sprintf("%s/%s?%s", strings.TrimRight(baseURL, "/"), endpoint, query.Encode())
}

// Fetch requests endpoint for username from backend and decodes the body
// into the slot matching endpoint.
func (c *BackendClient) Fetch(ctx context.Context, backend domain.Backend, endpoint domain.Endpoint, username string) (*domain.Result, error) {
	var result *domain.Result
	err := c.base.DoRateLimited(ctx, func() error {
		var err error
		result, err = c.fetch(ctx, backend, endpoint, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fetch performs a single request.
// Follows Single Level of Abstraction Principle (SLAP).
func (c *BackendClient) fetch(ctx context.Context, backend domain.Backend, endpoint domain.Endpoint, username string) (*domain.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildURL(backend.URL, endpoint, username), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.base.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request failed: %w", ctx.Err())
		}
		return nil, &UnreachableError{Backend: backend.Label, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: extractDetail(body)}
	}

	result := &domain.Result{
		Backend:     backend,
		Endpoint:    endpoint,
		Username:    username,
		Raw:         json.RawMessage(body),
		CacheStatus: resp.Header.Get(domain.CacheHeader),
		FetchedAt:   c.now(),
	}

	switch endpoint {
	case domain.EndpointGitHub:
		// Shown as raw JSON; the typed view is best effort.
		if !json.Valid(body) {
			return nil, fmt.Errorf("failed to decode response: %w", errInvalidJSON)
		}
		var user domain.GitHubUser
		if err := json.Unmarshal(body, &user); err == nil {
			result.GitHub = &user
		}
	case domain.EndpointAnalyze:
		var analysis domain.Analysis
		if err := json.Unmarshal(body, &analysis); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		result.Analysis = &analysis
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEndpoint, endpoint)
	}

	return result, nil
}
