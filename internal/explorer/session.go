package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vilaca/api-explorer/internal/api"
	"github.com/vilaca/api-explorer/internal/domain"
)

var (
	// ErrInFlight is returned when an action arrives while a fetch is running.
	ErrInFlight = errors.New("a fetch is already in progress")
	// ErrUnknownBackend is returned when selecting a backend not in the registry.
	ErrUnknownBackend = errors.New("unknown backend")
)

// Fetcher interface for backend requests (Dependency Inversion Principle).
type Fetcher interface {
	Fetch(ctx context.Context, backend domain.Backend, endpoint domain.Endpoint, username string) (*domain.Result, error)
}

// Logger interface for logging operations (Interface Segregation Principle).
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
}

// SessionConfig holds the dependencies and initial selection of a Session.
type SessionConfig struct {
	Fetcher         Fetcher
	Registry        *Registry
	Logger          Logger
	DefaultBackend  string
	DefaultEndpoint domain.Endpoint
}

// Session is the state of one explorer form.
// Safe for concurrent use.
type Session struct {
	fetcher  Fetcher
	registry *Registry
	logger   Logger

	mu        sync.Mutex
	backendID string
	endpoint  domain.Endpoint
	username  string
	loading   bool
	errMsg    string
	result    *domain.Result
}

// View is an immutable snapshot of a Session for rendering.
type View struct {
	Backends  []domain.Backend
	Backend   domain.Backend
	Endpoints []domain.Endpoint
	Endpoint  domain.Endpoint
	Username  string
	Loading   bool
	Error     string
	// CacheStatus is the X-Cache header of the last successful fetch.
	CacheStatus string
	Result      *domain.Result
	Chart       *domain.PieChart
}

// NewSession creates a session with the configured initial selection.
func NewSession(cfg SessionConfig) *Session {
	endpoint := cfg.DefaultEndpoint
	if endpoint == "" {
		endpoint = domain.EndpointGitHub
	}
	backendID := cfg.DefaultBackend
	if backendID == "" {
		backendID = domain.BackendNode
	}

	return &Session{
		fetcher:   cfg.Fetcher,
		registry:  cfg.Registry,
		logger:    cfg.Logger,
		backendID: backendID,
		endpoint:  endpoint,
	}
}

// SetUsername replaces the username text. It never triggers a fetch.
func (s *Session) SetUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = username
}

// SelectBackend makes id the active backend and re-fetches when a username
// is present.
func (s *Session) SelectBackend(ctx context.Context, id string) error {
	s.mu.Lock()
	run, err := s.selectBackendLocked(id)
	s.mu.Unlock()

	return execute(ctx, run, err)
}

// StartSelectBackend is SelectBackend without waiting for the fetch.
func (s *Session) StartSelectBackend(ctx context.Context, id string) (<-chan error, error) {
	s.mu.Lock()
	run, err := s.selectBackendLocked(id)
	s.mu.Unlock()

	return launch(ctx, run, err)
}

// SelectEndpoint makes endpoint active and re-fetches when a username is present.
func (s *Session) SelectEndpoint(ctx context.Context, endpoint domain.Endpoint) error {
	s.mu.Lock()
	run, err := s.selectEndpointLocked(endpoint)
	s.mu.Unlock()

	return execute(ctx, run, err)
}

// StartSelectEndpoint is SelectEndpoint without waiting for the fetch.
func (s *Session) StartSelectEndpoint(ctx context.Context, endpoint domain.Endpoint) (<-chan error, error) {
	s.mu.Lock()
	run, err := s.selectEndpointLocked(endpoint)
	s.mu.Unlock()

	return launch(ctx, run, err)
}

// Submit fetches the active endpoint for the current username.
// A blank username or a backend missing from the registry makes it a no-op.
// The returned error is the fetch error; it is also recorded for display.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	run, err := s.beginLocked()
	s.mu.Unlock()

	return execute(ctx, run, err)
}

// Start is Submit without waiting: it returns once the session is loading.
// The channel yields the fetch error and is then closed; it is closed at once
// when there was nothing to fetch.
func (s *Session) Start(ctx context.Context) (<-chan error, error) {
	s.mu.Lock()
	run, err := s.beginLocked()
	s.mu.Unlock()

	return launch(ctx, run, err)
}

func (s *Session) selectBackendLocked(id string) (func(context.Context) error, error) {
	if s.loading {
		return nil, ErrInFlight
	}
	if _, ok := s.registry.Find(id); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, id)
	}
	s.backendID = id
	return s.beginLocked()
}

func (s *Session) selectEndpointLocked(endpoint domain.Endpoint) (func(context.Context) error, error) {
	if _, err := domain.ParseEndpoint(string(endpoint)); err != nil {
		return nil, err
	}
	if s.loading {
		return nil, ErrInFlight
	}
	s.endpoint = endpoint
	return s.beginLocked()
}

// beginLocked marks the session loading and returns the fetch to run, or nil
// when there is nothing to fetch. s.mu must be held.
func (s *Session) beginLocked() (func(context.Context) error, error) {
	username := strings.TrimSpace(s.username)
	backend, ok := s.registry.Find(s.backendID)
	if username == "" || !ok {
		return nil, nil
	}
	if s.loading {
		return nil, ErrInFlight
	}
	endpoint := s.endpoint
	s.loading = true
	s.errMsg = ""
	s.result = nil

	return func(ctx context.Context) error {
		return s.fetch(ctx, backend, endpoint, username)
	}, nil
}

func (s *Session) fetch(ctx context.Context, backend domain.Backend, endpoint domain.Endpoint, username string) error {
	result, err := s.fetcher.Fetch(ctx, backend, endpoint, username)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = api.ErrorMessage(err)
		if s.logger != nil {
			s.logger.Warnw("fetch failed", "backend", backend.ID, "endpoint", endpoint, "username", username, "error", err)
		}
		return err
	}

	s.result = result
	if s.logger != nil {
		s.logger.Debugw("fetch succeeded", "backend", backend.ID, "endpoint", endpoint, "username", username, "cache", result.CacheStatus)
	}
	return nil
}

func execute(ctx context.Context, run func(context.Context) error, err error) error {
	if err != nil || run == nil {
		return err
	}
	return run(ctx)
}

func launch(ctx context.Context, run func(context.Context) error, err error) (<-chan error, error) {
	if err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	if run == nil {
		close(done)
		return done, nil
	}
	go func() {
		done <- run(ctx)
		close(done)
	}()
	return done, nil
}

// Loading reports whether a fetch is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	backend, _ := s.registry.Find(s.backendID)
	v := View{
		Backends:  s.registry.List(),
		Backend:   backend,
		Endpoints: domain.Endpoints(),
		Endpoint:  s.endpoint,
		Username:  s.username,
		Loading:   s.loading,
		Error:     s.errMsg,
		Result:    s.result,
	}
	if s.result != nil {
		v.CacheStatus = s.result.CacheStatus
		v.Chart = domain.NewPieChart(s.result.Analysis)
	}
	return v
}
