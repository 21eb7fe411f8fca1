package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vilaca/api-explorer/internal/api"
	"github.com/vilaca/api-explorer/internal/config"
	"github.com/vilaca/api-explorer/internal/dashboard"
	"github.com/vilaca/api-explorer/internal/explorer"
)

// sessionSweepInterval is how often idle web sessions are collected.
const sessionSweepInterval = time.Minute

// app holds the dependencies shared by every command.
type app struct {
	registry *explorer.Registry
	base     *api.BaseClient
	client   *api.BackendClient
	prober   *api.Prober
}

// newApp wires the registry and HTTP clients from configuration.
// This is the composition root where all dependencies are created and injected.
func newApp(cfg *config.Config) (*app, error) {
	backends, err := cfg.Backends()
	if err != nil {
		return nil, err
	}

	base := api.NewBaseClient(&http.Client{
		Timeout: cfg.RequestTimeout(),
	})

	return &app{
		registry: explorer.NewRegistry(backends),
		base:     base,
		client:   api.NewBackendClient(base),
		prober:   api.NewProber(base),
	}, nil
}

// newSession creates a form session with the configured defaults.
func (a *app) newSession(cfg *config.Config, log *zap.SugaredLogger) *explorer.Session {
	return explorer.NewSession(explorer.SessionConfig{
		Fetcher:         a.client,
		Registry:        a.registry,
		Logger:          log,
		DefaultBackend:  cfg.DefaultBackend,
		DefaultEndpoint: cfg.DefaultEndpoint,
	})
}

// webServer is the routed handler plus what must be released on shutdown.
type webServer struct {
	http.Handler
	dashboard *dashboard.Handler
	sessions  *explorer.SessionStore
}

// Close stops background fetches, then session expiry.
func (s *webServer) Close() {
	s.dashboard.Close()
	s.sessions.Close()
}

// buildServer wires up the web handler. The caller must Close it.
func buildServer(cfg *config.Config, a *app, log *zap.SugaredLogger) *webServer {
	sessions := explorer.NewSessionStore(cfg.SessionTTL(), sessionSweepInterval, func() *explorer.Session {
		return a.newSession(cfg, log)
	})

	handler := dashboard.NewHandler(dashboard.HandlerConfig{
		Renderer:        dashboard.NewHTMLRenderer(),
		Logger:          log,
		Sessions:        sessions,
		Fetcher:         a.client,
		Prober:          a.prober,
		Registry:        a.registry,
		DefaultBackend:  cfg.DefaultBackend,
		DefaultEndpoint: cfg.DefaultEndpoint,
		RequestTimeout:  cfg.RequestTimeout(),
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &webServer{Handler: mux, dashboard: handler, sessions: sessions}
}
