package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vilaca/api-explorer/internal/api"
	"github.com/vilaca/api-explorer/internal/domain"
	"github.com/vilaca/api-explorer/internal/explorer"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "explorer_session"

// Handler handles HTTP requests for the explorer.
// Each handler method has a Single Responsibility (SRP).
type Handler struct {
	renderer        Renderer
	logger          Logger
	sessions        SessionStore
	fetcher         explorer.Fetcher
	prober          BackendProber
	registry        *explorer.Registry
	defaultBackend  string
	defaultEndpoint domain.Endpoint
	requestTimeout  time.Duration

	// Form-triggered fetches outlive their request so the redirect can show
	// the loading page.
	background context.Context
	cancel     context.CancelFunc
	inFlight   sync.WaitGroup
}

// Logger interface for logging operations (Interface Segregation Principle).
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// SessionStore interface for session lookup (Dependency Inversion Principle).
type SessionStore interface {
	Get(id string) (*explorer.Session, string)
}

// BackendProber interface for reachability checks (Dependency Inversion Principle).
type BackendProber interface {
	Probe(ctx context.Context, backends []domain.Backend) []domain.BackendStatus
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	Renderer        Renderer
	Logger          Logger
	Sessions        SessionStore
	Fetcher         explorer.Fetcher
	Prober          BackendProber
	Registry        *explorer.Registry
	DefaultBackend  string
	DefaultEndpoint domain.Endpoint
	RequestTimeout  time.Duration
}

// NewHandler creates a new Handler with injected dependencies (Dependency Inversion Principle).
// This follows IoC (Inversion of Control) by accepting dependencies rather than creating them.
func NewHandler(cfg HandlerConfig) *Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	endpoint := cfg.DefaultEndpoint
	if endpoint == "" {
		endpoint = domain.EndpointGitHub
	}
	backend := cfg.DefaultBackend
	if backend == "" {
		backend = domain.BackendNode
	}

	background, cancel := context.WithCancel(context.Background())

	return &Handler{
		background:      background,
		cancel:          cancel,
		renderer:        cfg.Renderer,
		logger:          cfg.Logger,
		sessions:        cfg.Sessions,
		fetcher:         cfg.Fetcher,
		prober:          cfg.Prober,
		registry:        cfg.Registry,
		defaultBackend:  backend,
		defaultEndpoint: endpoint,
		requestTimeout:  timeout,
	}
}

// Wait blocks until every background fetch has finished.
func (h *Handler) Wait() {
	h.inFlight.Wait()
}

// Close cancels background fetches and waits for them to return.
func (h *Handler) Close() {
	h.cancel()
	h.inFlight.Wait()
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /fetch", h.handleFetch)
	mux.HandleFunc("POST /backend", h.handleSelectBackend)
	mux.HandleFunc("POST /endpoint", h.handleSelectEndpoint)
	mux.HandleFunc("GET /api/fetch", h.handleFetchAPI)
	mux.HandleFunc("GET /api/backends", h.handleBackends)
	mux.HandleFunc("GET /api/health", h.handleHealth)
}

// handleHealth serves the health check endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.renderer.RenderHealth(w); err != nil {
		h.logger.Errorw("failed to render health", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// handleIndex serves the explorer page for the caller's session.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if err := h.renderer.RenderPage(w, session.View()); err != nil {
		h.logger.Errorw("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// handleFetch submits the form's username.
func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	h.applyUsername(r, session)

	h.logActionError("fetch", h.startAction("fetch", session.Start))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSelectBackend switches backend and re-fetches when a username is present.
func (h *Handler) handleSelectBackend(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	h.applyUsername(r, session)

	backendID := r.FormValue("backend")
	err := h.startAction("select backend", func(ctx context.Context) (<-chan error, error) {
		return session.StartSelectBackend(ctx, backendID)
	})
	if errors.Is(err, explorer.ErrUnknownBackend) {
		http.Error(w, "unknown backend", http.StatusBadRequest)
		return
	}
	h.logActionError("select backend", err)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSelectEndpoint switches endpoint and re-fetches when a username is present.
func (h *Handler) handleSelectEndpoint(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	h.applyUsername(r, session)

	endpoint := domain.Endpoint(r.FormValue("endpoint"))
	err := h.startAction("select endpoint", func(ctx context.Context) (<-chan error, error) {
		return session.StartSelectEndpoint(ctx, endpoint)
	})
	if errors.Is(err, domain.ErrUnknownEndpoint) {
		http.Error(w, "unknown endpoint", http.StatusBadRequest)
		return
	}
	h.logActionError("select endpoint", err)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// fetchResponse is the JSON body of a successful /api/fetch.
type fetchResponse struct {
	*domain.Result
	Chart *domain.PieChart `json:"chart,omitempty"`
}

// handleFetchAPI performs a stateless fetch and returns the outcome as JSON.
func (h *Handler) handleFetchAPI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	username := strings.TrimSpace(query.Get("username"))
	if username == "" {
		h.writeDetail(w, http.StatusBadRequest, "username is required")
		return
	}

	backendID := query.Get("backend")
	if backendID == "" {
		backendID = h.defaultBackend
	}
	backend, ok := h.registry.Find(backendID)
	if !ok {
		h.writeDetail(w, http.StatusBadRequest, "unknown backend: "+backendID)
		return
	}

	endpoint := h.defaultEndpoint
	if raw := query.Get("endpoint"); raw != "" {
		parsed, err := domain.ParseEndpoint(raw)
		if err != nil {
			h.writeDetail(w, http.StatusBadRequest, "unknown endpoint: "+raw)
			return
		}
		endpoint = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.fetcher.Fetch(ctx, backend, endpoint, username)
	if err != nil {
		h.logger.Warnw("api fetch failed", "backend", backend.ID, "endpoint", endpoint, "username", username, "error", err)
		h.writeDetail(w, fetchErrorStatus(err), api.ErrorMessage(err))
		return
	}

	if result.CacheStatus != "" {
		w.Header().Set(domain.CacheHeader, result.CacheStatus)
	}
	h.writeJSON(w, http.StatusOK, fetchResponse{Result: result, Chart: domain.NewPieChart(result.Analysis)})
}

// handleBackends lists the registry, with reachability when ?probe=1.
func (h *Handler) handleBackends(w http.ResponseWriter, r *http.Request) {
	backends := h.registry.List()

	if r.URL.Query().Get("probe") != "1" || h.prober == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"backends": backends})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	statuses := h.prober.Probe(ctx, backends)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"backends": statuses})
}

// session returns the caller's session, issuing a cookie for new ones.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *explorer.Session {
	id := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	session, newID := h.sessions.Get(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return session
}

// applyUsername copies the username field into the session when the form carries one.
func (h *Handler) applyUsername(r *http.Request, session *explorer.Session) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warnw("failed to parse form", "error", err)
		return
	}
	if _, ok := r.PostForm["username"]; ok {
		session.SetUsername(r.PostForm.Get("username"))
	}
}

// startAction begins a session action in the background, bounded by the
// request timeout. Errors returned here are the ones known before fetching;
// fetch errors are logged when the fetch ends.
func (h *Handler) startAction(action string, start func(ctx context.Context) (<-chan error, error)) error {
	ctx, cancel := context.WithTimeout(h.background, h.requestTimeout)

	h.inFlight.Add(1)
	done, err := start(ctx)
	if err != nil {
		cancel()
		h.inFlight.Done()
		return err
	}

	go func() {
		defer h.inFlight.Done()
		defer cancel()
		h.logActionError(action, <-done)
	}()
	return nil
}

// logActionError logs action failures. The session already holds the message
// to display, so nothing is returned to the client.
func (h *Handler) logActionError(action string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, explorer.ErrInFlight):
		h.logger.Infow("action ignored while loading", "action", action)
	default:
		h.logger.Warnw("action failed", "action", action, "error", err)
	}
}

// fetchErrorStatus maps a fetch error to the status returned by /api/fetch.
// Backend status codes pass through.
func fetchErrorStatus(err error) int {
	var statusErr *api.StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.StatusCode
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeDetail(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorw("failed to encode response", "error", err)
	}
}
