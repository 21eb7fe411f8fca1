package domain

import "time"

// Backend describes a server target the explorer can query.
// Most of the built-in targets are placeholders with no running server.
type Backend struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// DefaultBackends returns the built-in backend registry.
// A new slice is returned on every call so callers may modify it.
func DefaultBackends() []Backend {
	return []Backend{
		{ID: BackendNode, Label: "Node.js", URL: "http://localhost:3001"},
		{ID: BackendFastAPI, Label: "FastAPI", URL: "http://localhost:3002"},
		{ID: BackendDjango, Label: "Django", URL: "http://localhost:3003"},
		{ID: BackendRails, Label: "Rails", URL: "http://localhost:3004"},
		{ID: BackendDeno, Label: "Deno", URL: "http://localhost:3005"},
	}
}

// FindBackend returns the backend with the given id.
func FindBackend(backends []Backend, id string) (Backend, bool) {
	for _, b := range backends {
		if b.ID == id {
			return b, true
		}
	}
	return Backend{}, false
}

// BackendStatus is the outcome of probing a backend for reachability.
type BackendStatus struct {
	Backend    Backend       `json:"backend"`
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"statusCode,omitempty"`
	Latency    time.Duration `json:"latency"`
	Error      string        `json:"error,omitempty"`
}
