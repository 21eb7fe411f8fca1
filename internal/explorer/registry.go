package explorer

import (
	"sync"

	"github.com/vilaca/api-explorer/internal/domain"
)

// Registry is the live list of backends. It is replaced wholesale when the
// backends file is reloaded.
type Registry struct {
	mu       sync.RWMutex
	backends []domain.Backend
}

// NewRegistry creates a registry holding a copy of backends.
func NewRegistry(backends []domain.Backend) *Registry {
	r := &Registry{}
	r.Replace(backends)
	return r
}

// List returns a copy of the backends in display order.
func (r *Registry) List() []domain.Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Backend(nil), r.backends...)
}

// Find returns the backend with the given id.
func (r *Registry) Find(id string) (domain.Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.FindBackend(r.backends, id)
}

// Replace swaps in a new backend list.
func (r *Registry) Replace(backends []domain.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends = append([]domain.Backend(nil), backends...)
}
