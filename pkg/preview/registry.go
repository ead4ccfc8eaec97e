package preview

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrReleased is returned when a handle is released twice.
var ErrReleased = errors.New("handle already released")

// Handle is an opaque, revocable reference to one assembled document
// registered with the preview surface. A handle is created by Register and
// must be released exactly once.
type Handle struct {
	token    string
	registry *Registry

	mu       sync.Mutex
	released bool
}

// Token returns the handle's routing token.
func (h *Handle) Token() string {
	return h.token
}

// Release revokes the handle. The document stops being servable. Releasing
// twice is an error so lifecycle bugs surface in tests instead of leaking.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return ErrReleased
	}
	h.released = true
	h.registry.drop(h.token)
	return nil
}

// Registry stores the documents behind live handles, keyed by token.
type Registry struct {
	mu       sync.Mutex
	docs     map[string]string
	created  int
	released int
}

// NewRegistry returns an empty handle registry.
func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]string)}
}

// Register stores doc under a fresh token and returns its handle.
func (r *Registry) Register(doc string) *Handle {
	token := uuid.NewString()
	r.mu.Lock()
	r.docs[token] = doc
	r.created++
	r.mu.Unlock()
	return &Handle{token: token, registry: r}
}

// Get returns the document behind token, if the handle is still live.
func (r *Registry) Get(token string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[token]
	return doc, ok
}

// Live returns the number of currently registered documents.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// Counts returns how many handles were created and released over the
// registry's lifetime, for leak checks.
func (r *Registry) Counts() (created, released int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, r.released
}

func (r *Registry) drop(token string) {
	r.mu.Lock()
	delete(r.docs, token)
	r.released++
	r.mu.Unlock()
}
