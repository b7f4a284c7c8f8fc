package session

import (
	"fmt"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry keeps the most recently used workspaces in memory. The least
// recently used one is dropped when the registry is full.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Session]
	deps  Dependencies
}

// NewRegistry holds up to size workspaces sharing deps
func NewRegistry(size int, deps Dependencies) (*Registry, error) {
	cache, err := lru.NewWithEvict[string, *Session](size, func(id string, _ *Session) {
		log.Printf("🧹 Workspace %s evicted", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace registry: %w", err)
	}
	return &Registry{cache: cache, deps: deps}, nil
}

// Get returns the workspace for id, creating it on first use
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.cache.Get(id); ok {
		return s
	}
	s := New(id, r.deps)
	r.cache.Add(id, s)
	return s
}

// Do runs fn with exclusive access to the workspace for id
func (r *Registry) Do(id string, fn func(*Session) error) error {
	s := r.Get(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Remove forgets a workspace
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Remove(id)
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
