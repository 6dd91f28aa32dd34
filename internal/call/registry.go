package call

import (
	"context"
	"sync"
	"time"
)

// evicted sessions get this long to stop their voice connection
const evictTimeout = 15 * time.Second

// Registry keeps live controllers by session ID. Entries expire after the TTL, refreshed on
// every access, and are swept by a background loop. Evicted sessions that are still connecting
// or active are ended, which stops their voice connection and finalizes them.
type Registry struct {
	sessions map[string]*registryEntry
	mu       sync.RWMutex
	ttl      time.Duration
	stop     chan struct{}
	once     sync.Once
}

type registryEntry struct {
	controller *Controller
	expiresAt  time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*registryEntry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go r.cleanupLoop()

	return r
}

func (r *Registry) Put(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[c.ID()] = &registryEntry{
		controller: c,
		expiresAt:  time.Now().Add(r.ttl),
	}
}

// Get returns the controller if it exists and hasn't expired, extending its lifetime.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.sessions[id]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	entry.expiresAt = time.Now().Add(r.ttl)
	return entry.controller, true
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Close stops the cleanup loop and ends every session still held.
func (r *Registry) Close() {
	r.once.Do(func() {
		close(r.stop)

		r.mu.Lock()
		evicted := make([]*Controller, 0, len(r.sessions))
		for id, entry := range r.sessions {
			evicted = append(evicted, entry.controller)
			delete(r.sessions, id)
		}
		r.mu.Unlock()

		endAll(evicted)
	})
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stop:
			return
		}
	}
}

func (r *Registry) cleanup() {
	r.mu.Lock()
	var evicted []*Controller
	now := time.Now()
	for id, entry := range r.sessions {
		if now.After(entry.expiresAt) {
			evicted = append(evicted, entry.controller)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	endAll(evicted)
}

// endAll runs outside the registry lock since End blocks on the voice platform.
func endAll(controllers []*Controller) {
	for _, c := range controllers {
		switch c.State() {
		case StateConnecting, StateActive:
			ctx, cancel := context.WithTimeout(context.Background(), evictTimeout)
			_ = c.End(ctx)
			cancel()
		}
	}
}
