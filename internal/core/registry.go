package core

import "sync"

// Registry tracks the currently open connections. It is pure bookkeeping:
// moderation state lives in the Store, keyed by identity, and survives a
// connection coming and going.
type Registry struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[*Client]struct{})}
}

// Register adds a connection to the open set.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

// Unregister removes a connection from the open set. Safe to call while a
// broadcast iterates its own snapshot.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

// Snapshot returns the open connections at this instant. Broadcast iterates
// the snapshot so sends never happen under the registry lock.
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		out = append(out, c)
	}
	return out
}

// FindByIdentity returns the open connections currently bound to identity.
// Usually zero or one, but nothing stops two connections claiming one name.
func (r *Registry) FindByIdentity(identity string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Client
	for c := range r.clients {
		if c.Identity() == identity {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of open connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
