package core

import "sync"

// Client is one open connection as seen by the core layer. The transport
// owns the socket; the core only pushes events into the Events channel and
// never blocks on it.
type Client struct {
	ID     string
	Events chan Event

	mu       sync.Mutex
	identity string
}

// NewClient constructs a client with a buffered events channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan Event, 16),
	}
}

// Bind records the identity this connection speaks as. Rebinding is allowed;
// the last writer wins.
func (c *Client) Bind(identity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = identity
}

// Identity returns the bound identity, or the connection id if none was
// bound yet.
func (c *Client) Identity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == "" {
		return c.ID
	}
	return c.identity
}

// send delivers an event without blocking. Slow consumers drop events.
func (c *Client) send(ev Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
