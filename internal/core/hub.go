package core

import (
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ircrelay-server/internal/audit"
	"github.com/vovakirdan/ircrelay-server/internal/utils"
)

// Hub ties the registry, state store and moderation pipeline together and
// fans accepted messages out to every open connection. Connection read loops
// call into it directly; there is no central dispatch goroutine, contention
// is limited to same-identity traffic.
type Hub struct {
	registry *Registry
	store    *Store
	filter   *PhraseFilter
	policy   Policy
	admins   map[string]bool
	clk      clock.Clock
	audit    audit.Log
	log      *zerolog.Logger
}

// NewHub constructs a hub enforcing the given policy. The clock is injected
// so mute and cooldown timing is testable.
func NewHub(policy Policy, clk clock.Clock, auditLog audit.Log, logger *zerolog.Logger) *Hub {
	admins := make(map[string]bool, len(policy.Admins))
	for _, a := range policy.Admins {
		admins[a] = true
	}
	if auditLog == nil {
		auditLog = audit.Nop{}
	}
	return &Hub{
		registry: NewRegistry(),
		store:    NewStore(),
		filter:   NewPhraseFilter(policy.BannedPhrases),
		policy:   policy,
		admins:   admins,
		clk:      clk,
		audit:    auditLog,
		log:      logger,
	}
}

// Connect registers a new connection.
func (h *Hub) Connect(c *Client) {
	h.registry.Register(c)
	h.audit.Connect(c.ID)
	h.log.Info().Str("conn_id", c.ID).Msg("client connected")
}

// Disconnect removes a connection from the fan-out set. The identity's
// moderation state stays; a mute survives reconnection.
func (h *Hub) Disconnect(c *Client) {
	h.registry.Unregister(c)
	h.audit.Disconnect(c.ID)
	h.log.Info().Str("conn_id", c.ID).Msg("client disconnected")
}

// resolve computes the identity a frame speaks as: declared author name when
// present, else the frame's client id, else the connection. Binding is
// re-asserted on every frame, last writer wins.
func (h *Hub) resolve(c *Client, clientID, author string) string {
	switch {
	case author != "":
		c.Bind(author)
		return author
	case clientID != "":
		c.Bind(clientID)
		return clientID
	default:
		return c.Identity()
	}
}

// GetPrefix answers the issuer with the resolved identity's prefix.
func (h *Hub) GetPrefix(c *Client, clientID string) {
	identity := h.resolve(c, clientID, "")
	c.send(Event{Kind: EventPrefixInfo, Prefix: h.store.Get(identity).Prefix()})
}

// SetPrefix stores a prefix on the resolved identity and confirms it to the
// issuer only.
func (h *Hub) SetPrefix(c *Client, clientID, newPrefix string) {
	identity := h.resolve(c, clientID, "")
	h.store.Get(identity).SetPrefix(newPrefix)
	c.send(Event{Kind: EventPrefixUpdated, Prefix: newPrefix})
}

// Text runs one inbound text message through the moderation pipeline and, on
// acceptance, broadcasts it.
func (h *Hub) Text(c *Client, clientID, author, message string) {
	identity := h.resolve(c, clientID, author)

	if cmd, ok := parseAdminCommand(message); ok {
		h.handleAdmin(c, identity, cmd)
		return
	}

	state := h.store.Get(identity)
	v := h.moderate(state, message)

	if v.filtered {
		h.audit.Filtered(identity, message)
		h.log.Warn().Str("identity", identity).Msg("message filtered")
	}
	if v.mute != nil {
		h.scheduleUnmute(identity, v.mute.seq, v.mute.duration)
		h.log.Info().
			Str("identity", identity).
			Str("reason", v.mute.reason).
			Dur("duration", v.mute.duration).
			Msg("mute imposed")
		c.send(Event{Kind: EventMute, Reason: v.mute.reason, DurationMinutes: v.mute.minutes})
		return
	}
	if v.rej != nil {
		c.send(Event{Kind: EventSystem, Message: v.rej.Notice})
		return
	}

	h.broadcast(Event{
		Kind:    EventText,
		ID:      utils.NewID(),
		Author:  identity,
		Message: v.message,
		Prefix:  v.prefix,
	})
}

// broadcast fans an event out to every connection open at snapshot time.
// Best effort: slow consumers drop the event, connections closing mid-fanout
// are simply gone from the snapshot or ignore the buffered send.
func (h *Hub) broadcast(ev Event) {
	for _, c := range h.registry.Snapshot() {
		if !c.send(ev) {
			h.log.Debug().Str("conn_id", c.ID).Msg("dropped event for slow consumer")
		}
	}
}

// Stats is a point-in-time view for the stats endpoint.
type Stats struct {
	OpenConnections int `json:"open_connections"`
	KnownIdentities int `json:"known_identities"`
	Muted           int `json:"muted"`
}

// Stats reports current counts.
func (h *Hub) Stats() Stats {
	return Stats{
		OpenConnections: h.registry.Len(),
		KnownIdentities: h.store.Len(),
		Muted:           h.store.MutedCount(h.clk.Now()),
	}
}
