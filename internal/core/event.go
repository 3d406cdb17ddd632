package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventText carries an accepted chat message.
	EventText EventKind = iota
	// EventSystem carries a server notice (rejections, usage reminders).
	EventSystem
	// EventPrefixInfo answers a get_prefix request.
	EventPrefixInfo
	// EventPrefixUpdated confirms a set_prefix request.
	EventPrefixUpdated
	// EventMute tells a client it has been muted.
	EventMute
	// EventUnmute tells a client its mute has lifted.
	EventUnmute
)

// Event is sent to clients to describe what happened.
type Event struct {
	Kind    EventKind
	ID      string // fresh id on EventText, lets clients drop re-deliveries
	Author  string
	Message string
	Prefix  string

	// Mute/unmute details.
	Reason          string
	DurationMinutes int
}
