// Package proto defines the wire shape of relay frames. Frames are flat JSON
// objects with a "type" discriminator, matching what legacy clients send
// under the XOR codec.
package proto

// Inbound frame types.
const (
	InboundTypeGetPrefix = "get_prefix"
	InboundTypeSetPrefix = "set_prefix"
	InboundTypeText      = "text"
)

// Outbound frame types.
const (
	OutboundTypePrefixInfo    = "prefix_info"
	OutboundTypePrefixUpdated = "prefix_updated"
	OutboundTypeText          = "text"
	OutboundTypeSystem        = "system"
	OutboundTypeMute          = "mute"
	OutboundTypeUnmute        = "unmute"
)

// Inbound is a frame coming from a client. Only the fields relevant to the
// given Type are set; the rest stay at their zero values.
type Inbound struct {
	Type      string `json:"type"`
	ClientID  string `json:"clientId,omitempty"`
	Author    string `json:"author,omitempty"`
	Message   string `json:"message,omitempty"`
	NewPrefix string `json:"new_prefix,omitempty"`
}

// Outbound is a frame sent to a client.
type Outbound struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Author  string `json:"author,omitempty"`
	Message string `json:"message,omitempty"`
	Prefix  string `json:"prefix,omitempty"`
	// Mute frames carry why and for how long.
	Reason          string `json:"reason,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// PrefixInfo answers a get_prefix request.
func PrefixInfo(prefix string) Outbound {
	return Outbound{Type: OutboundTypePrefixInfo, Prefix: prefix}
}

// PrefixUpdated confirms a set_prefix request.
func PrefixUpdated(prefix string) Outbound {
	return Outbound{Type: OutboundTypePrefixUpdated, Prefix: prefix}
}

// System wraps a server notice (rejection reasons, usage reminders).
func System(message string) Outbound {
	return Outbound{Type: OutboundTypeSystem, Message: message}
}
