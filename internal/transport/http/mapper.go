package http

import (
	"github.com/vovakirdan/ircrelay-server/internal/core"
	"github.com/vovakirdan/ircrelay-server/internal/proto"
)

func outboundFromEvent(event core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventText:
		return proto.Outbound{
			Type:    proto.OutboundTypeText,
			ID:      event.ID,
			Author:  event.Author,
			Message: event.Message,
			Prefix:  event.Prefix,
		}
	case core.EventPrefixInfo:
		return proto.PrefixInfo(event.Prefix)
	case core.EventPrefixUpdated:
		return proto.PrefixUpdated(event.Prefix)
	case core.EventMute:
		return proto.Outbound{
			Type:            proto.OutboundTypeMute,
			Reason:          event.Reason,
			DurationMinutes: event.DurationMinutes,
		}
	case core.EventUnmute:
		return proto.Outbound{
			Type:   proto.OutboundTypeUnmute,
			Reason: event.Reason,
		}
	default: // core.EventSystem
		return proto.System(event.Message)
	}
}
