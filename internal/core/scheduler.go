package core

import "time"

// scheduleUnmute arms a one-shot timer lifting the mute identified by seq.
// The firing is guarded two ways: the state store only clears the mute if
// seq still names the active one (a later mute or a manual unmute makes the
// timer a stale no-op), and the notice only goes to connections the registry
// still considers open.
func (h *Hub) scheduleUnmute(identity string, seq uint64, d time.Duration) {
	h.clk.AfterFunc(d, func() {
		state := h.store.Get(identity)
		if !state.unmuteIfCurrent(seq) {
			return
		}

		h.log.Info().Str("identity", identity).Msg("mute expired")
		for _, c := range h.registry.FindByIdentity(identity) {
			c.send(Event{Kind: EventUnmute, Reason: "mute expired"})
		}
	})
}
