package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const adminUsage = "usage: admin mute <target> <minutes> | admin unmute <target>"

// adminCommand is a parsed privileged command.
type adminCommand struct {
	action  string
	target  string
	minutes int
}

// parseAdminCommand reports whether text matches the privileged-command
// grammar at all (first token "admin"), and if so whether the arguments are
// well formed. A grammar match with bad arguments returns ok=true and a nil
// command so the caller can answer with a usage reminder.
func parseAdminCommand(text string) (*adminCommand, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || fields[0] != "admin" {
		return nil, false
	}
	if len(fields) < 3 {
		return nil, true
	}

	cmd := &adminCommand{action: fields[1], target: fields[2]}
	switch cmd.action {
	case "mute":
		if len(fields) != 4 {
			return nil, true
		}
		minutes, err := strconv.Atoi(fields[3])
		if err != nil || minutes <= 0 {
			return nil, true
		}
		cmd.minutes = minutes
		return cmd, true
	case "unmute":
		if len(fields) != 3 {
			return nil, true
		}
		return cmd, true
	default:
		return nil, true
	}
}

// handleAdmin applies a privileged command on behalf of issuer. Malformed
// input answers only the issuer; successful actions mutate the target's
// state and broadcast a system notice.
func (h *Hub) handleAdmin(c *Client, issuer string, cmd *adminCommand) {
	if !h.admins[issuer] {
		h.log.Warn().Str("identity", issuer).Msg("unauthorized admin command")
		c.send(Event{Kind: EventSystem, Message: rejectNotAuthorized().Notice})
		return
	}
	if cmd == nil {
		c.send(Event{Kind: EventSystem, Message: adminUsage})
		return
	}

	switch cmd.action {
	case "mute":
		duration := time.Duration(cmd.minutes) * time.Minute
		state := h.store.Get(cmd.target)
		seq := state.Mute(h.clk.Now().Add(duration))
		h.scheduleUnmute(cmd.target, seq, duration)

		h.audit.AdminAction(issuer, "mute", cmd.target, cmd.minutes)
		h.log.Info().
			Str("admin", issuer).
			Str("target", cmd.target).
			Int("minutes", cmd.minutes).
			Msg("admin mute")

		for _, target := range h.registry.FindByIdentity(cmd.target) {
			target.send(Event{Kind: EventMute, Reason: "muted by admin", DurationMinutes: cmd.minutes})
		}
		h.broadcast(Event{
			Kind:    EventSystem,
			Message: fmt.Sprintf("%s was muted for %d minutes", cmd.target, cmd.minutes),
		})

	case "unmute":
		h.store.Get(cmd.target).Unmute()

		h.audit.AdminAction(issuer, "unmute", cmd.target, 0)
		h.log.Info().Str("admin", issuer).Str("target", cmd.target).Msg("admin unmute")

		for _, target := range h.registry.FindByIdentity(cmd.target) {
			target.send(Event{Kind: EventUnmute, Reason: "unmuted by admin"})
		}
		h.broadcast(Event{
			Kind:    EventSystem,
			Message: fmt.Sprintf("%s was unmuted", cmd.target),
		})
	}
}
