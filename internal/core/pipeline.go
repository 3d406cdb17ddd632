package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

// muteNotice records that a pipeline decision imposed a mute, so the hub can
// schedule the auto-unmute and notify the sender after the state lock is
// released.
type muteNotice struct {
	seq      uint64
	reason   string
	minutes  int
	duration time.Duration
}

// verdict is the outcome of running one text message through the ordered
// checks.
type verdict struct {
	message  string // possibly normalized body, valid only when rej is nil
	prefix   string
	rej      *Rejection
	mute     *muteNotice // non-nil when this very message imposed a mute
	filtered bool        // phrase filter hit, for the audit log
}

// moderate runs the ordered moderation checks for one text message from
// identity. The whole decision happens under the identity's state lock, so
// same-identity messages serialize while different identities proceed
// concurrently. Admin command detection happens before this is called.
func (h *Hub) moderate(state *ClientState, message string) verdict {
	now := h.clk.Now()

	state.mu.Lock()
	defer state.mu.Unlock()

	// Mute check. A mute that already elapsed is cleared lazily here even
	// though the scheduler normally beats us to it.
	if state.muteUntil.After(now) {
		return verdict{rej: rejectMuted(state.muteUntil.Sub(now))}
	}
	if !state.muteUntil.IsZero() {
		state.clearMuteLocked()
	}

	// Antiflood escalation fires before the soft cooldown: it is the
	// stricter of the two rate checks and reads attempt spacing, so spamming
	// rejected frames still trips it.
	prevAttempt := state.lastAttempt
	state.lastAttempt = now
	if h.policy.AntifloodWindow > 0 && !prevAttempt.IsZero() &&
		now.Sub(prevAttempt) < h.policy.AntifloodWindow {
		seq := state.setMuteLocked(now.Add(h.policy.AntifloodMute))
		return verdict{
			rej: &Rejection{Code: CodeRateLimited},
			mute: &muteNotice{
				seq:      seq,
				reason:   "flooding",
				minutes:  int(h.policy.AntifloodMute / time.Minute),
				duration: h.policy.AntifloodMute,
			},
		}
	}

	if h.policy.Cooldown > 0 && !state.lastAccepted.IsZero() {
		if elapsed := now.Sub(state.lastAccepted); elapsed < h.policy.Cooldown {
			return verdict{rej: rejectRateLimited(h.policy.Cooldown - elapsed)}
		}
	}

	if h.policy.MaxMessageLength > 0 && utf8.RuneCountInString(message) > h.policy.MaxMessageLength {
		return verdict{rej: rejectTooLong(h.policy.MaxMessageLength)}
	}

	if h.filter.Contains(message) {
		return verdict{rej: rejectFiltered(), filtered: true}
	}

	if CapsRatio(message, h.policy.CapsMinLetters) > h.policy.CapsThreshold {
		switch h.policy.CapsPolicy {
		case CapsPolicyNormalize:
			message = strings.ToLower(message)
		default: // CapsPolicyWarn
			state.capsWarnings++
			if state.capsWarnings >= h.policy.CapsWarnLimit {
				seq := state.setMuteLocked(now.Add(h.policy.WarnMute))
				return verdict{
					rej: &Rejection{Code: CodeCapsViolation},
					mute: &muteNotice{
						seq:      seq,
						reason:   "too many caps warnings",
						minutes:  int(h.policy.WarnMute / time.Minute),
						duration: h.policy.WarnMute,
					},
				}
			}
			return verdict{rej: rejectCapsWarning(state.capsWarnings, h.policy.CapsWarnLimit)}
		}
	} else {
		// Clean message: the caps counter tracks consecutive violations.
		state.capsWarnings = 0
	}

	state.lastAccepted = now
	return verdict{message: message, prefix: state.prefix}
}
