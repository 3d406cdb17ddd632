package core

import "time"

// Caps policies. The corpus of legacy relays disagrees on what to do with a
// shouted message, so both behaviors ship and the operator picks one.
const (
	// CapsPolicyWarn rejects the message, counts a warning and mutes the
	// identity once the warning limit is reached.
	CapsPolicyWarn = "warn"
	// CapsPolicyNormalize lowercases the message and lets it through.
	CapsPolicyNormalize = "normalize"
)

// Policy is the moderation rule set the pipeline enforces. All knobs come
// from configuration; nothing here is hardcoded.
type Policy struct {
	// Cooldown is the minimum spacing between two accepted messages from one
	// identity. Zero disables the check.
	Cooldown time.Duration
	// AntifloodWindow is the attempt spacing below which a sender is muted
	// outright instead of softly rejected. Zero disables the escalation.
	AntifloodWindow time.Duration
	// AntifloodMute is how long the antiflood escalation mutes for.
	AntifloodMute time.Duration
	// MaxMessageLength rejects longer messages, counted in runes. Zero
	// disables the check.
	MaxMessageLength int
	// CapsPolicy is CapsPolicyWarn or CapsPolicyNormalize.
	CapsPolicy string
	// CapsThreshold is the caps ratio above which a message is violating.
	CapsThreshold float64
	// CapsMinLetters is the letter count below which the ratio is zero.
	CapsMinLetters int
	// CapsWarnLimit is how many warnings precede the warn-mute.
	CapsWarnLimit int
	// WarnMute is the duration of the mute imposed at the warning limit.
	WarnMute time.Duration
	// Admins is the identity allow-list for privileged commands.
	Admins []string
	// BannedPhrases is the denylist matched by normalized containment.
	BannedPhrases []string
}

// DefaultPolicy returns the moderation defaults documented in the config
// reference.
func DefaultPolicy() Policy {
	return Policy{
		Cooldown:         2 * time.Second,
		AntifloodWindow:  800 * time.Millisecond,
		AntifloodMute:    2 * time.Minute,
		MaxMessageLength: 512,
		CapsPolicy:       CapsPolicyWarn,
		CapsThreshold:    0.7,
		CapsMinLetters:   6,
		CapsWarnLimit:    3,
		WarnMute:         10 * time.Minute,
	}
}
