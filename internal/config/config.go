package config

import (
	"time"

	"github.com/vovakirdan/ircrelay-server/internal/audit"
	"github.com/vovakirdan/ircrelay-server/internal/core"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	Moderation Moderation `mapstructure:"moderation" yaml:"moderation"`
	Audit      Audit      `mapstructure:"audit" yaml:"audit"`
}

// Moderation is the policy surface of the pipeline. Every knob is settable;
// nothing is hardcoded in the core.
type Moderation struct {
	Cooldown         time.Duration `mapstructure:"cooldown" yaml:"cooldown"`
	AntifloodWindow  time.Duration `mapstructure:"antiflood_window" yaml:"antiflood_window"`
	AntifloodMute    time.Duration `mapstructure:"antiflood_mute" yaml:"antiflood_mute"`
	MaxMessageLength int           `mapstructure:"max_message_length" yaml:"max_message_length"`
	CapsPolicy       string        `mapstructure:"caps_policy" yaml:"caps_policy"`
	CapsThreshold    float64       `mapstructure:"caps_threshold" yaml:"caps_threshold"`
	CapsMinLetters   int           `mapstructure:"caps_min_letters" yaml:"caps_min_letters"`
	CapsWarnLimit    int           `mapstructure:"caps_warn_limit" yaml:"caps_warn_limit"`
	WarnMute         time.Duration `mapstructure:"warn_mute" yaml:"warn_mute"`
	Admins           []string      `mapstructure:"admins" yaml:"admins"`
	BannedPhrases    []string      `mapstructure:"banned_phrases" yaml:"banned_phrases"`
}

// Audit selects the append-only audit sink.
type Audit struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	policy := core.DefaultPolicy()
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		Moderation: Moderation{
			Cooldown:         policy.Cooldown,
			AntifloodWindow:  policy.AntifloodWindow,
			AntifloodMute:    policy.AntifloodMute,
			MaxMessageLength: policy.MaxMessageLength,
			CapsPolicy:       policy.CapsPolicy,
			CapsThreshold:    policy.CapsThreshold,
			CapsMinLetters:   policy.CapsMinLetters,
			CapsWarnLimit:    policy.CapsWarnLimit,
			WarnMute:         policy.WarnMute,
			Admins:           []string{},
			BannedPhrases:    []string{},
		},
		Audit: Audit{
			Backend: audit.BackendFile,
			Path:    "relay-audit.log",
		},
	}
}

// Policy converts the moderation section into the core policy struct.
func (c Config) Policy() core.Policy {
	return core.Policy{
		Cooldown:         c.Moderation.Cooldown,
		AntifloodWindow:  c.Moderation.AntifloodWindow,
		AntifloodMute:    c.Moderation.AntifloodMute,
		MaxMessageLength: c.Moderation.MaxMessageLength,
		CapsPolicy:       c.Moderation.CapsPolicy,
		CapsThreshold:    c.Moderation.CapsThreshold,
		CapsMinLetters:   c.Moderation.CapsMinLetters,
		CapsWarnLimit:    c.Moderation.CapsWarnLimit,
		WarnMute:         c.Moderation.WarnMute,
		Admins:           c.Moderation.Admins,
		BannedPhrases:    c.Moderation.BannedPhrases,
	}
}
