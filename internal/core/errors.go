package core

import (
	"fmt"
	"time"
)

// Rejection codes for moderation decisions.
const (
	CodeNotAuthorized = "not_authorized"
	CodeMuted         = "muted"
	CodeRateLimited   = "rate_limited"
	CodeTooLong       = "too_long"
	CodeFiltered      = "filtered"
	CodeCapsViolation = "caps_violation"
)

// Rejection describes why a single message was not broadcast. It is local to
// that message: the connection stays open and no state is corrupted.
type Rejection struct {
	Code   string
	Notice string // user-facing system notice text
}

func (r *Rejection) Error() string {
	return r.Notice
}

func rejectNotAuthorized() *Rejection {
	return &Rejection{Code: CodeNotAuthorized, Notice: "you are not allowed to use admin commands"}
}

func rejectMuted(remaining time.Duration) *Rejection {
	secs := int(remaining.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return &Rejection{
		Code:   CodeMuted,
		Notice: fmt.Sprintf("you are muted for another %ds", secs),
	}
}

func rejectRateLimited(remaining time.Duration) *Rejection {
	return &Rejection{
		Code:   CodeRateLimited,
		Notice: fmt.Sprintf("slow down, wait %dms", remaining.Milliseconds()),
	}
}

func rejectTooLong(max int) *Rejection {
	return &Rejection{
		Code:   CodeTooLong,
		Notice: fmt.Sprintf("message too long, limit is %d characters", max),
	}
}

func rejectFiltered() *Rejection {
	return &Rejection{Code: CodeFiltered, Notice: "message blocked by the phrase filter"}
}

func rejectCapsWarning(warnings, limit int) *Rejection {
	return &Rejection{
		Code:   CodeCapsViolation,
		Notice: fmt.Sprintf("please turn off caps lock (%d/%d)", warnings, limit),
	}
}
