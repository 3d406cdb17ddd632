package core

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ircrelay-server/internal/audit"
)

// testPolicy returns a policy with rate checks disabled so tests can fire
// messages back to back; individual tests re-enable what they exercise.
func testPolicy() Policy {
	p := DefaultPolicy()
	p.Cooldown = 0
	p.AntifloodWindow = 0
	return p
}

func newTestHub(p Policy, clk clock.Clock) *Hub {
	logger := zerolog.Nop()
	return NewHub(p, clk, audit.Nop{}, &logger)
}

func mustEvent(t *testing.T, ch <-chan Event, kind EventKind) Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return Event{}
}

func mustNoEvent(t *testing.T, ch <-chan Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}
