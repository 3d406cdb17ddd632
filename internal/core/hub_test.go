package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestPrefixRoundTrip(t *testing.T) {
	hub := newTestHub(testPolicy(), clock.NewMock())

	c := NewClient("c1")
	other := NewClient("c2")
	hub.Connect(c)
	hub.Connect(other)

	hub.GetPrefix(c, "alice")
	ev := mustEvent(t, c.Events, EventPrefixInfo)
	if ev.Prefix != "" {
		t.Fatalf("fresh identity has prefix %q", ev.Prefix)
	}

	hub.SetPrefix(c, "alice", "[VIP] ")
	ev = mustEvent(t, c.Events, EventPrefixUpdated)
	if ev.Prefix != "[VIP] " {
		t.Fatalf("prefix_updated carries %q", ev.Prefix)
	}
	// Prefix replies go only to the issuer.
	mustNoEvent(t, other.Events)

	// A text from the same identity carries the prefix on the broadcast.
	hub.Text(c, "alice", "", "hello")
	text := mustEvent(t, other.Events, EventText)
	if text.Prefix != "[VIP] " {
		t.Fatalf("broadcast prefix %q, want \"[VIP] \"", text.Prefix)
	}
}

func TestIdentityPrefersAuthorOverClientID(t *testing.T) {
	hub := newTestHub(testPolicy(), clock.NewMock())
	c := NewClient("c1")
	hub.Connect(c)

	hub.Text(c, "legacy-id", "alice", "hi")
	ev := mustEvent(t, c.Events, EventText)
	if ev.Author != "alice" {
		t.Fatalf("author %q, want alice", ev.Author)
	}

	// Without an author the frame's client id speaks.
	hub.Text(c, "legacy-id", "", "hi again")
	ev = mustEvent(t, c.Events, EventText)
	if ev.Author != "legacy-id" {
		t.Fatalf("author %q, want legacy-id", ev.Author)
	}

	// With neither, the binding from the previous frame holds.
	hub.Text(c, "", "", "still me")
	ev = mustEvent(t, c.Events, EventText)
	if ev.Author != "legacy-id" {
		t.Fatalf("author %q, want legacy-id", ev.Author)
	}
}

func TestDisconnectedClientNotDelivered(t *testing.T) {
	hub := newTestHub(testPolicy(), clock.NewMock())

	sender := NewClient("c1")
	stay := NewClient("c2")
	gone := NewClient("c3")
	hub.Connect(sender)
	hub.Connect(stay)
	hub.Connect(gone)

	hub.Disconnect(gone)

	hub.Text(sender, "", "alice", "who is left")
	mustEvent(t, stay.Events, EventText)
	mustNoEvent(t, gone.Events)
}

func TestSlowConsumerDoesNotBlockBroadcast(t *testing.T) {
	hub := newTestHub(testPolicy(), clock.NewMock())

	sender := NewClient("c1")
	slow := NewClient("c2")
	healthy := NewClient("c3")
	hub.Connect(sender)
	hub.Connect(slow)
	hub.Connect(healthy)

	// Fill the slow consumer's buffer so further sends would block.
	for i := 0; i < cap(slow.Events); i++ {
		slow.Events <- Event{Kind: EventSystem, Message: "fill"}
	}

	hub.Text(sender, "", "alice", "get through")
	mustEvent(t, healthy.Events, EventText)
}

func TestBroadcastDuringConnectionChurn(t *testing.T) {
	hub := newTestHub(testPolicy(), clock.New())

	sender := NewClient("sender")
	hub.Connect(sender)
	go func() {
		for range sender.Events {
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			c := NewClient(fmt.Sprintf("churn-%d", i))
			hub.Connect(c)
			hub.Disconnect(c)
		}
	}()

	for i := 0; i < 200; i++ {
		hub.Text(sender, "", "alice", "churn payload")
	}
	<-done
}

func TestStats(t *testing.T) {
	clk := clock.NewMock()
	hub := newTestHub(testPolicy(), clk)

	a := NewClient("c1")
	b := NewClient("c2")
	hub.Connect(a)
	hub.Connect(b)

	hub.Text(a, "", "alice", "hi")
	hub.store.Get("bob").Mute(clk.Now().Add(time.Minute))

	s := hub.Stats()
	if s.OpenConnections != 2 {
		t.Fatalf("open connections %d, want 2", s.OpenConnections)
	}
	if s.KnownIdentities != 2 {
		t.Fatalf("known identities %d, want 2", s.KnownIdentities)
	}
	if s.Muted != 1 {
		t.Fatalf("muted %d, want 1", s.Muted)
	}
}
