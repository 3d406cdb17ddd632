package core

import (
	"sync"
	"time"
)

// ClientState is the moderation state of one identity. Entries are created
// lazily on first reference and live for the process lifetime; a mute keyed
// here survives the identity reconnecting.
//
// All fields are guarded by mu. The pipeline holds mu across a whole
// decision for one message, so two messages from the same identity never
// race on the cooldown/caps/mute fields; different identities proceed fully
// concurrently.
type ClientState struct {
	mu sync.Mutex

	prefix       string
	lastAccepted time.Time
	lastAttempt  time.Time
	capsWarnings int
	muteUntil    time.Time
	// muteSeq increments on every newly imposed mute so a stale auto-unmute
	// timer can tell it was superseded.
	muteSeq uint64
}

// Prefix returns the identity's decorative tag.
func (s *ClientState) Prefix() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefix
}

// SetPrefix replaces the identity's decorative tag.
func (s *ClientState) SetPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefix = prefix
}

// Muted reports whether the identity is muted at the given instant.
func (s *ClientState) Muted(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muteUntil.After(now)
}

// setMuteLocked imposes a new mute and returns its sequence number. Entering
// a mute always resets the caps counter. Caller holds mu.
func (s *ClientState) setMuteLocked(until time.Time) uint64 {
	s.muteSeq++
	s.muteUntil = until
	s.capsWarnings = 0
	return s.muteSeq
}

// clearMuteLocked lifts the mute and resets the caps counter. Caller holds mu.
func (s *ClientState) clearMuteLocked() {
	s.muteUntil = time.Time{}
	s.capsWarnings = 0
}

// Mute imposes a mute until the given instant and returns its sequence
// number for the auto-unmute liveness check.
func (s *ClientState) Mute(until time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setMuteLocked(until)
}

// Unmute lifts any mute. Returns false if the identity was not muted.
func (s *ClientState) Unmute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muteUntil.IsZero() {
		return false
	}
	s.clearMuteLocked()
	return true
}

// unmuteIfCurrent lifts the mute only if seq still names the active mute.
// A later mute or an earlier manual unmute makes the stale timer a no-op.
func (s *ClientState) unmuteIfCurrent(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muteSeq != seq || s.muteUntil.IsZero() {
		return false
	}
	s.clearMuteLocked()
	return true
}

// CapsWarnings returns the consecutive caps-violation count.
func (s *ClientState) CapsWarnings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capsWarnings
}

// Store holds ClientState entries keyed by identity. Creation is lazy and
// entries are never evicted.
type Store struct {
	mu     sync.RWMutex
	states map[string]*ClientState
}

// NewStore constructs an empty state store.
func NewStore() *Store {
	return &Store{states: make(map[string]*ClientState)}
}

// Get returns the state for identity, creating it on first reference.
func (st *Store) Get(identity string) *ClientState {
	st.mu.RLock()
	s, ok := st.states[identity]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.states[identity]; ok {
		return s
	}
	s = &ClientState{}
	st.states[identity] = s
	return s
}

// Len returns the number of known identities.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.states)
}

// MutedCount returns how many identities are muted at the given instant.
func (st *Store) MutedCount(now time.Time) int {
	st.mu.RLock()
	states := make([]*ClientState, 0, len(st.states))
	for _, s := range st.states {
		states = append(states, s)
	}
	st.mu.RUnlock()

	n := 0
	for _, s := range states {
		if s.Muted(now) {
			n++
		}
	}
	return n
}
