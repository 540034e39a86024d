// Package keypad tracks the state of the 16-key COSMAC keypad.
package keypad

import (
	"sync"
	"time"
)

// NumKeys is the number of keys on the pad, coded 0x0-0xF.
const NumKeys = 16

// State holds which keys are currently down. Frontends write it from their
// input loop; the dispatcher polls it during instruction execution, so access
// is guarded.
//
// Hosts without key-release events (terminals) set an expiry: a press then
// reads as down for that duration and releases itself.
type State struct {
	mu      sync.Mutex
	down    [NumKeys]bool
	expiry  [NumKeys]time.Time
	holdFor time.Duration
}

// New returns an empty keypad. holdFor of zero means presses last until
// Release is called.
func New(holdFor time.Duration) *State {
	return &State{holdFor: holdFor}
}

// Press marks key down. Out-of-range codes are ignored.
func (s *State) Press(key byte) {
	if key >= NumKeys {
		return
	}
	s.mu.Lock()
	s.down[key] = true
	if s.holdFor > 0 {
		s.expiry[key] = time.Now().Add(s.holdFor)
	}
	s.mu.Unlock()
}

// Release marks key up.
func (s *State) Release(key byte) {
	if key >= NumKeys {
		return
	}
	s.mu.Lock()
	s.down[key] = false
	s.mu.Unlock()
}

// IsKeyDown reports whether key is currently pressed.
func (s *State) IsKeyDown(key byte) bool {
	if key >= NumKeys {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expire(key)
	return s.down[key]
}

// PressedKey returns the lowest-coded key currently down, if any.
func (s *State) PressedKey() (byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := byte(0); k < NumKeys; k++ {
		s.expire(k)
		if s.down[k] {
			return k, true
		}
	}
	return 0, false
}

// expire releases a timed press past its deadline. Caller holds the lock.
func (s *State) expire(key byte) {
	if s.holdFor > 0 && s.down[key] && time.Now().After(s.expiry[key]) {
		s.down[key] = false
	}
}
