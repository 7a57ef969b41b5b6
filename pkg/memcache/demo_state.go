// pkg/memcache/demo_state.go
package mem

import (
	"sync"
	"time"
)

type DemoState struct {
	TestModeEnabled     bool
	BypassLocationCheck bool
}

// DemoStateStore is the session-scoped persistence port for demo mode.
// Entries expire with the browsing session so a restart comes up clean.
type DemoStateStore interface {
	Get(sessionID string) (DemoState, bool)
	Set(sessionID string, state DemoState, ttl time.Duration)

	// Clear drops the entry; called on sign-in and sign-out so demo
	// artifacts never leak into authenticated usage.
	Clear(sessionID string)
}

type entry struct {
	state     DemoState
	expiresAt time.Time
}

type DemoStates struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewDemoStates() *DemoStates {
	return &DemoStates{
		data: make(map[string]entry),
	}
}

func (s *DemoStates) Get(sessionID string) (DemoState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		return DemoState{}, false
	}
	return e.state, true
}

func (s *DemoStates) Set(sessionID string, state DemoState, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = entry{
		state:     state,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *DemoStates) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
}
