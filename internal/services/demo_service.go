package services

import (
	"time"

	mem "spotcheck/pkg/memcache"
)

// Demo spots cluster around this coordinate so the whole flow can be walked
// through without travelling (Ulsan Grand Park area).
var demoCenter = struct{ Lat, Lng float64 }{35.5384, 129.3114}

const demoStateTTL = 12 * time.Hour

// DemoManager holds the test/simulation toggles for one browsing session.
// It is constructed and injected rather than kept as process-global state so
// the bypass behavior stays explicit and testable.
type DemoManager struct {
	sessionID string
	store     mem.DemoStateStore
}

func NewDemoManager(sessionID string, store mem.DemoStateStore) *DemoManager {
	return &DemoManager{
		sessionID: sessionID,
		store:     store,
	}
}

func (m *DemoManager) state() mem.DemoState {
	state, _ := m.store.Get(m.sessionID)
	return state
}

func (m *DemoManager) save(state mem.DemoState) {
	m.store.Set(m.sessionID, state, demoStateTTL)
}

func (m *DemoManager) IsTestMode() bool {
	return m.state().TestModeEnabled
}

func (m *DemoManager) EnableTestMode() {
	state := m.state()
	state.TestModeEnabled = true
	m.save(state)
}

func (m *DemoManager) DisableTestMode() {
	state := m.state()
	state.TestModeEnabled = false
	m.save(state)
}

// ToggleTestMode flips the mode and returns the new value.
func (m *DemoManager) ToggleTestMode() bool {
	state := m.state()
	state.TestModeEnabled = !state.TestModeEnabled
	m.save(state)
	return state.TestModeEnabled
}

func (m *DemoManager) IsBypassLocationCheck() bool {
	return m.state().BypassLocationCheck
}

func (m *DemoManager) SetBypassLocationCheck(bypass bool) {
	state := m.state()
	state.BypassLocationCheck = bypass
	m.save(state)
}

// Reset clears both toggles. Called on sign-in and sign-up so demo
// artifacts never leak into an authenticated session.
func (m *DemoManager) Reset() {
	m.store.Clear(m.sessionID)
}
