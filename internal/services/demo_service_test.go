package services

import (
	"testing"

	mem "spotcheck/pkg/memcache"
)

func TestDemoManager_Toggles(t *testing.T) {
	store := mem.NewDemoStates()
	manager := NewDemoManager("session-1", store)

	if manager.IsTestMode() {
		t.Error("test mode must default to off")
	}
	if manager.IsBypassLocationCheck() {
		t.Error("bypass must default to off")
	}

	manager.EnableTestMode()
	if !manager.IsTestMode() {
		t.Error("EnableTestMode did not stick")
	}

	if got := manager.ToggleTestMode(); got {
		t.Error("ToggleTestMode from on should return false")
	}
	if got := manager.ToggleTestMode(); !got {
		t.Error("ToggleTestMode from off should return true")
	}

	manager.SetBypassLocationCheck(true)
	if !manager.IsBypassLocationCheck() {
		t.Error("SetBypassLocationCheck(true) did not stick")
	}

	manager.DisableTestMode()
	if manager.IsTestMode() {
		t.Error("DisableTestMode did not stick")
	}
	// Bypass is independent of the mode toggle.
	if !manager.IsBypassLocationCheck() {
		t.Error("bypass must survive DisableTestMode")
	}
}

func TestDemoManager_ResetClearsBothToggles(t *testing.T) {
	store := mem.NewDemoStates()
	manager := NewDemoManager("session-1", store)

	manager.EnableTestMode()
	manager.SetBypassLocationCheck(true)

	manager.Reset()

	if manager.IsTestMode() {
		t.Error("Reset must clear test mode")
	}
	if manager.IsBypassLocationCheck() {
		t.Error("Reset must clear bypass")
	}
}

func TestDemoManager_SessionsAreIsolated(t *testing.T) {
	store := mem.NewDemoStates()
	one := NewDemoManager("session-1", store)
	two := NewDemoManager("session-2", store)

	one.EnableTestMode()

	if two.IsTestMode() {
		t.Error("test mode leaked across sessions")
	}
}

func TestDemoManager_StatePersistsAcrossInstances(t *testing.T) {
	store := mem.NewDemoStates()

	NewDemoManager("session-1", store).EnableTestMode()

	// A new manager for the same session (a page reload) sees the state.
	if !NewDemoManager("session-1", store).IsTestMode() {
		t.Error("test mode must persist across manager instances within a session")
	}
}
