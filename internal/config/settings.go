package config

import "sync"

// Settings holds runtime-mutable client settings shared across the process.
type Settings struct {
	mu             sync.RWMutex
	hideAppearance bool
	fpsLimit       int // frames per second, 0 = unlimited
}

var globalSettings = &Settings{
	fpsLimit: 120,
}

// IsHidingAppearance reports whether custom branding is currently suppressed.
func IsHidingAppearance() bool {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()
	return globalSettings.hideAppearance
}

// SetHidingAppearance sets the hide appearance flag
func SetHidingAppearance(hidden bool) {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()
	globalSettings.hideAppearance = hidden
}

// ToggleHidingAppearance flips the flag and returns the new value
func ToggleHidingAppearance() bool {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()
	globalSettings.hideAppearance = !globalSettings.hideAppearance
	return globalSettings.hideAppearance
}

// GetFPSLimit returns the frame cap, 0 meaning unlimited
func GetFPSLimit() int {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()
	return globalSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 0 && limit < 30 {
		limit = 30
	}
	if limit > 1000 {
		limit = 1000
	}

	globalSettings.fpsLimit = limit
}
