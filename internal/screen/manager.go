package screen

import "log"

// Manager owns the active screen. It must only be used from the render thread.
type Manager struct {
	current  Screen
	fallback func() Screen
}

// NewManager creates a manager showing nothing. fallback builds the screen that
// SetScreen(nil) switches to; it may be nil, in which case NullScreen is used.
func NewManager(fallback func() Screen) *Manager {
	return &Manager{current: NullScreen{}, fallback: fallback}
}

// Current returns the active screen, never nil.
func (m *Manager) Current() Screen {
	return m.current
}

// SetScreen closes the active screen and activates s. A nil s means "no screen":
// control returns to the fallback screen.
func (m *Manager) SetScreen(s Screen) {
	if s == nil {
		s = NullScreen{}
		if m.fallback != nil {
			if fb := m.fallback(); fb != nil {
				s = fb
			}
		}
	}
	if s == m.current {
		return
	}

	prev := m.current
	m.current = s
	prev.Close()
	s.Init()
	log.Printf("screen: %T -> %T", prev, s)
}

// Render draws the active screen if it is active.
func (m *Manager) Render(surface Surface, mouseX, mouseY int, delta float32) {
	if !m.current.IsActive() {
		return
	}
	m.current.Render(surface, mouseX, mouseY, delta)
}
