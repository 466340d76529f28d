package screen

// NullScreen is a null object pattern implementation of Screen interface
type NullScreen struct{}

// Init implements Screen
func (NullScreen) Init() {}

// Render implements Screen
func (NullScreen) Render(s Surface, mouseX, mouseY int, delta float32) {}

// Close implements Screen
func (NullScreen) Close() {}

// IsActive implements Screen
func (NullScreen) IsActive() bool { return false }
