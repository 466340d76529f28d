package screen

import (
	"mini-splash/internal/graphics"
	"mini-splash/internal/ui/widget"
)

// Surface is the per-frame draw target handed to screens.
type Surface interface {
	widget.Drawer
	// Size returns the scaled surface size in pixels.
	Size() (width, height int)
	// FillARGB fills a rectangle with a packed 0xAARRGGBB color.
	FillARGB(x, y, w, h int, argb uint32)
	// DrawTexture draws a registered texture stretched to the rectangle.
	// It returns graphics.ErrTextureMissing if id has not been uploaded.
	DrawTexture(id graphics.Identifier, x, y, w, h int) error
}

// Screen represents a GUI screen
type Screen interface {
	// Init is called once when the screen becomes active
	Init()
	// Render draws the screen and runs its per-frame logic
	Render(s Surface, mouseX, mouseY int, delta float32)
	// Close cleans up when the screen is replaced
	Close()
	// IsActive returns whether this screen should be rendered
	IsActive() bool
}
