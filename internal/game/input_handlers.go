package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers installs input and window callbacks for app.
func SetupInputHandlers(app *App) {
	window := app.window
	app.inputManager.Attach(window)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		// layout uses window coordinates, not framebuffer pixels
		winW, winH := w.GetSize()
		app.Resize(winW, winH)
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		app.RefreshRender()
	})

	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			// a release outside the window never reaches us
			app.inputManager.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Release)
		}
	})
}
