package game

import (
	"context"
	"log"
	"time"

	"mini-splash/internal/config"
	"mini-splash/internal/event"
	"mini-splash/internal/graphics"
	"mini-splash/internal/graphics/renderables/ui"
	"mini-splash/internal/input"
	"mini-splash/internal/profiling"
	"mini-splash/internal/screen"
	"mini-splash/internal/ui/debug"
	"mini-splash/internal/ui/menu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const slowFrame = 16 * time.Millisecond

// App owns the window, the shared render services and the active screen.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager

	surface  *ui.UI
	textures *graphics.TextureManager
	bus      *event.Bus
	screens  *screen.Manager
	title    *menu.TitleScreen
	stats    *debug.FrameStats

	// loading phase, nil once finished
	session *Session

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

// NewApp builds the render services and starts the loading session. The GL
// context of window must be current.
func NewApp(ctx context.Context, window *glfw.Window, im *input.InputManager, cfg config.Config) (*App, error) {
	atlas, err := graphics.BakeDefaultFontAtlas(48)
	if err != nil {
		return nil, err
	}

	textures := graphics.NewTextureManager()
	textures.Attach(graphics.GLUploader{Linear: true})

	width, height := window.GetSize()
	surface := ui.NewUI(textures, atlas, width, height)
	if err := surface.Init(); err != nil {
		return nil, err
	}

	a := &App{
		window:       window,
		inputManager: im,
		surface:      surface,
		textures:     textures,
		bus:          event.NewBus(),
		title:        menu.NewTitleScreen(cfg.Window.Title, im),
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
	}
	a.screens = screen.NewManager(func() screen.Screen { return a.title })
	a.stats = debug.NewFrameStats(a.bus)
	profiling.SetEnabled(cfg.Debug.Profiling)

	a.session = NewSession(ctx, cfg, SessionDeps{
		Textures: textures,
		Screens:  a.screens,
		Pointer:  im,
		Bus:      a.bus,
	})
	a.screens.SetScreen(a.session.Overlay)

	return a, nil
}

// Run drives frames until the window is asked to close.
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()
	a.handleKeys()

	stop := profiling.Track("textures.Tick")
	a.textures.Tick()
	stop()

	a.render(float32(dt))

	if a.session != nil && a.session.Finished() {
		a.session.Cleanup()
		a.session = nil
	}
	if a.title.TakeAction() == menu.ActionQuitGame {
		a.window.SetShouldClose(true)
	}

	a.window.SwapBuffers()

	if d := time.Since(startTick); d > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait(a.window.GetAttrib(glfw.Iconified) == glfw.True)
}

func (a *App) render(dt float32) {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	mx, my := a.inputManager.MousePos()
	stop := profiling.Track("screen.Render")
	a.renderScreens(int(mx), int(my), dt)
	stop()
}

// renderScreens draws the active screen and publishes the frame's render event.
// The splash publishes its own, including on the frame it dismisses itself.
func (a *App) renderScreens(mx, my int, dt float32) {
	splash := a.session != nil && a.screens.Current() == screen.Screen(a.session.Overlay)
	a.screens.Render(a.surface, mx, my, dt)
	if !splash {
		a.bus.Publish(event.ScreenRenderEvent{Surface: a.surface, Delta: dt})
	}
}

func (a *App) handleKeys() {
	im := a.inputManager
	if im.JustPressed(input.ActionToggleAppearance) {
		hidden := config.ToggleHidingAppearance()
		log.Printf("custom branding hidden: %v", hidden)
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		profiling.Toggle()
	}
	if im.JustPressed(input.ActionQuit) && a.screens.Current() == screen.Screen(a.title) {
		a.window.SetShouldClose(true)
	}
}

// Resize updates the surface after the window size changed.
func (a *App) Resize(width, height int) {
	a.surface.SetViewport(width, height)
}

// RefreshRender repaints during a live resize.
func (a *App) RefreshRender() {
	a.render(0)
	a.window.SwapBuffers()
}

// Close stops loading and releases GL resources.
func (a *App) Close() {
	if a.session != nil {
		a.session.Cleanup()
		a.session = nil
	}
	a.stats.Detach()
	a.screens.SetScreen(screen.NullScreen{})
	a.textures.Dispose()
	a.surface.Dispose()
}
