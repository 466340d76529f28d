package game

import (
	"testing"

	"mini-splash/internal/event"
	"mini-splash/internal/graphics"
	"mini-splash/internal/graphics/renderables/ui"
	"mini-splash/internal/overlay"
	"mini-splash/internal/screen"
)

type fullProgress struct{}

func (fullProgress) Progress() float32 { return 1 }

func TestRenderEventOncePerFrameWhenSplashDismisses(t *testing.T) {
	a := &App{
		surface: ui.NewUI(nil, nil, 800, 600),
		bus:     event.NewBus(),
		screens: screen.NewManager(nil),
	}
	a.session = &Session{Overlay: overlay.New(overlay.Options{
		Progress: fullProgress{},
		Assets:   graphics.NewTextureManager(),
		Screens:  a.screens,
		Pointer:  idlePointer{},
		Bus:      a.bus,
	})}
	a.screens.SetScreen(a.session.Overlay)

	var events int
	a.bus.Subscribe(func(e event.Event) {
		if _, ok := e.(event.ScreenRenderEvent); ok {
			events++
		}
	})

	a.renderScreens(0, 0, 0.016)
	if a.screens.Current() == screen.Screen(a.session.Overlay) {
		t.Fatal("splash still current after full progress")
	}
	if events != 1 {
		t.Fatalf("events on dismiss frame = %d, want 1", events)
	}

	a.renderScreens(0, 0, 0.016)
	if events != 2 {
		t.Errorf("events after next frame = %d, want 2", events)
	}
}
