package event

import "mini-splash/internal/screen"

// ScreenRenderEvent is published once per overlay frame, whatever the appearance mode.
type ScreenRenderEvent struct {
	Surface screen.Surface
	Delta   float32
}
