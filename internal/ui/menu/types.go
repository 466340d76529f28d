package menu

// Action is a request a menu makes of the app.
type Action int

const (
	ActionNone Action = iota
	ActionQuitGame
)

// PointerState reports whether the primary pointer button is held.
type PointerState interface {
	LeftDown() bool
}

// FPS slider range. The top end of the track means uncapped.
const (
	fpsMin = 30
	fpsMax = 240
)

func fpsToSlider(limit int) float32 {
	if limit <= 0 {
		return 1
	}
	return min(float32(limit-fpsMin)/float32(fpsMax-fpsMin), 0.95)
}

func sliderToFPS(v float32) int {
	if v > 0.99 {
		return 0
	}
	return int(fpsMin + v*(fpsMax-fpsMin) + 0.5)
}
