package menu

import (
	"fmt"

	"mini-splash/internal/config"
	"mini-splash/internal/screen"
	"mini-splash/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
)

// TitleScreen is shown once the splash is dismissed. It exposes the
// appearance flag and the frame limit and offers a way out.
type TitleScreen struct {
	title   string
	pointer PointerState

	appearance *widget.Toggle
	fpsLimit   *widget.Slider
	quit       *widget.Button

	wasDown bool
	pending Action
	active  bool
}

// NewTitleScreen creates a title screen reading pointer state from pointer.
func NewTitleScreen(title string, pointer PointerState) *TitleScreen {
	ts := &TitleScreen{title: title, pointer: pointer}

	ts.appearance = widget.NewToggle("Custom Branding", 0, 0, 200, 20, !config.IsHidingAppearance(), func(isOn bool) {
		config.SetHidingAppearance(!isOn)
	})
	ts.fpsLimit = widget.NewSlider(0, 0, 200, 20, fpsToSlider(config.GetFPSLimit()), 211, "", func(val float32) {
		config.SetFPSLimit(sliderToFPS(val))
	})
	ts.quit = widget.NewButton("Quit", 0, 0, 200, 40, func() {
		ts.pending = ActionQuitGame
	})
	ts.quit.NormalColor = mgl32.Vec3{0.2, 0.2, 0.2}
	ts.quit.HoverColor = mgl32.Vec3{0.3, 0.3, 0.3}

	return ts
}

// Init implements screen.Screen
func (t *TitleScreen) Init() {
	t.active = true
	t.pending = ActionNone
	t.wasDown = t.pointer.LeftDown()
}

// Close implements screen.Screen
func (t *TitleScreen) Close() { t.active = false }

// IsActive implements screen.Screen
func (t *TitleScreen) IsActive() bool { return t.active }

// TakeAction returns the pending action and clears it.
func (t *TitleScreen) TakeAction() Action {
	a := t.pending
	t.pending = ActionNone
	return a
}

// Render implements screen.Screen
func (t *TitleScreen) Render(s screen.Surface, mouseX, mouseY int, delta float32) {
	down := t.pointer.LeftDown()
	p := widget.Pointer{X: float32(mouseX), Y: float32(mouseY), Down: down, JustPressed: down && !t.wasDown}
	t.wasDown = down

	w, h := s.Size()
	fw, fh := float32(w), float32(h)
	scale := min(fw/900, fh/600)
	centerX := fw / 2

	s.DrawFilledRect(0, 0, fw, fh, mgl32.Vec3{0.1, 0.1, 0.1}, 1)

	tw, _ := s.MeasureText(t.title, scale)
	s.DrawText(t.title, centerX-tw/2, fh*0.25, scale, mgl32.Vec3{1, 1, 1})

	y := fh*0.25 + 60*scale
	const spacing = 70

	// stays in step with F8 and config reloads
	t.appearance.Sync(!config.IsHidingAppearance())
	t.appearance.SetPosition(centerX-100, y)
	t.appearance.Render(s, p)
	t.appearance.HandleInput(p)
	y += spacing * scale

	label := "FPS Limit"
	lw, _ := s.MeasureText(label, 0.4)
	s.DrawText(label, centerX-lw/2, y-8, 0.4, mgl32.Vec3{1, 1, 1})
	t.fpsLimit.SetPosition(centerX-100, y)
	t.fpsLimit.Render(s, p)
	fpsText := "Uncapped"
	if limit := sliderToFPS(t.fpsLimit.Value); limit > 0 {
		fpsText = fmt.Sprintf("%d FPS", limit)
	}
	s.DrawText(fpsText, centerX+110, y+15, 0.35, mgl32.Vec3{0.8, 0.8, 0.8})
	y += spacing * scale

	t.quit.SetPosition(centerX-100, y)
	t.quit.Render(s, p)
	t.quit.HandleInput(p)

	hint := "F8 toggles branding, F3 shows frame stats"
	hw, _ := s.MeasureText(hint, 0.3)
	s.DrawText(hint, centerX-hw/2, fh-20, 0.3, mgl32.Vec3{0.6, 0.6, 0.6})
}
