package widget

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Toggle struct {
	BaseComponent
	Label     string
	IsOn      bool
	OnToggle  func(isOn bool)
	IsHovered bool
}

func NewToggle(label string, x, y, w, h float32, initial bool, onToggle func(isOn bool)) *Toggle {
	return &Toggle{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Label:         label,
		IsOn:          initial,
		OnToggle:      onToggle,
	}
}

// Sync updates the displayed state without firing OnToggle.
func (t *Toggle) Sync(isOn bool) { t.IsOn = isOn }

func (t *Toggle) Render(d Drawer, p Pointer) {
	t.IsHovered = t.Contains(p.X, p.Y)

	bgColor := mgl32.Vec3{0.5, 0.2, 0.2} // Red when disabled
	if t.IsOn {
		bgColor = mgl32.Vec3{0.2, 0.5, 0.2} // Green when enabled
	}
	if t.IsHovered {
		bgColor = bgColor.Mul(1.2)
	}

	d.DrawFilledRect(t.X, t.Y, t.W, t.H, bgColor, 0.85)

	if t.Label == "" {
		return
	}
	status := "Off"
	if t.IsOn {
		status = "On"
	}
	text := t.Label + ": " + status
	scale := t.H * 0.5 / 20
	tw, _ := d.MeasureText(text, scale)
	d.DrawText(text, t.X+(t.W-tw)/2, t.Y+t.H*0.68, scale, mgl32.Vec3{1, 1, 1})
}

func (t *Toggle) HandleInput(p Pointer) bool {
	if t.Contains(p.X, p.Y) && p.JustPressed {
		t.IsOn = !t.IsOn
		if t.OnToggle != nil {
			t.OnToggle(t.IsOn)
		}
		return true
	}
	return false
}
