package widget

import "github.com/go-gl/mathgl/mgl32"

type Slider struct {
	BaseComponent
	Value    float32 // 0.0 to 1.0
	Steps    int
	Label    string
	OnChange func(val float32)

	dragging bool
}

func NewSlider(x, y, w, h float32, initialVal float32, steps int, label string, onChange func(val float32)) *Slider {
	return &Slider{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Value:         clamp01(initialVal),
		Steps:         steps,
		Label:         label,
		OnChange:      onChange,
	}
}

// Dragging reports whether a drag started on this slider is in progress.
func (s *Slider) Dragging() bool { return s.dragging }

func (s *Slider) Render(d Drawer, p Pointer) {
	s.HandleInput(p)

	// Track
	d.DrawFilledRect(s.X, s.Y, s.W, s.H, mgl32.Vec3{0.3, 0.3, 0.3}, 0.8)

	// Thumb
	thumbWidth := float32(20)
	thumbX := s.X + (s.W-thumbWidth)*s.Value
	d.DrawFilledRect(thumbX, s.Y, thumbWidth, s.H, mgl32.Vec3{0.6, 0.6, 0.6}, 0.9)

	if s.Label != "" {
		scale := s.H * 0.5 / 20
		tw, _ := d.MeasureText(s.Label, scale)
		d.DrawText(s.Label, s.X+(s.W-tw)/2, s.Y+s.H*0.68, scale, mgl32.Vec3{1, 1, 1})
	}
}

// HandleInput starts a drag on press inside the track, follows the pointer while
// the button is held and ends the drag on release.
func (s *Slider) HandleInput(p Pointer) bool {
	switch {
	case s.dragging && !p.Down:
		s.dragging = false
		return false
	case !s.dragging && p.JustPressed && s.Contains(p.X, p.Y):
		s.dragging = true
	case !s.dragging:
		return false
	}

	v := s.snap(clamp01((p.X - s.X) / s.W))
	if v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(v)
		}
	}
	return true
}

func (s *Slider) snap(v float32) float32 {
	if s.Steps <= 1 {
		return v
	}
	denom := float32(s.Steps - 1)
	stepIndex := int(v*denom + 0.5)
	return float32(stepIndex) / denom
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
