package widget

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Button struct {
	BaseComponent
	Text      string
	OnClick   func()
	IsHovered bool

	NormalColor mgl32.Vec3
	HoverColor  mgl32.Vec3
	BorderColor mgl32.Vec3
	TextColor   mgl32.Vec3
}

func NewButton(text string, x, y, w, h float32, onClick func()) *Button {
	return &Button{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Text:          text,
		OnClick:       onClick,
		NormalColor:   mgl32.Vec3{0.3, 0.3, 0.3},
		HoverColor:    mgl32.Vec3{0.4, 0.4, 0.4},
		BorderColor:   mgl32.Vec3{0, 0, 0},
		TextColor:     mgl32.Vec3{1, 1, 1},
	}
}

// IsMouseOver reports whether the pointer is over the button.
func (b *Button) IsMouseOver(x, y float32) bool {
	return b.Contains(x, y)
}

func (b *Button) Render(d Drawer, p Pointer) {
	b.IsHovered = b.IsMouseOver(p.X, p.Y)

	color := b.NormalColor
	if b.IsHovered {
		color = b.HoverColor
	}

	d.DrawFilledRect(b.X, b.Y, b.W, b.H, b.BorderColor, 1.0)
	d.DrawFilledRect(b.X+1, b.Y+1, b.W-2, b.H-2, color, 1.0)

	if b.Text == "" {
		return
	}

	// Label takes ~60% of the button height, shrunk to fit 90% of its width
	_, rawH := d.MeasureText(b.Text, 1.0)
	if rawH == 0 {
		rawH = 20
	}
	targetH := b.H * 0.6
	textScale := targetH / rawH

	textW, _ := d.MeasureText(b.Text, textScale)
	maxW := b.W * 0.90
	if textW > maxW {
		correction := maxW / textW
		textScale *= correction
		targetH *= correction
		textW = maxW
	}

	// Approximate baseline offset: ~75% of the line height.
	textX := b.X + (b.W-textW)/2
	textY := b.Y + (b.H-targetH)/2 + targetH*0.75
	d.DrawText(b.Text, textX, textY, textScale, b.TextColor)
}

func (b *Button) HandleInput(p Pointer) bool {
	if b.IsMouseOver(p.X, p.Y) && p.JustPressed {
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}
