package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes a single character's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas texture (top-left origin)
	AtlasX float32
	AtlasY float32
	// Glyph bitmap size in pixels
	Width  float32
	Height float32
	// Bearing (offset from baseline) in pixels
	BearingX float32
	BearingY float32
	// Advance in pixels
	Advance int
}

// FontAtlas is a baked glyph sheet plus per-glyph metrics. TextureID is zero
// until the atlas has been uploaded.
type FontAtlas struct {
	Image      *image.Alpha
	TextureID  uint32
	AtlasW     int
	AtlasH     int
	Characters map[rune]FontCharacter
}

const atlasWidth = 512

// BakeDefaultFontAtlas bakes the bundled Go Regular face.
func BakeDefaultFontAtlas(fontPixels int) (*FontAtlas, error) {
	return BakeFontAtlas(goregular.TTF, fontPixels)
}

// BakeFontAtlas rasterizes the printable ASCII range of a TrueType/OpenType font
// into a single-channel atlas. It does not touch the GPU.
func BakeFontAtlas(fontBytes []byte, fontPixels int) (*FontAtlas, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	// Character set: ASCII printable range 32..126
	runes := make([]rune, 0, 95)
	for r := rune(32); r <= 126; r++ {
		runes = append(runes, r)
	}

	// First pass: pack rows to find the required height
	padding := 1
	offsetX, rowHeight, requiredH := 0, 0, 0
	for _, r := range runes {
		dr, mask, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		if offsetX+gw > atlasWidth {
			requiredH += rowHeight + padding
			offsetX, rowHeight = 0, 0
		}
		offsetX += gw + padding
		if gh > rowHeight {
			rowHeight = gh
		}
	}
	requiredH += rowHeight + padding

	// Round height up to next power-of-two (nice for older GPUs)
	atlasH := 1
	for atlasH < requiredH {
		atlasH <<= 1
	}

	atlasImg := image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasH))
	characters := make(map[rune]FontCharacter, len(runes))

	// Second pass: render each glyph into the atlas and record metrics
	offsetX, offsetY, rowHeight := 0, 0, 0
	for _, r := range runes {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		adv := int(math.Round(float64(advance) / 64.0))
		if gw == 0 || gh == 0 {
			// Space or non-drawable glyph; still record advance
			characters[r] = FontCharacter{
				AtlasX:   float32(offsetX),
				AtlasY:   float32(offsetY),
				BearingX: float32(dr.Min.X),
				BearingY: float32(-dr.Min.Y),
				Advance:  adv,
			}
			continue
		}

		if offsetX+gw > atlasWidth {
			offsetX = 0
			offsetY += rowHeight + padding
			rowHeight = 0
		}

		dstRect := image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh)
		draw.Draw(atlasImg, dstRect, mask, maskp, draw.Src)

		characters[r] = FontCharacter{
			AtlasX:   float32(offsetX),
			AtlasY:   float32(offsetY),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  adv,
		}

		offsetX += gw + padding
		if gh > rowHeight {
			rowHeight = gh
		}
	}

	if len(characters) == 0 {
		return nil, fmt.Errorf("font has no printable glyphs")
	}

	return &FontAtlas{Image: atlasImg, AtlasW: atlasWidth, AtlasH: atlasH, Characters: characters}, nil
}

// Measure returns the approximate width and height in pixels the text will occupy at the given scale.
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			// fall back to space advance if glyph missing
			if space, ok := a.Characters[' ']; ok {
				width += float32(space.Advance) * scale
			}
			continue
		}
		width += float32(fc.Advance) * scale
		if fc.Height*scale > maxH {
			maxH = fc.Height * scale
		}
	}
	return width, maxH
}

// AppendQuads appends two triangles per glyph as (x, y, u, v) vertices with the
// baseline at y.
func (a *FontAtlas) AppendQuads(dst []float32, text string, x, y, scale float32) []float32 {
	aw, ah := float32(a.AtlasW), float32(a.AtlasH)
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 && fc.Height > 0 {
			xPos := x + fc.BearingX*scale
			yPos := y - fc.BearingY*scale
			w, h := fc.Width*scale, fc.Height*scale
			u0, v0 := fc.AtlasX/aw, fc.AtlasY/ah
			u1, v1 := (fc.AtlasX+fc.Width)/aw, (fc.AtlasY+fc.Height)/ah
			dst = append(dst,
				xPos, yPos+h, u0, v1,
				xPos, yPos, u0, v0,
				xPos+w, yPos, u1, v0,
				xPos, yPos+h, u0, v1,
				xPos+w, yPos, u1, v0,
				xPos+w, yPos+h, u1, v1,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return dst
}
