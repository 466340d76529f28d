package overlay

import "math"

// Logo fit limits as a fraction of the surface.
const (
	logoMaxWidthFrac  = 0.4
	logoMaxHeightFrac = 0.25
)

// Skip button geometry, in scaled pixels.
const (
	skipButtonWidth   = 200
	skipButtonHeight  = 20
	skipButtonOffsetY = 120 + 12
)

// LogoRect fits a logo of native size logoW x logoH inside 40% of the surface
// width and 25% of its height, keeping its aspect ratio, and centers it.
func LogoRect(surfaceW, surfaceH, logoW, logoH int) (x, y, w, h int) {
	if logoW <= 0 || logoH <= 0 {
		return 0, 0, 0, 0
	}
	scale := min(
		float32(surfaceW)*logoMaxWidthFrac/float32(logoW),
		float32(surfaceH)*logoMaxHeightFrac/float32(logoH),
	)
	w = int(float32(logoW) * scale)
	h = int(float32(logoH) * scale)
	return (surfaceW - w) / 2, (surfaceH - h) / 2, w, h
}

// SkipButtonRect places the skip button centered horizontally, a fixed
// distance below the upper quarter of the surface.
func SkipButtonRect(surfaceW, surfaceH int) (x, y, w, h int) {
	return surfaceW/2 - skipButtonWidth/2, surfaceH/4 + skipButtonOffsetY, skipButtonWidth, skipButtonHeight
}

// progressBarRect returns the outer rectangle of the loading bar.
func progressBarRect(surfaceW, surfaceH int) (x, y, w, h int) {
	half := int(math.Min(float64(surfaceW)*0.75, float64(surfaceH)) * 0.5)
	cy := int(float64(surfaceH) * 0.8325)
	return surfaceW/2 - half, cy - 5, half * 2, 10
}

// smoothProgress eases the displayed value toward the loader's value.
func smoothProgress(shown, actual float32) float32 {
	v := shown*0.95 + actual*0.050000012
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
