package graphics

import "github.com/go-gl/mathgl/mgl32"

// ARGB packs an 8-bit color as 0xAARRGGBB.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Brand colors for the splash background.
var (
	// ClientBrandARGB replaces the default background while custom branding is shown.
	ClientBrandARGB = ARGB(255, 24, 26, 27)
	// DefaultBrandARGB is the stock splash background.
	DefaultBrandARGB = ARGB(255, 239, 50, 61)
)

// ARGBToVec3 returns the RGB channels as 0..1 floats.
func ARGBToVec3(argb uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(argb>>16&0xff) / 255,
		float32(argb>>8&0xff) / 255,
		float32(argb&0xff) / 255,
	}
}

// ARGBAlpha returns the alpha channel as a 0..1 float.
func ARGBAlpha(argb uint32) float32 {
	return float32(argb>>24&0xff) / 255
}
