package graphics

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// ClientLogo is the identifier the splash logo is registered under.
const ClientLogo Identifier = "minisplash:textures/logo.png"

// Native logo size in pixels; the logo texture is always this size.
const (
	LogoWidth  = 400
	LogoHeight = 200
)

//go:embed assets/logo.png
var logoPNG []byte

// LogoSource decodes the embedded logo, resampling it to LogoWidth x LogoHeight if needed.
type LogoSource struct {
	// Data overrides the embedded image when non-nil.
	Data []byte
}

// Load implements TextureSource
func (s LogoSource) Load() (*image.RGBA, error) {
	data := s.Data
	if data == nil {
		data = logoPNG
	}
	img, err := DecodeRGBA(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("client logo: %w", err)
	}
	if img.Rect.Dx() == LogoWidth && img.Rect.Dy() == LogoHeight {
		return img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, LogoWidth, LogoHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst, nil
}
