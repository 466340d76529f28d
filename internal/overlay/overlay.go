// Package overlay implements the loading splash shown while resources load.
//
// The overlay is driven once per frame by the screen manager. It paints the
// splash, watches loader progress, offers a skip button and, when loading
// completes or the user skips, asks the manager to switch to no screen.
package overlay

import (
	"errors"
	"log"

	"mini-splash/internal/event"
	"mini-splash/internal/graphics"
	"mini-splash/internal/screen"
	"mini-splash/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
)

// ProgressSource reports loading progress in [0, 1]. The value is trusted to
// never decrease.
type ProgressSource interface {
	Progress() float32
}

// Assets is the part of the texture subsystem polled every frame.
type Assets interface {
	Readiness() graphics.Readiness
	Err() error
}

// Registrar accepts texture registrations.
type Registrar interface {
	Register(id graphics.Identifier, src graphics.TextureSource)
}

// ScreenSetter replaces the active screen; nil means no screen.
type ScreenSetter interface {
	SetScreen(s screen.Screen)
}

// Publisher receives overlay render notifications.
type Publisher interface {
	Publish(e event.Event)
}

// PointerState reports whether the primary pointer button is held this frame.
type PointerState interface {
	LeftDown() bool
}

// Options wires an Overlay to its host. Progress, Assets, Screens and Pointer
// are required.
type Options struct {
	Progress ProgressSource
	Assets   Assets
	Screens  ScreenSetter
	Pointer  PointerState
	Bus      Publisher

	// HidingAppearance is read every frame. Nil means never hidden.
	HidingAppearance func() bool
	// DefaultBrandColor is the stock background color. Nil means graphics.DefaultBrandARGB.
	DefaultBrandColor func() uint32
	// SkipLabel is the skip button text.
	SkipLabel string
	// Wordmark is drawn as the stock logo.
	Wordmark string
}

// DismissReason says why the overlay went away.
type DismissReason int

const (
	NotDismissed DismissReason = iota
	DismissedLoaded
	DismissedSkipped
)

func (r DismissReason) String() string {
	switch r {
	case DismissedLoaded:
		return "loaded"
	case DismissedSkipped:
		return "skipped"
	}
	return "active"
}

// Overlay is the loading splash. One instance lives for one loading phase and
// is only touched from the render thread.
type Overlay struct {
	opts Options

	skipButton            *widget.Button
	skipButtonInitialized bool

	lastProgress    float32
	shownProgress   float32
	hasAutoAdvanced bool
	dismissed       DismissReason
	closed          bool

	pointerWasDown     bool
	pressStartedInside bool

	lastAssetErr string
	lastDrawErr  string
}

// New creates an overlay. It panics if a required option is missing, since
// that is a wiring bug.
func New(opts Options) *Overlay {
	if opts.Progress == nil || opts.Assets == nil || opts.Screens == nil || opts.Pointer == nil {
		panic("overlay: Progress, Assets, Screens and Pointer are required")
	}
	if opts.HidingAppearance == nil {
		opts.HidingAppearance = func() bool { return false }
	}
	if opts.DefaultBrandColor == nil {
		opts.DefaultBrandColor = func() uint32 { return graphics.DefaultBrandARGB }
	}
	if opts.SkipLabel == "" {
		opts.SkipLabel = "Proceed"
	}
	if opts.Wordmark == "" {
		opts.Wordmark = "MINI SPLASH"
	}
	return &Overlay{opts: opts}
}

// RegisterAssets registers the textures the overlay draws. Call it once at
// startup, before the first frame.
func RegisterAssets(r Registrar) {
	r.Register(graphics.ClientLogo, graphics.LogoSource{})
}

// Init implements screen.Screen
func (o *Overlay) Init() {}

// Close implements screen.Screen
func (o *Overlay) Close() { o.closed = true }

// IsActive implements screen.Screen
func (o *Overlay) IsActive() bool { return !o.closed }

// Progress returns the last progress value read from the loader.
func (o *Overlay) Progress() float32 { return o.lastProgress }

// Dismissed reports whether and why the overlay requested its own removal.
func (o *Overlay) Dismissed() DismissReason { return o.dismissed }

// SkipButton returns the skip button, or nil before it has been built.
func (o *Overlay) SkipButton() *widget.Button { return o.skipButton }

// Render draws one frame and runs the overlay's per-frame logic.
func (o *Overlay) Render(s screen.Surface, mouseX, mouseY int, delta float32) {
	w, h := s.Size()
	hidden := o.opts.HidingAppearance()

	s.FillARGB(0, 0, w, h, o.brandColor(hidden))
	if !hidden {
		o.drawWordmark(s, w, h)
	}

	o.captureProgress(o.opts.Progress.Progress())
	o.checkAutoAdvance()

	o.drawProgressBar(s, w, h)
	if !hidden {
		o.drawClientLogo(s, w, h)
	}

	if o.opts.Bus != nil {
		o.opts.Bus.Publish(event.ScreenRenderEvent{Surface: s, Delta: delta})
	}

	if !o.skipButtonInitialized && !hidden && o.pollAssets() {
		o.initSkipButton(w, h)
	}

	pointerDown := o.opts.Pointer.LeftDown()
	if !hidden && o.skipButton != nil {
		o.skipButton.Render(s, widget.Pointer{X: float32(mouseX), Y: float32(mouseY), Down: pointerDown})
		o.detectClick(float32(mouseX), float32(mouseY), pointerDown)
	} else {
		o.pressStartedInside = false
	}
	o.pointerWasDown = pointerDown
}

// brandColor is evaluated every frame since the flag can flip at runtime.
func (o *Overlay) brandColor(hidden bool) uint32 {
	if hidden {
		return o.opts.DefaultBrandColor()
	}
	return graphics.ClientBrandARGB
}

func (o *Overlay) captureProgress(p float32) float32 {
	o.lastProgress = p
	return p
}

func (o *Overlay) checkAutoAdvance() {
	if !o.hasAutoAdvanced && o.lastProgress >= 1.0 {
		o.hasAutoAdvanced = true
		o.advance(DismissedLoaded)
	}
}

// advance asks the host for no screen. Only the first call has any effect.
func (o *Overlay) advance(reason DismissReason) {
	if o.dismissed != NotDismissed {
		return
	}
	o.dismissed = reason
	log.Printf("splash: dismissed (%s) at %.0f%%", reason, o.lastProgress*100)
	o.opts.Screens.SetScreen(nil)
}

// pollAssets returns true when the texture subsystem is ready. It is only
// polled until the skip button exists. A failure is logged once per distinct
// error and retried on later frames.
func (o *Overlay) pollAssets() bool {
	switch o.opts.Assets.Readiness() {
	case graphics.Ready:
		return true
	case graphics.Failed:
		msg := "unknown error"
		if err := o.opts.Assets.Err(); err != nil {
			msg = err.Error()
		}
		if msg != o.lastAssetErr {
			log.Printf("splash: assets unavailable, retrying: %s", msg)
			o.lastAssetErr = msg
		}
	}
	return false
}

func (o *Overlay) initSkipButton(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	x, y, bw, bh := SkipButtonRect(w, h)
	o.skipButton = widget.NewButton(o.opts.SkipLabel, float32(x), float32(y), float32(bw), float32(bh), func() {
		o.advance(DismissedSkipped)
	})
	o.skipButtonInitialized = true
}

// detectClick fires the skip button when the pointer was pressed and released
// over it without leaving it in between.
func (o *Overlay) detectClick(mx, my float32, down bool) {
	over := o.skipButton.IsMouseOver(mx, my)

	switch {
	case down && !o.pointerWasDown:
		o.pressStartedInside = over
	case down && !over:
		o.pressStartedInside = false
	case !down && o.pointerWasDown:
		if over && o.pressStartedInside && o.skipButton.OnClick != nil {
			o.skipButton.OnClick()
		}
		o.pressStartedInside = false
	}
}

// drawClientLogo draws the custom logo, skipping silently while its texture
// is not uploaded yet.
func (o *Overlay) drawClientLogo(s screen.Surface, w, h int) {
	x, y, lw, lh := LogoRect(w, h, graphics.LogoWidth, graphics.LogoHeight)
	err := s.DrawTexture(graphics.ClientLogo, x, y, lw, lh)
	if err == nil || errors.Is(err, graphics.ErrTextureMissing) || errors.Is(err, graphics.ErrNotReady) {
		return
	}
	if msg := err.Error(); msg != o.lastDrawErr {
		log.Printf("splash: draw logo: %s", msg)
		o.lastDrawErr = msg
	}
}

// drawWordmark draws the stock text logo in the upper part of the splash.
func (o *Overlay) drawWordmark(s screen.Surface, w, h int) {
	scale := float32(h) / 600
	tw, th := s.MeasureText(o.opts.Wordmark, scale)
	if tw == 0 {
		return
	}
	s.DrawText(o.opts.Wordmark, (float32(w)-tw)/2, float32(h)*0.2+th/2, scale, mgl32.Vec3{1, 1, 1})
}

func (o *Overlay) drawProgressBar(s screen.Surface, w, h int) {
	o.shownProgress = smoothProgress(o.shownProgress, o.lastProgress)

	x, y, bw, bh := progressBarRect(w, h)
	white := graphics.ARGB(255, 255, 255, 255)
	s.FillARGB(x, y, bw, 1, white)
	s.FillARGB(x, y+bh-1, bw, 1, white)
	s.FillARGB(x, y, 1, bh, white)
	s.FillARGB(x+bw-1, y, 1, bh, white)

	fill := int(float32(bw-4) * o.shownProgress)
	if fill > 0 {
		s.FillARGB(x+2, y+2, fill, bh-4, white)
	}
}
