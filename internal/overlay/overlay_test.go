package overlay

import (
	"bytes"
	"errors"
	"image"
	"log"
	"os"
	"strings"
	"testing"

	"mini-splash/internal/event"
	"mini-splash/internal/graphics"
	"mini-splash/internal/screen"

	"github.com/go-gl/mathgl/mgl32"
)

type textureDraw struct {
	id         graphics.Identifier
	x, y, w, h int
}

type fakeSurface struct {
	w, h      int
	fills     []uint32
	textures  []textureDraw
	texts     []string
	missing   bool
	failWith  error
	textWidth float32
}

func newSurface(w, h int) *fakeSurface { return &fakeSurface{w: w, h: h, textWidth: 10} }

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) FillARGB(x, y, w, h int, argb uint32) { s.fills = append(s.fills, argb) }

func (s *fakeSurface) DrawTexture(id graphics.Identifier, x, y, w, h int) error {
	if s.failWith != nil {
		return s.failWith
	}
	if s.missing {
		return graphics.ErrTextureMissing
	}
	s.textures = append(s.textures, textureDraw{id, x, y, w, h})
	return nil
}

func (s *fakeSurface) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {}

func (s *fakeSurface) DrawText(text string, x, y, scale float32, color mgl32.Vec3) {
	s.texts = append(s.texts, text)
}

func (s *fakeSurface) MeasureText(text string, scale float32) (float32, float32) {
	return float32(len(text)) * s.textWidth * scale, 20 * scale
}

func (s *fakeSurface) reset() {
	s.fills, s.textures, s.texts = nil, nil, nil
}

type fakeProgress struct{ p float32 }

func (f *fakeProgress) Progress() float32 { return f.p }

type fakeAssets struct {
	state graphics.Readiness
	err   error
}

func (f *fakeAssets) Readiness() graphics.Readiness { return f.state }
func (f *fakeAssets) Err() error                    { return f.err }

type fakeScreens struct{ calls []screen.Screen }

func (f *fakeScreens) SetScreen(s screen.Screen) { f.calls = append(f.calls, s) }

type fakePointer struct{ down bool }

func (f *fakePointer) LeftDown() bool { return f.down }

type harness struct {
	overlay  *Overlay
	surface  *fakeSurface
	progress *fakeProgress
	assets   *fakeAssets
	screens  *fakeScreens
	pointer  *fakePointer
	bus      *event.Bus
	hidden   bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		surface:  newSurface(800, 600),
		progress: &fakeProgress{},
		assets:   &fakeAssets{state: graphics.Ready},
		screens:  &fakeScreens{},
		pointer:  &fakePointer{},
		bus:      event.NewBus(),
	}
	h.overlay = New(Options{
		Progress:          h.progress,
		Assets:            h.assets,
		Screens:           h.screens,
		Pointer:           h.pointer,
		Bus:               h.bus,
		HidingAppearance:  func() bool { return h.hidden },
		DefaultBrandColor: func() uint32 { return graphics.DefaultBrandARGB },
	})
	return h
}

func (h *harness) frame(mx, my int, down bool) {
	h.pointer.down = down
	h.overlay.Render(h.surface, mx, my, 0.016)
}

// Skip button for an 800x600 surface spans x 300..500, y 282..302.
const (
	insideX, insideY   = 400, 292
	outsideX, outsideY = 100, 100
)

func TestAutoAdvanceAtFullProgress(t *testing.T) {
	h := newHarness(t)

	h.progress.p = 0.99
	h.frame(0, 0, false)
	if len(h.screens.calls) != 0 {
		t.Fatalf("advanced at 99%%")
	}

	h.progress.p = 1.0
	h.frame(0, 0, false)
	if len(h.screens.calls) != 1 {
		t.Fatalf("SetScreen calls = %d, want 1", len(h.screens.calls))
	}
	if h.screens.calls[0] != nil {
		t.Errorf("SetScreen(%v), want nil", h.screens.calls[0])
	}
	if h.overlay.Dismissed() != DismissedLoaded {
		t.Errorf("reason = %v", h.overlay.Dismissed())
	}
}

func TestAutoAdvanceOnlyOnce(t *testing.T) {
	h := newHarness(t)
	for _, p := range []float32{1.0, 1.0, 1.5, 1.0} {
		h.progress.p = p
		for i := 0; i < 10; i++ {
			h.frame(0, 0, false)
		}
	}
	if len(h.screens.calls) != 1 {
		t.Errorf("SetScreen calls = %d, want 1", len(h.screens.calls))
	}
}

func TestProgressCaptureIsObservational(t *testing.T) {
	h := newHarness(t)
	h.progress.p = 0.42
	h.frame(0, 0, false)
	if got := h.overlay.Progress(); got != 0.42 {
		t.Errorf("Progress() = %v, want 0.42", got)
	}
}

func TestSkipButtonClickInside(t *testing.T) {
	h := newHarness(t)
	h.frame(insideX, insideY, false)
	if h.overlay.SkipButton() == nil {
		t.Fatal("skip button not built")
	}

	h.frame(insideX, insideY, true)
	if len(h.screens.calls) != 0 {
		t.Fatal("advanced on press")
	}
	h.frame(insideX+50, insideY+5, false)
	if len(h.screens.calls) != 1 {
		t.Fatalf("SetScreen calls = %d, want 1", len(h.screens.calls))
	}
	if h.overlay.Dismissed() != DismissedSkipped {
		t.Errorf("reason = %v", h.overlay.Dismissed())
	}
}

func TestSkipButtonReleaseOutsideCancels(t *testing.T) {
	h := newHarness(t)
	h.frame(insideX, insideY, false)
	h.frame(insideX, insideY, true)
	h.frame(outsideX, outsideY, false)

	if len(h.screens.calls) != 0 {
		t.Errorf("advanced after release outside")
	}
}

func TestSkipButtonDragOutAndBackCancels(t *testing.T) {
	h := newHarness(t)
	h.frame(insideX, insideY, false)
	h.frame(insideX, insideY, true)
	h.frame(outsideX, outsideY, true)
	h.frame(insideX, insideY, true)
	h.frame(insideX, insideY, false)

	if len(h.screens.calls) != 0 {
		t.Errorf("advanced after leaving the button mid-gesture")
	}
}

func TestSkipButtonPressOutsideReleaseInside(t *testing.T) {
	h := newHarness(t)
	h.frame(outsideX, outsideY, false)
	h.frame(outsideX, outsideY, true)
	h.frame(insideX, insideY, true)
	h.frame(insideX, insideY, false)

	if len(h.screens.calls) != 0 {
		t.Errorf("advanced on a press that started outside")
	}
}

func TestHeldPointerWhenButtonAppears(t *testing.T) {
	h := newHarness(t)
	h.assets.state = graphics.NotReady
	h.frame(insideX, insideY, true)

	h.assets.state = graphics.Ready
	h.frame(insideX, insideY, true)
	h.frame(insideX, insideY, false)

	if len(h.screens.calls) != 0 {
		t.Errorf("a press that began before the button existed clicked it")
	}
}

func TestSkipAndAutoAdvanceDismissOnce(t *testing.T) {
	h := newHarness(t)
	h.frame(insideX, insideY, false)
	h.frame(insideX, insideY, true)

	h.progress.p = 1.0
	h.frame(insideX, insideY, false)
	h.frame(insideX, insideY, true)
	h.frame(insideX, insideY, false)

	if len(h.screens.calls) != 1 {
		t.Errorf("SetScreen calls = %d, want 1", len(h.screens.calls))
	}
}

func TestSkipButtonBuiltOnceAfterReadiness(t *testing.T) {
	h := newHarness(t)
	h.assets.state = graphics.NotReady
	for i := 0; i < 1000; i++ {
		h.frame(0, 0, false)
		if h.overlay.SkipButton() != nil {
			t.Fatalf("button built on frame %d while not ready", i)
		}
	}

	h.assets.state = graphics.Ready
	h.frame(0, 0, false)
	first := h.overlay.SkipButton()
	if first == nil {
		t.Fatal("button not built once ready")
	}

	h.surface.w, h.surface.h = 1920, 1080
	for i := 0; i < 1000; i++ {
		h.frame(0, 0, false)
	}
	if h.overlay.SkipButton() != first {
		t.Error("button was rebuilt")
	}
	if first.X != 300 || first.Y != 282 || first.W != 200 || first.H != 20 {
		t.Errorf("button rect = %v,%v %vx%v", first.X, first.Y, first.W, first.H)
	}
}

func TestSkipButtonRetriesAfterFailure(t *testing.T) {
	h := newHarness(t)
	h.assets.state = graphics.Failed
	h.assets.err = errors.New("atlas not stitched")
	for i := 0; i < 5; i++ {
		h.frame(0, 0, false)
	}
	if h.overlay.SkipButton() != nil {
		t.Fatal("button built while assets failed")
	}

	h.assets.state = graphics.Ready
	h.assets.err = nil
	h.frame(0, 0, false)
	if h.overlay.SkipButton() == nil {
		t.Fatal("button not built after recovery")
	}
}

func TestSkipButtonSurvivesReadinessRegression(t *testing.T) {
	h := newHarness(t)
	h.frame(insideX, insideY, false)
	h.frame(insideX, insideY, true)

	h.assets.state = graphics.NotReady
	h.surface.reset()
	h.frame(insideX, insideY, false)
	if len(h.screens.calls) != 1 {
		t.Fatalf("SetScreen calls = %d, want 1", len(h.screens.calls))
	}
	var drawn bool
	for _, text := range h.surface.texts {
		drawn = drawn || text == "Proceed"
	}
	if !drawn {
		t.Error("button not rendered after readiness regressed")
	}
}

type nopUploader struct{ next uint32 }

func (u *nopUploader) Upload(*image.RGBA) (uint32, error) {
	u.next++
	return u.next, nil
}

func (u *nopUploader) Delete(uint32) {}

func TestSkipWorksWithBrokenRemoteTexture(t *testing.T) {
	tm := graphics.NewTextureManager()
	tm.Attach(&nopUploader{})
	RegisterAssets(tm)

	var loads int
	tm.Register("minisplash:remote/bad.png", graphics.TextureSourceFunc(func() (*image.RGBA, error) {
		loads++
		return nil, errors.New("png: invalid format")
	}))

	screens := &fakeScreens{}
	pointer := &fakePointer{}
	o := New(Options{
		Progress: &fakeProgress{p: 0.3},
		Assets:   tm,
		Screens:  screens,
		Pointer:  pointer,
	})
	surface := newSurface(800, 600)
	frame := func(down bool) {
		tm.Tick()
		pointer.down = down
		o.Render(surface, insideX, insideY, 0.016)
	}

	for i := 0; i < 50; i++ {
		frame(false)
	}
	if o.SkipButton() == nil {
		t.Fatal("skip button never built")
	}
	frame(true)
	frame(false)

	if len(screens.calls) != 1 {
		t.Fatalf("SetScreen calls = %d, want 1", len(screens.calls))
	}
	if o.Dismissed() != DismissedSkipped {
		t.Errorf("reason = %v", o.Dismissed())
	}
	if loads > 3 {
		t.Errorf("broken source loaded %d times", loads)
	}
}

func TestHiddenAppearance(t *testing.T) {
	h := newHarness(t)
	h.hidden = true
	h.frame(insideX, insideY, false)

	if len(h.surface.textures) != 0 {
		t.Errorf("drew textures while hidden: %+v", h.surface.textures)
	}
	if len(h.surface.texts) != 0 {
		t.Errorf("drew text while hidden: %v", h.surface.texts)
	}
	if h.surface.fills[0] != graphics.DefaultBrandARGB {
		t.Errorf("background = %#x, want default brand", h.surface.fills[0])
	}
	if h.overlay.SkipButton() != nil {
		t.Error("skip button built while hidden")
	}
}

func TestHiddenBlocksSkipClick(t *testing.T) {
	h := newHarness(t)
	h.frame(insideX, insideY, false)
	h.frame(insideX, insideY, true)
	h.hidden = true
	h.frame(insideX, insideY, false)

	if len(h.screens.calls) != 0 {
		t.Error("skip fired while hidden")
	}
}

func TestVisibleAppearance(t *testing.T) {
	h := newHarness(t)
	h.surface = newSurface(1000, 800)
	h.frame(0, 0, false)

	if h.surface.fills[0] != graphics.ClientBrandARGB {
		t.Errorf("background = %#x, want client brand", h.surface.fills[0])
	}
	if len(h.surface.textures) != 1 {
		t.Fatalf("texture draws = %d, want 1", len(h.surface.textures))
	}
	want := textureDraw{graphics.ClientLogo, 300, 300, 400, 200}
	if got := h.surface.textures[0]; got != want {
		t.Errorf("logo draw = %+v, want %+v", got, want)
	}
	if len(h.surface.texts) == 0 || h.surface.texts[0] != "MINI SPLASH" {
		t.Errorf("texts = %v, want wordmark first", h.surface.texts)
	}
}

func TestBrandColorFollowsFlagEveryFrame(t *testing.T) {
	h := newHarness(t)
	h.frame(0, 0, false)
	h.hidden = true
	h.surface.reset()
	h.frame(0, 0, false)
	if h.surface.fills[0] != graphics.DefaultBrandARGB {
		t.Errorf("background = %#x after hiding", h.surface.fills[0])
	}
	h.hidden = false
	h.surface.reset()
	h.frame(0, 0, false)
	if h.surface.fills[0] != graphics.ClientBrandARGB {
		t.Errorf("background = %#x after showing", h.surface.fills[0])
	}
}

func TestMissingLogoIsSkipped(t *testing.T) {
	h := newHarness(t)
	h.surface.missing = true
	h.frame(0, 0, false)
	if len(h.surface.textures) != 0 {
		t.Error("logo drawn while missing")
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	h.surface.missing = false
	h.surface.failWith = errors.New("gl lost")
	for i := 0; i < 10; i++ {
		h.frame(0, 0, false)
	}
	if n := strings.Count(buf.String(), "draw logo"); n != 1 {
		t.Errorf("draw errors logged %d times, want 1:\n%s", n, buf.String())
	}
}

func TestRenderEventEveryFrame(t *testing.T) {
	h := newHarness(t)
	var frames int
	var surface screen.Surface
	h.bus.Subscribe(func(e event.Event) {
		if ev, ok := e.(event.ScreenRenderEvent); ok {
			frames++
			surface = ev.Surface
		}
	})

	h.frame(0, 0, false)
	h.hidden = true
	h.frame(0, 0, false)

	if frames != 2 {
		t.Errorf("events = %d, want 2", frames)
	}
	if surface != screen.Surface(h.surface) {
		t.Error("event carries a different surface")
	}
}

func TestScreenLifecycle(t *testing.T) {
	h := newHarness(t)
	if !h.overlay.IsActive() {
		t.Fatal("new overlay should be active")
	}
	h.overlay.Close()
	if h.overlay.IsActive() {
		t.Error("closed overlay still active")
	}
}

func TestRegisterAssets(t *testing.T) {
	tm := graphics.NewTextureManager()
	RegisterAssets(tm)
	if tm.Readiness() != graphics.NotReady {
		t.Fatalf("readiness = %v", tm.Readiness())
	}
}

func TestNewPanicsOnMissingDeps(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(Options{})
}
