package graphics

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

type fakeUploader struct {
	next    uint32
	fail    error
	deleted []uint32
}

func (f *fakeUploader) Upload(img *image.RGBA) (uint32, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	f.next++
	return f.next, nil
}

func (f *fakeUploader) Delete(id uint32) { f.deleted = append(f.deleted, id) }

func solid(w, h int) TextureSource {
	return TextureSourceFunc(func() (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, w, h)), nil
	})
}

func TestTextureManagerReadiness(t *testing.T) {
	tm := NewTextureManager()
	tm.Register(ClientLogo, solid(4, 2))

	if got := tm.Readiness(); got != NotReady {
		t.Fatalf("before attach: got %v, want %v", got, NotReady)
	}
	tm.Tick()
	if _, ok := tm.Texture(ClientLogo); ok {
		t.Fatal("texture uploaded without an uploader")
	}

	up := &fakeUploader{}
	tm.Attach(up)
	if got := tm.Readiness(); got != NotReady {
		t.Fatalf("pending upload: got %v, want %v", got, NotReady)
	}

	tm.Tick()
	if got := tm.Readiness(); got != Ready {
		t.Fatalf("after tick: got %v, want %v", got, Ready)
	}
	tex, ok := tm.Texture(ClientLogo)
	if !ok {
		t.Fatal("logo texture missing after tick")
	}
	if tex.Width != 4 || tex.Height != 2 {
		t.Errorf("size = %dx%d, want 4x2", tex.Width, tex.Height)
	}
}

func TestTextureManagerFailureRetries(t *testing.T) {
	tm := NewTextureManager()
	up := &fakeUploader{fail: errors.New("no context")}
	tm.Attach(up)
	tm.Register("test:a", solid(1, 1))

	tm.Tick()
	if got := tm.Readiness(); got != Failed {
		t.Fatalf("got %v, want %v", got, Failed)
	}
	if tm.Err() == nil {
		t.Fatal("expected error to be kept")
	}

	up.fail = nil
	tm.Tick()
	if got := tm.Readiness(); got != Ready {
		t.Fatalf("after retry: got %v, want %v", got, Ready)
	}
	if tm.Err() != nil {
		t.Errorf("error not cleared: %v", tm.Err())
	}
}

func TestTextureManagerDropsSourceAfterRepeatedFailures(t *testing.T) {
	tm := NewTextureManager()
	tm.Attach(&fakeUploader{})
	tm.Register(ClientLogo, solid(4, 2))

	var loads int
	tm.Register("minisplash:remote/bad.png", TextureSourceFunc(func() (*image.RGBA, error) {
		loads++
		return nil, errors.New("png: invalid format")
	}))

	for i := 0; i < 100; i++ {
		tm.Tick()
	}
	if loads != maxLoadAttempts {
		t.Errorf("loads = %d, want %d", loads, maxLoadAttempts)
	}
	if got := tm.Readiness(); got != Ready {
		t.Fatalf("readiness = %v, want %v", got, Ready)
	}
	if tm.Err() != nil {
		t.Errorf("Err() = %v after drop", tm.Err())
	}
	if _, ok := tm.Texture(ClientLogo); !ok {
		t.Error("logo missing")
	}
	if err := tm.Failures(); err == nil {
		t.Fatal("dropped source not reported")
	}

	tm.Register("minisplash:remote/bad.png", solid(1, 1))
	if err := tm.Failures(); err != nil {
		t.Errorf("failure kept after re-register: %v", err)
	}
	tm.Tick()
	if _, ok := tm.Texture("minisplash:remote/bad.png"); !ok {
		t.Error("re-registered texture not uploaded")
	}
}

func TestTextureManagerReplaceDeletesOld(t *testing.T) {
	tm := NewTextureManager()
	up := &fakeUploader{}
	tm.Attach(up)

	tm.Register("test:a", solid(1, 1))
	tm.Tick()
	first, _ := tm.Texture("test:a")

	tm.Register("test:a", solid(2, 2))
	tm.Tick()
	second, _ := tm.Texture("test:a")

	if first.ID == second.ID {
		t.Fatal("expected a new texture id")
	}
	if len(up.deleted) != 1 || up.deleted[0] != first.ID {
		t.Errorf("deleted = %v, want [%d]", up.deleted, first.ID)
	}

	tm.Dispose()
	if _, ok := tm.Texture("test:a"); ok {
		t.Error("texture survived Dispose")
	}
}

func TestLogoSourceEmbedded(t *testing.T) {
	img, err := LogoSource{}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Rect.Dx() != LogoWidth || img.Rect.Dy() != LogoHeight {
		t.Errorf("size = %v, want %dx%d", img.Rect.Size(), LogoWidth, LogoHeight)
	}
}

func TestLogoSourceResamples(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	src.Set(0, 0, color.NRGBA{R: 1, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := LogoSource{Data: buf.Bytes()}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Rect.Dx() != LogoWidth || img.Rect.Dy() != LogoHeight {
		t.Errorf("size = %v, want %dx%d", img.Rect.Size(), LogoWidth, LogoHeight)
	}

	if _, err := (LogoSource{Data: []byte("not a png")}).Load(); err == nil {
		t.Error("expected decode error")
	}
}

func TestIdentifierParts(t *testing.T) {
	if ns, p := ClientLogo.Namespace(), ClientLogo.Path(); ns != "minisplash" || p != "textures/logo.png" {
		t.Errorf("got %q %q", ns, p)
	}
	id := Identifier("gui/button.png")
	if id.Namespace() != "minisplash" || id.Path() != "gui/button.png" {
		t.Errorf("got %q %q", id.Namespace(), id.Path())
	}
}

func TestARGB(t *testing.T) {
	if ClientBrandARGB != 0xff181a1b {
		t.Fatalf("ClientBrandARGB = %#x", ClientBrandARGB)
	}
	v := ARGBToVec3(ARGB(128, 255, 0, 51))
	if v.X() != 1 || v.Y() != 0 || v.Z() != 0.2 {
		t.Errorf("rgb = %v", v)
	}
	if a := ARGBAlpha(ARGB(0, 1, 2, 3)); a != 0 {
		t.Errorf("alpha = %v", a)
	}
}

func TestBakeDefaultFontAtlas(t *testing.T) {
	atlas, err := BakeDefaultFontAtlas(24)
	if err != nil {
		t.Fatalf("bake: %v", err)
	}
	if _, ok := atlas.Characters['A']; !ok {
		t.Fatal("missing glyph A")
	}
	short, _ := atlas.Measure("ab", 1)
	long, h := atlas.Measure("abcd", 1)
	if long <= short || h <= 0 {
		t.Errorf("measure: short=%v long=%v h=%v", short, long, h)
	}
	verts := atlas.AppendQuads(nil, "ab c", 0, 20, 1)
	if len(verts) != 3*6*4 {
		t.Errorf("got %d floats, want %d", len(verts), 3*6*4)
	}
}
