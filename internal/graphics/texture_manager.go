package graphics

import (
	"errors"
	"fmt"
	"image"
	"log"
	"slices"
	"sync"
)

// maxLoadAttempts is how many ticks a failing source is retried before it is
// dropped from the queue.
const maxLoadAttempts = 3

// Texture is an uploaded GPU texture.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// TextureSource produces the pixels for a registered texture.
type TextureSource interface {
	Load() (*image.RGBA, error)
}

// TextureSourceFunc adapts a function to TextureSource.
type TextureSourceFunc func() (*image.RGBA, error)

// Load implements TextureSource
func (f TextureSourceFunc) Load() (*image.RGBA, error) { return f() }

// Uploader moves decoded pixels to the GPU. Only called from the render thread.
type Uploader interface {
	Upload(img *image.RGBA) (uint32, error)
	Delete(id uint32)
}

// TextureManager tracks registered textures and uploads them lazily.
// Register may be called from any goroutine; Tick must run on the render thread.
type TextureManager struct {
	mu       sync.RWMutex
	uploader Uploader
	pending  map[Identifier]TextureSource
	textures map[Identifier]*Texture
	attempts map[Identifier]int
	failed   map[Identifier]error
	lastErr  error
}

// NewTextureManager creates an empty manager with no uploader attached.
func NewTextureManager() *TextureManager {
	return &TextureManager{
		pending:  make(map[Identifier]TextureSource),
		textures: make(map[Identifier]*Texture),
		attempts: make(map[Identifier]int),
		failed:   make(map[Identifier]error),
	}
}

// Attach sets the uploader once the GL context exists.
func (tm *TextureManager) Attach(u Uploader) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.uploader = u
}

// Register queues src under id, replacing any earlier registration.
func (tm *TextureManager) Register(id Identifier, src TextureSource) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.pending[id] = src
	delete(tm.attempts, id)
	delete(tm.failed, id)
}

// Tick uploads pending textures. A failing source stays queued and is retried
// on later ticks; the failure is reported through Readiness and Err. After
// maxLoadAttempts failures the source is dropped and its error is kept in
// Failures.
func (tm *TextureManager) Tick() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.uploader == nil {
		return
	}
	tm.lastErr = nil
	for id, src := range tm.pending {
		if err := tm.upload(id, src); err != nil {
			tm.attempts[id]++
			if tm.attempts[id] < maxLoadAttempts {
				tm.lastErr = err
				continue
			}
			log.Printf("texture %s dropped after %d attempts: %v", id, tm.attempts[id], err)
			tm.failed[id] = err
		}
		delete(tm.pending, id)
		delete(tm.attempts, id)
	}
}

func (tm *TextureManager) upload(id Identifier, src TextureSource) error {
	img, err := src.Load()
	if err != nil {
		return fmt.Errorf("load %s: %w", id, err)
	}
	texID, err := tm.uploader.Upload(img)
	if err != nil {
		return fmt.Errorf("upload %s: %w", id, err)
	}
	if old, ok := tm.textures[id]; ok {
		tm.uploader.Delete(old.ID)
	}
	size := img.Bounds().Size()
	tm.textures[id] = &Texture{ID: texID, Width: size.X, Height: size.Y}
	return nil
}

// Readiness reports the current tri-state.
func (tm *TextureManager) Readiness() Readiness {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	switch {
	case tm.lastErr != nil:
		return Failed
	case tm.uploader == nil, len(tm.pending) > 0:
		return NotReady
	}
	return Ready
}

// Err returns the error behind a Failed readiness.
func (tm *TextureManager) Err() error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.lastErr
}

// Failures joins the errors of sources that were dropped, ordered by id. It is
// nil when every registered texture uploaded.
func (tm *TextureManager) Failures() error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	ids := make([]Identifier, 0, len(tm.failed))
	for id := range tm.failed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	errs := make([]error, 0, len(ids))
	for _, id := range ids {
		errs = append(errs, tm.failed[id])
	}
	return errors.Join(errs...)
}

// Texture returns the uploaded texture for id.
func (tm *TextureManager) Texture(id Identifier) (*Texture, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	t, ok := tm.textures[id]
	return t, ok
}

// Dispose deletes every uploaded texture.
func (tm *TextureManager) Dispose() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.uploader == nil {
		return
	}
	for id, t := range tm.textures {
		tm.uploader.Delete(t.ID)
		delete(tm.textures, id)
	}
}
