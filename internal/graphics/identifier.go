package graphics

import (
	"errors"
	"strings"
)

// DefaultNamespace is assumed for identifiers without a colon.
const DefaultNamespace = "minisplash"

// Identifier names a registered texture, e.g. "minisplash:textures/logo.png".
type Identifier string

// Namespace returns the part before the colon, or DefaultNamespace when absent.
func (id Identifier) Namespace() string {
	if i := strings.IndexByte(string(id), ':'); i >= 0 {
		return string(id[:i])
	}
	return DefaultNamespace
}

// Path returns the part after the colon.
func (id Identifier) Path() string {
	if i := strings.IndexByte(string(id), ':'); i >= 0 {
		return string(id[i+1:])
	}
	return string(id)
}

// Readiness is the state of the texture subsystem as seen by per-frame code.
type Readiness int

const (
	// NotReady means uploads are not possible yet or registered textures are still pending.
	NotReady Readiness = iota
	// Ready means every registered texture has been uploaded.
	Ready
	// Failed means the most recent upload failed; see TextureManager.Err.
	Failed
)

func (r Readiness) String() string {
	switch r {
	case NotReady:
		return "not ready"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var (
	// ErrTextureMissing is returned when drawing an identifier that has no uploaded texture.
	ErrTextureMissing = errors.New("texture not registered")
	// ErrNotReady is returned by draw calls issued before the GPU side is set up.
	ErrNotReady = errors.New("texture manager not ready")
)
