package ui

import (
	_ "embed"
	"fmt"

	"mini-splash/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/ui.vert
var vertexSource string

//go:embed shaders/ui.frag
var fragmentSource string

// Fragment shader modes.
const (
	modeSolid int32 = iota
	modeTexture
	modeGlyph
)

const floatsPerVertex = 4

// TextureLookup resolves uploaded textures by identifier.
type TextureLookup interface {
	Texture(id graphics.Identifier) (*graphics.Texture, bool)
}

// UI draws screen-space rectangles, textures and text with a top-left pixel
// origin. It implements screen.Surface.
type UI struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	// capacity of vbo in floats
	vboCap int

	textures TextureLookup
	font     *graphics.FontAtlas

	width, height float32
	projection    mgl32.Mat4
	scratch       []float32
}

// NewUI creates a UI for a surface of the given size. textures and font may be
// nil; drawing them is then skipped.
func NewUI(textures TextureLookup, font *graphics.FontAtlas, width, height int) *UI {
	u := &UI{textures: textures, font: font}
	u.SetViewport(width, height)
	return u
}

// Init compiles the shader and allocates buffers. Requires a current GL context.
func (u *UI) Init() error {
	shader, err := graphics.NewShader(vertexSource, fragmentSource)
	if err != nil {
		return fmt.Errorf("ui shader: %w", err)
	}
	u.shader = shader

	gl.GenVertexArrays(1, &u.vao)
	gl.GenBuffers(1, &u.vbo)
	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	u.vboCap = 6 * floatsPerVertex
	gl.BufferData(gl.ARRAY_BUFFER, u.vboCap*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, floatsPerVertex*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, floatsPerVertex*4, gl.PtrOffset(2*4))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if u.font != nil && u.font.TextureID == 0 {
		u.font.TextureID = graphics.UploadAlpha(u.font.Image)
	}
	return nil
}

// Dispose releases GL resources
func (u *UI) Dispose() {
	if u.vao != 0 {
		gl.DeleteVertexArrays(1, &u.vao)
	}
	if u.vbo != 0 {
		gl.DeleteBuffers(1, &u.vbo)
	}
	if u.font != nil && u.font.TextureID != 0 {
		gl.DeleteTextures(1, &u.font.TextureID)
		u.font.TextureID = 0
	}
	if u.shader != nil {
		u.shader.Delete()
	}
}

// SetViewport updates the logical surface size used for the projection.
func (u *UI) SetViewport(width, height int) {
	u.width, u.height = float32(width), float32(height)
	u.projection = mgl32.Ortho2D(0, u.width, u.height, 0)
}

// Size implements screen.Surface
func (u *UI) Size() (int, int) {
	return int(u.width), int(u.height)
}

// DrawFilledRect draws a rectangle in pixels with an RGB color and alpha.
func (u *UI) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	u.scratch = appendQuad(u.scratch[:0], x, y, w, h)
	u.draw(modeSolid, 0, color.Vec4(alpha))
}

// FillARGB implements screen.Surface
func (u *UI) FillARGB(x, y, w, h int, argb uint32) {
	u.DrawFilledRect(float32(x), float32(y), float32(w), float32(h), graphics.ARGBToVec3(argb), graphics.ARGBAlpha(argb))
}

// DrawTexture implements screen.Surface
func (u *UI) DrawTexture(id graphics.Identifier, x, y, w, h int) error {
	if u.textures == nil {
		return fmt.Errorf("%w: %s", graphics.ErrNotReady, id)
	}
	tex, ok := u.textures.Texture(id)
	if !ok {
		return fmt.Errorf("%w: %s", graphics.ErrTextureMissing, id)
	}
	u.scratch = appendQuad(u.scratch[:0], float32(x), float32(y), float32(w), float32(h))
	u.draw(modeTexture, tex.ID, mgl32.Vec4{1, 1, 1, 1})
	return nil
}

// DrawText draws text with its baseline at y.
func (u *UI) DrawText(text string, x, y, scale float32, color mgl32.Vec3) {
	if u.font == nil || text == "" {
		return
	}
	u.scratch = u.font.AppendQuads(u.scratch[:0], text, x, y, scale)
	u.draw(modeGlyph, u.font.TextureID, color.Vec4(1))
}

// MeasureText returns the pixel size of text at scale.
func (u *UI) MeasureText(text string, scale float32) (float32, float32) {
	if u.font == nil {
		return 0, 0
	}
	return u.font.Measure(text, scale)
}

func (u *UI) draw(mode int32, texture uint32, color mgl32.Vec4) {
	if u.shader == nil || len(u.scratch) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	u.shader.Use()
	u.shader.SetMatrix4("uProjection", u.projection)
	u.shader.SetVector4("uColor", color)
	u.shader.SetInt("uMode", mode)
	if mode != modeSolid {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		u.shader.SetInt("uTexture", 0)
	}

	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	if len(u.scratch) > u.vboCap {
		u.vboCap = len(u.scratch)
		gl.BufferData(gl.ARRAY_BUFFER, u.vboCap*4, gl.Ptr(u.scratch), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(u.scratch)*4, gl.Ptr(u.scratch))
	}
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(u.scratch)/floatsPerVertex))
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
}

// appendQuad appends two triangles covering the rectangle with full UVs.
func appendQuad(dst []float32, x, y, w, h float32) []float32 {
	x1, y1 := x+w, y+h
	return append(dst,
		x, y1, 0, 1,
		x, y, 0, 0,
		x1, y, 1, 0,
		x, y1, 0, 1,
		x1, y, 1, 0,
		x1, y1, 1, 1,
	)
}
