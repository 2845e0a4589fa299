package opengl

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture sampling modes understood by the fragment shader.
const (
	sampleNone  int32 = iota // Flat fills: cell backgrounds, grid lines, cursor
	sampleGlyph              // Red-only glyph atlas, tinted by the vertex color
	sampleImage              // RGBA cell image, modulated by the vertex color
)

// Renderer submits DrawLists to OpenGL.
type Renderer struct {
	program  uint32
	vao, vbo uint32
	ebo      uint32
	glyphTex uint32
	atlas    *GlyphAtlas
	width    int
	height   int

	uProjection int32
	uSampler    int32
	uMode       int32

	images map[uint32]struct{} // RGBA textures from UploadImage
}

const cellVertexShader = `
#version 410 core
layout (location = 0) in vec2 inPos;
layout (location = 1) in vec2 inUV;
layout (location = 2) in vec4 inColor;

uniform mat4 uProjection;

out vec2 uv;
out vec4 tint;

void main() {
    uv = inUV;
    tint = inColor;
    gl_Position = uProjection * vec4(inPos, 0.0, 1.0);
}
` + "\x00"

const cellFragmentShader = `
#version 410 core
in vec2 uv;
in vec4 tint;

uniform sampler2D uSampler;
uniform int uMode;

out vec4 outColor;

void main() {
    if (uMode == 1) {
        outColor = vec4(tint.rgb, tint.a * texture(uSampler, uv).r);
    } else if (uMode == 2) {
        outColor = texture(uSampler, uv) * tint;
    } else {
        outColor = tint;
    }
}
` + "\x00"

// NewRenderer builds the cell program and uploads the glyph atlas. A GL
// context must be current.
func NewRenderer(width, height int) (*Renderer, error) {
	program, err := linkProgram(cellVertexShader, cellFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("cell program: %w", err)
	}
	r := &Renderer{
		program:     program,
		width:       width,
		height:      height,
		uProjection: gl.GetUniformLocation(program, gl.Str("uProjection\x00")),
		uSampler:    gl.GetUniformLocation(program, gl.Str("uSampler\x00")),
		uMode:       gl.GetUniformLocation(program, gl.Str("uMode\x00")),
		images:      make(map[uint32]struct{}),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	stride := int32(unsafe.Sizeof(Vertex{}))
	attribs := []struct {
		size       int32
		kind       uint32
		normalized bool
		offset     uintptr
	}{
		{2, gl.FLOAT, false, unsafe.Offsetof(Vertex{}.Pos)},
		{2, gl.FLOAT, false, unsafe.Offsetof(Vertex{}.TexCoord)},
		{4, gl.UNSIGNED_BYTE, true, unsafe.Offsetof(Vertex{}.Color)},
	}
	for i, a := range attribs {
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, a.kind, a.normalized, stride, a.offset)
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)

	r.atlas = NewGlyphAtlas()
	r.glyphTex = r.uploadAtlas()
	return r, nil
}

// FontTextureID returns the texture holding the glyph atlas.
func (r *Renderer) FontTextureID() uint32 { return r.glyphTex }

// Atlas returns the glyph atlas behind FontTextureID.
func (r *Renderer) Atlas() *GlyphAtlas { return r.atlas }

// NewCanvas returns a canvas that draws with this renderer's atlas.
func (r *Renderer) NewCanvas() *Canvas {
	return NewCanvas(r.atlas, r.glyphTex)
}

// UploadImage creates an RGBA texture from img for Canvas.SetImage.
func (r *Renderer) UploadImage(img image.Image) uint32 {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	tex := newTexture(gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.images[tex] = struct{}{}
	return tex
}

// DeleteImage releases a texture created by UploadImage. Other textures
// are left alone.
func (r *Renderer) DeleteImage(tex uint32) {
	if _, ok := r.images[tex]; !ok {
		return
	}
	delete(r.images, tex)
	gl.DeleteTextures(1, &tex)
}

// Resize sets the framebuffer size the projection maps to.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// sampleMode picks the shader mode for a command's texture.
func (r *Renderer) sampleMode(tex uint32) int32 {
	switch {
	case tex == 0:
		return sampleNone
	case tex == r.glyphTex:
		return sampleGlyph
	}
	if _, ok := r.images[tex]; ok {
		return sampleImage
	}
	return sampleGlyph
}

// Render draws one paint's DrawList. GL state touched here is put back
// before returning.
func (r *Renderer) Render(dl *DrawList) error {
	if dl == nil || len(dl.VtxBuffer) == 0 {
		return nil
	}
	dl.Finalize()

	saved := saveGLState()
	defer saved.restore()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	proj := orthoMatrix(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.uProjection, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.uSampler, 0)

	gl.BindVertexArray(r.vao)
	defer gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(dl.VtxBuffer)*int(unsafe.Sizeof(Vertex{})), gl.Ptr(dl.VtxBuffer), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(dl.IdxBuffer)*2, gl.Ptr(dl.IdxBuffer), gl.STREAM_DRAW)

	mode, bound := int32(-1), uint32(0)
	for _, cmd := range dl.CmdBuffer {
		x, y, w, h, ok := scissorFor(cmd.ClipRect, r.height)
		if cmd.ElemCount == 0 || !ok {
			continue
		}
		gl.Scissor(x, y, w, h)

		if cmd.TextureID != 0 && cmd.TextureID != bound {
			gl.BindTexture(gl.TEXTURE_2D, cmd.TextureID)
			bound = cmd.TextureID
		}
		if m := r.sampleMode(cmd.TextureID); m != mode {
			gl.Uniform1i(r.uMode, m)
			mode = m
		}
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount), gl.UNSIGNED_SHORT,
			uintptr(cmd.IndexOffset)*2, int32(cmd.VertexOffset))
	}
	return nil
}

// scissorFor converts a top-left clip rectangle (x1, y1, x2, y2) into a
// bottom-left GL scissor box clamped to the framebuffer origin. ok is
// false when nothing of the rectangle remains.
func scissorFor(clip [4]float32, fbHeight int) (x, y, w, h int32, ok bool) {
	x = int32(clip[0])
	y = int32(float32(fbHeight) - clip[3])
	w = int32(clip[2] - clip[0])
	h = int32(clip[3] - clip[1])
	if x < 0 {
		w, x = w+x, 0
	}
	if y < 0 {
		h, y = h+y, 0
	}
	return x, y, w, h, w > 0 && h > 0
}

// glState is the slice of GL state Render changes.
type glState struct {
	program            int32
	blendSrc, blendDst int32
	scissor            [4]int32
	caps               map[uint32]bool
}

func saveGLState() glState {
	var s glState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissor[0])
	s.caps = make(map[uint32]bool, 4)
	for _, c := range []uint32{gl.BLEND, gl.DEPTH_TEST, gl.CULL_FACE, gl.SCISSOR_TEST} {
		s.caps[c] = gl.IsEnabled(c)
	}
	return s
}

func (s glState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BlendFunc(uint32(s.blendSrc), uint32(s.blendDst))
	for c, on := range s.caps {
		if on {
			gl.Enable(c)
		} else {
			gl.Disable(c)
		}
	}
	gl.Scissor(s.scissor[0], s.scissor[1], s.scissor[2], s.scissor[3])
}

// Delete releases the GL objects owned by the renderer, uploaded images
// included.
func (r *Renderer) Delete() {
	for tex := range r.images {
		r.DeleteImage(tex)
	}
	if r.glyphTex != 0 {
		gl.DeleteTextures(1, &r.glyphTex)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// newTexture generates and binds a 2D texture with the given filter.
func newTexture(filter int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	return tex
}

// uploadAtlas stores the glyph coverage bitmap as a red-only texture.
func (r *Renderer) uploadAtlas() uint32 {
	tex := newTexture(gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(r.atlas.Width), int32(r.atlas.Height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(r.atlas.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func compileShader(kind uint32, source string) (uint32, error) {
	sh := gl.CreateShader(kind)
	src, free := gl.Strs(source)
	gl.ShaderSource(sh, 1, src, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return sh, nil
	}
	var n int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
	msg := make([]byte, n+1)
	gl.GetShaderInfoLog(sh, n, nil, &msg[0])
	gl.DeleteShader(sh)
	return 0, fmt.Errorf("compile: %s", msg)
}

func linkProgram(vertex, fragment string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertex)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragment)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	p := gl.CreateProgram()
	gl.AttachShader(p, vs)
	gl.AttachShader(p, fs)
	gl.LinkProgram(p)

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return p, nil
	}
	var n int32
	gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &n)
	msg := make([]byte, n+1)
	gl.GetProgramInfoLog(p, n, nil, &msg[0])
	gl.DeleteProgram(p)
	return 0, fmt.Errorf("link: %s", msg)
}

// orthoMatrix is a column-major orthographic projection.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
