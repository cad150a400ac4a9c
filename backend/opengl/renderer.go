// Package opengl is the OpenGL 4.1 backend: it implements the core's
// Renderer and TextureStore interfaces and adapts GLFW input events
// into buffer edits. It is the only package that touches GL or GLFW.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/bobby-rust/rush"
)

// Renderer draws glyph and cursor quads on an OpenGL 4.1 core context.
// It implements rush.Renderer and rush.TextureStore.
//
// Quad positions arrive already in normalized device coordinates, so
// neither program carries a projection uniform. Each program owns one
// dynamic vertex buffer sized for exactly one quad; DrawGlyph and
// DrawCursor upload six vertices and issue one draw call apiece.
//
// The context must be current on the calling goroutine for every
// method, construction included.
type Renderer struct {
	glyphProgram  uint32
	cursorProgram uint32

	glyphVAO, glyphVBO   uint32
	cursorVAO, cursorVBO uint32

	textColorLoc   int32
	cursorColorLoc int32

	style rush.Style
}

const glyphVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
` + "\x00"

// Glyph textures are single-channel coverage; the R channel becomes
// alpha and the text color supplies RGB.
const glyphFragmentShader = `
#version 410 core
in vec2 TexCoord;

out vec4 FragColor;

uniform sampler2D glyphTexture;
uniform vec4 textColor;

void main() {
    FragColor = vec4(textColor.rgb, textColor.a * texture(glyphTexture, TexCoord).r);
}
` + "\x00"

const cursorVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;

void main() {
    gl_Position = vec4(aPos, 1.0);
}
` + "\x00"

const cursorFragmentShader = `
#version 410 core
out vec4 FragColor;

uniform vec4 cursorColor;

void main() {
    FragColor = cursorColor;
}
` + "\x00"

// NewRenderer builds both shader programs and the per-quad vertex
// buffers, and sets the initial viewport. gl.Init must have succeeded
// on the current context first.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{style: rush.DefaultStyle()}

	var err error
	r.glyphProgram, err = createShaderProgram(glyphVertexShader, glyphFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("glyph shader: %w", err)
	}
	r.cursorProgram, err = createShaderProgram(cursorVertexShader, cursorFragmentShader)
	if err != nil {
		gl.DeleteProgram(r.glyphProgram)
		return nil, fmt.Errorf("cursor shader: %w", err)
	}

	r.textColorLoc = gl.GetUniformLocation(r.glyphProgram, gl.Str("textColor\x00"))
	r.cursorColorLoc = gl.GetUniformLocation(r.cursorProgram, gl.Str("cursorColor\x00"))

	// The glyph sampler always reads texture unit 0.
	gl.UseProgram(r.glyphProgram)
	gl.Uniform1i(gl.GetUniformLocation(r.glyphProgram, gl.Str("glyphTexture\x00")), 0)

	// Glyph quad buffer: 6 vertices of x, y, z, u, v.
	gl.GenVertexArrays(1, &r.glyphVAO)
	gl.BindVertexArray(r.glyphVAO)
	gl.GenBuffers(1, &r.glyphVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.glyphVBO)
	gl.BufferData(gl.ARRAY_BUFFER, rush.QuadVertexCount*rush.GlyphVertexFloats*4, nil, gl.DYNAMIC_DRAW)

	glyphStride := int32(rush.GlyphVertexFloats * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, glyphStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, glyphStride, 3*4)
	gl.EnableVertexAttribArray(1)

	// Cursor quad buffer: 6 vertices of x, y, z.
	gl.GenVertexArrays(1, &r.cursorVAO)
	gl.BindVertexArray(r.cursorVAO)
	gl.GenBuffers(1, &r.cursorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cursorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, rush.QuadVertexCount*rush.CursorVertexFloats*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(rush.CursorVertexFloats*4), 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	// This renderer owns the context: blending stays on for the life of
	// the program.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.Resize(width, height)

	return r, nil
}

// SetStyle replaces the palette used for clear, text, and cursor.
func (r *Renderer) SetStyle(s rush.Style) {
	r.style = s
}

// Resize updates the GL viewport to the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear erases the frame to the background color.
func (r *Renderer) Clear() {
	cr, cg, cb, ca := rush.UnpackRGBAf(r.style.Background)
	gl.ClearColor(cr, cg, cb, ca)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawGlyph uploads one glyph quad into the shared dynamic buffer,
// binds the glyph's texture, and draws its two triangles.
func (r *Renderer) DrawGlyph(tex rush.TextureHandle, quad *rush.GlyphQuad) error {
	gl.UseProgram(r.glyphProgram)

	fr, fg, fb, fa := rush.UnpackRGBAf(r.style.Foreground)
	gl.Uniform4f(r.textColorLoc, fr, fg, fb, fa)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))

	gl.BindVertexArray(r.glyphVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.glyphVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad[:]))
	gl.DrawArrays(gl.TRIANGLES, 0, rush.QuadVertexCount)

	gl.BindVertexArray(0)
	return nil
}

// DrawCursor uploads the cursor quad into its dedicated buffer and
// draws it solid in the cursor color.
func (r *Renderer) DrawCursor(quad *rush.CursorQuad) error {
	gl.UseProgram(r.cursorProgram)

	cr, cg, cb, ca := rush.UnpackRGBAf(r.style.Cursor)
	gl.Uniform4f(r.cursorColorLoc, cr, cg, cb, ca)

	gl.BindVertexArray(r.cursorVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cursorVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad[:]))
	gl.DrawArrays(gl.TRIANGLES, 0, rush.QuadVertexCount)

	gl.BindVertexArray(0)
	return nil
}

// CreateGlyphTexture uploads a tight 8-bit coverage bitmap as a
// single-channel texture with edge-clamped, linearly filtered sampling.
// Zero-sized bitmaps still allocate a valid empty texture so every
// repertoire character gets a handle.
func (r *Renderer) CreateGlyphTexture(width, height int, pix []byte) (rush.TextureHandle, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("glyph texture size %dx%d", width, height)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	// Coverage rows are tightly packed, no 4-byte row padding.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	if len(pix) > 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, nil)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return rush.TextureHandle(tex), nil
}

// DeleteTexture releases a texture created by CreateGlyphTexture.
func (r *Renderer) DeleteTexture(tex rush.TextureHandle) {
	t := uint32(tex)
	if t != 0 {
		gl.DeleteTextures(1, &t)
	}
}

// Delete releases all GL resources owned by the renderer.
func (r *Renderer) Delete() {
	if r.glyphVBO != 0 {
		gl.DeleteBuffers(1, &r.glyphVBO)
	}
	if r.glyphVAO != 0 {
		gl.DeleteVertexArrays(1, &r.glyphVAO)
	}
	if r.cursorVBO != 0 {
		gl.DeleteBuffers(1, &r.cursorVBO)
	}
	if r.cursorVAO != 0 {
		gl.DeleteVertexArrays(1, &r.cursorVAO)
	}
	if r.glyphProgram != 0 {
		gl.DeleteProgram(r.glyphProgram)
	}
	if r.cursorProgram != 0 {
		gl.DeleteProgram(r.cursorProgram)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	csource, free := gl.Strs(vertexSource)
	gl.ShaderSource(vertexShader, 1, csource, nil)
	free()
	gl.CompileShader(vertexShader)

	var status int32
	gl.GetShaderiv(vertexShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(vertexShader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(vertexShader, logLength, nil, &log[0])
		return 0, fmt.Errorf("vertex shader compilation failed: %s", string(log))
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	csource, free = gl.Strs(fragmentSource)
	gl.ShaderSource(fragmentShader, 1, csource, nil)
	free()
	gl.CompileShader(fragmentShader)

	gl.GetShaderiv(fragmentShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(fragmentShader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(fragmentShader, logLength, nil, &log[0])
		return 0, fmt.Errorf("fragment shader compilation failed: %s", string(log))
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	// Shaders are linked into the program now.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}
