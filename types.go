package rush

// TextureHandle is an opaque GPU texture identifier issued by a
// TextureStore. The core never interprets it; zero is reserved as
// "no texture" (matching GL object-name conventions).
type TextureHandle uint32

// Viewport is the drawable surface size in pixels.
type Viewport struct {
	Width, Height float32
}

// GridDimensions describes the character grid: how many cells fit the
// viewport and the fixed pitch of every cell. The pitch comes from the
// glyph repertoire's maximum advance and maximum bitmap height, so grid
// math never needs per-character cell sizes.
type GridDimensions struct {
	Rows, Cols            int
	CellWidth, CellHeight float32
}

// Cell pairs a buffered character with its current grid placement.
// Produced by Grid.RenderPass.
type Cell struct {
	Ch       rune
	Row, Col int
}

// Quad vertex layout constants. Glyph quads interleave position and
// texture coordinates; cursor quads are position-only.
const (
	QuadVertexCount    = 6 // two triangles
	GlyphVertexFloats  = 5 // x, y, z, u, v
	CursorVertexFloats = 3 // x, y, z
)

// GlyphQuad holds the six vertices of one textured glyph quad in
// normalized device coordinates, laid out for direct GPU upload.
type GlyphQuad [QuadVertexCount * GlyphVertexFloats]float32

// CursorQuad holds the six vertices of the solid cursor quad in
// normalized device coordinates.
type CursorQuad [QuadVertexCount * CursorVertexFloats]float32

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorGray        uint32 = 0xFF808080
	ColorLightGray   uint32 = 0xFFC0C0C0
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// RGBAf creates a packed color from float components (0.0-1.0).
func RGBAf(r, g, b, a float32) uint32 {
	return RGBA(
		uint8(clampf(r, 0, 1)*255),
		uint8(clampf(g, 0, 1)*255),
		uint8(clampf(b, 0, 1)*255),
		uint8(clampf(a, 0, 1)*255),
	)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// UnpackRGBAf extracts RGBA components from a packed color as floats
// in [0, 1], the form GL uniforms and clear colors want.
func UnpackRGBAf(c uint32) (r, g, b, a float32) {
	return float32(uint8(c)) / 255,
		float32(uint8(c>>8)) / 255,
		float32(uint8(c>>16)) / 255,
		float32(uint8(c>>24)) / 255
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
