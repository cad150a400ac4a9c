package rush

import "errors"

// Renderer is the narrow GPU surface the frame loop draws through.
// Every operation takes explicit handles and vertex data; the core
// never relies on ambient "currently bound" graphics state.
type Renderer interface {
	// Clear erases the frame to the background color.
	Clear()

	// DrawGlyph uploads one glyph quad into the shared dynamic vertex
	// buffer, binds the glyph's texture, and issues one draw call.
	DrawGlyph(tex TextureHandle, quad *GlyphQuad) error

	// DrawCursor uploads the cursor quad into its dedicated buffer and
	// draws it solid.
	DrawCursor(quad *CursorQuad) error
}

// FrameRenderer orchestrates one screen refresh: walk the visible
// cells, draw one textured quad per character, then draw the cursor at
// the next-write cell. Quads are uploaded and drawn one at a time — the
// deliberate simplicity of this design — so each glyph's own texture
// can be bound for its draw.
type FrameRenderer struct {
	backend  Renderer
	builder  QuadBuilder
	fallback rune // 0 means skip unsupported characters
}

// Option configures a FrameRenderer.
type Option func(*FrameRenderer)

// WithBaselineFraction overrides the vertical baseline placement used
// for glyph quads. See DefaultBaselineFraction.
func WithBaselineFraction(f float32) Option {
	return func(fr *FrameRenderer) { fr.builder.BaselineFraction = f }
}

// WithFallback substitutes ch for characters outside the glyph
// repertoire instead of skipping their cells.
func WithFallback(ch rune) Option {
	return func(fr *FrameRenderer) { fr.fallback = ch }
}

// NewFrameRenderer creates a frame renderer drawing through backend.
func NewFrameRenderer(backend Renderer, opts ...Option) *FrameRenderer {
	fr := &FrameRenderer{
		backend: backend,
		builder: NewQuadBuilder(),
	}
	for _, opt := range opts {
		opt(fr)
	}
	return fr
}

// RenderFrame draws one frame from the grid's current state. The render
// pass both scrolls the grid if needed and recomputes the cursor cell.
// Unsupported characters fall back or skip per configuration; geometry
// rejections skip the offending cell. Backend errors abort the frame.
func (fr *FrameRenderer) RenderFrame(g *Grid, cache *GlyphCache) error {
	fr.backend.Clear()

	dims := g.Dimensions()
	vp := g.Viewport()

	for _, cell := range g.RenderPass() {
		glyph, err := cache.Get(cell.Ch)
		if errors.Is(err, ErrUnsupportedChar) {
			if fr.fallback == 0 {
				continue
			}
			if glyph, err = cache.Get(fr.fallback); err != nil {
				continue
			}
		} else if err != nil {
			continue
		}

		quad, err := fr.builder.GlyphQuad(glyph, cell.Row, cell.Col, dims, vp)
		if err != nil {
			continue
		}
		if err := fr.backend.DrawGlyph(glyph.Texture, &quad); err != nil {
			return err
		}
	}

	row, col := g.NextCell()
	quad, err := fr.builder.CursorQuad(row, col, dims)
	if err != nil {
		// Geometry rejections are recoverable: drop the cursor this
		// frame rather than abort.
		return nil
	}
	return fr.backend.DrawCursor(&quad)
}
