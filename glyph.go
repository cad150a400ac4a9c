package rush

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// RepertoireSize bounds the cached character set: ASCII codes
// 0 through RepertoireSize-1 are rasterized at build time.
const RepertoireSize = 128

// Bitmap is the rasterizer's hand-off for one character: tightly packed
// 8-bit coverage rows in top-down order plus placement metrics. Runes
// the face cannot map rasterize as the zero Bitmap (an empty cell), so
// control characters in the repertoire never fail the build.
type Bitmap struct {
	Width, Height      int
	Pix                []byte // len = Width*Height, row-major, top row first
	BearingX, BearingY int    // pen origin to bitmap top-left; BearingY is above the baseline
	Advance            fixed.Int26_6
}

// GlyphSource rasterizes characters at a fixed pixel size. It abstracts
// the font library so the cache can be built (and tested) without one.
//
// Implementations: typeface.Face, test fakes.
type GlyphSource interface {
	// Rasterize renders one character. Errors are fatal to cache
	// construction and should wrap ErrGlyphRaster.
	Rasterize(ch rune) (Bitmap, error)
}

// TextureStore owns GPU texture creation for glyph bitmaps. The
// OpenGL backend implements it with edge-clamped, linearly filtered
// single-channel textures; tests implement it in memory.
type TextureStore interface {
	// CreateGlyphTexture uploads a tight 8-bit coverage bitmap and
	// returns its handle. Zero-sized bitmaps still yield a valid
	// (empty) texture so every repertoire character has one.
	CreateGlyphTexture(width, height int, pix []byte) (TextureHandle, error)

	// DeleteTexture releases a texture created by CreateGlyphTexture.
	DeleteTexture(tex TextureHandle)
}

// Glyph is one cached character: its GPU texture and the metrics quad
// construction needs. Glyphs are owned by the cache; borrowers must not
// outlive it.
type Glyph struct {
	Texture            TextureHandle
	Width, Height      int // bitmap size in pixels
	BearingX, BearingY int
	Advance            fixed.Int26_6 // 26.6 fixed point (1/64 px)
}

// GlyphCache rasterizes the full character repertoire once at build
// time and owns the resulting GPU textures for the life of the program.
// The maximum advance and maximum bitmap height observed across the
// repertoire become the grid's uniform cell pitch: every cell is the
// same size no matter which glyph renders there.
//
// Not safe for concurrent use.
type GlyphCache struct {
	glyphs       [RepertoireSize]Glyph
	store        TextureStore
	maxAdvancePx int
	maxHeightPx  int
}

// BuildGlyphCache rasterizes character codes 0..RepertoireSize-1 from
// src and uploads each bitmap through store. Any failure tears down the
// textures created so far and returns the error: a partial cache is
// useless because the cell pitch depends on scanning every character.
func BuildGlyphCache(src GlyphSource, store TextureStore) (*GlyphCache, error) {
	c := &GlyphCache{store: store}

	for code := 0; code < RepertoireSize; code++ {
		bm, err := src.Rasterize(rune(code))
		if err != nil {
			c.deleteThrough(code)
			return nil, fmt.Errorf("rasterize %q: %w", rune(code), err)
		}

		tex, err := store.CreateGlyphTexture(bm.Width, bm.Height, bm.Pix)
		if err != nil {
			c.deleteThrough(code)
			return nil, fmt.Errorf("upload glyph %q: %w", rune(code), err)
		}

		c.glyphs[code] = Glyph{
			Texture:  tex,
			Width:    bm.Width,
			Height:   bm.Height,
			BearingX: bm.BearingX,
			BearingY: bm.BearingY,
			Advance:  bm.Advance,
		}

		if adv := bm.Advance.Floor(); adv > c.maxAdvancePx {
			c.maxAdvancePx = adv
		}
		if bm.Height > c.maxHeightPx {
			c.maxHeightPx = bm.Height
		}
	}

	if c.maxAdvancePx <= 0 || c.maxHeightPx <= 0 {
		c.deleteThrough(RepertoireSize)
		return nil, fmt.Errorf("glyph repertoire yields no usable cell pitch (advance %dpx, height %dpx)",
			c.maxAdvancePx, c.maxHeightPx)
	}

	return c, nil
}

// Get returns the cached glyph for ch. Characters outside the
// repertoire fail with ErrUnsupportedChar; treat that as a recoverable
// per-cell skip, not a frame abort.
func (c *GlyphCache) Get(ch rune) (Glyph, error) {
	if ch < 0 || ch >= RepertoireSize {
		return Glyph{}, fmt.Errorf("%w: %q", ErrUnsupportedChar, ch)
	}
	return c.glyphs[ch], nil
}

// MaxAdvancePx is the widest advance in the repertoire, in whole
// pixels. It is the grid's cell width.
func (c *GlyphCache) MaxAdvancePx() int { return c.maxAdvancePx }

// MaxHeightPx is the tallest bitmap in the repertoire, in pixels. It is
// the grid's cell height.
func (c *GlyphCache) MaxHeightPx() int { return c.maxHeightPx }

// CellPitch returns the uniform cell size derived from the repertoire,
// ready to hand to NewGrid.
func (c *GlyphCache) CellPitch() (width, height float32) {
	return float32(c.maxAdvancePx), float32(c.maxHeightPx)
}

// Delete releases every glyph texture. The cache is unusable afterward.
func (c *GlyphCache) Delete() {
	c.deleteThrough(RepertoireSize)
}

// deleteThrough frees textures for codes [0, n), the cleanup path for
// both teardown and mid-build failure.
func (c *GlyphCache) deleteThrough(n int) {
	for code := 0; code < n && code < RepertoireSize; code++ {
		if c.glyphs[code].Texture != 0 {
			c.store.DeleteTexture(c.glyphs[code].Texture)
			c.glyphs[code] = Glyph{}
		}
	}
}
