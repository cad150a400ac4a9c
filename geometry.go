package rush

import (
	"fmt"
	"math"
)

// DefaultBaselineFraction positions the glyph baseline this fraction of
// the cell height above the cell bottom, leaving room for descenders.
// It is an empirical placement, not derived from font metrics; tune via
// WithBaselineFraction if a face wants something else.
const DefaultBaselineFraction = 0.20

// QuadBuilder converts cell coordinates and glyph metrics into vertex
// data in normalized device coordinates. Its methods are pure: same
// inputs, same quad, no state touched.
type QuadBuilder struct {
	// BaselineFraction of the cell height between the cell bottom and
	// the glyph baseline.
	BaselineFraction float32
}

// NewQuadBuilder returns a builder with the default baseline placement.
func NewQuadBuilder() QuadBuilder {
	return QuadBuilder{BaselineFraction: DefaultBaselineFraction}
}

// GlyphQuad builds the six textured vertices for glyph g in cell
// (row, col). Cell origin math: cell width in NDC is 2/cols, height
// 2/rows; column 0 starts at x=-1 and row 0 hangs from y=+1. The glyph
// bitmap is converted from pixels to NDC against the viewport, clamped
// to the cell so no glyph bleeds into a neighbor, centered horizontally
// in the leftover width, and placed vertically from its bearing above
// the baseline. Texture coordinates keep the rasterizer's top-down row
// order (v=0 at the glyph top).
//
// Fails with ErrInvalidGeometry for non-positive or non-finite grid and
// viewport dimensions, or negative cell coordinates. Rows at or past
// the grid bottom are valid: the cursor legitimately sits one row below
// a just-filled grid and the GPU clips it.
func (b QuadBuilder) GlyphQuad(g Glyph, row, col int, grid GridDimensions, vp Viewport) (GlyphQuad, error) {
	if err := validateCell(row, col, grid); err != nil {
		return GlyphQuad{}, err
	}
	if !finitePositive(vp.Width) || !finitePositive(vp.Height) {
		return GlyphQuad{}, fmt.Errorf("%w: viewport %gx%g", ErrInvalidGeometry, vp.Width, vp.Height)
	}

	cw := 2 / float32(grid.Cols)
	ch := 2 / float32(grid.Rows)
	cellX := -1 + float32(col)*cw
	cellY := 1 - float32(row+1)*ch

	// Bitmap size in NDC, clamped to the cell.
	gw := minf(2*float32(g.Width)/vp.Width, cw)
	gh := minf(2*float32(g.Height)/vp.Height, ch)

	x0 := cellX + (cw-gw)/2

	// Baseline sits BaselineFraction up the cell; the bitmap top rises
	// its bearing above that. Shift (never shrink) the quad back inside
	// the cell when an extreme bearing would push it out.
	yTop := cellY + b.BaselineFraction*ch + 2*float32(g.BearingY)/vp.Height
	if yTop > cellY+ch {
		yTop = cellY + ch
	}
	y0 := yTop - gh
	if y0 < cellY {
		y0 = cellY
		yTop = y0 + gh
	}

	x1 := x0 + gw
	return GlyphQuad{
		x0, yTop, 0, 0, 0,
		x0, y0, 0, 0, 1,
		x1, y0, 0, 1, 1,
		x0, yTop, 0, 0, 0,
		x1, y0, 0, 1, 1,
		x1, yTop, 0, 1, 0,
	}, nil
}

// CursorQuad builds the six position-only vertices of a solid quad
// covering cell (row, col) entirely. The cursor needs no viewport: cell
// corners are pure functions of the grid.
func (b QuadBuilder) CursorQuad(row, col int, grid GridDimensions) (CursorQuad, error) {
	if err := validateCell(row, col, grid); err != nil {
		return CursorQuad{}, err
	}

	cw := 2 / float32(grid.Cols)
	ch := 2 / float32(grid.Rows)
	x0 := -1 + float32(col)*cw
	y0 := 1 - float32(row+1)*ch
	x1 := x0 + cw
	y1 := y0 + ch

	return CursorQuad{
		x0, y1, 0,
		x0, y0, 0,
		x1, y0, 0,
		x0, y1, 0,
		x1, y0, 0,
		x1, y1, 0,
	}, nil
}

// validateCell rejects inputs a draw could not survive: zero or
// negative grid extents and negative cell coordinates.
func validateCell(row, col int, grid GridDimensions) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("%w: cell (%d,%d)", ErrInvalidGeometry, row, col)
	}
	if grid.Rows <= 0 || grid.Cols <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidGeometry, grid.Cols, grid.Rows)
	}
	return nil
}

// finitePositive reports whether v is a real, strictly positive number.
func finitePositive(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
