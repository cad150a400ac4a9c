package rush_test

import (
	"errors"
	"math"
	"testing"

	"github.com/bobby-rust/rush"
)

var testGrid = rush.GridDimensions{Rows: 24, Cols: 80, CellWidth: 10, CellHeight: 25}

var testViewport = rush.Viewport{Width: 800, Height: 600}

// quadBounds extracts the x/y extents of a glyph quad.
func quadBounds(q rush.GlyphQuad) (minX, minY, maxX, maxY float32) {
	minX, minY = float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY = float32(math.Inf(-1)), float32(math.Inf(-1))
	for v := 0; v < rush.QuadVertexCount; v++ {
		x := q[v*rush.GlyphVertexFloats]
		y := q[v*rush.GlyphVertexFloats+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return minX, minY, maxX, maxY
}

// Geometry scenario: cell (0,0) of an 80x24 grid originates at the NDC
// top-left, one cell height below y=+1.
func TestCursorQuadCellOrigin(t *testing.T) {
	b := rush.NewQuadBuilder()

	quad, err := b.CursorQuad(0, 0, testGrid)
	if err != nil {
		t.Fatalf("CursorQuad: %v", err)
	}

	cellW := float32(2) / 80
	cellH := float32(2) / 24

	// First vertex is the cell's top-left corner.
	if got := quad[0]; got != -1.0 {
		t.Errorf("expected x=-1.0, got %g", got)
	}
	if got := quad[1]; got != 1.0 {
		t.Errorf("expected top y=1.0, got %g", got)
	}

	// The quad spans exactly one cell.
	var minX, minY, maxX, maxY float32 = 2, 2, -2, -2
	for v := 0; v < rush.QuadVertexCount; v++ {
		x, y := quad[v*rush.CursorVertexFloats], quad[v*rush.CursorVertexFloats+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	if minX != -1 || maxX != -1+cellW {
		t.Errorf("expected x span [-1, %g], got [%g, %g]", -1+cellW, minX, maxX)
	}
	if minY != 1-cellH || maxY != 1 {
		t.Errorf("expected y span [%g, 1], got [%g, %g]", 1-cellH, minY, maxY)
	}
}

func TestCursorQuadAddressesCells(t *testing.T) {
	b := rush.NewQuadBuilder()

	quad, err := b.CursorQuad(1, 2, testGrid)
	if err != nil {
		t.Fatalf("CursorQuad: %v", err)
	}

	cellW := float32(2) / 80
	cellH := float32(2) / 24
	wantX := -1 + 2*cellW
	wantY := 1 - 2*cellH

	if got := quad[3]; got != wantX { // second vertex: bottom-left x
		t.Errorf("expected x=%g, got %g", wantX, got)
	}
	if got := quad[4]; got != wantY {
		t.Errorf("expected y=%g, got %g", wantY, got)
	}
}

// A glyph never extends past its cell's right edge, whatever its
// bitmap size.
func TestGlyphQuadStaysInsideCell(t *testing.T) {
	b := rush.NewQuadBuilder()
	glyph := rush.Glyph{Width: 10, Height: 20, BearingY: 18}

	quad, err := b.GlyphQuad(glyph, 0, 0, testGrid, testViewport)
	if err != nil {
		t.Fatalf("GlyphQuad: %v", err)
	}

	cellW := float32(2) / 80
	cellH := float32(2) / 24
	minX, minY, maxX, maxY := quadBounds(quad)

	if maxX > -1+cellW {
		t.Errorf("glyph right edge %g exceeds cell edge %g", maxX, -1+cellW)
	}
	if minX < -1 {
		t.Errorf("glyph left edge %g exceeds cell edge -1", minX)
	}
	if maxY > 1 {
		t.Errorf("glyph top %g exceeds cell top 1", maxY)
	}
	if minY < 1-cellH {
		t.Errorf("glyph bottom %g exceeds cell bottom %g", minY, 1-cellH)
	}
}

// Oversized bitmaps clamp to the cell rather than bleeding into
// neighbors.
func TestGlyphQuadClampsOversizedGlyph(t *testing.T) {
	b := rush.NewQuadBuilder()
	glyph := rush.Glyph{Width: 500, Height: 400, BearingY: 300}

	quad, err := b.GlyphQuad(glyph, 3, 7, testGrid, testViewport)
	if err != nil {
		t.Fatalf("GlyphQuad: %v", err)
	}

	cellW := float32(2) / 80
	cellH := float32(2) / 24
	cellX := -1 + 7*cellW
	cellY := 1 - 4*cellH
	minX, minY, maxX, maxY := quadBounds(quad)

	if minX < cellX || maxX > cellX+cellW {
		t.Errorf("x span [%g, %g] outside cell [%g, %g]", minX, maxX, cellX, cellX+cellW)
	}
	if minY < cellY || maxY > cellY+cellH {
		t.Errorf("y span [%g, %g] outside cell [%g, %g]", minY, maxY, cellY, cellY+cellH)
	}
}

// An empty bitmap (control characters, space) produces a degenerate
// quad, not an error.
func TestGlyphQuadEmptyBitmap(t *testing.T) {
	b := rush.NewQuadBuilder()

	quad, err := b.GlyphQuad(rush.Glyph{}, 0, 0, testGrid, testViewport)
	if err != nil {
		t.Fatalf("GlyphQuad: %v", err)
	}

	minX, _, maxX, _ := quadBounds(quad)
	if minX != maxX {
		t.Errorf("expected zero-width quad, got x span [%g, %g]", minX, maxX)
	}
}

// Texture coordinates keep the rasterizer's top-down row order: v=0 at
// the quad top, v=1 at the bottom.
func TestGlyphQuadTextureOrientation(t *testing.T) {
	b := rush.NewQuadBuilder()
	glyph := rush.Glyph{Width: 8, Height: 16, BearingY: 14}

	quad, err := b.GlyphQuad(glyph, 0, 0, testGrid, testViewport)
	if err != nil {
		t.Fatalf("GlyphQuad: %v", err)
	}

	_, _, _, maxY := quadBounds(quad)
	for v := 0; v < rush.QuadVertexCount; v++ {
		y := quad[v*rush.GlyphVertexFloats+1]
		tv := quad[v*rush.GlyphVertexFloats+4]
		if y == maxY && tv != 0 {
			t.Errorf("vertex %d: top of quad has v=%g, expected 0", v, tv)
		}
	}
}

// Larger baseline fractions lift the glyph within its cell.
func TestBaselineFractionRaisesGlyph(t *testing.T) {
	glyph := rush.Glyph{Width: 8, Height: 10, BearingY: 9}

	low, err := rush.QuadBuilder{BaselineFraction: 0.1}.GlyphQuad(glyph, 0, 0, testGrid, testViewport)
	if err != nil {
		t.Fatalf("GlyphQuad: %v", err)
	}
	high, err := rush.QuadBuilder{BaselineFraction: 0.4}.GlyphQuad(glyph, 0, 0, testGrid, testViewport)
	if err != nil {
		t.Fatalf("GlyphQuad: %v", err)
	}

	_, lowBottom, _, _ := quadBounds(low)
	_, highBottom, _, _ := quadBounds(high)
	if highBottom <= lowBottom {
		t.Errorf("expected higher baseline to raise glyph: %g vs %g", highBottom, lowBottom)
	}
}

// The cursor sits one row past the bottom after a grid fills exactly;
// that row is valid input and the GPU clips it.
func TestCursorQuadBelowGridIsValid(t *testing.T) {
	b := rush.NewQuadBuilder()
	if _, err := b.CursorQuad(testGrid.Rows, 0, testGrid); err != nil {
		t.Errorf("expected row past the bottom to be valid, got %v", err)
	}
}

func TestInvalidGeometryInputs(t *testing.T) {
	b := rush.NewQuadBuilder()
	glyph := rush.Glyph{Width: 8, Height: 16}

	cases := []struct {
		name string
		grid rush.GridDimensions
		vp   rush.Viewport
		row  int
		col  int
	}{
		{"zero cols", rush.GridDimensions{Rows: 24}, testViewport, 0, 0},
		{"negative rows", rush.GridDimensions{Rows: -1, Cols: 80}, testViewport, 0, 0},
		{"negative cell", testGrid, testViewport, -1, 0},
		{"zero viewport", testGrid, rush.Viewport{}, 0, 0},
		{"nan viewport", testGrid, rush.Viewport{Width: float32(math.NaN()), Height: 600}, 0, 0},
		{"inf viewport", testGrid, rush.Viewport{Width: 800, Height: float32(math.Inf(1))}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.GlyphQuad(glyph, tc.row, tc.col, tc.grid, tc.vp)
			if !errors.Is(err, rush.ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}

	if _, err := b.CursorQuad(-1, 0, testGrid); !errors.Is(err, rush.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for negative cursor cell, got %v", err)
	}
}

func BenchmarkGlyphQuad(b *testing.B) {
	builder := rush.NewQuadBuilder()
	glyph := rush.Glyph{Width: 10, Height: 20, BearingX: 1, BearingY: 18}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = builder.GlyphQuad(glyph, 12, 40, testGrid, testViewport)
	}
}
