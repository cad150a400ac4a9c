package rush

import "fmt"

// Grid owns the text buffer and its mapping onto the character grid:
// rows/cols derived from the viewport and cell pitch, a display offset
// for scrolled-off history, and the next-write cell. The buffer is
// append/delete-at-tail only and grows without bound; scrolled-off
// history is kept, not evicted.
//
// The next cell is never tracked incrementally. Every render pass
// recomputes it by walking the visible slice, so it cannot drift from
// the buffer no matter how edits and resizes interleave.
//
// Not safe for concurrent use: callers must finish the input phase
// (Append/DeleteLast/Resize) before the render phase reads.
type Grid struct {
	cellW, cellH float32
	vp           Viewport
	rows, cols   int

	content []rune
	offset  int // leading characters elided by scrolling; always a multiple of cols

	nextRow, nextCol int

	cells []Cell // scratch reused by RenderPass
}

// NewGrid creates a grid for the given cell pitch and viewport. The
// pitch comes from GlyphCache.CellPitch. Non-positive or non-finite
// pitch fails with ErrInvalidGeometry.
func NewGrid(cellWidth, cellHeight float32, vp Viewport) (*Grid, error) {
	if !finitePositive(cellWidth) || !finitePositive(cellHeight) {
		return nil, fmt.Errorf("%w: cell pitch %gx%g", ErrInvalidGeometry, cellWidth, cellHeight)
	}

	g := &Grid{cellW: cellWidth, cellH: cellHeight}
	g.Resize(vp.Width, vp.Height)
	return g, nil
}

// Append adds one character to the end of the buffer. Placement is
// derived lazily at render time, so this is O(1).
func (g *Grid) Append(ch rune) {
	g.content = append(g.content, ch)
}

// DeleteLast removes the last buffered character. Deleting from an
// empty buffer is a no-op, not an error.
func (g *Grid) DeleteLast() {
	if len(g.content) > 0 {
		g.content = g.content[:len(g.content)-1]
	}
}

// Resize updates the viewport and recomputes rows/cols from the fixed
// cell pitch. Non-positive or NaN dimensions clamp to one pixel, and
// rows/cols never drop below one. Buffer content is untouched; its grid
// placement reflows on the next render pass. The display offset is
// realigned down to a whole row of the new width.
func (g *Grid) Resize(width, height float32) {
	if !(width > 0) {
		width = 1
	}
	if !(height > 0) {
		height = 1
	}
	g.vp = Viewport{Width: width, Height: height}

	g.cols = int(width / g.cellW)
	if g.cols < 1 {
		g.cols = 1
	}
	g.rows = int(height / g.cellH)
	if g.rows < 1 {
		g.rows = 1
	}

	g.offset -= g.offset % g.cols
}

// RenderPass scrolls if needed and maps the visible buffer slice onto
// grid cells. It returns one Cell per visible character in draw order
// and records the position after the last one as the next cell. The
// returned slice is reused by the following call.
//
// A pass with no intervening mutation is idempotent: the same cells and
// the same next cell come back every time.
func (g *Grid) RenderPass() []Cell {
	// Tail deletions can leave the offset past the buffer; scroll back
	// in whole rows until it is inside again.
	for g.offset > len(g.content) {
		g.offset -= g.cols
	}

	// Scroll forward one whole row at a time until the visible slice
	// fits the grid. Looping keeps the pass idempotent after a
	// shrinking resize, not just after single appends.
	for len(g.content)-g.offset > g.rows*g.cols {
		g.offset += g.cols
	}

	g.cells = g.cells[:0]
	row, col := 0, 0
	for _, ch := range g.content[g.offset:] {
		g.cells = append(g.cells, Cell{Ch: ch, Row: row, Col: col})
		if col == g.cols-1 {
			row, col = row+1, 0
		} else {
			col++
		}
	}
	g.nextRow, g.nextCol = row, col

	return g.cells
}

// NextCell reports the cursor cell computed by the most recent
// RenderPass: the position immediately after the last rendered
// character. On a grid that just filled completely it sits one row past
// the bottom until the next pass scrolls.
func (g *Grid) NextCell() (row, col int) {
	return g.nextRow, g.nextCol
}

// Dimensions returns the current grid geometry.
func (g *Grid) Dimensions() GridDimensions {
	return GridDimensions{
		Rows:       g.rows,
		Cols:       g.cols,
		CellWidth:  g.cellW,
		CellHeight: g.cellH,
	}
}

// Viewport returns the viewport last pushed by Resize.
func (g *Grid) Viewport() Viewport { return g.vp }

// Len reports the total buffered character count, including
// scrolled-off history.
func (g *Grid) Len() int { return len(g.content) }

// DisplayOffset reports how many leading characters are elided by
// scrolling. It is always a multiple of the current column count.
func (g *Grid) DisplayOffset() int { return g.offset }

// String returns the full buffer contents, history included.
func (g *Grid) String() string { return string(g.content) }
