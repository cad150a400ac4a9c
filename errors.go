package rush

import "errors"

// Error taxonomy. Initialization failures (font load, rasterization)
// are fatal: the grid's cell pitch depends on scanning the full glyph
// repertoire, so no partial cache is usable. Per-character and geometry
// errors are recoverable and must never abort the render loop.
var (
	// ErrFontLoad reports that a font file could not be opened or parsed.
	ErrFontLoad = errors.New("font load failed")

	// ErrGlyphRaster reports that a repertoire character could not be
	// rasterized or uploaded.
	ErrGlyphRaster = errors.New("glyph rasterization failed")

	// ErrUnsupportedChar reports a character outside the cached
	// repertoire. Callers skip the cell or substitute a fallback glyph.
	ErrUnsupportedChar = errors.New("character outside glyph repertoire")

	// ErrInvalidGeometry reports non-positive or non-finite dimensions
	// passed to geometry construction.
	ErrInvalidGeometry = errors.New("invalid geometry input")
)
