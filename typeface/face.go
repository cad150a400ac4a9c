// Package typeface rasterizes characters from scalable fonts for the
// glyph cache, on top of golang.org/x/image/font/opentype. A Face is
// the rush.GlyphSource the cache builds from.
package typeface

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/bobby-rust/rush"
)

// DefaultDPI makes one point equal one pixel, so the configured pixel
// size maps directly to the rasterized glyph height.
const DefaultDPI = 72

// Option configures face construction.
type Option func(*options)

type options struct {
	dpi     float64
	hinting font.Hinting
}

// WithDPI overrides the dots-per-inch the face is sized at. The default
// of 72 keeps pixel size and point size equal.
func WithDPI(dpi float64) Option {
	return func(o *options) { o.dpi = dpi }
}

// WithHinting overrides the rasterizer hinting mode. The default is
// full hinting.
func WithHinting(h font.Hinting) Option {
	return func(o *options) { o.hinting = h }
}

// Face is one scalable font fixed at a pixel size, ready to rasterize
// the glyph repertoire. Not safe for concurrent use.
type Face struct {
	face      font.Face
	pixelSize int
}

// Open reads and parses the font file at path and fixes it at
// pixelSize. Failures to read or parse wrap rush.ErrFontLoad.
func Open(path string, pixelSize int, opts ...Option) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rush.ErrFontLoad, path, err)
	}
	f, err := New(data, pixelSize, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// New parses font data from memory and fixes it at pixelSize. Parse
// failures wrap rush.ErrFontLoad.
func New(data []byte, pixelSize int, opts ...Option) (*Face, error) {
	if pixelSize <= 0 {
		return nil, fmt.Errorf("%w: pixel size %d", rush.ErrFontLoad, pixelSize)
	}

	o := options{dpi: DefaultDPI, hinting: font.HintingFull}
	for _, opt := range opts {
		opt(&o)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %v", rush.ErrFontLoad, err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(pixelSize),
		DPI:     o.dpi,
		Hinting: o.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: face at %dpx: %v", rush.ErrFontLoad, pixelSize, err)
	}

	return &Face{face: face, pixelSize: pixelSize}, nil
}

// Rasterize renders one character at the face's pixel size. The glyph
// is drawn at a zero pen position, so the returned bearings are offsets
// from the pen origin and BearingY counts pixels above the baseline.
// Runes the font cannot map return the zero Bitmap (an empty cell)
// rather than an error, so control characters in the repertoire never
// fail a cache build.
func (f *Face) Rasterize(ch rune) (rush.Bitmap, error) {
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, ch)
	if !ok {
		return rush.Bitmap{}, nil
	}

	bm := rush.Bitmap{
		Width:    dr.Dx(),
		Height:   dr.Dy(),
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		Advance:  advance,
	}

	if bm.Width > 0 && bm.Height > 0 {
		// Copy the mask into a tightly packed coverage bitmap; the GPU
		// upload wants stride == width.
		dst := image.NewAlpha(image.Rect(0, 0, bm.Width, bm.Height))
		draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)
		bm.Pix = dst.Pix
	}

	return bm, nil
}

// PixelSize reports the pixel size the face was fixed at.
func (f *Face) PixelSize() int { return f.pixelSize }

// Metrics exposes the face's vertical metrics for callers that want
// metrics-based baseline placement instead of the renderer's fixed
// fraction heuristic.
func (f *Face) Metrics() font.Metrics { return f.face.Metrics() }

// Close releases the underlying face.
func (f *Face) Close() error { return f.face.Close() }
