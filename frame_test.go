package rush_test

import (
	"errors"
	"testing"

	"github.com/bobby-rust/rush"
)

// mockRenderer records draw calls without touching a GPU.
type mockRenderer struct {
	clears      int
	glyphDraws  []rush.TextureHandle
	cursorDraws int
	glyphErr    error
	cursorErr   error
}

func (m *mockRenderer) Clear() { m.clears++ }

func (m *mockRenderer) DrawGlyph(tex rush.TextureHandle, quad *rush.GlyphQuad) error {
	if m.glyphErr != nil {
		return m.glyphErr
	}
	m.glyphDraws = append(m.glyphDraws, tex)
	return nil
}

func (m *mockRenderer) DrawCursor(quad *rush.CursorQuad) error {
	if m.cursorErr != nil {
		return m.cursorErr
	}
	m.cursorDraws++
	return nil
}

func newFrameFixture(t *testing.T) (*rush.Grid, *rush.GlyphCache, *mockRenderer) {
	t.Helper()
	cache, err := rush.BuildGlyphCache(newFakeSource(), newFakeStore())
	if err != nil {
		t.Fatalf("BuildGlyphCache: %v", err)
	}
	cellW, cellH := cache.CellPitch()
	grid, err := rush.NewGrid(cellW, cellH, rush.Viewport{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return grid, cache, &mockRenderer{}
}

func TestRenderFrame(t *testing.T) {
	grid, cache, backend := newFrameFixture(t)
	appendString(grid, "hello")

	fr := rush.NewFrameRenderer(backend)
	if err := fr.RenderFrame(grid, cache); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if backend.clears != 1 {
		t.Errorf("expected 1 clear, got %d", backend.clears)
	}
	if len(backend.glyphDraws) != 5 {
		t.Errorf("expected 5 glyph draws, got %d", len(backend.glyphDraws))
	}
	if backend.cursorDraws != 1 {
		t.Errorf("expected 1 cursor draw, got %d", backend.cursorDraws)
	}
}

// Each glyph draw binds that glyph's own texture.
func TestRenderFrameBindsPerGlyphTextures(t *testing.T) {
	grid, cache, backend := newFrameFixture(t)
	appendString(grid, "ab")

	fr := rush.NewFrameRenderer(backend)
	if err := fr.RenderFrame(grid, cache); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	ga, _ := cache.Get('a')
	gb, _ := cache.Get('b')
	want := []rush.TextureHandle{ga.Texture, gb.Texture}

	if len(backend.glyphDraws) != len(want) {
		t.Fatalf("expected %d draws, got %d", len(want), len(backend.glyphDraws))
	}
	for i, tex := range backend.glyphDraws {
		if tex != want[i] {
			t.Errorf("draw %d: expected texture %d, got %d", i, want[i], tex)
		}
	}
}

// Unsupported characters skip their cell; the frame still completes
// and the cursor still renders.
func TestRenderFrameSkipsUnsupported(t *testing.T) {
	grid, cache, backend := newFrameFixture(t)
	grid.Append('a')
	grid.Append('é') // outside the repertoire
	grid.Append('b')

	fr := rush.NewFrameRenderer(backend)
	if err := fr.RenderFrame(grid, cache); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if len(backend.glyphDraws) != 2 {
		t.Errorf("expected 2 glyph draws, got %d", len(backend.glyphDraws))
	}
	if backend.cursorDraws != 1 {
		t.Errorf("expected 1 cursor draw, got %d", backend.cursorDraws)
	}
}

func TestRenderFrameFallback(t *testing.T) {
	grid, cache, backend := newFrameFixture(t)
	grid.Append('é')

	fr := rush.NewFrameRenderer(backend, rush.WithFallback('?'))
	if err := fr.RenderFrame(grid, cache); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if len(backend.glyphDraws) != 1 {
		t.Fatalf("expected 1 glyph draw, got %d", len(backend.glyphDraws))
	}
	q, _ := cache.Get('?')
	if backend.glyphDraws[0] != q.Texture {
		t.Errorf("expected fallback texture %d, got %d", q.Texture, backend.glyphDraws[0])
	}
}

// Backend errors are not per-cell conditions; they abort the frame.
func TestRenderFramePropagatesBackendError(t *testing.T) {
	grid, cache, backend := newFrameFixture(t)
	grid.Append('a')

	backendErr := errors.New("context lost")
	backend.glyphErr = backendErr

	fr := rush.NewFrameRenderer(backend)
	if err := fr.RenderFrame(grid, cache); !errors.Is(err, backendErr) {
		t.Errorf("expected backend error, got %v", err)
	}
}

func TestRenderFrameEmptyBuffer(t *testing.T) {
	grid, cache, backend := newFrameFixture(t)

	fr := rush.NewFrameRenderer(backend)
	if err := fr.RenderFrame(grid, cache); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if len(backend.glyphDraws) != 0 {
		t.Errorf("expected no glyph draws, got %d", len(backend.glyphDraws))
	}
	if backend.cursorDraws != 1 {
		t.Errorf("expected cursor at origin, got %d draws", backend.cursorDraws)
	}
}

func BenchmarkRenderFrame(b *testing.B) {
	cache, err := rush.BuildGlyphCache(newFakeSource(), newFakeStore())
	if err != nil {
		b.Fatalf("BuildGlyphCache: %v", err)
	}
	cellW, cellH := cache.CellPitch()
	grid, err := rush.NewGrid(cellW, cellH, rush.Viewport{Width: 800, Height: 600})
	if err != nil {
		b.Fatalf("NewGrid: %v", err)
	}
	for i := 0; i < 500; i++ {
		grid.Append(rune(' ' + i%95))
	}
	backend := &mockRenderer{}
	fr := rush.NewFrameRenderer(backend)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.glyphDraws = backend.glyphDraws[:0]
		if err := fr.RenderFrame(grid, cache); err != nil {
			b.Fatal(err)
		}
	}
}
