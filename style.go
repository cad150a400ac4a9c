package rush

// Style defines the renderer's palette. Colors are packed RGBA
// (see RGBA/RGBAf); the backend unpacks them into clear color and
// shader uniforms.
type Style struct {
	// Foreground tints glyph coverage (text color).
	Foreground uint32

	// Background is the per-frame clear color.
	Background uint32

	// Cursor fills the solid cursor quad.
	Cursor uint32
}

// DefaultStyle returns the stock green-on-black palette.
func DefaultStyle() Style {
	return Style{
		Foreground: RGBAf(0.5, 0.8, 0.2, 1.0),
		Background: ColorBlack,
		Cursor:     RGBAf(0.5, 0.8, 0.2, 1.0),
	}
}

// LightStyle returns a dark-on-light palette.
func LightStyle() Style {
	return Style{
		Foreground: RGBA(30, 30, 30, 255),
		Background: RGBA(245, 245, 245, 255),
		Cursor:     RGBA(30, 30, 30, 255),
	}
}
