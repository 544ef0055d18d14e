package styles

// Palette is an ordered list of fill colors. The stack layout alternates
// color indexes between adjacent blocks; the palette maps those indexes
// to actual colors.
type Palette []string

// DefaultPalette returns the standard two-color alternation: blue/orange,
// picked to stay distinguishable when blocks touch.
func DefaultPalette() Palette {
	return Palette{"#2f6fab", "#e8833a"}
}

// Color resolves a color index, wrapping modulo the palette length.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	return p[((i%len(p))+len(p))%len(p)]
}
