// Package styles defines the visual appearance of stacked block charts.
package styles

import (
	"bytes"
	"fmt"
)

// Style controls how individual blocks and their labels are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBlock writes the SVG for a single block rectangle.
	RenderBlock(buf *bytes.Buffer, b Block)
	// RenderText writes the SVG for a block's label, if any.
	RenderText(buf *bytes.Buffer, b Block)
}

// Block contains everything needed to draw one stacked block.
type Block struct {
	X, Y, W, H float64 // position and dimensions in user units
	Fill       string  // resolved palette color
	Label      string  // pass-through label ("" for none)
}

// minLabelWidth is the narrowest block that still gets its label drawn.
const minLabelWidth = 36

// Flat draws plain filled rectangles with no stroke.
type Flat struct{}

func (Flat) RenderDefs(buf *bytes.Buffer) {}

func (Flat) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		b.X, b.Y, b.W, b.H, b.Fill)
}

func (Flat) RenderText(buf *bytes.Buffer, b Block) {
	renderLabel(buf, b)
}

// Outline draws filled rectangles with a dark stroke, so touching blocks
// keep a visible seam even when the palette colors are close.
type Outline struct{}

func (Outline) RenderDefs(buf *bytes.Buffer) {}

func (Outline) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#24292f" stroke-width="1"/>`+"\n",
		b.X, b.Y, b.W, b.H, b.Fill)
}

func (Outline) RenderText(buf *bytes.Buffer, b Block) {
	renderLabel(buf, b)
}

func renderLabel(buf *bytes.Buffer, b Block) {
	if b.Label == "" || b.W < minLabelWidth {
		return
	}
	size := b.H * 0.5
	if size > 12 {
		size = 12
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="sans-serif" fill="#1c2128" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		b.X+b.W/2, b.Y+b.H/2, size, escapeText(b.Label))
}

// escapeText escapes the XML special characters in label text.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
