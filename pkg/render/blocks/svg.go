// Package blocks renders a stacked interval layout as an SVG chart.
//
// Buckets run along the x-axis (time), slots stack along the y-axis with
// slot 0 at the bottom. Each block is filled with its palette color; an
// optional grid marks bucket boundaries with date labels.
//
// The renderer is a pure function over a [chart.Layout] and an explicit
// frame: no global figure or axes state.
package blocks

import (
	"bytes"
	"fmt"
	"time"

	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/render/blocks/styles"
)

// Frame describes the drawing surface in user units (SVG pixels).
type Frame struct {
	Width, Height    float64
	MarginX, MarginY float64
}

// DefaultFrame returns the standard 800x600 surface.
func DefaultFrame() Frame {
	return Frame{Width: 800, Height: 600, MarginX: 40, MarginY: 30}
}

// rowInset is the fraction of a slot row left blank above each block so
// stacked rows read as separate bars.
const rowInset = 0.08

// minBlockWidth keeps zero-length intervals visible.
const minBlockWidth = 2.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	frame   Frame
	style   styles.Style
	palette styles.Palette
	gap     float64 // fraction of the bin size inset from each block's right edge
	grid    bool
}

// WithFrame sets the drawing surface dimensions.
func WithFrame(f Frame) SVGOption { return func(r *svgRenderer) { r.frame = f } }

// WithStyle sets the visual style (default styles.Flat).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithPalette sets the fill colors indexed by each block's color.
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithGap insets each block's right edge by the given fraction of the bin
// size, leaving a visible seam between back-to-back blocks.
func WithGap(frac float64) SVGOption { return func(r *svgRenderer) { r.gap = frac } }

// WithGrid draws bucket-boundary gridlines and tick labels.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

// RenderSVG renders the layout to SVG bytes. An empty layout produces an
// empty frame, not an error.
func RenderSVG(l chart.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{frame: DefaultFrame(), style: styles.Flat{}, palette: styles.DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.frame.Width, r.frame.Height, r.frame.Width, r.frame.Height)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n",
		r.frame.Width, r.frame.Height)

	if len(l.Blocks) > 0 {
		g := newGeometry(l, r.frame)
		if r.grid {
			renderGrid(&buf, l, g)
		}
		for _, b := range l.Blocks {
			sb := r.styleBlock(l, g, b)
			r.style.RenderBlock(&buf, sb)
		}
		for _, b := range l.Blocks {
			sb := r.styleBlock(l, g, b)
			r.style.RenderText(&buf, sb)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// geometry maps layout time/slot coordinates onto the frame.
type geometry struct {
	frame      Frame
	minTime    int64
	scaleX     float64 // pixels per second
	rowHeight  float64
	innerH     float64
}

func newGeometry(l chart.Layout, f Frame) geometry {
	min, max := l.TimeSpan()
	span := max - min
	if span <= 0 {
		span = l.BinSize
	}
	rows := l.MaxSlot() + 1
	if rows < 1 {
		rows = 1
	}
	innerW := f.Width - 2*f.MarginX
	innerH := f.Height - 2*f.MarginY
	return geometry{
		frame:     f,
		minTime:   min,
		scaleX:    innerW / float64(span),
		rowHeight: innerH / float64(rows),
		innerH:    innerH,
	}
}

// x converts an epoch time to a frame x-coordinate.
func (g geometry) x(t int64) float64 {
	return g.frame.MarginX + float64(t-g.minTime)*g.scaleX
}

// rowY converts a slot index to the top y-coordinate of its block.
func (g geometry) rowY(slot int) float64 {
	inset := g.rowHeight * rowInset
	return g.frame.MarginY + g.innerH - float64(slot+1)*g.rowHeight + inset
}

// styleBlock converts one stacked block into drawable form.
func (r *svgRenderer) styleBlock(l chart.Layout, g geometry, b chart.StackedBlock) styles.Block {
	end := b.End
	if r.gap > 0 {
		end -= int64(r.gap * float64(l.BinSize))
		if end < b.Begin {
			end = b.Begin
		}
	}
	w := float64(end-b.Begin) * g.scaleX
	if w < minBlockWidth {
		w = minBlockWidth
	}
	return styles.Block{
		X:     g.x(b.Begin),
		Y:     g.rowY(b.Slot),
		W:     w,
		H:     g.rowHeight * (1 - rowInset),
		Fill:  r.palette.Color(b.Color),
		Label: b.Label,
	}
}

// renderGrid draws a vertical line and tick label at every bucket boundary.
func renderGrid(buf *bytes.Buffer, l chart.Layout, g geometry) {
	if l.BinSize < 1 {
		return
	}
	min, max := l.TimeSpan()
	top := g.frame.MarginY
	bottom := g.frame.Height - g.frame.MarginY

	for t := firstBoundary(min, l.BinSize); t <= max; t += l.BinSize {
		x := g.x(t)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#d0d7de" stroke-width="1"/>`+"\n",
			x, top, x, bottom)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="10" font-family="sans-serif" fill="#57606a" text-anchor="middle">%s</text>`+"\n",
			x, bottom+14, tickLabel(t, l.BinSize))
	}
}

// firstBoundary returns the first bucket boundary at or after min.
func firstBoundary(min, binSize int64) int64 {
	q := min / binSize
	if min%binSize != 0 && min < 0 {
		q--
	}
	start := q * binSize
	if start < min {
		start += binSize
	}
	return start
}

// tickLabel formats a bucket boundary for the axis: sub-day bins show the
// clock time, day-or-coarser bins show the date.
func tickLabel(t, binSize int64) string {
	ts := time.Unix(t, 0).UTC()
	if binSize < 86400 {
		return ts.Format("Jan 02 15:04")
	}
	return ts.Format("Jan 02")
}
