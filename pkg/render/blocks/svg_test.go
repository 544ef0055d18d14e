package blocks

import (
	"strings"
	"testing"

	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/render/blocks/styles"
)

const day = int64(86400)

func testLayout() chart.Layout {
	return chart.Build([]chart.Interval{
		{Begin: 0, End: day / 2, Label: "standup"},
		{Begin: day / 2, End: day},
		{Begin: day, End: day + 3600},
	}, day, 2)
}

func TestRenderSVGBasic(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should open with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should close the svg element")
	}

	// One rect per block plus the background.
	if got := strings.Count(svg, "<rect"); got != 4 {
		t.Errorf("rect count = %d, want 4", got)
	}

	// Default palette drives the fills; touching blocks alternate.
	if !strings.Contains(svg, "#2f6fab") || !strings.Contains(svg, "#e8833a") {
		t.Error("output should use both default palette colors")
	}
}

func TestRenderSVGEmptyLayout(t *testing.T) {
	svg := string(RenderSVG(chart.Layout{BinSize: day, NumColors: 2}))

	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("empty layout should still produce a well-formed document")
	}
	// Only the background rect.
	if got := strings.Count(svg, "<rect"); got != 1 {
		t.Errorf("rect count = %d, want 1", got)
	}
	if strings.Contains(svg, "<line") {
		t.Error("empty layout should not draw gridlines")
	}
}

func TestRenderSVGFrame(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithFrame(Frame{Width: 1200, Height: 400, MarginX: 40, MarginY: 30})))

	if !strings.Contains(svg, `viewBox="0 0 1200.0 400.0"`) {
		t.Errorf("output should carry the configured viewBox")
	}
	if !strings.Contains(svg, `width="1200" height="400"`) {
		t.Errorf("output should carry the configured dimensions")
	}
}

func TestRenderSVGGrid(t *testing.T) {
	plain := string(RenderSVG(testLayout()))
	grid := string(RenderSVG(testLayout(), WithGrid()))

	if strings.Contains(plain, "<line") {
		t.Error("grid should be off by default")
	}
	if !strings.Contains(grid, "<line") {
		t.Error("WithGrid should draw boundary lines")
	}
	// Day-sized bins label boundaries with dates.
	if !strings.Contains(grid, "Jan 01") || !strings.Contains(grid, "Jan 02") {
		t.Error("grid should label bucket boundaries with dates")
	}
}

func TestRenderSVGSubDayTicks(t *testing.T) {
	l := chart.Build([]chart.Interval{{Begin: 0, End: 1800}}, 3600, 2)
	svg := string(RenderSVG(l, WithGrid()))

	if !strings.Contains(svg, "00:00") {
		t.Error("sub-day bins should show clock times on ticks")
	}
}

func TestRenderSVGPalette(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithPalette(styles.Palette{"#101010", "#fefefe"})))

	if !strings.Contains(svg, "#101010") || !strings.Contains(svg, "#fefefe") {
		t.Error("output should use the configured palette")
	}
	if strings.Contains(svg, "#2f6fab") {
		t.Error("default palette should be fully replaced")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	svg := string(RenderSVG(testLayout()))
	if !strings.Contains(svg, ">standup</text>") {
		t.Error("block labels should render as text elements")
	}
}

func TestRenderSVGGapShrinksBlocks(t *testing.T) {
	l := chart.Build([]chart.Interval{{Begin: 0, End: day}}, day, 2)

	full := string(RenderSVG(l))
	gapped := string(RenderSVG(l, WithGap(0.1)))
	if full == gapped {
		t.Error("gap should change block geometry")
	}
}

func TestGeometrySlotZeroAtBottom(t *testing.T) {
	g := newGeometry(chart.Build([]chart.Interval{
		{Begin: 0, End: 100},
		{Begin: 50, End: 150},
	}, day, 2), DefaultFrame())

	if g.rowY(0) <= g.rowY(1) {
		t.Errorf("rowY(0) = %g should be below rowY(1) = %g", g.rowY(0), g.rowY(1))
	}
}

// A layout missing its bin size must not crash the renderer, grid
// included; ReadLayoutFile rejects such layouts, but the renderer is
// also callable directly.
func TestRenderSVGZeroBinSize(t *testing.T) {
	l := chart.Layout{
		NumColors: 2,
		Blocks: []chart.StackedBlock{
			{Interval: chart.Interval{Begin: 0, End: 3600}},
		},
	}

	svg := string(RenderSVG(l, WithGrid()))
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("zero bin size should still produce a well-formed document")
	}
	if strings.Contains(svg, "<line") {
		t.Error("grid must be skipped when the bin size is unusable")
	}
}

func TestGeometryZeroSpan(t *testing.T) {
	// A single zero-length interval must not divide by zero.
	l := chart.Build([]chart.Interval{{Begin: 100, End: 100}}, day, 2)
	svg := RenderSVG(l)
	if len(svg) == 0 {
		t.Error("zero-span layout should still render")
	}
}

func TestStyleBlockMinWidth(t *testing.T) {
	l := chart.Build([]chart.Interval{{Begin: 0, End: 0}}, day, 2)
	r := svgRenderer{frame: DefaultFrame(), palette: styles.DefaultPalette()}
	g := newGeometry(l, r.frame)

	b := r.styleBlock(l, g, l.Blocks[0])
	if b.W < minBlockWidth {
		t.Errorf("block width = %g, want at least %g", b.W, minBlockWidth)
	}
}

func TestFirstBoundary(t *testing.T) {
	tests := []struct {
		min, binSize, want int64
	}{
		{0, day, 0},
		{1, day, day},
		{day, day, day},
		{-1, day, 0},
		{-day, day, -day},
		{-day - 1, day, -day},
	}

	for _, tt := range tests {
		if got := firstBoundary(tt.min, tt.binSize); got != tt.want {
			t.Errorf("firstBoundary(%d, %d) = %d, want %d", tt.min, tt.binSize, got, tt.want)
		}
	}
}
