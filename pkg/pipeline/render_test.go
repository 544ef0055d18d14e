package pipeline

import (
	"strings"
	"testing"

	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/errors"
	"github.com/matzehuels/timeblock/pkg/render/blocks/styles"
)

func testLayout() chart.Layout {
	return chart.Build([]chart.Interval{
		{Begin: 0, End: 43200, Label: "standup"},
		{Begin: 43200, End: 86400},
	}, 86400, 2)
}

func TestRenderSVG(t *testing.T) {
	artifacts, err := Render(testLayout(), Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	svg := string(artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("svg output should start with <svg, got %q", svg[:min(len(svg), 20)])
	}
	if !strings.Contains(svg, "standup") {
		t.Error("svg output should contain the block label")
	}
}

func TestRenderAppliesPalette(t *testing.T) {
	opts := Options{
		Formats: []string{FormatSVG},
		Palette: []string{"#111111", "#222222"},
	}
	artifacts, err := Render(testLayout(), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	svg := string(artifacts[FormatSVG])
	if !strings.Contains(svg, "#111111") || !strings.Contains(svg, "#222222") {
		t.Error("svg output should use the configured palette")
	}
}

func TestRenderOutlineStyle(t *testing.T) {
	opts := Options{Formats: []string{FormatSVG}, Style: StyleOutline}
	artifacts, err := Render(testLayout(), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(string(artifacts[FormatSVG]), `stroke="#24292f"`) {
		t.Error("outline style should stroke block rectangles")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	_, err := Render(testLayout(), Options{Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestRenderEmptyLayout(t *testing.T) {
	artifacts, err := Render(chart.Layout{BinSize: 86400, NumColors: 2}, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts[FormatSVG]) == 0 {
		t.Error("empty layout should still render an empty frame")
	}
}

func TestRenderStyleMapping(t *testing.T) {
	if _, ok := renderStyle(StyleOutline).(styles.Outline); !ok {
		t.Errorf("renderStyle(outline) = %T, want styles.Outline", renderStyle(StyleOutline))
	}
	if _, ok := renderStyle(StyleFlat).(styles.Flat); !ok {
		t.Errorf("renderStyle(flat) = %T, want styles.Flat", renderStyle(StyleFlat))
	}
	// Unknown names fall back to flat; validation runs before rendering.
	if _, ok := renderStyle("unknown").(styles.Flat); !ok {
		t.Errorf("renderStyle(unknown) = %T, want styles.Flat", renderStyle("unknown"))
	}
}
