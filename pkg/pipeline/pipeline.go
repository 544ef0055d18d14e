// Package pipeline provides the core chart pipeline for timeblock.
//
// This package implements the complete parse → layout → render pipeline
// behind every CLI command. Centralizing it keeps defaults, validation,
// and stage logging identical no matter which command runs a stage.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read FSDB rows into validated intervals
//  2. Layout: bin intervals and compute the stacked layout
//  3. Render: generate output in various formats (SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, "input.fsdb", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/errors"
	"github.com/matzehuels/timeblock/pkg/render/blocks/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for All Commands
// =============================================================================

const (
	// DefaultBeginColumn and DefaultEndColumn match the column names the
	// classic timeblocker datasets use.
	DefaultBeginColumn = "begin_time"
	DefaultEndColumn   = "end_time"

	// DefaultBinSize is one calendar day.
	DefaultBinSize = 24 * time.Hour

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleFlat

// Visual styles.
const (
	StyleFlat    = "flat"    // plain filled rectangles
	StyleOutline = "outline" // filled rectangles with a dark stroke
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported image output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleFlat:    true,
	StyleOutline: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
type Options struct {
	// Parse options
	BeginColumn string // header name of the begin-time column
	EndColumn   string // header name of the end-time column
	LabelColumn string // optional pass-through label column ("" for none)

	// Layout options
	BinSize time.Duration // bucket width (default one day)

	// Render options
	Formats []string // output formats
	Style   string   // visual style
	Width   float64  // frame width in pixels
	Height  float64  // frame height in pixels
	Gap     float64  // fraction of the bin inset from each block's right edge
	Palette []string // alternating fill colors (hex)
	Grid    bool     // draw bucket gridlines and date labels

	// Runtime options
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed stacked layout.
	Layout chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int // intervals read
	Buckets    int // distinct time bins
	Slots      int // stack height (max slot + 1)
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: flat, outline)", style)
	}
	return nil
}

// ValidatePalette checks that every palette entry parses as a hex color
// and that at least two colors are present (alternation needs two).
func ValidatePalette(palette []string) error {
	if len(palette) == 0 {
		return nil // empty means default
	}
	if len(palette) < 2 {
		return errors.New(errors.ErrCodeInvalidPalette, "palette needs at least 2 colors, got %d", len(palette))
	}
	for _, c := range palette {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in zero-valued options. Safe to call repeatedly.
func (o *Options) SetDefaults() {
	if o.BeginColumn == "" {
		o.BeginColumn = DefaultBeginColumn
	}
	if o.EndColumn == "" {
		o.EndColumn = DefaultEndColumn
	}
	if o.BinSize == 0 {
		o.BinSize = DefaultBinSize
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	for _, col := range []string{o.BeginColumn, o.EndColumn} {
		if err := errors.ValidateColumnName(col); err != nil {
			return err
		}
	}
	if o.LabelColumn != "" {
		if err := errors.ValidateColumnName(o.LabelColumn); err != nil {
			return err
		}
	}
	if o.BinSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bin size must be positive, got %s", o.BinSize)
	}
	if o.Gap < 0 || o.Gap >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "gap must be in [0, 1), got %g", o.Gap)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidatePalette(o.Palette); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// NumColors returns the palette length the layout should alternate over.
func (o *Options) NumColors() int {
	if len(o.Palette) >= 2 {
		return len(o.Palette)
	}
	return len(styles.DefaultPalette())
}

// binSeconds returns the bin size in whole epoch seconds (minimum 1).
func (o *Options) binSeconds() int64 {
	s := int64(o.BinSize / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}
