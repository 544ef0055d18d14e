package pipeline

import (
	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/errors"
	"github.com/matzehuels/timeblock/pkg/render/blocks"
	"github.com/matzehuels/timeblock/pkg/render/blocks/styles"
)

// Render generates the requested artifact formats from a layout.
// Export failures surface as RENDER_ERROR with the underlying cause.
func Render(l chart.Layout, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()

	svgOpts := svgOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = blocks.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err := blocks.RenderPNG(l, blocks.WithPNGSVGOptions(svgOpts...))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render png")
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := blocks.RenderPDF(l, blocks.WithPDFSVGOptions(svgOpts...))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render pdf")
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return artifacts, nil
}

// svgOptions translates pipeline options into renderer options.
func svgOptions(opts Options) []blocks.SVGOption {
	svgOpts := []blocks.SVGOption{
		blocks.WithFrame(blocks.Frame{
			Width:   opts.Width,
			Height:  opts.Height,
			MarginX: 40,
			MarginY: 30,
		}),
		blocks.WithStyle(renderStyle(opts.Style)),
	}
	if len(opts.Palette) > 0 {
		svgOpts = append(svgOpts, blocks.WithPalette(styles.Palette(opts.Palette)))
	}
	if opts.Gap > 0 {
		svgOpts = append(svgOpts, blocks.WithGap(opts.Gap))
	}
	if opts.Grid {
		svgOpts = append(svgOpts, blocks.WithGrid())
	}
	return svgOpts
}

// renderStyle maps a style name to its implementation.
// Unknown names fall back to flat; validation happens before this point.
func renderStyle(name string) styles.Style {
	switch name {
	case StyleOutline:
		return styles.Outline{}
	default:
		return styles.Flat{}
	}
}
