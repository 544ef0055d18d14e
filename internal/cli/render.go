package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/errors"
	"github.com/matzehuels/timeblock/pkg/pipeline"
)

// renderCommand creates the render command: stored layout to image.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		paletteStr string
		configPath string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout to SVG, PNG, or PDF",
		Long: `Render a computed layout to SVG, PNG, or PDF.

The render command takes a layout.json file (produced by 'layout') and
draws it. The layout already contains all bin, slot, and color
assignments, so this step is purely about drawing.

Use 'chart' as a shortcut to go directly from FSDB input to an image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if p := parsePalette(paletteStr); p != nil {
				opts.Palette = p
			}
			if err := applyConfig(&opts, configPath); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	addRenderFlags(cmd, &opts, &paletteStr)

	return cmd
}

// runRender loads the layout and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	layout, err := chart.ReadLayoutFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "load layout %s", input)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	artifacts, err := pipeline.Render(layout, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Render complete")
	if err := writeArtifacts(artifacts, opts.Formats, input, output); err != nil {
		return err
	}
	printStats(len(layout.Blocks), countBuckets(layout), layout.MaxSlot()+1)

	return nil
}
