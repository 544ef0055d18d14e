package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeblock/pkg/pipeline"
)

// chartCommand creates the chart command: FSDB input to image in one step.
func (c *CLI) chartCommand() *cobra.Command {
	var (
		formatsStr string
		paletteStr string
		configPath string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "chart [input.fsdb]",
		Short: "Render a stacked block chart from an FSDB interval table",
		Long: `Render a stacked block chart from an FSDB interval table.

The chart command runs the full pipeline: read the input rows, group
intervals into time bins (one day by default), stack overlapping spans
within each bin, and render the result. Adjacent blocks alternate
palette colors so back-to-back spans stay distinguishable.

With no input argument (or '-') the rows are read from stdin, so the
command composes with other fsdb tools in a pipe.

Use 'layout' and 'render' to run the stages separately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if p := parsePalette(paletteStr); p != nil {
				opts.Palette = p
			}
			if err := applyConfig(&opts, configPath); err != nil {
				return err
			}
			return c.runChart(cmd.Context(), inputArg(args), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	addColumnFlags(cmd, &opts)
	addRenderFlags(cmd, &opts, &paletteStr)

	return cmd
}

// runChart executes the full pipeline and writes the artifacts.
func (c *CLI) runChart(ctx context.Context, input string, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Charting %s...", displayName(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Chart failed")
		return err
	}
	spinner.Stop()

	printSuccess("Chart complete")
	if err := writeArtifacts(result.Artifacts, opts.Formats, input, output); err != nil {
		return err
	}
	printStats(result.Stats.Rows, result.Stats.Buckets, result.Stats.Slots)

	return nil
}
