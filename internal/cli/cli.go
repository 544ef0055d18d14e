// Package cli implements the timeblock command-line interface.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timeblock/pkg/buildinfo"
	"github.com/matzehuels/timeblock/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "timeblock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Timeblock charts time intervals as stacked blocks",
		Long:         `Timeblock reads an FSDB table of time intervals, groups them into time bins, stacks overlapping spans, and renders the result as a color-alternating block chart (SVG, PNG, or PDF).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.chartCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Flag Helpers
// =============================================================================

// addColumnFlags registers the input-column and bin-size flags shared by
// the chart and layout commands.
func addColumnFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.BeginColumn, "begin", "", "begin-time column name (default \"begin_time\")")
	cmd.Flags().StringVar(&opts.EndColumn, "end", "", "end-time column name (default \"end_time\")")
	cmd.Flags().StringVar(&opts.LabelColumn, "label", "", "pass-through label column name")
	cmd.Flags().DurationVar(&opts.BinSize, "bin", 0, "time bin size (default 24h)")
}

// addRenderFlags registers the appearance flags shared by the chart and
// render commands.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, paletteStr *string) {
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: flat (default), outline")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height in pixels (default 600)")
	cmd.Flags().Float64Var(&opts.Gap, "gap", 0, "fraction of the bin left blank after each block")
	cmd.Flags().StringVar(paletteStr, "palette", "", "comma-separated hex fill colors")
	cmd.Flags().BoolVar(&opts.Grid, "grid", true, "draw bin boundaries and date labels")
}

// applyConfig overlays a TOML config file onto opts when path is set.
func applyConfig(opts *pipeline.Options, path string) error {
	if path == "" {
		return nil
	}
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return err
	}
	return cfg.Apply(opts)
}

// inputArg resolves the optional positional input argument; absent means
// stdin, like the fsdb tools this composes with.
func inputArg(args []string) string {
	if len(args) == 0 {
		return pipeline.StdinPath
	}
	return args[0]
}

// displayName returns a human-readable name for an input path.
func displayName(input string) string {
	if input == pipeline.StdinPath {
		return "stdin"
	}
	return input
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parsePalette parses a comma-separated color list ("" means default).
func parsePalette(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
