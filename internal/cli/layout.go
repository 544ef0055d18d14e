package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/errors"
	"github.com/matzehuels/timeblock/pkg/fsdb"
	"github.com/matzehuels/timeblock/pkg/pipeline"
)

// layout output formats.
const (
	layoutFormatJSON = "json"
	layoutFormatFSDB = "fsdb"
)

// layoutCommand creates the layout command: compute bin/slot/color
// assignments without rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		format     string
		configPath string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [input.fsdb]",
		Short: "Compute the stacked layout from an FSDB interval table",
		Long: `Compute the stacked layout from an FSDB interval table.

The layout command bins and stacks the input intervals and writes the
result without rendering. The default output is a layout.json file that
'render' turns into SVG/PNG/PDF. With no input argument (or '-') the
rows are read from stdin.

With --format fsdb the layout is written back out as FSDB data with
bucket, slot, and color columns appended, ready for further fsdb-tool
processing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != layoutFormatJSON && format != layoutFormatFSDB {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid layout format: %q (must be 'json' or 'fsdb')", format)
			}
			if err := applyConfig(&opts, configPath); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), inputArg(args), opts, output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", layoutFormatJSON, "layout output format: json (default), fsdb")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	addColumnFlags(cmd, &opts)

	return cmd
}

// runLayout parses the input, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output, format string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)

	intervals, err := pipeline.ParseFile(input, opts)
	if err != nil {
		return err
	}
	layout := pipeline.ComputeLayout(intervals, opts)
	prog.done(fmt.Sprintf("Stacked %d intervals", len(intervals)))

	if err := ctx.Err(); err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := appName
		if input != pipeline.StdinPath {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
		outputPath = base + ".layout." + format
	}

	switch format {
	case layoutFormatFSDB:
		err = writeLayoutFSDB(layout, opts, outputPath, input)
	default:
		err = chart.WriteLayoutFile(layout, outputPath)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write output %s", outputPath)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(intervals), countBuckets(layout), layout.MaxSlot()+1)
	if format == layoutFormatJSON {
		printNewline()
		printNextStep("Render", appName+" render "+outputPath)
	}

	return nil
}

// writeLayoutFSDB writes the layout as FSDB rows with bucket, slot, and
// color columns appended to the original begin/end (and label) columns.
func writeLayoutFSDB(l chart.Layout, opts pipeline.Options, path, input string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cols := []fsdb.Column{
		{Name: opts.BeginColumn, Type: fsdb.TypeLong},
		{Name: opts.EndColumn, Type: fsdb.TypeLong},
	}
	if opts.LabelColumn != "" {
		cols = append(cols, fsdb.Column{Name: opts.LabelColumn, Type: fsdb.TypeString})
	}
	cols = append(cols,
		fsdb.Column{Name: "bucket", Type: fsdb.TypeLong},
		fsdb.Column{Name: "slot", Type: fsdb.TypeLong},
		fsdb.Column{Name: "color", Type: fsdb.TypeLong},
	)

	w := fsdb.NewWriter(f, cols)
	for _, b := range l.Blocks {
		values := []string{
			strconv.FormatInt(b.Begin, 10),
			strconv.FormatInt(b.End, 10),
		}
		if opts.LabelColumn != "" {
			values = append(values, b.Label)
		}
		values = append(values,
			strconv.FormatInt(int64(b.Bucket), 10),
			strconv.Itoa(b.Slot),
			strconv.Itoa(b.Color),
		)
		if err := w.Write(values...); err != nil {
			return err
		}
	}
	if err := w.Comment("| " + appName + " layout " + input); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// countBuckets returns the number of distinct bucket keys in the layout.
func countBuckets(l chart.Layout) int {
	seen := make(map[chart.BucketKey]struct{}, len(l.Blocks))
	for _, b := range l.Blocks {
		seen[b.Bucket] = struct{}{}
	}
	return len(seen)
}
