package pipeline

import (
	"io"
	"os"
	"strings"

	"github.com/matzehuels/timeblock/pkg/chart"
	"github.com/matzehuels/timeblock/pkg/errors"
	"github.com/matzehuels/timeblock/pkg/fsdb"
)

// Parse reads FSDB rows from r into intervals.
//
// The configured begin/end (and optional label) columns are resolved
// against the header before any row is read; missing columns fail fast
// with INVALID_INPUT. Every error is terminal - there is no skip-and-
// continue for bad rows.
func Parse(r io.Reader, opts Options) ([]chart.Interval, error) {
	opts.SetDefaults()

	rd, err := fsdb.NewReader(r)
	if err != nil {
		return nil, err
	}
	if err := resolveColumns(rd, opts); err != nil {
		return nil, err
	}

	var intervals []chart.Interval
	for {
		row, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		iv, err := rowInterval(row, opts)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// StdinPath is the conventional path argument meaning "read stdin".
const StdinPath = "-"

// ParseFile opens path and parses it with Parse. The path "-" reads
// standard input instead, for pipe-based fsdb workflows.
func ParseFile(path string, opts Options) ([]chart.Interval, error) {
	if path == StdinPath {
		return Parse(os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f, opts)
}

// resolveColumns validates the configured columns against the file header.
func resolveColumns(rd *fsdb.Reader, opts Options) error {
	var missing []string
	for _, col := range []string{opts.BeginColumn, opts.EndColumn} {
		if !rd.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if opts.LabelColumn != "" && !rd.HasColumn(opts.LabelColumn) {
		missing = append(missing, opts.LabelColumn)
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"header is missing column(s) %s (have: %s)",
			strings.Join(missing, ", "), headerNames(rd))
	}
	return nil
}

func headerNames(rd *fsdb.Reader) string {
	cols := rd.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// rowInterval converts one row into a validated interval.
func rowInterval(row fsdb.Row, opts Options) (chart.Interval, error) {
	begin, err := row.Time(opts.BeginColumn)
	if err != nil {
		return chart.Interval{}, err
	}
	end, err := row.Time(opts.EndColumn)
	if err != nil {
		return chart.Interval{}, err
	}
	if end < begin {
		return chart.Interval{}, errors.New(errors.ErrCodeInvalidInput,
			"line %d: end time %d before begin time %d", row.Line(), end, begin)
	}

	iv := chart.Interval{Begin: begin, End: end}
	if opts.LabelColumn != "" {
		if iv.Label, err = row.String(opts.LabelColumn); err != nil {
			return chart.Interval{}, err
		}
	}
	return iv, nil
}
