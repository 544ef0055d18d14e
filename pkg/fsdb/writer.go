package fsdb

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/timeblock/pkg/errors"
)

// Writer emits FSDB output with a fixed schema. Output always uses the
// tab separator; fsdb tools treat that as the canonical form.
type Writer struct {
	w    *bufio.Writer
	cols []Column
	head bool
}

// NewWriter creates a writer for the given column schema. The header line
// is written lazily before the first row (or comment).
func NewWriter(w io.Writer, cols []Column) *Writer {
	return &Writer{w: bufio.NewWriter(w), cols: cols}
}

// writeHeader emits the "#fsdb -F t ..." declaration once.
func (w *Writer) writeHeader() error {
	if w.head {
		return nil
	}
	w.head = true
	parts := make([]string, len(w.cols))
	for i, c := range w.cols {
		parts[i] = c.String()
	}
	_, err := fmt.Fprintf(w.w, "#fsdb -F t %s\n", strings.Join(parts, " "))
	return err
}

// Write appends one data row. Empty fields are emitted as "-" per FSDB
// convention. The number of values must match the schema.
func (w *Writer) Write(values ...string) error {
	if len(values) != len(w.cols) {
		return errors.New(errors.ErrCodeInternal, "fsdb write: %d values for %d columns", len(values), len(w.cols))
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	out := make([]string, len(values))
	for i, v := range values {
		if v == "" {
			v = "-"
		}
		out[i] = v
	}
	_, err := fmt.Fprintln(w.w, strings.Join(out, "\t"))
	return err
}

// Comment appends a trailing '#' comment line. fsdb tools use these to
// record the command that produced the file.
func (w *Writer) Comment(text string) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w.w, "# %s\n", text)
	return err
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.w.Flush()
}
