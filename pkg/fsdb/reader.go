// Package fsdb reads and writes FSDB flat-file tabular data.
//
// FSDB is a header-plus-rows format used by the pyfsdb/perl-fsdb tool
// families. The first line declares the separator and the column schema:
//
//	#fsdb -F t begin_time:l end_time:l label
//
// Rows follow, one record per line, fields joined by the declared
// separator. Lines starting with '#' after the header are comments and
// are skipped; the value "-" denotes an empty field.
//
// The reader is a single forward pass over the input: call [Reader.Next]
// until it returns [io.EOF]. Typed accessors on [Row] convert fields by
// column name.
package fsdb

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/timeblock/pkg/errors"
)

// ColumnType describes the declared type of an FSDB column.
type ColumnType byte

// Column types as declared in the header. Columns without a ':' suffix
// default to TypeString.
const (
	TypeString ColumnType = 'a' // arbitrary string
	TypeLong   ColumnType = 'l' // integer
	TypeDouble ColumnType = 'd' // floating point
)

// Column is one entry of the header schema.
type Column struct {
	Name string
	Type ColumnType
}

// String returns the header representation of the column (e.g. "begin_time:l").
func (c Column) String() string {
	if c.Type == TypeString {
		return c.Name
	}
	return c.Name + ":" + string(c.Type)
}

// separator kinds declared via the header's -F flag.
const (
	sepTab        = "t" // single tab (the FSDB default)
	sepWhitespace = "s" // runs of spaces
	sepComma      = "c" // comma
)

// Reader reads FSDB records from an input stream.
type Reader struct {
	cols  []Column
	index map[string]int
	sep   string
	sc    *bufio.Scanner
	line  int
}

// NewReader parses the FSDB header from r and returns a Reader positioned
// at the first data row. It fails with an INVALID_INPUT error if the
// header is missing or malformed.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read header")
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty input: missing #fsdb header")
	}

	header := sc.Text()
	if !strings.HasPrefix(header, "#fsdb") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "line 1: not an FSDB file (header must start with #fsdb): %q", truncate(header))
	}

	rd := &Reader{sep: sepTab, sc: sc, line: 1, index: make(map[string]int)}
	if err := rd.parseHeader(header); err != nil {
		return nil, err
	}
	return rd, nil
}

// parseHeader consumes the "#fsdb [-F x] col[:type]..." declaration.
func (r *Reader) parseHeader(header string) error {
	fields := strings.Fields(header)[1:] // drop "#fsdb"

	for len(fields) > 0 && strings.HasPrefix(fields[0], "-") {
		switch fields[0] {
		case "-F":
			if len(fields) < 2 {
				return errors.New(errors.ErrCodeInvalidInput, "line 1: -F flag without separator")
			}
			switch fields[1] {
			case sepTab, sepWhitespace, sepComma:
				r.sep = fields[1]
			default:
				return errors.New(errors.ErrCodeInvalidInput, "line 1: unsupported separator %q (expected t, s, or c)", fields[1])
			}
			fields = fields[2:]
		default:
			return errors.New(errors.ErrCodeInvalidInput, "line 1: unsupported header flag %q", fields[0])
		}
	}

	if len(fields) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "line 1: header declares no columns")
	}

	for _, f := range fields {
		col := Column{Name: f, Type: TypeString}
		if name, typ, ok := strings.Cut(f, ":"); ok {
			switch typ {
			case "l":
				col = Column{Name: name, Type: TypeLong}
			case "d":
				col = Column{Name: name, Type: TypeDouble}
			case "a", "":
				col = Column{Name: name, Type: TypeString}
			default:
				// Unknown type letters degrade to string rather than failing;
				// fsdb tools add type letters we have no use for.
				col = Column{Name: name, Type: TypeString}
			}
		}
		if _, dup := r.index[col.Name]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "line 1: duplicate column %q", col.Name)
		}
		r.index[col.Name] = len(r.cols)
		r.cols = append(r.cols, col)
	}
	return nil
}

// Columns returns the declared column schema in header order.
func (r *Reader) Columns() []Column {
	cols := make([]Column, len(r.cols))
	copy(cols, r.cols)
	return cols
}

// ColumnIndex returns the position of the named column and whether it exists.
func (r *Reader) ColumnIndex(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// HasColumn reports whether the header declares the named column.
func (r *Reader) HasColumn(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Next returns the next data row, skipping comment and blank lines.
// It returns io.EOF once the input is exhausted.
func (r *Reader) Next() (Row, error) {
	for r.sc.Scan() {
		r.line++
		text := r.sc.Text()
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		values := r.split(text)
		if len(values) != len(r.cols) {
			return Row{}, errors.New(errors.ErrCodeInvalidInput,
				"line %d: expected %d fields, got %d: %q", r.line, len(r.cols), len(values), truncate(text))
		}
		for i, v := range values {
			if v == "-" {
				values[i] = ""
			}
		}
		return Row{reader: r, values: values, line: r.line}, nil
	}

	if err := r.sc.Err(); err != nil {
		return Row{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: read", r.line+1)
	}
	return Row{}, io.EOF
}

// split cuts a data line into fields per the declared separator.
func (r *Reader) split(text string) []string {
	switch r.sep {
	case sepWhitespace:
		return strings.Fields(text)
	case sepComma:
		return strings.Split(text, ",")
	default:
		return strings.Split(text, "\t")
	}
}

// Row is one data record. Accessors look fields up by column name; asking
// for a column the header does not declare is an INVALID_COLUMN error.
type Row struct {
	reader *Reader
	values []string
	line   int
}

// Line returns the 1-based input line number the row was read from.
func (row Row) Line() int { return row.line }

// String returns the named field as a string ("" for the FSDB empty value).
func (row Row) String(col string) (string, error) {
	i, ok := row.reader.index[col]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidColumn, "line %d: no column %q in header", row.line, col)
	}
	return row.values[i], nil
}

// Int64 returns the named field parsed as a base-10 integer.
func (row Row) Int64(col string) (int64, error) {
	s, err := row.String(col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "line %d: column %q: %q is not an integer", row.line, col, s)
	}
	return v, nil
}

// timeLayouts are the non-epoch timestamp forms Time accepts, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time returns the named field interpreted as a point in time, in Unix
// epoch seconds. Integer values are taken as epoch seconds directly;
// otherwise RFC 3339 and "YYYY-MM-DD[ HH:MM:SS]" (UTC) are tried.
func (row Row) Time(col string) (int64, error) {
	s, err := row.String(col)
	if err != nil {
		return 0, err
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidTimestamp, "line %d: column %q: %q is not a timestamp", row.line, col, s)
}

// truncate shortens long offending lines for error messages.
func truncate(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
