package fsdb

import (
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/timeblock/pkg/errors"
)

func TestNewReaderHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols []Column
		wantErr  bool
	}{
		{
			name:  "TypedColumns",
			input: "#fsdb -F t begin_time:l end_time:l value:d label\n",
			wantCols: []Column{
				{Name: "begin_time", Type: TypeLong},
				{Name: "end_time", Type: TypeLong},
				{Name: "value", Type: TypeDouble},
				{Name: "label", Type: TypeString},
			},
		},
		{
			name:  "NoSeparatorFlag",
			input: "#fsdb a b\n",
			wantCols: []Column{
				{Name: "a", Type: TypeString},
				{Name: "b", Type: TypeString},
			},
		},
		{
			name:  "UnknownTypeLetterDegradesToString",
			input: "#fsdb -F t when:q\n",
			wantCols: []Column{
				{Name: "when", Type: TypeString},
			},
		},
		{name: "EmptyInput", input: "", wantErr: true},
		{name: "NotFSDB", input: "begin\tend\n1\t2\n", wantErr: true},
		{name: "NoColumns", input: "#fsdb -F t\n", wantErr: true},
		{name: "BadSeparator", input: "#fsdb -F x a b\n", wantErr: true},
		{name: "DanglingSeparatorFlag", input: "#fsdb -F\n", wantErr: true},
		{name: "UnknownFlag", input: "#fsdb -Z a\n", wantErr: true},
		{name: "DuplicateColumn", input: "#fsdb -F t a:l a:l\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd, err := NewReader(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error code = %q, want INVALID_INPUT", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}

			cols := rd.Columns()
			if len(cols) != len(tt.wantCols) {
				t.Fatalf("got %d columns, want %d", len(cols), len(tt.wantCols))
			}
			for i, c := range cols {
				if c != tt.wantCols[i] {
					t.Errorf("column %d = %+v, want %+v", i, c, tt.wantCols[i])
				}
			}
		})
	}
}

func TestReaderSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Tab", "#fsdb -F t a b\n1\t2\n"},
		{"Whitespace", "#fsdb -F s a b\n1   2\n"},
		{"Comma", "#fsdb -F c a b\n1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd, err := NewReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			row, err := rd.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			a, _ := row.String("a")
			b, _ := row.String("b")
			if a != "1" || b != "2" {
				t.Errorf("fields = %q, %q; want 1, 2", a, b)
			}
		})
	}
}

func TestReaderNext(t *testing.T) {
	input := "#fsdb -F t begin_time:l end_time:l label\n" +
		"# provenance comment\n" +
		"0\t3600\tstandup\n" +
		"\n" +
		"3600\t7200\t-\n" +
		"# trailing comment\n"

	rd, err := NewReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	row, err := rd.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if row.Line() != 3 {
		t.Errorf("first row line = %d, want 3", row.Line())
	}
	if label, _ := row.String("label"); label != "standup" {
		t.Errorf("label = %q, want standup", label)
	}

	row, err = rd.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	// "-" reads back as the empty string.
	if label, _ := row.String("label"); label != "" {
		t.Errorf("empty field = %q, want \"\"", label)
	}

	if _, err := rd.Next(); err != io.EOF {
		t.Errorf("after last row Next() = %v, want io.EOF", err)
	}
}

func TestReaderFieldCountMismatch(t *testing.T) {
	input := "#fsdb -F t a:l b:l\n1\t2\t3\n"
	rd, err := NewReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	_, err = rd.Next()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error code = %q, want INVALID_INPUT", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}

func TestRowAccessors(t *testing.T) {
	input := "#fsdb -F t n:l when what\n42\t2024-03-01 12:00:00\tlunch\n"
	rd, err := NewReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	row, err := rd.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}

	if n, err := row.Int64("n"); err != nil || n != 42 {
		t.Errorf("Int64(n) = %d, %v; want 42, nil", n, err)
	}
	if _, err := row.Int64("what"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Int64 on non-integer: code = %q, want INVALID_INPUT", errors.GetCode(err))
	}
	if _, err := row.String("missing"); !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Errorf("missing column: code = %q, want INVALID_COLUMN", errors.GetCode(err))
	}
}

func TestRowTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{"EpochSeconds", "86400", 86400, false},
		{"NegativeEpoch", "-1", -1, false},
		{"RFC3339", "1970-01-02T00:00:00Z", 86400, false},
		{"RFC3339Offset", "1970-01-02T01:00:00+01:00", 86400, false},
		{"DateTime", "1970-01-02 00:00:00", 86400, false},
		{"DateOnly", "1970-01-02", 86400, false},
		{"Garbage", "yesterday", 0, true},
		{"Empty", "-", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "#fsdb -F t when\n" + tt.value + "\n"
			rd, err := NewReader(strings.NewReader(input))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			row, err := rd.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}

			got, err := row.Time("when")
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidTimestamp) {
					t.Errorf("code = %q, want INVALID_TIMESTAMP", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Time: %v", err)
			}
			if got != tt.want {
				t.Errorf("Time(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestColumnString(t *testing.T) {
	tests := []struct {
		col  Column
		want string
	}{
		{Column{Name: "begin_time", Type: TypeLong}, "begin_time:l"},
		{Column{Name: "value", Type: TypeDouble}, "value:d"},
		{Column{Name: "label", Type: TypeString}, "label"},
	}

	for _, tt := range tests {
		if got := tt.col.String(); got != tt.want {
			t.Errorf("Column.String() = %q, want %q", got, tt.want)
		}
	}
}
