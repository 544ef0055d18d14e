package fsdb

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/timeblock/pkg/errors"
)

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, []Column{
		{Name: "begin_time", Type: TypeLong},
		{Name: "end_time", Type: TypeLong},
		{Name: "label", Type: TypeString},
	})

	if err := w.Write("0", "3600", "standup"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write("3600", "7200", ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Comment("| timeblock layout input.fsdb"); err != nil {
		t.Fatalf("Comment: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "#fsdb -F t begin_time:l end_time:l label\n" +
		"0\t3600\tstandup\n" +
		"3600\t7200\t-\n" +
		"# | timeblock layout input.fsdb\n"
	if got := buf.String(); got != want {
		t.Errorf("output mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestWriterHeaderOnlyOnFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, []Column{{Name: "a", Type: TypeLong}})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if got := buf.String(); got != "#fsdb -F t a:l\n" {
		t.Errorf("header = %q, want %q", got, "#fsdb -F t a:l\n")
	}
}

func TestWriterFieldCountMismatch(t *testing.T) {
	w := NewWriter(io.Discard, []Column{{Name: "a", Type: TypeLong}, {Name: "b", Type: TypeLong}})
	err := w.Write("1")
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("code = %q, want INTERNAL_ERROR", errors.GetCode(err))
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, []Column{
		{Name: "begin_time", Type: TypeLong},
		{Name: "end_time", Type: TypeLong},
	})
	if err := w.Write("100", "200"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	rd, err := NewReader(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	row, err := rd.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	begin, _ := row.Int64("begin_time")
	end, _ := row.Int64("end_time")
	if begin != 100 || end != 200 {
		t.Errorf("round trip = (%d, %d), want (100, 200)", begin, end)
	}
}
