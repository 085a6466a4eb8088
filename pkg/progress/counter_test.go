package progress

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestReaderCountsBytes(t *testing.T) {
	var c Counter
	r := &Reader{R: strings.NewReader("hello world"), C: &c}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got := c.Bytes(); got != 11 {
		t.Fatalf("expected 11 bytes, got %d", got)
	}
	c.AddSegment()
	if got := c.String(); got != "1 lumps, 11 B" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestNilCounter(t *testing.T) {
	var c *Counter
	c.AddBytes(10)
	c.AddSegment()
	if c.Bytes() != 0 || c.Segments() != 0 {
		t.Fatalf("nil counter should count nothing")
	}

	r := &Reader{R: strings.NewReader("abc")}
	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("read through nil counter: %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	testCases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tc := range testCases {
		if got := FormatSize(tc.in); got != tc.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
