package progress

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Counter tracks how much archive data an extraction has read. A nil
// *Counter is valid and counts nothing.
type Counter struct {
	bytes    atomic.Uint64
	segments atomic.Uint64
}

// AddBytes adds read bytes to the counter
func (c *Counter) AddBytes(n uint64) {
	if c != nil && n > 0 {
		c.bytes.Add(n)
	}
}

// AddSegment records one lump read
func (c *Counter) AddSegment() {
	if c != nil {
		c.segments.Add(1)
	}
}

// Bytes returns the number of bytes read so far
func (c *Counter) Bytes() uint64 {
	if c == nil {
		return 0
	}
	return c.bytes.Load()
}

// Segments returns the number of lumps read so far
func (c *Counter) Segments() uint64 {
	if c == nil {
		return 0
	}
	return c.segments.Load()
}

// String summarizes the counter, e.g. "3 lumps, 1.2 KiB"
func (c *Counter) String() string {
	return fmt.Sprintf("%d lumps, %s", c.Segments(), FormatSize(c.Bytes()))
}

// FormatSize returns a human-readable size string
func FormatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Reader is a reader that tracks bytes read for progress reporting
type Reader struct {
	R io.Reader
	C *Counter
}

// Read implements io.Reader and tracks bytes read
func (pr *Reader) Read(p []byte) (n int, err error) {
	n, err = pr.R.Read(p)
	if n > 0 {
		pr.C.AddBytes(uint64(n))
	}
	return
}
