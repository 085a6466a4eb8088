package wad

import "fmt"

// FormatError reports an archive whose header cannot be accepted.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid WAD file %s: %s", e.Path, e.Reason)
}

// SegmentTooLargeError is returned by ReadSegment when an entry exceeds the
// archive's MaxSegmentSize.
type SegmentTooLargeError struct {
	Name  string
	Size  uint32
	Limit int64
}

func (e *SegmentTooLargeError) Error() string {
	return fmt.Sprintf("lump %s: size %d exceeds limit %d", e.Name, e.Size, e.Limit)
}
