// Package mapinfo extracts level display names from the MAPINFO family of
// text lumps (MAPINFO, ZMAPINFO, EMAPINFO, UMAPINFO) found in WAD archives.
//
// Within one lump the last declaration of a map wins. Across lumps the
// first lump in directory order to declare a map wins.
package mapinfo

import (
	"fmt"
	"strings"
)

// LevelNames maps an uppercase map id (MAP01, E1M1) to its display name.
type LevelNames map[string]string

// Merge copies the entries of other whose ids are not yet present and
// returns how many were added. Existing names are never replaced.
func (l LevelNames) Merge(other LevelNames) int {
	added := 0
	for id, name := range other {
		if _, ok := l[id]; ok {
			continue
		}
		l[id] = name
		added++
	}
	return added
}

// NormalizeID returns the canonical form of a map id
func NormalizeID(id string) string {
	return strings.ToUpper(id)
}

// SegmentError describes a lump that could not be read or parsed. It is
// reported and skipped; it never aborts an extraction.
type SegmentError struct {
	Lump  string
	Index int
	Err   error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("lump %s (#%d): %v", e.Lump, e.Index, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}
