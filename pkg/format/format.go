// Package format renders level name tables as JSON or as a sorted listing.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wadnames/pkg/mapinfo"
)

// SidecarExt replaces the archive extension when saving a table next to it
const SidecarExt = ".levels.json"

// WriteJSON writes names as an indented JSON object
func WriteJSON(w io.Writer, names mapinfo.LevelNames) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(names); err != nil {
		return fmt.Errorf("encode level names: %w", err)
	}
	return nil
}

// ReadJSON parses a table written by WriteJSON
func ReadJSON(r io.Reader) (mapinfo.LevelNames, error) {
	var names mapinfo.LevelNames
	if err := json.NewDecoder(r).Decode(&names); err != nil {
		return nil, fmt.Errorf("decode level names: %w", err)
	}
	if names == nil {
		names = make(mapinfo.LevelNames)
	}
	return names, nil
}

// WriteListing writes one "ID: Name" line per map in SortedIDs order
func WriteListing(w io.Writer, names mapinfo.LevelNames) error {
	for _, id := range SortedIDs(names) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", id, names[id]); err != nil {
			return fmt.Errorf("write listing: %w", err)
		}
	}
	return nil
}

// SortedIDs orders map ids by the first run of digits they contain, so
// MAP2 comes before MAP10. Ids without digits go last, alphabetically.
// Equal numbers fall back to comparing the ids themselves.
func SortedIDs(names mapinfo.LevelNames) []string {
	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return lessID(ids[i], ids[j])
	})
	return ids
}

func lessID(a, b string) bool {
	da, okA := firstDigits(a)
	db, okB := firstDigits(b)
	switch {
	case okA && !okB:
		return true
	case !okA && okB:
		return false
	case okA && okB:
		if c := compareDigits(da, db); c != 0 {
			return c < 0
		}
	}
	return a < b
}

// firstDigits returns the first run of ASCII digits in s
func firstDigits(s string) (string, bool) {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return "", false
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[start:end], true
}

// compareDigits compares two decimal strings by value without parsing them
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// SidecarPath returns the path of the JSON file saved next to an archive:
// doom2.wad becomes doom2.levels.json.
func SidecarPath(archivePath string) string {
	return strings.TrimSuffix(archivePath, filepath.Ext(archivePath)) + SidecarExt
}

// SaveSidecar writes names as JSON next to the archive and returns the path
func SaveSidecar(archivePath string, names mapinfo.LevelNames) (string, error) {
	path := SidecarPath(archivePath)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(f, names); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
