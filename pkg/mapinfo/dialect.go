package mapinfo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrUnknownDialect is returned by Parse for lumps outside the MAPINFO family
var ErrUnknownDialect = errors.New("unknown MAPINFO dialect")

// Lump names recognized as level name sources
const (
	LumpMAPINFO  = "MAPINFO"
	LumpZMAPINFO = "ZMAPINFO"
	LumpEMAPINFO = "EMAPINFO"
	LumpUMAPINFO = "UMAPINFO"
)

type parseFunc func(text string) LevelNames

// dialects is the closed set of grammars, keyed on uppercase lump name
var dialects = map[string]parseFunc{
	LumpMAPINFO:  parseMapinfo,
	LumpZMAPINFO: parseMapinfo,
	LumpEMAPINFO: parseEmapinfo,
	LumpUMAPINFO: parseUmapinfo,
}

// mapID matches a map id: letters and digits of any script, or underscore
const mapID = `([\p{L}\p{N}_]+)`

var (
	// map MAP01 "Name" (optionally followed by a { ... } block)
	mapinfoDecl = regexp.MustCompile(`(?i)map\s+` + mapID + `\s+"([^"]+)"`)

	// EMAPINFO: [MAP01] / levelname = MAP01: Name
	emapinfoSection   = regexp.MustCompile(`^\[` + mapID + `\]`)
	emapinfoLevelname = regexp.MustCompile(`(?i)^levelname\s*=\s*(.+)`)

	// UMAPINFO: MAP MAP01 / levelname = "Name"
	umapinfoMap       = regexp.MustCompile(`(?i)^MAP\s+` + mapID)
	umapinfoLevelname = regexp.MustCompile(`(?i)^levelname\s*=\s*"?([^"]+)"?`)
)

// IsMapInfoLump reports whether a lump name selects one of the dialects
func IsMapInfoLump(name string) bool {
	_, ok := dialects[strings.ToUpper(name)]
	return ok
}

// Parse extracts level names from the text of one lump, choosing the grammar
// by lump name.
func Parse(lump, text string) (LevelNames, error) {
	parse, ok := dialects[strings.ToUpper(lump)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, lump)
	}
	return parse(text), nil
}

// ParseSegment decodes raw lump data with dec and parses it
func ParseSegment(lump string, data []byte, dec Decoder) (LevelNames, error) {
	text, err := dec.Decode(data)
	if err != nil {
		return nil, err
	}
	return Parse(lump, text)
}

// parseMapinfo scans the whole text for map declarations. A map declared
// twice keeps its later name.
func parseMapinfo(text string) LevelNames {
	levels := make(LevelNames)
	for _, m := range mapinfoDecl.FindAllStringSubmatch(text, -1) {
		levels[NormalizeID(m[1])] = m[2]
	}
	return levels
}

func parseEmapinfo(text string) LevelNames {
	levels := make(LevelNames)
	current := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if m := emapinfoSection.FindStringSubmatch(line); m != nil {
			current = NormalizeID(m[1])
			continue
		}
		if current == "" {
			continue
		}
		if m := emapinfoLevelname.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			if rest, ok := strings.CutPrefix(name, current+":"); ok {
				name = strings.TrimLeftFunc(rest, unicode.IsSpace)
			}
			levels[current] = name
		}
	}
	return levels
}

func parseUmapinfo(text string) LevelNames {
	levels := make(LevelNames)
	current := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if m := umapinfoMap.FindStringSubmatch(line); m != nil {
			current = NormalizeID(m[1])
			continue
		}
		if current == "" {
			continue
		}
		if m := umapinfoLevelname.FindStringSubmatch(line); m != nil {
			levels[current] = strings.TrimSpace(m[1])
		}
	}
	return levels
}
