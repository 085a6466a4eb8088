package mapinfo

import (
	"fmt"
	"log/slog"

	"wadnames/pkg/wad"
)

// Option configures Extract
type Option func(*extractor)

type extractor struct {
	logger  *slog.Logger
	decoder Decoder
}

// WithLogger sets the logger used for skipped-lump warnings and debug output
func WithLogger(l *slog.Logger) Option {
	return func(x *extractor) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithDecoder sets the text decoder applied to every lump
func WithDecoder(d Decoder) Option {
	return func(x *extractor) {
		x.decoder = d
	}
}

// Extract builds the level name table of an archive. Lumps are visited in
// directory order; a map id keeps the name from the first lump defining it.
// Lumps that fail to load or parse are logged and skipped. Only a directory
// read failure is returned as an error.
func Extract(a *wad.Archive, opts ...Option) (LevelNames, error) {
	x := extractor{logger: slog.Default(), decoder: UTF8}
	for _, opt := range opts {
		opt(&x)
	}

	entries, err := a.ReadDirectory()
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	levels := make(LevelNames)
	for i, e := range entries {
		if e.Size == 0 || !IsMapInfoLump(e.Name) {
			continue
		}

		parsed, err := x.parseEntry(a, e)
		if err != nil {
			x.logger.Warn("skipping lump", "error", &SegmentError{Lump: e.Name, Index: i, Err: err})
			continue
		}

		added := levels.Merge(parsed)
		x.logger.Debug("parsed lump", "lump", e.Name, "index", i, "levels", len(parsed), "added", added)
	}
	return levels, nil
}

func (x *extractor) parseEntry(a *wad.Archive, e wad.Entry) (LevelNames, error) {
	data, err := a.ReadSegment(e)
	if err != nil {
		return nil, err
	}
	return ParseSegment(e.Name, data, x.decoder)
}
