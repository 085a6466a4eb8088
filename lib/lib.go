// Package lib provides one-call level name extraction for WAD archives.
// It wires the wad, mapinfo and format packages together with a config.
package lib

import (
	"fmt"
	"log/slog"

	"wadnames/pkg/config"
	"wadnames/pkg/format"
	"wadnames/pkg/mapinfo"
	"wadnames/pkg/progress"
	"wadnames/pkg/wad"
)

// LevelNames re-exported from mapinfo
type LevelNames = mapinfo.LevelNames

// ExtractLevelNames extracts the level name table of the archive at path
// using the default configuration.
func ExtractLevelNames(path string) (LevelNames, error) {
	return ExtractWithConfig(path, config.Default(), slog.Default())
}

// ExtractWithConfig extracts the level name table of the archive at path.
// Format and path errors are returned; bad lumps are logged and skipped.
func ExtractWithConfig(path string, cfg config.Config, logger *slog.Logger) (LevelNames, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dec, err := cfg.Decoder()
	if err != nil {
		return nil, err
	}

	a, err := wad.Open(path)
	if err != nil {
		return nil, err
	}
	a.MaxSegmentSize = cfg.MaxSegmentSize
	a.Counter = &progress.Counter{}

	logger.Debug("opened archive", "archive", path, "magic", a.Header.Magic, "lumps", a.Header.NumLumps)

	names, err := mapinfo.Extract(a, mapinfo.WithLogger(logger), mapinfo.WithDecoder(dec))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	logger.Debug("extraction finished", "archive", path, "read", a.Counter.String(), "levels", len(names))
	return names, nil
}

// ExtractAndSave extracts the level names of the archive at path and writes
// them to the sidecar JSON file next to it. It returns the sidecar path.
func ExtractAndSave(path string) (string, error) {
	names, err := ExtractLevelNames(path)
	if err != nil {
		return "", err
	}
	return format.SaveSidecar(path, names)
}
