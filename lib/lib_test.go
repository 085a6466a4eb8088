package lib

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"wadnames/pkg/config"
	"wadnames/pkg/format"
	"wadnames/pkg/wad"
	"wadnames/pkg/wad/wadtest"
)

func testImage() []byte {
	return wadtest.Build(wad.MagicPWAD,
		wadtest.TextLump("MAPINFO", `map MAP01 "Entryway"`),
		wadtest.TextLump("EMAPINFO", "[MAP01]\nlevelname = MAP01: Shadowed\n[MAP02]\nlevelname = MAP02: Underhalls\n"),
	)
}

func TestExtractLevelNames(t *testing.T) {
	path := wadtest.Write(t, t.TempDir(), "test.wad", testImage())

	names, err := ExtractLevelNames(path)
	if err != nil {
		t.Fatalf("ExtractLevelNames failed: %v", err)
	}
	want := LevelNames{"MAP01": "Entryway", "MAP02": "Underhalls"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestExtractCompressedMatchesPlain(t *testing.T) {
	dir := t.TempDir()
	plain := wadtest.Write(t, dir, "test.wad", testImage())
	packed := wadtest.Write(t, dir, "test.wad.lz4", wadtest.CompressLZ4(t, testImage()))

	a, err := ExtractLevelNames(plain)
	if err != nil {
		t.Fatalf("plain extraction failed: %v", err)
	}
	b, err := ExtractLevelNames(packed)
	if err != nil {
		t.Fatalf("compressed extraction failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("tables differ: %v vs %v", a, b)
	}
}

func TestExtractWithConfigLimit(t *testing.T) {
	path := wadtest.Write(t, t.TempDir(), "test.wad", testImage())
	cfg := config.Default()
	cfg.MaxSegmentSize = 24 // only the MAPINFO lump fits

	names, err := ExtractWithConfig(path, cfg, nil)
	if err != nil {
		t.Fatalf("ExtractWithConfig failed: %v", err)
	}
	want := LevelNames{"MAP01": "Entryway"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	cfg.Encoding = "klingon"
	if _, err := ExtractWithConfig(path, cfg, nil); err == nil {
		t.Fatalf("expected an error for an unknown encoding")
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ExtractLevelNames(filepath.Join(dir, "missing.wad"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	bad := wadtest.Write(t, dir, "bad.wad", []byte("JUNKJUNKJUNKJUNK"))
	_, err = ExtractLevelNames(bad)
	var fe *wad.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *wad.FormatError, got %v", err)
	}
}

func TestExtractAndSave(t *testing.T) {
	dir := t.TempDir()
	path := wadtest.Write(t, dir, "test.wad", testImage())

	saved, err := ExtractAndSave(path)
	if err != nil {
		t.Fatalf("ExtractAndSave failed: %v", err)
	}
	if saved != filepath.Join(dir, "test.levels.json") {
		t.Fatalf("unexpected sidecar path %q", saved)
	}

	f, err := os.Open(saved)
	if err != nil {
		t.Fatalf("Failed to open sidecar: %v", err)
	}
	defer f.Close()
	names, err := format.ReadJSON(f)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if names["MAP02"] != "Underhalls" {
		t.Fatalf("unexpected saved table %v", names)
	}
}
