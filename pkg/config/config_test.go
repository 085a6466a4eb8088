package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"wadnames/pkg/mapinfo"
	"wadnames/pkg/wad"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wadnames.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.MaxSegmentSize != wad.DefaultMaxSegmentSize {
		t.Fatalf("unexpected segment limit %d", cfg.MaxSegmentSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "encoding = \"cp437\"\nlog_level = \"debug\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxSegmentSize != wad.DefaultMaxSegmentSize {
		t.Fatalf("unset keys should keep defaults, got %d", cfg.MaxSegmentSize)
	}

	dec, err := cfg.Decoder()
	if err != nil {
		t.Fatalf("Decoder failed: %v", err)
	}
	if dec.Name != mapinfo.CP437.Name {
		t.Fatalf("expected cp437 decoder, got %s", dec.Name)
	}
	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if level != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", level)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"Syntax error", "encoding = "},
		{"Unknown key", "colour = \"red\"\n"},
		{"Unknown encoding", "encoding = \"ebcdic\"\n"},
		{"Negative limit", "max_segment_size = -1\n"},
		{"Bad level", "log_level = \"loud\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected not-exist error, got %v", err)
		}
	})
}
