package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"wadnames/pkg/mapinfo"
	"wadnames/pkg/wad"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable holding a config file path
const EnvVar = "WADNAMES_CONFIG"

// Config holds the tunables of an extraction run
type Config struct {
	Encoding       string `toml:"encoding"`         // Lump text encoding: utf-8, cp437, windows-1252
	MaxSegmentSize int64  `toml:"max_segment_size"` // Largest lump read in bytes; 0 disables the limit
	LogLevel       string `toml:"log_level"`        // debug, info, warn, error
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Encoding:       "utf-8",
		MaxSegmentSize: wad.DefaultMaxSegmentSize,
		LogLevel:       "info",
	}
}

// Load decodes the TOML file at path over the defaults. An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks that every field holds a usable value
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Decoder(); err != nil {
		errs = append(errs, err)
	}
	if c.MaxSegmentSize < 0 {
		errs = append(errs, fmt.Errorf("max_segment_size must not be negative, got %d", c.MaxSegmentSize))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Decoder returns the lump text decoder named by Encoding
func (c Config) Decoder() (mapinfo.Decoder, error) {
	return mapinfo.DecoderFor(c.Encoding)
}

// Level returns the slog level named by LogLevel
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
