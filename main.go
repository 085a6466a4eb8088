package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"wadnames/lib"
	"wadnames/pkg/config"
	"wadnames/pkg/format"
	"wadnames/pkg/wad"

	"github.com/lmittmann/tint"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line
type options struct {
	path       string
	configPath string
	json       bool
	save       bool
	dir        bool
	verbose    bool
	help       bool
}

// printUsage prints the command-line usage information
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wadnames <archive.wad> [--json] [--save] [--dir] [--config FILE] [--verbose]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prints the level names declared in the archive's MAPINFO, ZMAPINFO,")
	fmt.Fprintln(w, "EMAPINFO and UMAPINFO lumps.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  --json       print the table as indented JSON")
	fmt.Fprintln(w, "  --save       also write <archive>.levels.json next to the archive")
	fmt.Fprintln(w, "  --dir        print the lump directory instead")
	fmt.Fprintln(w, "  --config     TOML config file (default $"+config.EnvVar+")")
	fmt.Fprintln(w, "  --verbose    log debug output")
}

// parseArgs accepts flags before or after the archive path
func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--json":
			opts.json = true
		case arg == "--save":
			opts.save = true
		case arg == "--dir":
			opts.dir = true
		case arg == "--verbose" || arg == "-v":
			opts.verbose = true
		case arg == "--help" || arg == "-h":
			opts.help = true
		case arg == "--config":
			if i+1 >= len(args) {
				return opts, errors.New("--config needs a file argument")
			}
			i++
			opts.configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-") && arg != "-":
			return opts, fmt.Errorf("unknown option %s", arg)
		default:
			if opts.path != "" {
				return opts, fmt.Errorf("unexpected argument %s", arg)
			}
			opts.path = arg
		}
	}
	if opts.path == "" && !opts.help {
		return opts, errors.New("missing archive path")
	}
	return opts, nil
}

// newLogger builds the stderr logger
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	_, isFile := w.(*os.File)
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isFile || os.Getenv("NO_COLOR") != "",
	}))
}

// run executes the command and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		printUsage(stderr)
		return 1
	}
	if opts.help {
		printUsage(stdout)
		return 0
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = os.Getenv(config.EnvVar)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	level, _ := cfg.Level()
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, level)

	if opts.dir {
		if err := handleDir(opts.path, stdout); err != nil {
			reportError(logger, opts.path, err)
			return 1
		}
		return 0
	}

	if err := handleExtract(opts, cfg, logger, stdout); err != nil {
		reportError(logger, opts.path, err)
		return 1
	}
	return 0
}

// saveError marks a failure to write the sidecar file
type saveError struct {
	err error
}

func (e *saveError) Error() string { return e.err.Error() }
func (e *saveError) Unwrap() error { return e.err }

// reportError logs a fatal error with a message matching its kind
func reportError(logger *slog.Logger, path string, err error) {
	var fe *wad.FormatError
	var se *saveError
	switch {
	case errors.As(err, &se):
		logger.Error("failed to save level names", "path", format.SidecarPath(path), "error", se.err)
	case errors.Is(err, fs.ErrNotExist):
		logger.Error("file not found", "path", path)
	case errors.As(err, &fe):
		logger.Error("not a WAD file", "path", path, "reason", fe.Reason)
	default:
		logger.Error("failed to read WAD file", "path", path, "error", err)
	}
}

// handleExtract prints the level name table of one archive
func handleExtract(opts options, cfg config.Config, logger *slog.Logger, stdout io.Writer) error {
	names, err := lib.ExtractWithConfig(opts.path, cfg, logger)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		logger.Info("no level names found in WAD file", "path", opts.path)
		return nil
	}

	if opts.save {
		saved, err := format.SaveSidecar(opts.path, names)
		if err != nil {
			return &saveError{err: err}
		}
		logger.Info("saved level names", "path", saved, "levels", len(names))
	}

	if opts.json {
		return format.WriteJSON(stdout, names)
	}
	return format.WriteListing(stdout, names)
}

// handleDir prints the lump directory of one archive
func handleDir(path string, stdout io.Writer) error {
	a, err := wad.Open(path)
	if err != nil {
		return err
	}
	entries, err := a.ReadDirectory()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s, %d lumps (%d listed), directory at %d\n",
		a.Header.Magic, a.Header.NumLumps, len(entries), a.Header.DirOffset)
	for i, e := range entries {
		fmt.Fprintf(stdout, "%5d  %-8s  %10d  %10d\n", i, e.Name, e.Offset, e.Size)
	}
	return nil
}
