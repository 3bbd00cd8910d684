package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/five82/rgvg/internal/config"
	"github.com/five82/rgvg/internal/logging"
	"github.com/five82/rgvg/internal/store"
)

const defaultWidth = 80

// Overrides are command line values that replace config file settings.
// Empty strings and nil pointers keep the configured value.
type Overrides struct {
	IndexFile   string
	MatchFile   string
	Store       string
	Color       string
	Theme       string
	MaxTextSize *int
	Stream      *bool
}

// loadConfig reads the config file at path and applies o on top of it.
func loadConfig(path string, o Overrides) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if o.IndexFile != "" {
		if cfg.IndexFile, err = config.ExpandPath(o.IndexFile); err != nil {
			return config.Config{}, fmt.Errorf("index file: %w", err)
		}
	}
	if o.MatchFile != "" {
		if cfg.MatchFile, err = config.ExpandPath(o.MatchFile); err != nil {
			return config.Config{}, fmt.Errorf("match file: %w", err)
		}
	}
	if o.Store != "" {
		cfg.Store = o.Store
	}
	if o.Color != "" {
		cfg.Color = o.Color
	}
	if o.Theme != "" {
		cfg.Theme = o.Theme
	}
	if o.MaxTextSize != nil {
		cfg.MaxTextSize = *o.MaxTextSize
	}
	if o.Stream != nil {
		cfg.Stream = *o.Stream
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// backend returns the record store selected by cfg.
func backend(cfg config.Config) store.Backend {
	if cfg.Store == config.StoreText {
		return store.Text{Path: cfg.IndexFile}
	}
	return store.Binary{DataPath: cfg.MatchFile, IndexPath: cfg.IndexFile}
}

type fder interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorProfile maps the color mode to the profile styles are rendered with.
func colorProfile(mode string, out io.Writer) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		if p := termenv.EnvColorProfile(); p != termenv.Ascii {
			return p
		}
		return termenv.ANSI
	}
	if !isTerminal(out) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// terminalWidth asks the terminal behind out for its width, then $COLUMNS,
// then falls back to 80 columns.
func terminalWidth(out io.Writer, getenv func(string) string) int {
	if f, ok := out.(fder); ok && isTerminal(out) {
		if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
			return w
		}
	}
	if n, err := strconv.Atoi(getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return defaultWidth
}

// streams holds the process environment a command runs against.
type streams struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Getenv func(string) string
}

func (s streams) withDefaults() streams {
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	if s.Logger == nil {
		s.Logger = logging.FromEnv()
	}
	if s.Getenv == nil {
		s.Getenv = os.Getenv
	}
	return s
}
