package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/five82/rgvg/internal/config"
	"github.com/five82/rgvg/internal/editor"
	"github.com/five82/rgvg/internal/picker"
	"github.com/five82/rgvg/internal/prefs"
	"github.com/five82/rgvg/internal/store"
)

// OpenOptions configure a vg run.
type OpenOptions struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/rgvg/prefs.toml
	Overrides  Overrides
	Editor     string // empty uses the config, then $EDITOR and $VISUAL
	Format     string // empty uses the config, then the built-in rule
	// Ordinal selects the match to open. Nil shows the picker.
	Ordinal *uint64

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Getenv func(string) string

	pick func(picker.Options) (uint64, bool, error)
	exec func(ed editor.Editor, format string, entry store.Entry) error
}

// UserError carries a message meant for the person at the terminal. Commands
// print it as is, without wrapping context.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string { return e.Msg }

func (e *UserError) Unwrap() error { return e.Err }

// Open looks up a stored match and opens it in the editor. On unix the
// editor replaces the current process, so a successful Open does not return.
func Open(opts OpenOptions) error {
	env := streams{Stdout: opts.Stdout, Stderr: opts.Stderr, Logger: opts.Logger, Getenv: opts.Getenv}.withDefaults()
	logger := env.Logger

	cfg, err := loadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	be := backend(cfg)
	if !be.Exists() {
		return missingState(cfg)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	var (
		ordinal uint64
		entry   store.Entry
	)
	if opts.Ordinal != nil {
		ordinal = *opts.Ordinal
		entry, err = be.Load(ordinal)
		if err != nil {
			return describeLoadError(cfg, err)
		}
	} else {
		var ok bool
		ordinal, entry, ok, err = choose(be, cfg, opts, &userPrefs, env)
		if err != nil {
			return err
		}
		if !ok {
			logger.Debug("picker closed without a choice")
			return nil
		}
	}

	name := opts.Editor
	if name == "" {
		name = cfg.Editor
	}
	ed, err := editor.Resolve(name, env.Getenv)
	if err != nil {
		if errors.Is(err, editor.ErrNoEditor) {
			return &UserError{Msg: "No editor configured. Set $EDITOR or pass -editor.", Err: err}
		}
		return err
	}

	format := opts.Format
	if format == "" {
		format = cfg.EditorFormat
	}
	if _, err := ed.Format(format); err != nil {
		return &UserError{Msg: err.Error(), Err: err}
	}

	if err := prefs.Save(opts.PrefsPath, userPrefs.WithLastOrdinal(ordinal)); err != nil {
		logger.Warn("could not save preferences", "error", err)
	}

	logger.Debug("opening editor", "editor", ed.Path, "path", entry.Path, "line", entry.LineNumber, "ordinal", ordinal)
	run := opts.exec
	if run == nil {
		run = editor.Editor.Open
	}
	return run(ed, format, entry)
}

// choose runs the picker over every stored entry.
func choose(be store.Backend, cfg config.Config, opts OpenOptions, userPrefs *prefs.Prefs, env streams) (uint64, store.Entry, bool, error) {
	entries, err := be.List()
	if err != nil {
		return 0, store.Entry{}, false, describeLoadError(cfg, err)
	}
	if len(entries) == 0 {
		return 0, store.Entry{}, false, &UserError{Msg: "The last search found no matches."}
	}

	var start uint64
	if userPrefs.LastOrdinal != nil {
		start = *userPrefs.LastOrdinal
	}
	pick := opts.pick
	if pick == nil {
		pick = picker.Run
	}
	ordinal, ok, err := pick(picker.Options{
		Entries: entries,
		Theme:   userPrefs.Theme,
		Profile: colorProfile(cfg.Color, env.Stdout),
		Start:   start,
		OnThemeChange: func(name string) {
			userPrefs.Theme = name
			if err := prefs.Save(opts.PrefsPath, *userPrefs); err != nil {
				env.Logger.Warn("could not save theme preference", "theme", name, "error", err)
			}
		},
	})
	if err != nil || !ok {
		return 0, store.Entry{}, false, err
	}
	if ordinal >= uint64(len(entries)) {
		return 0, store.Entry{}, false, fmt.Errorf("picker returned ordinal %d of %d entries", ordinal, len(entries))
	}
	return ordinal, entries[ordinal], true, nil
}

func missingState(cfg config.Config) error {
	if cfg.Store == config.StoreText {
		return &UserError{
			Msg: fmt.Sprintf("Could not find state file %s. Did you use vg without cg?", cfg.IndexFile),
			Err: fs.ErrNotExist,
		}
	}
	return &UserError{
		Msg: fmt.Sprintf("Could not find state files %s or %s. Did you use vg without cg?", cfg.MatchFile, cfg.IndexFile),
		Err: fs.ErrNotExist,
	}
}

// describeLoadError turns store failures the user can act on into messages.
func describeLoadError(cfg config.Config, err error) error {
	var rangeErr *store.IndexOutOfRangeError
	var formatErr *store.LoadIndexFormatError
	switch {
	case errors.As(err, &rangeErr):
		if rangeErr.Count == 0 {
			return &UserError{Msg: "The last search found no matches.", Err: err}
		}
		return &UserError{
			Msg: fmt.Sprintf("No match %d: the last search found %d matches (0 to %d).", rangeErr.Requested, rangeErr.Count, rangeErr.Count-1),
			Err: err,
		}
	case errors.As(err, &formatErr):
		return &UserError{
			Msg: fmt.Sprintf("Could not read the index: %v. Run cg again.", formatErr),
			Err: err,
		}
	case errors.Is(err, store.ErrMismatchedPair), errors.Is(err, store.ErrCorrupt), errors.Is(err, store.ErrUnsupportedVersion):
		return &UserError{
			Msg: fmt.Sprintf("The state files %s and %s are unusable (%v). Run cg again.", cfg.MatchFile, cfg.IndexFile, err),
			Err: err,
		}
	}
	return err
}
