package app

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/five82/rgvg/internal/render"
	"github.com/five82/rgvg/internal/ripgrep"
	"github.com/five82/rgvg/internal/state"
)

// SearchOptions configure a cg run.
type SearchOptions struct {
	ConfigPath string
	Overrides  Overrides
	Args       []string // passed to ripgrep after the configured rg_args

	Width         int           // zero asks the terminal
	ProgressEvery time.Duration // zero uses the default
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	Getenv        func(string) string
}

// Search runs ripgrep, prints its matches with ordinals and saves their
// locations for Open. Matches collected before an interruption are still
// saved; the context error is returned afterwards.
func Search(ctx context.Context, opts SearchOptions) error {
	env := streams{Stdout: opts.Stdout, Stderr: opts.Stderr, Logger: opts.Logger, Getenv: opts.Getenv}.withDefaults()
	logger := env.Logger

	cfg, err := loadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	width := opts.Width
	if width <= 0 {
		width = terminalWidth(env.Stdout, env.Getenv)
	}
	renderer := render.New(render.Options{
		Width:       width,
		MaxTextSize: cfg.MaxTextSize,
		TabSize:     cfg.TabSize,
		Theme:       render.GetTheme(cfg.Theme),
		Profile:     colorProfile(cfg.Color, env.Stdout),
	})

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	args := append(slices.Clone(cfg.RGArgs), opts.Args...)
	logger.Debug("starting ripgrep", "rg", cfg.RG, "args", args, "width", width, "stream", cfg.Stream)
	search, err := ripgrep.Command{Name: cfg.RG, Args: args, Stderr: env.Stderr}.Start(ctx)
	if err != nil {
		return err
	}

	session := state.NewSession(!cfg.Stream)
	stopProgress := StartProgress(ctx, session, logger, opts.ProgressEvery)
	out := bufio.NewWriter(env.Stdout)

	runErr := consume(search, session, renderer, out, cfg.Stream)
	stopProgress()
	if runErr != nil && !cutOff(runErr) {
		// Stop ripgrep before waiting so it cannot block on a full pipe.
		cancel()
		_ = search.Wait()
		_ = out.Flush()
		return runErr
	}

	// A cut off last line means ripgrep died mid-write and its stdout is
	// already closed. It only counts as an interruption once the parent
	// context is done; otherwise it is a protocol error like any other.
	waitErr := search.Wait()
	interrupted := parent.Err()
	if interrupted == nil && (runErr != nil || waitErr != nil) {
		_ = out.Flush()
		return cmp.Or(runErr, waitErr)
	}
	if runErr != nil {
		logger.Debug("dropped partial ripgrep line after interrupt", "error", runErr)
	}

	snap := session.Snapshot()
	if !cfg.Stream {
		lines, err := renderer.Batch(snap.Items)
		if err != nil {
			return err
		}
		if err := writeLines(out, lines); err != nil {
			return err
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	paths, err := backend(cfg).Save(snap.Entries)
	if err != nil {
		return fmt.Errorf("save matches: %w", err)
	}
	logger.Info("search saved",
		"matches", snap.Matches(),
		"files", snap.Files,
		"elapsed", snap.Summary.Elapsed,
		"data", paths.Data,
		"index", paths.Index,
	)

	return interrupted
}

// cutOff reports whether err is a decode error on a last line that ended
// without a newline.
func cutOff(err error) bool {
	var de *ripgrep.DecodeError
	return errors.As(err, &de) && de.Truncated
}

// consume reads records until ripgrep's output ends. In stream mode every
// record is rendered as soon as it is decoded.
func consume(search *ripgrep.Search, session *state.Session, renderer *render.Renderer, out *bufio.Writer, stream bool) error {
	for search.Next() {
		rec := search.Record()
		ordinal, _ := session.Observe(rec)
		if !stream {
			continue
		}
		lines, err := renderer.Record(rec, ordinal)
		if err != nil {
			return err
		}
		if err := writeLines(out, lines); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return search.Err()
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
