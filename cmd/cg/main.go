package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/rgvg/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cg [flags] [--] <rg args...>\n\n")
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "override config path (optional)")
	indexFile := flag.String("index-file", "", "override the index file")
	matchFile := flag.String("match-file", "", "override the match file")
	storeFormat := flag.String("store", "", "store format: binary or text")
	color := flag.String("color", "", "color mode: auto, always or never")
	theme := flag.String("theme", "", "color theme")
	stream := flag.Bool("stream", false, "print each match as it arrives")
	maxTextSize := flag.Int("max-text-size", -1, "replace lines longer than this many bytes (0 disables)")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	overrides := app.Overrides{
		IndexFile: *indexFile,
		MatchFile: *matchFile,
		Store:     *storeFormat,
		Color:     *color,
		Theme:     *theme,
	}
	if size := *maxTextSize; size >= 0 {
		overrides.MaxTextSize = &size
	}
	if *stream {
		overrides.Stream = stream
	}

	err := app.Search(ctx, app.SearchOptions{
		ConfigPath: *configPath,
		Overrides:  overrides,
		Args:       flag.Args(),
	})
	if errors.Is(err, context.Canceled) {
		return 130
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cg: %v\n", err)
		return 1
	}
	return 0
}
