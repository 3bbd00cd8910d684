package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/five82/rgvg/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vg [flags] [N]\n\n")
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	editorName := flag.String("editor", "", "editor to run (defaults to $EDITOR)")
	format := flag.String("format", "", "editor arguments, e.g. \"{EDITOR} +{LINE} {PATH}\"")
	indexFile := flag.String("index-file", "", "override the index file")
	matchFile := flag.String("match-file", "", "override the match file")
	storeFormat := flag.String("store", "", "store format: binary or text")
	flag.Parse()

	opts := app.OpenOptions{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Editor:     *editorName,
		Format:     *format,
		Overrides: app.Overrides{
			IndexFile: *indexFile,
			MatchFile: *matchFile,
			Store:     *storeFormat,
		},
	}

	switch flag.NArg() {
	case 0:
	case 1:
		n, err := strconv.ParseUint(flag.Arg(0), 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vg: %q is not a match number\n", flag.Arg(0))
			return 2
		}
		opts.Ordinal = &n
	default:
		flag.Usage()
		return 2
	}

	if err := app.Open(opts); err != nil {
		var ue *app.UserError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.Msg)
			return 1
		}
		fmt.Fprintf(os.Stderr, "vg: %v\n", err)
		return 1
	}
	return 0
}
