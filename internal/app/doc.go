// Package app provides the orchestration layer behind the cg and vg commands.
//
// # Overview
//
// This package wires together configuration, the ripgrep subprocess, the
// renderer, the record store, the picker and the editor. It is the
// composition root: the commands in cmd/ only parse flags and install signal
// handling before calling Search or Open.
//
// # Search (cg)
//
//  1. Load ~/.config/rgvg/config.toml and apply command line overrides
//  2. Pick a color profile (color = auto checks whether stdout is a terminal)
//  3. Measure the terminal width, then $COLUMNS, then fall back to 80
//  4. Start `rg --json` with rg_args followed by the user's arguments
//  5. Feed every record through a state.Session, which assigns ordinals
//  6. Print records as they arrive (stream = true) or all at once with the
//     columns aligned across the whole result (the default)
//  7. Save the match locations to the configured store
//
// A background goroutine logs progress from the session while ripgrep runs.
// When the context is cancelled ripgrep is killed, the matches read so far
// are still printed and saved, and the context error is returned. Decode and
// render failures stop ripgrep and leave the previous store untouched.
//
// # Open (vg)
//
//  1. Load the configuration and check that the store exists
//  2. Read the entry for the given ordinal, or let the user choose one in
//     the picker
//  3. Resolve the editor and its argument format
//  4. Remember the ordinal in prefs.toml and hand the terminal to the editor
//
// # Error Handling
//
// Failures the user can act on, such as an ordinal past the end of the last
// search or missing state files, are returned as *UserError whose message is
// printed verbatim. Everything else is wrapped with context and reported as
// "cg: ..." or "vg: ...". Preference writes are best effort and only logged.
package app
