// Package config loads the rgvg configuration file.
//
// # Overview
//
// cg and vg share one TOML file, ~/.config/rgvg/config.toml by default. Every
// key is optional and a missing file is not an error, so both tools work
// without any configuration. Command-line flags override file values; that
// merge happens in the app package.
//
// # TOML Format
//
//	index_file    = "~/.cgvg.idx"     # offset index (or the whole text store)
//	match_file    = "~/.cgvg.match"   # binary record data
//	store         = "binary"          # binary | text
//	tab_size      = 8
//	max_text_size = 0                 # bytes, 0 disables truncation
//	color         = "auto"            # auto | always | never
//	theme         = "Classic"
//	rg            = "rg"
//	rg_args       = ["--smart-case"]  # prepended to every search
//	editor        = ""                # empty uses $EDITOR
//	editor_format = ""                # empty uses the built-in rule
//	stream        = false
//
// # Path Expansion
//
// ExpandPath expands $VAR and ${VAR} references first, then a leading "~",
// and finally makes the result absolute.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML and out-of-range
// values such as an unknown store format or a negative tab size. All parse
// and validation errors mention "parse config".
package config
