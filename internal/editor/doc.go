// Package editor opens a stored match in the user's editor.
//
// The editor comes from an explicit name or from $EDITOR (then $VISUAL) and
// must be found in PATH. An open format such as "{EDITOR} +{LINE} {PATH}"
// describes its command line; common editors have a built-in format and any
// other editor needs one from the command line or the config file.
//
// On unix systems Exec replaces the current process, so the editor inherits
// the terminal directly.
package editor
