// Package termtext measures, wraps and pads text that carries ANSI SGR styling.
//
// # Overview
//
// Terminal output produced by the renderer mixes visible characters with
// invisible escape sequences such as "\x1b[1;34m". Byte length is therefore
// useless for column accounting. This package splits styled strings into
// tokens, counts only the visible ones and folds long lines at a fixed number
// of columns.
//
// # Tokens
//
// A Tokenizer yields two kinds of Token:
//
//   - Char: one grapheme cluster (see github.com/rivo/uniseg), one column wide
//   - Escape: one complete SGR sequence, ESC '[' ... 'm', zero columns wide
//
// An escape sequence still open at end of input is reported as
// ErrIncompleteEscape.
//
// # Wrapping
//
// A Wrapper folds text into lines of at most Options.Width visible columns.
// Tabs are expanded to Options.TabSize spaces first. Styles that are still
// open when a line is folded are closed with a reset at the end of that line
// and reopened, in the order they were first opened, at the start of the
// next one. Every produced line is therefore valid styled text on its own.
//
// The set of open styles is a StyleMemory value. It is passed into
// NewWrapper and can be read back with Wrapper.Memory, so callers that wrap
// consecutive fragments can carry it across calls explicitly.
//
//	lines, err := termtext.Wrap(styled, termtext.Options{Width: 40, TabSize: 8})
//
// # Numbers
//
// NumberOfDigits and PadNumber support the aligned ordinal and line-number
// columns printed before every match.
package termtext
