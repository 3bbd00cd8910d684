// Package picker is the interactive chooser vg shows when no ordinal is given.
//
// It lists every stored entry as "<ordinal>  <path>:<line>" in a scrolling
// viewport. "/" focuses a filter input that narrows the list by a
// case-insensitive substring of "path:line"; enter applies it and esc clears
// it. Enter on a row ends the program with that entry's ordinal, which stays
// the stored ordinal regardless of filtering. T cycles the color theme and
// reports the new name through Options.OnThemeChange so it can be persisted.
package picker
