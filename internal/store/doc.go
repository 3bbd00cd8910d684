// Package store persists match locations so that a later process can look one
// up by ordinal.
//
// # Overview
//
// Two formats implement Backend:
//
//   - Binary: a data file of back-to-back records plus an index file of
//     cumulative end offsets. Reader maps both files and decodes a single
//     record window per lookup, so a lookup does not depend on how many
//     records were stored.
//   - Text: one "<line_number> <path>" line per record. Lookups scan the file.
//
// # Durability
//
// Save writes every file to a temporary sibling, syncs it and renames it over
// the destination. A crash leaves either the previous file or the new one,
// never a torn file.
//
// Both binary files carry a header with a format version and a random
// generation tag shared by the pair. Open refuses a data file and an index
// file from different saves (ErrMismatchedPair) and a data file whose size
// disagrees with the index (ErrCorrupt).
//
// # Errors
//
// Lookups past the end fail with *IndexOutOfRangeError. A text store line that
// does not parse fails with *LoadIndexFormatError. Both are meant to be shown
// to the user rather than treated as crashes.
package store
