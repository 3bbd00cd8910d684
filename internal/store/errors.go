package store

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is matched by every IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrLoadIndexFormat is matched by every LoadIndexFormatError.
	ErrLoadIndexFormat = errors.New("malformed index line")
	// ErrMismatchedPair means the data and index files come from different saves.
	ErrMismatchedPair = errors.New("data and index files do not belong together")
	// ErrCorrupt means a store file is truncated or its header is damaged.
	ErrCorrupt = errors.New("corrupt store file")
	// ErrUnsupportedVersion means a store file was written by an incompatible version.
	ErrUnsupportedVersion = errors.New("unsupported store file version")
	// ErrClosed is returned by a Reader after Close.
	ErrClosed = errors.New("store reader is closed")
)

// IndexOutOfRangeError reports a lookup past the last stored record.
type IndexOutOfRangeError struct {
	Requested uint64
	Count     uint64
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range: %d records stored", e.Requested, e.Count)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// LoadIndexFormatError reports a line of a text store that does not parse as
// "<line_number> <path>".
type LoadIndexFormatError struct {
	Path string
	Line int // 1-based
	Text string
	Err  error
}

func (e *LoadIndexFormatError) Error() string {
	msg := fmt.Sprintf("%s:%d: malformed index line %q", e.Path, e.Line, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadIndexFormatError) Unwrap() error { return e.Err }

func (e *LoadIndexFormatError) Is(target error) bool { return target == ErrLoadIndexFormat }
