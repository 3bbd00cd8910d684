package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	scanBufSize = 64 * 1024
	scanMaxSize = 1024 * 1024
)

// Text stores one entry per line as "<line_number> <path>". Lookups scan the
// file from the start.
type Text struct {
	Path string
}

// Save replaces the file with entries.
func (s Text) Save(entries []Entry) (Paths, error) {
	for i, e := range entries {
		if strings.ContainsAny(e.Path, "\r\n") {
			return Paths{}, fmt.Errorf("entry %d: path %q contains a line break", i, e.Path)
		}
	}
	err := writeFileAtomic(s.Path, func(w *bufio.Writer) error {
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%d %s\n", e.LineNumber, e.Path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Paths{}, err
	}
	return Paths{Data: s.Path}, nil
}

// Load returns the entry on line ordinal (0-based).
func (s Text) Load(ordinal uint64) (Entry, error) {
	var (
		found Entry
		ok    bool
	)
	n, err := s.scan(func(i uint64, e Entry) bool {
		if i == ordinal {
			found, ok = e, true
			return false
		}
		return true
	})
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, &IndexOutOfRangeError{Requested: ordinal, Count: n}
	}
	return found, nil
}

// List returns every entry in file order.
func (s Text) List() ([]Entry, error) {
	var entries []Entry
	_, err := s.scan(func(_ uint64, e Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries, err
}

// Exists reports whether the file is present.
func (s Text) Exists() bool {
	return fileExists(s.Path)
}

// scan calls fn for each entry until fn returns false. It returns the number
// of entries visited.
func (s Text) scan(fn func(i uint64, e Entry) bool) (uint64, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return 0, fmt.Errorf("open index file %s: %w", s.Path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, scanBufSize), scanMaxSize)

	var n uint64
	for sc.Scan() {
		e, err := parseTextLine(sc.Text())
		if err != nil {
			return n, &LoadIndexFormatError{Path: s.Path, Line: int(n) + 1, Text: sc.Text(), Err: err}
		}
		if !fn(n, e) {
			return n + 1, nil
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("read index file %s: %w", s.Path, err)
	}
	return n, nil
}

func parseTextLine(line string) (Entry, error) {
	num, path, ok := strings.Cut(line, " ")
	if !ok {
		return Entry{}, errors.New("missing separator")
	}
	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Entry{}, err
	}
	if path == "" {
		return Entry{}, errors.New("empty path")
	}
	return Entry{Path: path, LineNumber: uint32(n)}, nil
}
