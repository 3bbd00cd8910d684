package state

import (
	"slices"
	"sync"

	"github.com/five82/rgvg/internal/render"
	"github.com/five82/rgvg/internal/ripgrep"
	"github.com/five82/rgvg/internal/store"
)

// Snapshot is a copy of what a search has collected so far.
type Snapshot struct {
	Items      []render.Item // every observed record, empty when not retained
	Entries    []store.Entry // match locations in ordinal order
	Files      int           // files with at least one match
	Summary    ripgrep.Stats
	HasSummary bool
}

// Matches returns the number of matches observed.
func (s Snapshot) Matches() int {
	return len(s.Entries)
}

// Session assigns ordinals to matches in the order they are observed and
// collects their locations for the store.
type Session struct {
	mu         sync.RWMutex
	retain     bool
	items      []render.Item
	entries    []store.Entry
	files      int
	summary    ripgrep.Stats
	hasSummary bool
}

// NewSession returns an empty session. When retainItems is set every record
// is kept for batch rendering; streaming callers render records as they come
// and only need the match locations.
func NewSession(retainItems bool) *Session {
	return &Session{retain: retainItems}
}

// Observe records rec and returns its ordinal. The ordinal is only
// meaningful when ok is true, that is for match records.
func (s *Session) Observe(rec ripgrep.Record) (ordinal uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch rec.Kind {
	case ripgrep.KindMatch:
		ordinal, ok = uint64(len(s.entries)), true
		s.entries = append(s.entries, store.Entry{Path: rec.Path, LineNumber: rec.LineNumber})
	case ripgrep.KindBegin:
		s.files++
	case ripgrep.KindSummary:
		s.summary = rec.Stats
		s.hasSummary = true
	}

	if s.retain {
		s.items = append(s.items, render.Item{Record: rec, Ordinal: ordinal})
	}
	return ordinal, ok
}

// Snapshot returns a copy of the collected state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Items:      slices.Clone(s.items),
		Entries:    slices.Clone(s.entries),
		Files:      s.files,
		Summary:    s.summary,
		HasSummary: s.hasSummary,
	}
}

// Counts returns the number of matches and matching files observed so far
// without copying the collected records.
func (s *Session) Counts() (matches, files int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), s.files
}
