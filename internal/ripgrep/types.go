package ripgrep

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Kind identifies which variant of the record union is populated.
type Kind int

const (
	KindBegin Kind = iota
	KindMatch
	KindEnd
	KindSummary
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindMatch:
		return "match"
	case KindEnd:
		return "end"
	case KindSummary:
		return "summary"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Submatch is a half-open byte range [Start, End) into Record.Text.
type Submatch struct {
	Start uint32
	End   uint32
}

// Stats aggregates ripgrep's counters for a file or a whole search.
type Stats struct {
	Elapsed           string
	Searches          uint64
	SearchesWithMatch uint64
	BytesSearched     uint64
	BytesPrinted      uint64
	MatchedLines      uint64
	Matches           uint64
}

// Record is one message of ripgrep's JSON Lines output. Only the fields that
// belong to Kind are meaningful:
//
//   - KindBegin, KindEnd: Path
//   - KindMatch: Path, Text, LineNumber, AbsoluteOffset, Submatches
//   - KindSummary: Stats
//
// KindEnd also carries the per-file Stats.
type Record struct {
	Kind           Kind
	Path           string
	Text           string
	LineNumber     uint32
	AbsoluteOffset uint64
	Submatches     []Submatch
	Stats          Stats
}

// IsMatch reports whether the record is a matching line.
func (r Record) IsMatch() bool {
	return r.Kind == KindMatch
}

// Wire format, see `rg --json` documentation.

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// arbitraryData is either valid UTF-8 text or base64 encoded bytes.
type arbitraryData struct {
	Text  *string `json:"text"`
	Bytes *string `json:"bytes"`
}

func (d arbitraryData) String() (string, error) {
	switch {
	case d.Text != nil:
		return *d.Text, nil
	case d.Bytes != nil:
		raw, err := base64.StdEncoding.DecodeString(*d.Bytes)
		if err != nil {
			return "", fmt.Errorf("decode bytes: %w", err)
		}
		return string(raw), nil
	}
	return "", fmt.Errorf("neither text nor bytes present")
}

type beginData struct {
	Path arbitraryData `json:"path"`
}

type submatchData struct {
	Match arbitraryData `json:"match"`
	Start uint32        `json:"start"`
	End   uint32        `json:"end"`
}

type matchData struct {
	Path           arbitraryData  `json:"path"`
	Lines          arbitraryData  `json:"lines"`
	LineNumber     *uint32        `json:"line_number"`
	AbsoluteOffset uint64         `json:"absolute_offset"`
	Submatches     []submatchData `json:"submatches"`
}

type durationData struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
	Human string `json:"human"`
}

type statsData struct {
	Elapsed           durationData `json:"elapsed"`
	Searches          uint64       `json:"searches"`
	SearchesWithMatch uint64       `json:"searches_with_match"`
	BytesSearched     uint64       `json:"bytes_searched"`
	BytesPrinted      uint64       `json:"bytes_printed"`
	MatchedLines      uint64       `json:"matched_lines"`
	Matches           uint64       `json:"matches"`
}

func (s statsData) stats() Stats {
	return Stats{
		Elapsed:           s.Elapsed.Human,
		Searches:          s.Searches,
		SearchesWithMatch: s.SearchesWithMatch,
		BytesSearched:     s.BytesSearched,
		BytesPrinted:      s.BytesPrinted,
		MatchedLines:      s.MatchedLines,
		Matches:           s.Matches,
	}
}

type endData struct {
	Path  arbitraryData `json:"path"`
	Stats statsData     `json:"stats"`
}

type summaryData struct {
	ElapsedTotal durationData `json:"elapsed_total"`
	Stats        statsData    `json:"stats"`
}
