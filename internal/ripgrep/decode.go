package ripgrep

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrProtocol is matched by every DecodeError.
var ErrProtocol = errors.New("ripgrep protocol error")

// DecodeError reports a malformed or unsupported JSON line.
type DecodeError struct {
	Line int // 1-based line of the stream, 0 when unknown
	Err  error
	// Truncated is set when the line was the last one and had no newline,
	// which is how output looks when ripgrep is killed mid-write.
	Truncated bool
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decode ripgrep output line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("decode ripgrep output: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrProtocol }

// Decode parses one line of `rg --json` output.
func Decode(line []byte) (Record, error) {
	rec, err := decode(line)
	if err != nil {
		return Record{}, &DecodeError{Err: err}
	}
	return rec, nil
}

func decode(line []byte) (Record, error) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Record{}, err
	}

	switch env.Type {
	case "begin":
		var data beginData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return Record{}, fmt.Errorf("begin: %w", err)
		}
		path, err := data.Path.String()
		if err != nil {
			return Record{}, fmt.Errorf("begin path: %w", err)
		}
		return Record{Kind: KindBegin, Path: path}, nil

	case "match":
		return decodeMatch(env.Data)

	case "end":
		var data endData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return Record{}, fmt.Errorf("end: %w", err)
		}
		path, err := data.Path.String()
		if err != nil {
			return Record{}, fmt.Errorf("end path: %w", err)
		}
		return Record{Kind: KindEnd, Path: path, Stats: data.Stats.stats()}, nil

	case "summary":
		var data summaryData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return Record{}, fmt.Errorf("summary: %w", err)
		}
		stats := data.Stats.stats()
		if stats.Elapsed == "" {
			stats.Elapsed = data.ElapsedTotal.Human
		}
		return Record{Kind: KindSummary, Stats: stats}, nil
	}

	return Record{}, fmt.Errorf("unsupported message type %q", env.Type)
}

func decodeMatch(raw json.RawMessage) (Record, error) {
	var data matchData
	if err := json.Unmarshal(raw, &data); err != nil {
		return Record{}, fmt.Errorf("match: %w", err)
	}
	path, err := data.Path.String()
	if err != nil {
		return Record{}, fmt.Errorf("match path: %w", err)
	}
	text, err := data.Lines.String()
	if err != nil {
		return Record{}, fmt.Errorf("match lines: %w", err)
	}
	if data.LineNumber == nil {
		return Record{}, errors.New("match without line number")
	}

	subs := make([]Submatch, 0, len(data.Submatches))
	for _, sm := range data.Submatches {
		subs = append(subs, Submatch{Start: sm.Start, End: sm.End})
	}

	return Record{
		Kind:           KindMatch,
		Path:           path,
		Text:           text,
		LineNumber:     *data.LineNumber,
		AbsoluteOffset: data.AbsoluteOffset,
		Submatches:     subs,
	}, nil
}

const maxLineSize = 64 * 1024 * 1024

// Scanner decodes a stream of JSON lines one record at a time.
type Scanner struct {
	sc           *bufio.Scanner
	line         int
	unterminated bool // last token ended at EOF without a newline
	rec          Record
	err          error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s := &Scanner{sc: sc}
	sc.Split(s.splitLines)
	return s
}

func (s *Scanner) splitLines(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := bufio.ScanLines(data, atEOF)
	if token != nil && advance > 0 {
		s.unterminated = atEOF && data[advance-1] != '\n'
	}
	return advance, token, err
}

// Next decodes the next record. It returns false at end of stream or on the
// first error.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	for s.sc.Scan() {
		s.line++
		line := bytes.TrimSpace(s.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := decode(line)
		if err != nil {
			s.err = &DecodeError{Line: s.line, Err: err, Truncated: s.unterminated}
			return false
		}
		s.rec = rec
		return true
	}
	if err := s.sc.Err(); err != nil {
		s.err = fmt.Errorf("read ripgrep output: %w", err)
	}
	return false
}

// Record returns the record decoded by the last call to Next.
func (s *Scanner) Record() Record {
	return s.rec
}

// Err returns the error that stopped the scanner, if any.
func (s *Scanner) Err() error {
	return s.err
}
