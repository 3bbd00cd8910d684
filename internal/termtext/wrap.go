package termtext

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidWidth is returned when the wrap width is not positive.
	ErrInvalidWidth = errors.New("wrap width must be positive")
	// ErrInvalidTabSize is returned when the tab size is negative.
	ErrInvalidTabSize = errors.New("tab size must not be negative")
)

// Options control how text is folded.
type Options struct {
	// Width is the maximum number of visible columns per line.
	Width int
	// TabSize is the number of spaces a tab expands to.
	TabSize int
	// FillEnd pads every line shorter than Width with trailing spaces.
	FillEnd bool
}

func (o Options) validate() error {
	if o.Width <= 0 {
		return ErrInvalidWidth
	}
	if o.TabSize < 0 {
		return ErrInvalidTabSize
	}
	return nil
}

// StyleMemory is the ordered set of escape sequences opened since the last
// reset. The zero value is an empty memory.
type StyleMemory []string

// Apply returns the memory after seeing seq. A reset clears it, any other
// sequence is added unless it is already open.
func (m StyleMemory) Apply(seq string) StyleMemory {
	if seq == Reset {
		return nil
	}
	if slices.Contains(m, seq) {
		return m
	}
	return append(slices.Clip(m), seq)
}

// Empty reports whether no style is open.
func (m StyleMemory) Empty() bool {
	return len(m) == 0
}

// String returns the sequences that reopen every remembered style.
func (m StyleMemory) String() string {
	return strings.Join(m, "")
}

// Wrapper folds styled text into lines of a fixed visible width.
type Wrapper struct {
	opts    Options
	tz      *Tokenizer
	pending int // spaces left from an expanded tab
	mem     StyleMemory
	line    string
	err     error
	done    bool
}

// NewWrapper returns a Wrapper over text. mem holds styles left open by text
// wrapped before this one; pass nil to start unstyled.
func NewWrapper(text string, opts Options, mem StyleMemory) *Wrapper {
	w := &Wrapper{
		opts: opts,
		tz:   NewTokenizer(text),
		mem:  slices.Clone(mem),
	}
	if err := opts.validate(); err != nil {
		w.err = err
	}
	return w
}

// Next produces the next physical line. It returns false when the text is
// exhausted or an error occurred.
func (w *Wrapper) Next() bool {
	if w.err != nil || w.done {
		return false
	}

	var b strings.Builder
	b.WriteString(w.mem.String())
	width := 0

	for {
		tok, ok := w.nextToken()
		if !ok {
			if w.err != nil {
				return false
			}
			w.done = true
			// Only escapes left: nothing visible to print.
			if width == 0 {
				return false
			}
			w.line = w.fill(b.String(), width)
			return true
		}

		b.WriteString(tok.Text)
		if tok.IsEscape() {
			w.mem = w.mem.Apply(tok.Text)
			continue
		}

		width++
		if width == w.opts.Width {
			if !w.mem.Empty() {
				b.WriteString(Reset)
			}
			w.line = b.String()
			return true
		}
	}
}

// nextToken returns the next token with tabs already expanded.
func (w *Wrapper) nextToken() (Token, bool) {
	for {
		if w.pending > 0 {
			w.pending--
			return Token{Kind: Char, Text: " "}, true
		}
		if !w.tz.Next() {
			w.err = w.tz.Err()
			return Token{}, false
		}
		tok := w.tz.Token()
		if tok.Kind == Char && tok.Text == "\t" {
			w.pending = w.opts.TabSize
			continue
		}
		return tok, true
	}
}

func (w *Wrapper) fill(line string, width int) string {
	if !w.opts.FillEnd || width >= w.opts.Width {
		return line
	}
	return line + strings.Repeat(" ", w.opts.Width-width)
}

// Line returns the line produced by the last call to Next.
func (w *Wrapper) Line() string {
	return w.line
}

// Err returns the error that stopped wrapping, if any.
func (w *Wrapper) Err() error {
	return w.err
}

// Memory returns the styles still open after the lines produced so far.
func (w *Wrapper) Memory() StyleMemory {
	return slices.Clone(w.mem)
}

// Wrap folds text and collects every line.
func Wrap(text string, opts Options) ([]string, error) {
	lines, _, err := WrapWithMemory(text, opts, nil)
	return lines, err
}

// WrapWithMemory folds text starting from the open styles in mem and returns
// the lines together with the styles still open at the end.
func WrapWithMemory(text string, opts Options, mem StyleMemory) ([]string, StyleMemory, error) {
	w := NewWrapper(text, opts, mem)
	var lines []string
	for w.Next() {
		lines = append(lines, w.Line())
	}
	if err := w.Err(); err != nil {
		return nil, mem, err
	}
	return lines, w.Memory(), nil
}
