package termtext

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"
)

// TokenKind distinguishes visible characters from escape sequences.
type TokenKind int

const (
	// Char is a single visible grapheme cluster.
	Char TokenKind = iota
	// Escape is a complete SGR escape sequence.
	Escape
)

// Reset is the SGR sequence that clears every active style.
const Reset = "\x1b[0m"

const escByte = 0x1b

// ErrIncompleteEscape is returned when the input ends inside an escape sequence.
var ErrIncompleteEscape = errors.New("incomplete escape sequence")

// Token is one atomic unit of styled text.
type Token struct {
	Kind TokenKind
	Text string
}

// IsEscape reports whether the token is an escape sequence.
func (t Token) IsEscape() bool {
	return t.Kind == Escape
}

// Tokenizer splits a styled string into tokens. Use it like a bufio.Scanner:
//
//	tz := termtext.NewTokenizer(s)
//	for tz.Next() {
//		tok := tz.Token()
//	}
//	if err := tz.Err(); err != nil { ... }
type Tokenizer struct {
	rest      string
	graphemes int // uniseg state, -1 at a cluster boundary
	tok       Token
	err       error
}

// NewTokenizer returns a tokenizer positioned at the start of text.
func NewTokenizer(text string) *Tokenizer {
	return &Tokenizer{rest: text, graphemes: -1}
}

// Next advances to the next token. It returns false at end of input or on
// error.
func (t *Tokenizer) Next() bool {
	if t.err != nil || t.rest == "" {
		return false
	}

	if t.rest[0] == escByte {
		// Buffer everything up to and including the terminating 'm'.
		end := strings.IndexByte(t.rest[1:], 'm')
		if end < 0 {
			t.err = ErrIncompleteEscape
			t.rest = ""
			return false
		}
		end += 2
		t.tok = Token{Kind: Escape, Text: t.rest[:end]}
		t.rest = t.rest[end:]
		t.graphemes = -1
		return true
	}

	var cluster string
	cluster, t.rest, _, t.graphemes = uniseg.FirstGraphemeClusterInString(t.rest, t.graphemes)
	t.tok = Token{Kind: Char, Text: cluster}
	return true
}

// Token returns the most recent token produced by Next.
func (t *Tokenizer) Token() Token {
	return t.tok
}

// Err returns the first error encountered.
func (t *Tokenizer) Err() error {
	return t.err
}

// Tokens collects every token of text.
func Tokens(text string) ([]Token, error) {
	var out []Token
	tz := NewTokenizer(text)
	for tz.Next() {
		out = append(out, tz.Token())
	}
	return out, tz.Err()
}

// VisibleWidth returns the number of visible characters in text.
func VisibleWidth(text string) (int, error) {
	n := 0
	tz := NewTokenizer(text)
	for tz.Next() {
		if !tz.Token().IsEscape() {
			n++
		}
	}
	return n, tz.Err()
}
