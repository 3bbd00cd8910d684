package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/rgvg/internal/ripgrep"
)

// ErrSubmatchRange is matched by every SubmatchRangeError.
var ErrSubmatchRange = errors.New("invalid submatch range")

// SubmatchRangeError reports a submatch that does not fit the line it belongs
// to. It indicates a corrupt upstream record.
type SubmatchRangeError struct {
	Index   int // position in the submatch list
	Start   uint32
	End     uint32
	TextLen int
	Reason  string
}

func (e *SubmatchRangeError) Error() string {
	return fmt.Sprintf("submatch %d [%d, %d) in text of %d bytes: %s",
		e.Index, e.Start, e.End, e.TextLen, e.Reason)
}

func (e *SubmatchRangeError) Is(target error) bool { return target == ErrSubmatchRange }

// validateRanges checks that ranges are ascending, non-overlapping and within
// textLen bytes.
func validateRanges(textLen int, ranges []ripgrep.Submatch) error {
	var prevEnd uint32
	for i, r := range ranges {
		fail := func(reason string) error {
			return &SubmatchRangeError{Index: i, Start: r.Start, End: r.End, TextLen: textLen, Reason: reason}
		}
		switch {
		case int(r.End) > textLen:
			return fail("end beyond text")
		case r.Start > r.End:
			return fail("start after end")
		case r.Start < prevEnd:
			return fail("overlaps previous submatch")
		}
		prevEnd = r.End
	}
	return nil
}

// ColorSubmatch returns text with every range rendered in style. Bytes
// between ranges are copied unchanged.
func ColorSubmatch(text string, ranges []ripgrep.Submatch, style lipgloss.Style) (string, error) {
	if err := validateRanges(len(text), ranges); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text) + len(ranges)*16)
	var last uint32
	for _, r := range ranges {
		b.WriteString(text[last:r.Start])
		if r.Start < r.End {
			b.WriteString(style.Render(text[r.Start:r.End]))
		}
		last = r.End
	}
	b.WriteString(text[last:])
	return b.String(), nil
}
