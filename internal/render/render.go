package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/five82/rgvg/internal/ripgrep"
	"github.com/five82/rgvg/internal/termtext"
)

// ErrDegenerateWidth means the terminal is too narrow for the prefix columns.
var ErrDegenerateWidth = errors.New("terminal width does not exceed prefix width")

// columnGap separates the ordinal, line number and text columns.
const columnGap = "    "

// Options configures a Renderer.
type Options struct {
	Width       int // terminal width in columns
	MaxTextSize int // lines longer than this many bytes are replaced; 0 disables
	TabSize     int
	Theme       Theme
	Profile     termenv.Profile
}

// Item pairs a record with its ordinal. The ordinal is ignored for records
// that are not matches.
type Item struct {
	Record  ripgrep.Record
	Ordinal uint64
}

// Renderer turns records into printable lines.
type Renderer struct {
	opts   Options
	styles Styles
}

// New returns a Renderer. Styles are bound to opts.Profile.
func New(opts Options) *Renderer {
	return &Renderer{
		opts:   opts,
		styles: opts.Theme.Styles(NewLipglossRenderer(opts.Profile)),
	}
}

// columns holds the digit widths of the prefix columns.
type columns struct {
	ordinal    int
	lineNumber int
}

func (c columns) prefixWidth() int {
	return c.ordinal + c.lineNumber + 2*len(columnGap)
}

// Batch renders items with the prefix columns aligned across the whole batch.
func (r *Renderer) Batch(items []Item) ([]string, error) {
	cols := columns{ordinal: 1, lineNumber: 1}
	for _, it := range items {
		if !it.Record.IsMatch() {
			continue
		}
		cols.ordinal = max(cols.ordinal, termtext.NumberOfDigits(it.Ordinal))
		cols.lineNumber = max(cols.lineNumber, termtext.NumberOfDigits(uint64(it.Record.LineNumber)))
	}

	var out []string
	for _, it := range items {
		lines, err := r.record(it.Record, it.Ordinal, cols)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

// Record renders one record on its own, sizing the prefix columns to fit it.
func (r *Renderer) Record(rec ripgrep.Record, ordinal uint64) ([]string, error) {
	cols := columns{
		ordinal:    termtext.NumberOfDigits(ordinal),
		lineNumber: termtext.NumberOfDigits(uint64(rec.LineNumber)),
	}
	return r.record(rec, ordinal, cols)
}

func (r *Renderer) record(rec ripgrep.Record, ordinal uint64, cols columns) ([]string, error) {
	switch rec.Kind {
	case ripgrep.KindBegin:
		return []string{r.styles.Path.Render(rec.Path)}, nil
	case ripgrep.KindEnd:
		return []string{""}, nil
	case ripgrep.KindSummary:
		return nil, nil
	case ripgrep.KindMatch:
		return r.match(rec, ordinal, cols)
	}
	return nil, fmt.Errorf("render: unknown record kind %v", rec.Kind)
}

func (r *Renderer) match(rec ripgrep.Record, ordinal uint64, cols columns) ([]string, error) {
	prefixWidth := cols.prefixWidth()
	if r.opts.Width <= prefixWidth {
		return nil, fmt.Errorf("%w: width %d, prefix %d", ErrDegenerateWidth, r.opts.Width, prefixWidth)
	}

	ord, err := termtext.PadNumber(ordinal, cols.ordinal)
	if err != nil {
		return nil, err
	}
	line, err := termtext.PadNumber(uint64(rec.LineNumber), cols.lineNumber)
	if err != nil {
		return nil, err
	}
	prefix := r.styles.Ordinal.Render(ord) + columnGap + r.styles.LineNumber.Render(line) + columnGap

	if r.opts.MaxTextSize > 0 && len(rec.Text) > r.opts.MaxTextSize {
		msg := fmt.Sprintf("text truncated size(%d)>%d", len(rec.Text), r.opts.MaxTextSize)
		return []string{prefix + r.styles.Truncated.Render(msg)}, nil
	}

	if err := validateRanges(len(rec.Text), rec.Submatches); err != nil {
		return nil, fmt.Errorf("render %s:%d: %w", rec.Path, rec.LineNumber, err)
	}
	text := sanitize(trimTerminator(rec.Text))
	styled, err := ColorSubmatch(text, clampRanges(rec.Submatches, len(text)), r.styles.Match)
	if err != nil {
		return nil, err
	}

	bodyWidth := r.opts.Width - prefixWidth
	body, err := termtext.Wrap(styled, termtext.Options{
		Width:   bodyWidth,
		TabSize: r.opts.TabSize,
		FillEnd: true,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s:%d: %w", rec.Path, rec.LineNumber, err)
	}
	if len(body) == 0 {
		body = []string{strings.Repeat(" ", bodyWidth)}
	}

	indent := strings.Repeat(" ", prefixWidth)
	out := make([]string, len(body))
	for i, l := range body {
		if i == 0 {
			out[i] = prefix + l
			continue
		}
		out[i] = indent + l
	}
	return out, nil
}

// trimTerminator drops the line terminator ripgrep keeps on match text.
func trimTerminator(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

// clampRanges cuts ranges that reach into the trimmed terminator.
func clampRanges(ranges []ripgrep.Submatch, textLen int) []ripgrep.Submatch {
	limit := uint32(textLen)
	out := make([]ripgrep.Submatch, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, ripgrep.Submatch{Start: min(r.Start, limit), End: min(r.End, limit)})
	}
	return out
}

// sanitize replaces raw ESC bytes from searched files so they cannot be
// mistaken for styling. The replacement is one byte, keeping offsets valid.
func sanitize(text string) string {
	return strings.ReplaceAll(text, "\x1b", "^")
}
