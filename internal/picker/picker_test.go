package picker

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/rgvg/internal/store"
)

func entries(n int) []store.Entry {
	out := make([]store.Entry, n)
	for i := range out {
		out[i] = store.Entry{Path: fmt.Sprintf("pkg/file%02d.go", i), LineNumber: uint32(i + 1)}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func sized(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Profile == 0 {
		opts.Profile = termenv.Ascii
	}
	m, _ := send(t, New(opts), tea.WindowSizeMsg{Width: 40, Height: 7})
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPicker_NavigateAndSelect(t *testing.T) {
	m := sized(t, Options{Entries: entries(20)})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("j"), runes("k"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, isQuit(cmd))
	got, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, uint64(2), got)
}

func TestPicker_PagingAndBounds(t *testing.T) {
	m := sized(t, Options{Entries: entries(20)})
	page := m.viewport.Height
	require.Equal(t, 5, page)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, page, m.cursor)

	m, _ = send(t, m, runes("G"))
	assert.Equal(t, 19, m.cursor)
	assert.True(t, m.viewport.YOffset+m.viewport.Height > m.cursor, "cursor scrolled into view")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 19, m.cursor, "cursor stays on the last entry")

	m, _ = send(t, m, runes("g"), tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestPicker_QuitWithoutSelection(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}, runes("q")} {
		m := sized(t, Options{Entries: entries(3)})
		m, cmd := send(t, m, msg)
		assert.True(t, isQuit(cmd), "key %q", msg.String())
		_, ok := m.Selected()
		assert.False(t, ok)
	}
}

func TestPicker_FilterNarrowsEntries(t *testing.T) {
	list := entries(12)
	m := sized(t, Options{Entries: list})

	m, _ = send(t, m, runes("/"))
	require.True(t, m.filtering)

	m, _ = send(t, m, runes("1"), runes("1"))
	assert.Equal(t, "11", m.filter.Value())
	// file11.go:12 matches, so does file10.go:11.
	assert.Equal(t, []int{10, 11}, m.visible)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.filtering)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, isQuit(cmd))
	got, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, uint64(11), got, "ordinal is the stored one, not the filtered position")
}

func TestPicker_CancelFilterRestoresAll(t *testing.T) {
	m := sized(t, Options{Entries: entries(5)})
	m, _ = send(t, m, runes("/"), runes("z"))
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "no matching entries")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, isQuit(cmd), "esc leaves filter mode without quitting")
	assert.Len(t, m.visible, 5)
	assert.Equal(t, "", m.filter.Value())
}

func TestPicker_CycleThemeNotifies(t *testing.T) {
	var saved []string
	m := sized(t, Options{
		Entries:       entries(2),
		Theme:         "Classic",
		OnThemeChange: func(name string) { saved = append(saved, name) },
	})
	m, _ = send(t, m, runes("T"))
	assert.Equal(t, "Nightfox", m.ThemeName())
	assert.Equal(t, []string{"Nightfox"}, saved)
}

func TestPicker_StartOrdinalAndView(t *testing.T) {
	m := sized(t, Options{Entries: entries(20), Start: 17})
	assert.Equal(t, 17, m.cursor)

	view := m.View()
	assert.Contains(t, view, "20 matches")
	assert.Contains(t, view, "17  pkg/file17.go:18")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40, "line %q", line)
	}

	m = sized(t, Options{Entries: entries(3), Start: 99})
	assert.Equal(t, 0, m.cursor, "out of range start is ignored")
}

func TestPicker_EmptyEntries(t *testing.T) {
	m := sized(t, Options{})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestPicker_NotReady(t *testing.T) {
	assert.Equal(t, "Loading...", New(Options{Entries: entries(1)}).View())
}
