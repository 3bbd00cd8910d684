package picker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/five82/rgvg/internal/render"
	"github.com/five82/rgvg/internal/store"
)

// Options configures the picker.
type Options struct {
	Entries []store.Entry
	Theme   string
	Profile termenv.Profile
	// Start is the ordinal the cursor starts on, when it exists.
	Start uint64
	// OnThemeChange is called with the new theme name after T is pressed.
	OnThemeChange func(name string)
}

// Model is the Bubble Tea model of the picker.
type Model struct {
	entries []store.Entry
	visible []int // indexes into entries that pass the filter
	cursor  int   // position in visible

	keys      keyMap
	filter    textinput.Model
	filtering bool
	viewport  viewport.Model
	help      help.Model

	theme         render.Theme
	styles        render.Styles
	profile       termenv.Profile
	onThemeChange func(string)

	width  int
	height int
	ready  bool

	selected *uint64
}

// New creates a picker over entries.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter paths"
	ti.CharLimit = 256

	m := Model{
		entries:       opts.Entries,
		keys:          defaultKeyMap(),
		filter:        ti,
		help:          help.New(),
		profile:       opts.Profile,
		onThemeChange: opts.OnThemeChange,
	}
	m.setTheme(opts.Theme)
	m.applyFilter()
	if opts.Start < uint64(len(opts.Entries)) {
		m.cursor = int(opts.Start)
	}
	return m
}

func (m *Model) setTheme(name string) {
	m.theme = render.GetTheme(name)
	m.styles = m.theme.Styles(render.NewLipglossRenderer(m.profile))
}

// Selected returns the ordinal chosen with enter, if any.
func (m Model) Selected() (uint64, bool) {
	if m.selected == nil {
		return 0, false
	}
	return *m.selected, true
}

// ThemeName returns the active theme.
func (m Model) ThemeName() string {
	return m.theme.Name
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := max(1, m.height-2)
		if !m.ready {
			m.viewport = viewport.New(m.width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = bodyHeight
		}
		m.help.Width = m.width
		m.filter.Width = max(1, m.width-2)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ApplyFilter):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case key.Matches(msg, m.keys.CancelFilter):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	m.refresh()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(1, m.viewport.Height)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select):
		if len(m.visible) == 0 {
			return m, nil
		}
		ordinal := uint64(m.visible[m.cursor])
		m.selected = &ordinal
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(render.NextTheme(m.theme.Name))
		if m.onThemeChange != nil {
			m.onThemeChange(m.theme.Name)
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(page)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.visible))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.visible))
	}
	m.refresh()
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
}

// applyFilter recomputes the visible entries, keeping the cursor on the same
// entry when it is still visible.
func (m *Model) applyFilter() {
	current := -1
	if m.cursor < len(m.visible) {
		current = m.visible[m.cursor]
	}

	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = make([]int, 0, len(m.entries))
	for i, e := range m.entries {
		if needle == "" || strings.Contains(strings.ToLower(entryLabel(e)), needle) {
			m.visible = append(m.visible, i)
		}
	}

	m.cursor = 0
	for pos, idx := range m.visible {
		if idx == current {
			m.cursor = pos
			break
		}
	}
}

func entryLabel(e store.Entry) string {
	return e.Path + ":" + strconv.FormatUint(uint64(e.LineNumber), 10)
}

// refresh redraws the rows into the viewport and scrolls the cursor into view.
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	digits := len(strconv.Itoa(max(len(m.entries)-1, 0)))
	rows := make([]string, len(m.visible))
	for pos, idx := range m.visible {
		row := fmt.Sprintf("%*d  %s", digits, idx, entryLabel(m.entries[idx]))
		row = ansi.Truncate(row, m.width, "…")
		if pos == m.cursor {
			row = m.styles.Selected.Render(row + strings.Repeat(" ", max(0, m.width-ansi.StringWidth(row))))
		}
		rows[pos] = row
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var header string
	switch {
	case m.filtering || m.filter.Value() != "":
		header = m.filter.View()
	default:
		header = m.styles.AccentText.Render(fmt.Sprintf("%d matches", len(m.entries)))
	}
	if len(m.visible) == 0 {
		return header + "\n" + m.styles.MutedText.Render("no matching entries") + "\n" + m.help.View(m.keys)
	}
	return header + "\n" + m.viewport.View() + "\n" + m.help.View(m.keys)
}

// Run shows the picker and returns the chosen ordinal. ok is false when the
// user quit without choosing.
func Run(opts Options) (ordinal uint64, ok bool, err error) {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return 0, false, fmt.Errorf("run picker: %w", err)
	}
	ordinal, ok = final.(Model).Selected()
	return ordinal, ok, nil
}
