package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names the colors used for search output and the picker.
// Colors are lipgloss color strings: ANSI indexes ("1") or hex ("#c94f6d").
type Theme struct {
	Name string

	// Search output
	Path       string // file header above a group of matches
	Ordinal    string // match ordinal column
	LineNumber string // line number column
	Match      string // highlighted submatch, rendered bold
	Truncated  string // placeholder for oversized lines

	// Picker
	SelectionBg   string
	SelectionText string
	Muted         string
	Accent        string
}

// Styles returns lipgloss styles for this theme, bound to r so that the color
// profile is fixed by the caller instead of probed from the environment.
func (t Theme) Styles(r *lipgloss.Renderer) Styles {
	plain := func() lipgloss.Style {
		return r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	}
	return Styles{
		Path:       plain().Foreground(lipgloss.Color(t.Path)),
		Ordinal:    plain().Foreground(lipgloss.Color(t.Ordinal)),
		LineNumber: plain().Foreground(lipgloss.Color(t.LineNumber)),
		Match: plain().
			Foreground(lipgloss.Color(t.Match)).
			Bold(true),
		Truncated: plain().Foreground(lipgloss.Color(t.Truncated)),

		Selected: plain().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		MutedText:  plain().Foreground(lipgloss.Color(t.Muted)),
		AccentText: plain().Foreground(lipgloss.Color(t.Accent)).Bold(true),
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Path       lipgloss.Style
	Ordinal    lipgloss.Style
	LineNumber lipgloss.Style
	Match      lipgloss.Style
	Truncated  lipgloss.Style

	Selected   lipgloss.Style
	MutedText  lipgloss.Style
	AccentText lipgloss.Style
}

// NewLipglossRenderer returns a lipgloss renderer pinned to profile. Output is
// never written through it; it only decides which escapes styles emit.
func NewLipglossRenderer(profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(true)
	return r
}

// Theme definitions

var themes = map[string]Theme{
	"Classic":  classicTheme(),
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Classic", "Nightfox", "Kanagawa", "Slate"}

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "Classic"

// GetTheme returns a theme by name, falling back to Classic.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return classicTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func classicTheme() Theme {
	// 16-color palette, works on every ANSI terminal.
	return Theme{
		Name: "Classic",

		Path:       "1",  // red
		Ordinal:    "6",  // cyan
		LineNumber: "13", // bright purple
		Match:      "4",  // blue
		Truncated:  "1",  // red

		SelectionBg:   "4",
		SelectionText: "15",
		Muted:         "8",
		Accent:        "6",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Path:       "#c94f6d", // red
		Ordinal:    "#63cdcf", // cyan
		LineNumber: "#9d79d6", // magenta
		Match:      "#719cd6", // blue
		Truncated:  "#dbc074", // yellow

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1
		Muted:         "#738091", // comment
		Accent:        "#719cd6", // blue
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Path:       "#E46876", // waveRed
		Ordinal:    "#7FB4CA", // springBlue
		LineNumber: "#957FB8", // oniViolet
		Match:      "#7E9CD8", // crystalBlue
		Truncated:  "#E6C384", // carpYellow

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite
		Muted:         "#727169", // fujiGray
		Accent:        "#7E9CD8", // crystalBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Path:       "#ef4444", // red-500
		Ordinal:    "#06b6d4", // cyan-500
		LineNumber: "#a78bfa", // violet-400
		Match:      "#38bdf8", // sky-400
		Truncated:  "#f59e0b", // amber-500

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		Muted:         "#64748b", // slate-500
		Accent:        "#38bdf8", // sky-400
	}
}
