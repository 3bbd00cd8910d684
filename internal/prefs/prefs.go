// Package prefs persists picker preferences between vg runs.
// Preferences are stored in ~/.config/rgvg/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/rgvg/internal/config"
)

// Prefs holds user preferences for the picker.
type Prefs struct {
	Theme string `toml:"theme"`
	// LastOrdinal is the entry opened most recently; the picker starts there.
	LastOrdinal *uint64 `toml:"last_ordinal,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/rgvg/prefs.toml"
	defaultTheme     = "Classic"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if the
// file is missing or unreadable.
func Load(path string) (Prefs, error) {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// WithLastOrdinal returns a copy of p remembering ordinal.
func (p Prefs) WithLastOrdinal(ordinal uint64) Prefs {
	p.LastOrdinal = &ordinal
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
