package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Store formats.
const (
	StoreBinary = "binary"
	StoreText   = "text"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings shared by cg and vg.
type Config struct {
	IndexFile    string
	MatchFile    string
	Store        string
	TabSize      int
	MaxTextSize  int
	Color        string
	Theme        string
	RG           string
	RGArgs       []string
	Editor       string
	EditorFormat string
	Stream       bool
}

const (
	defaultConfigPath = "~/.config/rgvg/config.toml"
	defaultIndexFile  = "~/.cgvg.idx"
	defaultMatchFile  = "~/.cgvg.match"
	defaultTabSize    = 8
	defaultTheme      = "Classic"
	defaultRG         = "rg"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		IndexFile: mustExpand(defaultIndexFile),
		MatchFile: mustExpand(defaultMatchFile),
		Store:     StoreBinary,
		TabSize:   defaultTabSize,
		Color:     ColorAuto,
		Theme:     defaultTheme,
		RG:        defaultRG,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		IndexFile    string   `toml:"index_file"`
		MatchFile    string   `toml:"match_file"`
		Store        string   `toml:"store"`
		TabSize      *int     `toml:"tab_size"`
		MaxTextSize  *int     `toml:"max_text_size"`
		Color        string   `toml:"color"`
		Theme        string   `toml:"theme"`
		RG           string   `toml:"rg"`
		RGArgs       []string `toml:"rg_args"`
		Editor       string   `toml:"editor"`
		EditorFormat string   `toml:"editor_format"`
		Stream       bool     `toml:"stream"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.IndexFile); v != "" {
		cfg.IndexFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.MatchFile); v != "" {
		cfg.MatchFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Store); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if raw.TabSize != nil {
		cfg.TabSize = *raw.TabSize
	}
	if raw.MaxTextSize != nil {
		cfg.MaxTextSize = *raw.MaxTextSize
	}
	if v := strings.TrimSpace(raw.Color); v != "" {
		cfg.Color = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(raw.RG); v != "" {
		cfg.RG = v
	}
	cfg.RGArgs = raw.RGArgs
	cfg.Editor = strings.TrimSpace(raw.Editor)
	cfg.EditorFormat = strings.TrimSpace(raw.EditorFormat)
	cfg.Stream = raw.Stream

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if !slices.Contains([]string{StoreBinary, StoreText}, c.Store) {
		return fmt.Errorf("store %q: want %q or %q", c.Store, StoreBinary, StoreText)
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Color) {
		return fmt.Errorf("color %q: want auto, always or never", c.Color)
	}
	if c.TabSize < 0 {
		return fmt.Errorf("tab_size %d is negative", c.TabSize)
	}
	if c.MaxTextSize < 0 {
		return fmt.Errorf("max_text_size %d is negative", c.MaxTextSize)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands environment variables and a leading "~" and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	trimmed = os.ExpandEnv(trimmed)
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
