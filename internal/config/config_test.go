package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.IndexFile != filepath.Join(home, ".cgvg.idx") {
		t.Fatalf("IndexFile = %q, want %q", cfg.IndexFile, filepath.Join(home, ".cgvg.idx"))
	}
	if cfg.MatchFile != filepath.Join(home, ".cgvg.match") {
		t.Fatalf("MatchFile = %q, want %q", cfg.MatchFile, filepath.Join(home, ".cgvg.match"))
	}
	if cfg.Store != StoreBinary {
		t.Fatalf("Store = %q, want %q", cfg.Store, StoreBinary)
	}
	if cfg.TabSize != defaultTabSize {
		t.Fatalf("TabSize = %d, want %d", cfg.TabSize, defaultTabSize)
	}
	if cfg.Color != ColorAuto || cfg.Theme != defaultTheme || cfg.RG != defaultRG {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RGVG_TEST_DIR", "/tmp/rgvg")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
index_file = "  ~/state/cg.idx  "
match_file = "$RGVG_TEST_DIR/cg.match"
store = "TEXT"
tab_size = 0
max_text_size = 4096
color = "never"
theme = "Slate"
rg = "/usr/local/bin/rg"
rg_args = ["--smart-case", "--hidden"]
editor = " nvim "
editor_format = "{EDITOR} +{LINE} {PATH}"
stream = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.IndexFile != filepath.Join(home, "state", "cg.idx") {
		t.Fatalf("IndexFile = %q, want it under HOME %q", cfg.IndexFile, home)
	}
	if cfg.MatchFile != "/tmp/rgvg/cg.match" {
		t.Fatalf("MatchFile = %q, want %q", cfg.MatchFile, "/tmp/rgvg/cg.match")
	}
	if cfg.Store != StoreText {
		t.Fatalf("Store = %q, want %q", cfg.Store, StoreText)
	}
	if cfg.TabSize != 0 {
		t.Fatalf("TabSize = %d, want 0", cfg.TabSize)
	}
	if cfg.MaxTextSize != 4096 {
		t.Fatalf("MaxTextSize = %d, want 4096", cfg.MaxTextSize)
	}
	if cfg.Color != ColorNever || cfg.Theme != "Slate" || cfg.RG != "/usr/local/bin/rg" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.RGArgs) != 2 || cfg.RGArgs[0] != "--smart-case" {
		t.Fatalf("RGArgs = %q", cfg.RGArgs)
	}
	if cfg.Editor != "nvim" {
		t.Fatalf("Editor = %q, want nvim", cfg.Editor)
	}
	if cfg.EditorFormat != "{EDITOR} +{LINE} {PATH}" {
		t.Fatalf("EditorFormat = %q", cfg.EditorFormat)
	}
	if !cfg.Stream {
		t.Fatalf("Stream = false, want true")
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
index_file = "   "
store = ""
color = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.IndexFile != filepath.Join(home, ".cgvg.idx") {
		t.Fatalf("IndexFile = %q, want default", cfg.IndexFile)
	}
	if cfg.Store != StoreBinary || cfg.Color != ColorAuto || cfg.TabSize != defaultTabSize {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`index_file = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := []string{
		`store = "sqlite"`,
		`color = "sometimes"`,
		`tab_size = -1`,
		`max_text_size = -5`,
	}
	for _, body := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("Load(%q) returned nil error", body)
		}
		if !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("Load(%q) error = %q, want it to mention parse config", body, err.Error())
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}

	// Only a leading "~/" refers to the home directory.
	got, err = ExpandPath("/srv/~cache")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != "/srv/~cache" {
		t.Fatalf("ExpandPath = %q, want /srv/~cache", got)
	}
}

func TestExpandPath_ExpandsEnv(t *testing.T) {
	t.Setenv("RGVG_STATE", "/var/tmp/rgvg")
	got, err := ExpandPath("${RGVG_STATE}/idx")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != "/var/tmp/rgvg/idx" {
		t.Fatalf("ExpandPath = %q, want %q", got, "/var/tmp/rgvg/idx")
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
