package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesOptionsTable(t *testing.T) {
	c := Default()
	if c.Theme != "monokai" {
		t.Fatalf("expected monokai default theme, got %q", c.Theme)
	}
	if !c.SmartWrap || !c.ShowGitDiff {
		t.Fatalf("expected smart_wrap and show_git_diff to default on")
	}
	if c.MinPanelWidth != 80 {
		t.Fatalf("expected min_panel_width 80, got %d", c.MinPanelWidth)
	}
}

func TestLanguageTabSizeOverridesPerLanguage(t *testing.T) {
	c := Default()
	c.TabSize = 4
	if got := c.LanguageTabSize("TypeScript"); got != 2 {
		t.Fatalf("expected TypeScript tab size 2, got %d", got)
	}
	if got := c.LanguageTabSize("Go"); got != 4 {
		t.Fatalf("expected Go tab size 4, got %d", got)
	}
	if got := c.LanguageTabSize("Makefile"); got != 8 {
		t.Fatalf("expected Makefile tab size 8, got %d", got)
	}
	if got := c.LanguageTabSize("Erlang"); got != c.TabSize {
		t.Fatalf("expected unknown language to fall back to TabSize, got %d", got)
	}
}

func TestLanguageUseTabs(t *testing.T) {
	c := Default()
	if !c.LanguageUseTabs("Go") || !c.LanguageUseTabs("Makefile") {
		t.Fatalf("expected Go and Makefile to use real tabs")
	}
	if c.LanguageUseTabs("Python") {
		t.Fatalf("expected Python to use spaces")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err != nil {
		t.Fatalf("expected no error for a missing config file, got %v", err)
	}
	if cfg.Theme != Default().Theme {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadParsesOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "theme = \"solarized-dark\"\ntab_size = 2\nresource_monitor_interval = 500\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Theme != "solarized-dark" || cfg.TabSize != 2 {
		t.Fatalf("expected parsed overrides, got %+v", cfg)
	}
	if cfg.ResourceMonitorInterval.Milliseconds() != 500 {
		t.Fatalf("expected derived duration 500ms, got %v", cfg.ResourceMonitorInterval)
	}
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = [not valid toml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected a parse error for malformed toml")
	}
	if cfg.Theme != Default().Theme {
		t.Fatalf("expected defaults on parse failure, got %+v", cfg)
	}
}

func TestXDGOverridesRelocateDataRoot(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	want := filepath.Join(dir, "termide", "sessions")
	if got := SessionsDir(); got != want {
		t.Fatalf("expected SessionsDir %q, got %q", want, got)
	}
}
