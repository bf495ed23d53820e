// Package config loads and resolves termide's typed configuration and
// themes from the XDG base directories, falling back to built-in
// defaults when nothing is on disk or a file fails to parse.
package config

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config mirrors <config>/termide/config.toml. Unknown keys are ignored
// by go-toml; every field below matches the config options table.
type Config struct {
	Theme                     string `toml:"theme"`
	Language                  string `toml:"language"`
	TabSize                   int    `toml:"tab_size"`
	WordWrap                  bool   `toml:"word_wrap"`
	SmartWrap                 bool   `toml:"smart_wrap"`
	ShowGitDiff               bool   `toml:"show_git_diff"`
	MinPanelWidth             int    `toml:"min_panel_width"`
	ResourceMonitorIntervalMS int    `toml:"resource_monitor_interval"`
	SessionRetentionDays      int    `toml:"session_retention_days"`
	FMExtendedViewWidth       int    `toml:"fm_extended_view_width"`
	MinLogLevel               string `toml:"min_log_level"`

	// Carried over from the editor's own settings, outside the
	// spec's enumerated table but still user-tunable.
	Shell              string  `toml:"shell"`
	TreeWidth          int     `toml:"tree_width"`
	TermRatio          float64 `toml:"terminal_ratio"`
	AutoClose          bool    `toml:"auto_close"`
	QuoteWrapSelection bool    `toml:"quote_wrap_selection"`
	TrimTrailingSpace  bool    `toml:"trim_trailing_whitespace"`
	InsertFinalNewline bool    `toml:"insert_final_newline"`

	// Derived, not serialized.
	ResourceMonitorInterval time.Duration `toml:"-"`
}

// LanguageTabSize returns the appropriate tab size for a given language.
// Returns the per-language default or the user's configured tab size.
func (c *Config) LanguageTabSize(language string) int {
	switch language {
	case "JavaScript", "TypeScript", "JSON", "HTML", "CSS", "SCSS",
		"YAML", "Vue", "Svelte", "JSX", "TSX", "TOML":
		return 2
	case "Go", "Python", "Java", "C", "C++", "Rust", "C#", "PHP":
		return 4
	case "Makefile":
		return 8 // Makefiles use real tabs, but this sets the visual width
	default:
		return c.TabSize
	}
}

// LanguageUseTabs returns whether a language should use real tabs vs spaces.
func (c *Config) LanguageUseTabs(language string) bool {
	switch language {
	case "Go", "Makefile":
		return true
	default:
		return false
	}
}

func Default() *Config {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return &Config{
		Theme:                     "monokai",
		Language:                  "auto",
		TabSize:                   4,
		WordWrap:                  false,
		SmartWrap:                 true,
		ShowGitDiff:               true,
		MinPanelWidth:             80,
		ResourceMonitorIntervalMS: 2000,
		SessionRetentionDays:      30,
		FMExtendedViewWidth:       70,
		MinLogLevel:               "info",

		Shell:              shell,
		TreeWidth:          24,
		TermRatio:          0.30,
		AutoClose:          true,
		QuoteWrapSelection: true,
		TrimTrailingSpace:  false,
		InsertFinalNewline: true,

		ResourceMonitorInterval: 2 * time.Second,
	}
}

// xdgDir resolves an XDG base directory: the env var if set, else
// home/fallback. Used for config, data, and cache roots.
func xdgDir(envVar, homeFallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, homeFallback)
}

func configRoot() string {
	if dir, err := os.UserConfigDir(); err == nil && os.Getenv("XDG_CONFIG_HOME") == "" {
		return filepath.Join(dir, "termide")
	}
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "termide")
}

func dataRoot() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "termide")
}

func cacheRoot() string {
	return filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), "termide")
}

// ConfigPath returns <config>/termide/config.toml.
func ConfigPath() string {
	return filepath.Join(configRoot(), "config.toml")
}

// ThemesDir returns <config>/termide/themes.
func ThemesDir() string {
	return filepath.Join(configRoot(), "themes")
}

// SessionsDir returns <data>/termide/sessions.
func SessionsDir() string {
	return filepath.Join(dataRoot(), "sessions")
}

// LogPath returns <data>/termide/log/termide.log.
func LogPath() string {
	return filepath.Join(dataRoot(), "log", "termide.log")
}

// BackupsDir returns <data>/termide/backups, where the periodic dirty-buffer
// backup sweep writes its snapshots.
func BackupsDir() string {
	return filepath.Join(dataRoot(), "backups")
}

// CachePath returns <cache>/termide, reserved for future use (e.g. a
// persisted highlight cache); the cache root is created lazily.
func CachePath() string {
	return cacheRoot()
}

// Load reads overridePath if non-empty, else ConfigPath(). A missing
// file yields defaults; a malformed file yields defaults plus an error
// describing the parse failure, so the caller can log a warning and
// continue per the Parse error-kind policy.
func Load(overridePath string) (*Config, error) {
	path := overridePath
	if path == "" {
		path = ConfigPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	cfg.ResourceMonitorInterval = time.Duration(cfg.ResourceMonitorIntervalMS) * time.Millisecond
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetTheme loads the configured theme by name, falling back to the
// built-in default when no user theme file exists or it fails to parse.
func (c *Config) GetTheme() *ColorScheme {
	theme, err := LoadTheme(c.Theme)
	if err != nil {
		if builtin, ok := Themes[c.Theme]; ok {
			return builtin
		}
		return Themes["monokai"]
	}
	return theme
}
