// Package session persists and restores per-project editor state to
// the XDG data directory, keyed by a hash of the working directory.
package session

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"termide/config"
)

// Data is the TOML shape written to
// <data>/termide/sessions/<hash-of-cwd>.toml.
type Data struct {
	WorkingDir string        `toml:"working_dir"`
	ActiveTab  int           `toml:"active_tab"`
	TreeRoot   string        `toml:"tree_root"`
	TreeWidth  int           `toml:"tree_width"`
	TermRatio  float64       `toml:"terminal_ratio"`
	SavedAt    string        `toml:"saved_at"`
	Files      []File        `toml:"files"`
	Layout     []LayoutGroup `toml:"layout"`
}

// LayoutGroup is the persisted skeleton of one layout.Group: its
// horizontal weight and the kind/expanded state of each stacked panel,
// per the Session Store's "layout skeleton" requirement. Panel content
// (buffer text, tree cwd, …) is restored separately through Files; this
// only rebuilds the panel-group shape so a restored session reopens
// with the same split/stack arrangement it was saved with.
type LayoutGroup struct {
	Weight     float64 `toml:"weight"`
	PanelKinds []int   `toml:"panel_kinds"`
	Expanded   int     `toml:"expanded"`
}

// File is one open editor tab. Text is populated only when the buffer
// was dirty at save time, so a save-vs-modal conflict can be detected
// on the next attempted save after restore.
type File struct {
	Path     string   `toml:"path"`
	Untitled string   `toml:"untitled,omitempty"`
	Line     int      `toml:"cursor_line"`
	Col      int      `toml:"cursor_col"`
	ScrollY  int      `toml:"scroll_y"`
	ScrollX  int      `toml:"scroll_x"`
	Dirty    bool     `toml:"dirty"`
	Text     []string `toml:"text,omitempty"`
}

// PathFor returns the session file for a given working directory.
func PathFor(workDir string) string {
	hash := sha256.Sum256([]byte(workDir))
	return filepath.Join(config.SessionsDir(), fmt.Sprintf("%x.toml", hash[:8]))
}

// Save writes data, or removes any existing session file when data.Files
// is empty (so closed tabs don't reappear next launch).
func Save(data Data) error {
	path := PathFor(data.WorkingDir)
	if len(data.Files) == 0 {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	dir := config.SessionsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data.SavedAt = time.Now().Format(time.RFC3339)
	out, err := toml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

// Load reads the session for workDir. ok is false when no session
// exists, it fails to parse, or it belongs to a different directory
// (a hash collision, or a stale file moved by hand).
func Load(workDir string) (data Data, ok bool) {
	path := PathFor(workDir)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, false
	}
	if err := toml.Unmarshal(raw, &data); err != nil {
		return Data{}, false
	}
	if data.WorkingDir != workDir {
		return Data{}, false
	}
	return data, true
}

// CleanOld deletes session files whose last write is older than
// retentionDays, run once on startup per the retention policy.
func CleanOld(retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	dir := config.SessionsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, ent.Name()))
		}
	}
}
