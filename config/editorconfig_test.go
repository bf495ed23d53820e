package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEditorConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing .editorconfig: %v", err)
	}
}

func TestEditorConfigCacheResolvesIndentSettings(t *testing.T) {
	dir := t.TempDir()
	writeEditorConfig(t, dir, "root = true\n\n[*.go]\nindent_style = tab\ntab_width = 4\n")

	c := NewEditorConfigCache()
	got := c.Resolve(filepath.Join(dir, "main.go"))
	if got == nil {
		t.Fatalf("expected settings, got nil")
	}
	if got.IndentStyle != "tab" || got.TabWidth != 4 {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestEditorConfigCacheDistinguishesUnsetFromFalse(t *testing.T) {
	dir := t.TempDir()
	writeEditorConfig(t, dir, "[*]\ntrim_trailing_whitespace = false\n")

	c := NewEditorConfigCache()
	got := c.Resolve(filepath.Join(dir, "notes.txt"))
	if got == nil {
		t.Fatalf("expected settings, got nil")
	}
	if !got.TrimTrailingWhitespaceSet || got.TrimTrailingWhitespace {
		t.Fatalf("expected an explicit false, got %+v", got)
	}
	if got.InsertFinalNewlineSet {
		t.Fatalf("expected insert_final_newline to be unset when absent from the file")
	}
}

func TestEditorConfigCacheHitsCacheOnSecondResolve(t *testing.T) {
	dir := t.TempDir()
	writeEditorConfig(t, dir, "[*]\nindent_size = 2\n")

	c := NewEditorConfigCache()
	first := c.Resolve(filepath.Join(dir, "a.go"))
	if first == nil || first.IndentSize != 2 {
		t.Fatalf("unexpected first resolve: %+v", first)
	}

	// Mutate the file on disk; the cached entry should still win until
	// Invalidate is called.
	writeEditorConfig(t, dir, "[*]\nindent_size = 8\n")
	second := c.Resolve(filepath.Join(dir, "b.go"))
	if second.IndentSize != 2 {
		t.Fatalf("expected cached settings (indent_size=2), got %+v", second)
	}

	c.Invalidate(filepath.Join(dir, "b.go"))
	third := c.Resolve(filepath.Join(dir, "b.go"))
	if third.IndentSize != 8 {
		t.Fatalf("expected fresh settings after Invalidate, got %+v", third)
	}
}

func TestEditorConfigCacheNoMatchReturnsNil(t *testing.T) {
	dir := t.TempDir()
	c := NewEditorConfigCache()
	if got := c.Resolve(filepath.Join(dir, "file.txt")); got != nil {
		t.Fatalf("expected nil when no .editorconfig exists, got %+v", got)
	}
}
