package editor

import (
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml/v2"

	"termide/buffer"
	"termide/config"
	"termide/layout"
)

func chdirTemp(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))

	wd := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	return wd
}

func TestSaveSessionRemovesStaleFileWhenNoOpenFileTabs(t *testing.T) {
	wd := chdirTemp(t)

	stalePath := sessionPath(wd)
	if err := os.MkdirAll(filepath.Dir(stalePath), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(stalePath, []byte("stale = true\n"), 0o644); err != nil {
		t.Fatalf("write stale session failed: %v", err)
	}

	e := New(config.Default(), nil, nil)
	e.SaveSession()

	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Fatalf("expected stale session file to be removed, stat err=%v", err)
	}
}

func TestSaveSessionWritesOpenFiles(t *testing.T) {
	wd := chdirTemp(t)

	e := New(config.Default(), nil, nil)
	b := buffer.NewBuffer(4)
	b.Path = filepath.Join(wd, "a.txt")
	e.buffers = []*buffer.Buffer{b}
	e.views[b] = &EditorView{scrollY: 3, scrollX: 2}
	e.activeTab = 0

	e.SaveSession()

	path := sessionPath(wd)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected session file, read failed: %v", err)
	}

	var got SessionData
	if err := toml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.ActiveTab != 0 || len(got.Files) != 1 || got.Files[0].Path != b.Path {
		t.Fatalf("unexpected session data: %+v", got)
	}
	if got.Files[0].ScrollY != 3 || got.Files[0].ScrollX != 2 {
		t.Fatalf("expected scroll position preserved, got %+v", got.Files[0])
	}
}

func TestSaveSessionPersistsUnsavedBufferText(t *testing.T) {
	wd := chdirTemp(t)

	e := New(config.Default(), nil, nil)
	b := buffer.NewBuffer(4)
	b.Path = filepath.Join(wd, "b.txt")
	b.Lines = []string{"one", "two"}
	b.Dirty = true
	e.buffers = []*buffer.Buffer{b}
	e.views[b] = &EditorView{}
	e.activeTab = 0

	e.SaveSession()

	data, err := os.ReadFile(sessionPath(wd))
	if err != nil {
		t.Fatalf("read session failed: %v", err)
	}
	var got SessionData
	if err := toml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(got.Files) != 1 || !got.Files[0].Dirty || len(got.Files[0].Text) != 2 {
		t.Fatalf("expected dirty buffer text persisted, got %+v", got.Files)
	}
}

func TestSessionRoundTripsLayoutSkeleton(t *testing.T) {
	wd := chdirTemp(t)

	e := New(config.Default(), nil, nil)
	b := buffer.NewBuffer(4)
	b.Path = filepath.Join(wd, "a.txt")
	e.buffers = []*buffer.Buffer{b}
	e.views[b] = &EditorView{}
	e.activeTab = 0

	e.layoutMgr.AddPanel(layout.FileManager, "Explorer", 200)
	e.layoutMgr.AddPanel(layout.Editor, "Editor", 200)
	e.SaveSession()

	restored := New(config.Default(), nil, nil)
	restored.RestoreSession()

	if len(restored.layoutMgr.Groups) != len(e.layoutMgr.Groups) {
		t.Fatalf("expected %d groups restored, got %d", len(e.layoutMgr.Groups), len(restored.layoutMgr.Groups))
	}
	for i, g := range restored.layoutMgr.Groups {
		want := e.layoutMgr.Groups[i]
		if len(g.Panels) != len(want.Panels) {
			t.Fatalf("group %d: expected %d panels, got %d", i, len(want.Panels), len(g.Panels))
		}
		for j, p := range g.Panels {
			if p.Kind != want.Panels[j].Kind {
				t.Fatalf("group %d panel %d: expected kind %v, got %v", i, j, want.Panels[j].Kind, p.Kind)
			}
		}
	}
}
