package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"termide/config"
)

func tempXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	tempXDG(t)

	data := Data{
		WorkingDir: "/home/project",
		ActiveTab:  1,
		TreeRoot:   "/home/project",
		Files: []File{
			{Path: "/home/project/main.go", Line: 4, Col: 2, Dirty: false},
		},
		Layout: []LayoutGroup{
			{Weight: 1, PanelKinds: []int{0, 1}, Expanded: 1},
		},
	}

	if err := Save(data); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok := Load("/home/project")
	if !ok {
		t.Fatalf("expected a loadable session")
	}
	if got.ActiveTab != 1 || len(got.Files) != 1 || got.Files[0].Path != data.Files[0].Path {
		t.Fatalf("unexpected loaded data: %+v", got)
	}
	if len(got.Layout) != 1 || len(got.Layout[0].PanelKinds) != 2 || got.Layout[0].Expanded != 1 {
		t.Fatalf("expected layout skeleton round-tripped, got %+v", got.Layout)
	}
}

func TestSaveWithNoOpenFilesRemovesExistingSession(t *testing.T) {
	tempXDG(t)

	data := Data{WorkingDir: "/home/project", Files: []File{{Path: "/home/project/a.go"}}}
	if err := Save(data); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	path := PathFor(data.WorkingDir)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected session file to exist: %v", err)
	}

	if err := Save(Data{WorkingDir: data.WorkingDir}); err != nil {
		t.Fatalf("save with no files failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed, stat err=%v", err)
	}
}

func TestLoadMismatchedWorkingDirFails(t *testing.T) {
	tempXDG(t)

	data := Data{WorkingDir: "/home/project", Files: []File{{Path: "/home/project/a.go"}}}
	if err := Save(data); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	hash := PathFor("/home/project")
	if err := os.WriteFile(hash, []byte("working_dir = \"/some/other/dir\"\n"), 0644); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	if _, ok := Load("/home/project"); ok {
		t.Fatalf("expected load to fail on working_dir mismatch")
	}
}

func TestLoadMissingSessionFails(t *testing.T) {
	tempXDG(t)

	if _, ok := Load("/nowhere"); ok {
		t.Fatalf("expected no session to load")
	}
}

func TestCleanOldRemovesSessionsPastRetention(t *testing.T) {
	tempXDG(t)

	dir := config.SessionsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	oldPath := filepath.Join(dir, "old.toml")
	newPath := filepath.Join(dir, "new.toml")
	if err := os.WriteFile(oldPath, []byte("stale"), 0644); err != nil {
		t.Fatalf("write old failed: %v", err)
	}
	if err := os.WriteFile(newPath, []byte("fresh"), 0644); err != nil {
		t.Fatalf("write new failed: %v", err)
	}
	old := time.Now().AddDate(0, 0, -60)
	if err := os.Chtimes(oldPath, old, old); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	CleanOld(30)

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Fatalf("expected old session removed, stat err=%v", err)
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Fatalf("expected new session kept, stat err=%v", err)
	}
}
