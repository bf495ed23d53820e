package editor

import (
	"os"
	"strconv"
	"time"

	"termide/buffer"
	"termide/layout"
	"termide/session"
)

// sessionSaveDebounce is the idle window after a focus loss before the
// session is flushed to disk (spec: "debounced (500 ms)").
const sessionSaveDebounce = 500 * time.Millisecond

// SessionData and FileState are kept as aliases so existing references
// (including tests) can name the wire shape without importing session
// directly.
type SessionData = session.Data
type FileState = session.File

func sessionPath(workDir string) string {
	return session.PathFor(workDir)
}

// scheduleSessionSave debounces SaveSession; call on focus loss. Quit
// calls SaveSession directly and bypasses the debounce.
func (e *Editor) scheduleSessionSave() {
	if e.sessionSaveTimer != nil {
		e.sessionSaveTimer.Stop()
	}
	e.sessionSaveTimer = time.AfterFunc(sessionSaveDebounce, e.SaveSession)
}

func (e *Editor) SaveSession() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	data := session.Data{
		WorkingDir: wd,
		ActiveTab:  e.activeTab,
		TreeWidth:  e.treeWidth,
		TermRatio:  e.termRatio,
	}
	if e.fileTree != nil {
		data.TreeRoot = e.fileTree.GetRoot()
	}
	if e.layoutMgr != nil {
		for _, g := range e.layoutMgr.Groups {
			kinds := make([]int, len(g.Panels))
			for i, p := range g.Panels {
				kinds[i] = int(p.Kind)
			}
			data.Layout = append(data.Layout, session.LayoutGroup{
				Weight:     g.Weight,
				PanelKinds: kinds,
				Expanded:   g.Expanded,
			})
		}
	}

	for i, buf := range e.buffers {
		view := e.views[buf]
		fs := session.File{
			Line:  buf.Cursor.Line,
			Col:   buf.Cursor.Col,
			Dirty: buf.Dirty,
		}
		if buf.Path == "" {
			fs.Untitled = "untitled-" + strconv.Itoa(i+1)
		} else {
			fs.Path = buf.Path
		}
		if view != nil {
			fs.ScrollY = view.scrollY
			fs.ScrollX = view.scrollX
		}
		if buf.Dirty {
			fs.Text = append([]string(nil), buf.Lines...)
		}
		data.Files = append(data.Files, fs)
	}

	_ = session.Save(data)
}

func (e *Editor) RestoreSession() bool {
	wd, err := os.Getwd()
	if err != nil {
		return false
	}

	data, ok := session.Load(wd)
	if !ok {
		return false
	}

	restored := false
	for _, fs := range data.Files {
		var buf *buffer.Buffer
		if fs.Path != "" {
			if _, err := os.Stat(fs.Path); err != nil {
				continue
			}
			e.openFile(fs.Path)
			buf = e.activeBuffer()
			if buf == nil || buf.Path != fs.Path {
				continue
			}
			if fs.Dirty && len(fs.Text) > 0 {
				buf.Lines = append([]string(nil), fs.Text...)
				buf.Dirty = true
			}
		} else if len(fs.Text) > 0 {
			e.openEmptyBuffer()
			buf = e.activeBuffer()
			buf.Lines = append([]string(nil), fs.Text...)
			buf.Dirty = true
		} else {
			continue
		}

		if fs.Line < len(buf.Lines) {
			buf.Cursor.Line = fs.Line
			lineLen := buffer.RuneLen(buf.Lines[fs.Line])
			if fs.Col <= lineLen {
				buf.Cursor.Col = fs.Col
			}
		}
		view := e.activeView()
		if view != nil {
			view.scrollY = fs.ScrollY
			view.scrollX = fs.ScrollX
		}
		restored = true
	}

	if restored && data.ActiveTab >= 0 && data.ActiveTab < len(e.buffers) {
		e.switchTab(data.ActiveTab)
	}

	if e.layoutMgr != nil && len(data.Layout) > 0 {
		groups := make([]*layout.Group, len(data.Layout))
		id := 0
		for gi, lg := range data.Layout {
			panels := make([]*layout.Panel, len(lg.PanelKinds))
			for pi, k := range lg.PanelKinds {
				id++
				kind := layout.Kind(k)
				panels[pi] = &layout.Panel{ID: id, Kind: kind, Title: panelTitleForKind(kind)}
			}
			expanded := lg.Expanded
			if expanded < 0 || expanded >= len(panels) {
				expanded = 0
			}
			groups[gi] = &layout.Group{Panels: panels, Expanded: expanded, Weight: lg.Weight}
		}
		e.layoutMgr.Restore(groups, 0)
	}

	return restored
}

func panelTitleForKind(k layout.Kind) string {
	switch k {
	case layout.FileManager:
		return "Explorer"
	case layout.Editor:
		return "Editor"
	case layout.Terminal:
		return "Terminal"
	case layout.Log:
		return "Log"
	default:
		return "Welcome"
	}
}

func cleanOldSessions(retentionDays int) {
	session.CleanOld(retentionDays)
}
