package editor

import (
	"sync"
	"time"

	"termide/gitdiff"

	"github.com/gdamore/tcell/v2"
)

// gitDiffDebounce is the idle window after the last edit before a
// background recompute fires (spec: 300ms).
const gitDiffDebounce = 300 * time.Millisecond

type GitLineStatus int

const (
	GitUnchanged GitLineStatus = iota
	GitAdded
	GitModified
)

// GitDiffEvent delivers one completed background diff computation to the
// main loop. Results are applied there, never from the worker goroutine,
// so no panel state is mutated off the main loop.
type GitDiffEvent struct {
	tcell.EventTime
	Path       string
	Generation uint64
	State      *gitdiff.State
}

// GitGutter owns the debounced, cancellable git-diff worker for whichever
// file is currently active, plus the last-applied result it renders from.
type GitGutter struct {
	mu sync.Mutex

	screen     tcell.Screen
	generation uint64
	timer      *time.Timer

	path      string
	available bool
	state     *gitdiff.State
}

func NewGitGutter() *GitGutter {
	return &GitGutter{state: &gitdiff.State{}}
}

// Attach gives the gutter the screen handle needed to post results back
// to the main loop. Call once during Editor.Run setup.
func (g *GitGutter) Attach(screen tcell.Screen) {
	g.mu.Lock()
	g.screen = screen
	g.mu.Unlock()
}

// Update schedules a debounced recompute for filePath against the given
// in-memory buffer content (not the file on disk — unsaved edits must be
// reflected in the gutter). Call on every edit.
func (g *GitGutter) Update(filePath string, lines []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.path = filePath
	g.generation++
	gen := g.generation
	if g.timer != nil {
		g.timer.Stop()
	}
	if filePath == "" {
		g.available = false
		return
	}
	snapshot := append([]string(nil), lines...)
	g.timer = time.AfterFunc(gitDiffDebounce, func() {
		g.run(filePath, snapshot, gen)
	})
}

// ComputeNow bypasses the debounce — used right after a save or reload,
// per spec §4.5 ("triggered on save and on a 300ms idle").
func (g *GitGutter) ComputeNow(filePath string, lines []string) {
	g.mu.Lock()
	g.path = filePath
	g.generation++
	gen := g.generation
	if g.timer != nil {
		g.timer.Stop()
	}
	g.mu.Unlock()
	snapshot := append([]string(nil), lines...)
	go g.run(filePath, snapshot, gen)
}

func (g *GitGutter) run(filePath string, lines []string, gen uint64) {
	var state *gitdiff.State
	root, ok := gitdiff.InRepo(dirOf(filePath))
	if !ok {
		state = &gitdiff.State{}
	} else {
		state = gitdiff.Compute(root, filePath, lines)
	}

	g.mu.Lock()
	screen := g.screen
	g.mu.Unlock()

	if screen == nil {
		// No screen attached (e.g. in tests): apply synchronously.
		g.Apply(&GitDiffEvent{Path: filePath, Generation: gen, State: state})
		return
	}
	ev := &GitDiffEvent{Path: filePath, Generation: gen, State: state}
	ev.SetEventNow()
	screen.PostEvent(ev)
}

// Apply installs a background result if its generation is still current
// and its path still matches what the editor cares about — the
// generation-counter cancellation spec §4.11 requires.
func (g *GitGutter) Apply(ev *GitDiffEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ev.Generation != g.generation || ev.Path != g.path {
		return
	}
	g.state = ev.State
	g.available = ev.State.Available
}

func (g *GitGutter) StatusAt(line int) GitLineStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state.StatusAt(line) {
	case gitdiff.Added:
		return GitAdded
	case gitdiff.Modified:
		return GitModified
	default:
		return GitUnchanged
	}
}

// DeletionsAt returns the number of HEAD-only lines removed immediately
// after the given buffer line, for the deletion-marker virtual rows.
func (g *GitGutter) DeletionsAt(line int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.DeletionsAt(line)
}

func (g *GitGutter) Available() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.available
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
