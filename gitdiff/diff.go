// Package gitdiff computes a line-level diff between an in-memory buffer
// and the same path's content at HEAD, for the editor's git gutter and
// deletion-marker rendering.
package gitdiff

import (
	"bytes"
	"os/exec"
	"strings"
)

// LineStatus tags a single buffer line relative to HEAD.
type LineStatus int

const (
	Unchanged LineStatus = iota
	Added
	Modified
)

// State is the result of one diff computation. A State with Available
// false means the comparison could not be made (no repository root, or a
// path that cannot be made relative to it) and every query degrades to
// Unchanged/zero, per spec.
type State struct {
	Available bool
	Err       error

	// Statuses[i] is the tag for buffer line i.
	Statuses []LineStatus

	// Deletions[i] is the number of HEAD-only lines that were removed
	// immediately after buffer line i. Deletions that occur before the
	// first buffer line are attached to index 0.
	Deletions []int
}

// StatusAt returns Unchanged for any state that isn't available or any
// line index out of range, so callers never need a nil check.
func (s *State) StatusAt(line int) LineStatus {
	if s == nil || !s.Available || line < 0 || line >= len(s.Statuses) {
		return Unchanged
	}
	return s.Statuses[line]
}

// DeletionsAt returns the trailing deletion count after the given buffer
// line, or 0 if unavailable.
func (s *State) DeletionsAt(line int) int {
	if s == nil || !s.Available || line < 0 || line >= len(s.Deletions) {
		return 0
	}
	return s.Deletions[line]
}

// unavailable builds a degraded, all-Unchanged state carrying err (e.g.
// errNotRepo when no repository root is known).
func unavailable(err error) *State {
	return &State{Available: false, Err: err}
}

// Compute diffs bufLines against the HEAD revision of path (relative to
// repoRoot; an empty repoRoot yields an unavailable state, so the caller
// is expected to have already established the repository root).
// It never returns nil.
func Compute(repoRoot, path string, bufLines []string) *State {
	head, err := headContent(repoRoot, path)
	if err != nil {
		return unavailable(err)
	}
	headLines := splitKeepEmpty(head)
	statuses, deletions := diffLines(headLines, bufLines)
	return &State{Available: true, Statuses: statuses, Deletions: deletions}
}

// InRepo reports whether path lives inside a git work tree, and if so
// returns the work tree root.
func InRepo(dir string) (root string, ok bool) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// headContent shells out to `git show HEAD:<path>` to fetch the committed
// content without touching the working tree or the index. Untracked or
// newly-added files fail this call, which Compute treats as "no HEAD
// counterpart" by diffing against empty content (every buffer line reads
// as Added), matching a freshly `git add`-ed file's gutter in real editors.
func headContent(repoRoot, absPath string) (string, error) {
	if repoRoot == "" {
		return "", errNotRepo
	}
	rel, err := relPath(repoRoot, absPath)
	if err != nil {
		return "", err
	}
	cmd := exec.Command("git", "-C", repoRoot, "show", "HEAD:"+rel)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		// No HEAD entry for this path (new/untracked file): diff against
		// nothing rather than surfacing an error.
		return "", nil
	}
	return out.String(), nil
}
