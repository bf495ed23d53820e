package gitdiff

import (
	"errors"
	"path/filepath"
	"strings"
)

var errNotRepo = errors.New("gitdiff: not inside a git work tree")

func relPath(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// splitKeepEmpty splits on '\n' the way a buffer's line slice already is:
// a trailing newline does not produce a spurious final empty line. An
// entirely empty file yields no lines at all (nil), so every buffer line
// diffed against it reads as Added.
func splitKeepEmpty(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
