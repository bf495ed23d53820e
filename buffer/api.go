package buffer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ErrInvalidPosition is returned by the position-addressed operations below
// when a line or column falls outside the buffer's current bounds.
var ErrInvalidPosition = errors.New("invalid position")

// invalidPositionError wraps ErrInvalidPosition with the offending
// position so callers and logs can report exactly where the request
// failed, while errors.Is(err, ErrInvalidPosition) still succeeds.
type invalidPositionError struct {
	pos Cursor
}

func (e invalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %s", e.pos)
}

func (e invalidPositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}

// RuneLen returns the number of runes (not bytes) in a line.
func RuneLen(s string) int {
	return len([]rune(s))
}

// DisplayWidth returns the number of terminal display columns s occupies,
// counting each wide rune (CJK, many emoji) as two columns and zero-width
// combining runes as none, rather than one column per rune. Insert/Delete/
// Replace address characters, not columns — this is the separate query
// rendering and the word-wrap engine use to lay characters onto a fixed-
// width grid.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// DisplayWidthTo returns the display-column width of the first n runes of
// line — the column a cursor sitting at rune offset n would render at.
func DisplayWidthTo(line string, n int) int {
	width := 0
	i := 0
	for _, r := range line {
		if i >= n {
			break
		}
		width += runewidth.RuneWidth(r)
		i++
	}
	return width
}

// PrevRuneBoundary returns the byte offset of the rune immediately before
// col in line, so cursor-left steps over a whole multi-byte character
// instead of splitting it. col == 0 returns 0.
func PrevRuneBoundary(line string, col int) int {
	if col <= 0 {
		return 0
	}
	if col > len(line) {
		col = len(line)
	}
	_, size := utf8.DecodeLastRuneInString(line[:col])
	if size == 0 {
		return col - 1
	}
	return col - size
}

// NextRuneBoundary returns the byte offset of the rune immediately after
// col in line, so cursor-right steps over a whole multi-byte character
// instead of splitting it. col at or past len(line) returns len(line).
func NextRuneBoundary(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	if col < 0 {
		col = 0
	}
	_, size := utf8.DecodeRuneInString(line[col:])
	if size == 0 {
		return col + 1
	}
	return col + size
}

// LineCount returns the number of lines currently in the buffer.
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// Line returns the text of line i. It fails with ErrInvalidPosition if i is
// out of range.
func (b *Buffer) Line(i int) (string, error) {
	if i < 0 || i >= len(b.Lines) {
		return "", invalidPositionError{Cursor{Line: i}}
	}
	return b.Lines[i], nil
}

// CharAt returns the rune starting at byte offset col on the given line.
// col == len(line) is a valid position (end of line) but has no rune to
// return, so CharAt fails there; callers that need an end-of-line probe
// should use Line and len() directly. Positions throughout this file are
// byte offsets, matching the rest of the buffer's line-splicing code.
func (b *Buffer) CharAt(line, col int) (rune, error) {
	if line < 0 || line >= len(b.Lines) {
		return 0, invalidPositionError{Cursor{Line: line, Col: col}}
	}
	text := b.Lines[line]
	if col < 0 || col >= len(text) {
		return 0, invalidPositionError{Cursor{Line: line, Col: col}}
	}
	r, _ := utf8.DecodeRuneInString(text[col:])
	if r == utf8.RuneError {
		return 0, invalidPositionError{Cursor{Line: line, Col: col}}
	}
	return r, nil
}

// validPos reports whether pos addresses a real byte offset on an existing
// line, including the end-of-line offset immediately after the last byte.
func (b *Buffer) validPos(pos Cursor) bool {
	if pos.Line < 0 || pos.Line >= len(b.Lines) {
		return false
	}
	return pos.Col >= 0 && pos.Col <= len(b.Lines[pos.Line])
}

// Slice returns the text covered by r. Both endpoints must be valid
// positions; r.Start need not come before r.End, matching Selection's
// construction via NewSelection.
func (b *Buffer) Slice(r Range) (string, error) {
	if !b.validPos(r.Start) || !b.validPos(r.End) {
		return "", invalidPositionError{r.Start}
	}
	if r.End.Before(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	return b.GetTextInRange(r.Start, r.End), nil
}

// Insert splices text in at pos without touching the cursor, selection, or
// undo log — those belong to the editing operations built on top (InsertChar,
// InsertText, …), not to the buffer's own data-structure contract. It fails
// with ErrInvalidPosition rather than silently clamping.
func (b *Buffer) Insert(pos Cursor, text string) error {
	if !b.validPos(pos) {
		return invalidPositionError{pos}
	}
	if text == "" {
		return nil
	}
	b.insertTextAt(pos, text)
	return nil
}

// Delete removes the text covered by r and returns it, again with no side
// effects on cursor, selection, or undo log.
func (b *Buffer) Delete(r Range) (string, error) {
	removed, err := b.Slice(r)
	if err != nil {
		return "", err
	}
	if removed == "" {
		return "", nil
	}
	start := r.Start
	if r.End.Before(r.Start) {
		start = r.End
	}
	b.removeText(start, removed)
	return removed, nil
}

// Replace is Delete followed by Insert at the deleted range's start,
// expressed as a single call so the caller doesn't have to re-validate
// positions that shifted between the two steps.
func (b *Buffer) Replace(r Range, text string) (string, error) {
	removed, err := b.Delete(r)
	if err != nil {
		return "", err
	}
	start := r.Start
	if r.End.Before(r.Start) {
		start = r.End
	}
	if text != "" {
		b.insertTextAt(start, text)
	}
	return removed, nil
}

// Snapshot returns the buffer's full text, joined with LF regardless of the
// on-disk line ending — used by the word-wrap and syntax-cache components,
// which operate on logical text rather than file bytes.
func (b *Buffer) Snapshot() string {
	return strings.Join(b.Lines, "\n")
}
