// Package wrap computes visual line breaks for word-wrapped rendering.
// It is pure: given a line and a width it returns the row segments,
// with no buffer, screen, or cursor dependency, so the editor's
// rendering and cursor-navigation code can share one source of truth
// for where a line breaks.
package wrap

import "github.com/mattn/go-runewidth"

// Segment is a half-open rune range [Start, End) of a line that renders
// as one visual row.
type Segment struct {
	Start, End int
}

// Segments computes the visual row breakpoints for line at the given
// display-column width. Width is measured with go-runewidth so wide
// runes (CJK, emoji) count as two columns instead of one; with smart
// set, a break prefers the last whitespace or hyphen within the row so
// words aren't split. A single run longer than width with no breakable
// character still hard-breaks once it fills the row, so a segment is
// never empty.
func Segments(line []rune, width int, smart bool) []Segment {
	if width <= 0 {
		width = 1
	}
	if len(line) == 0 {
		return []Segment{{0, 0}}
	}
	var segs []Segment
	start := 0
	for start < len(line) {
		end := rowEnd(line, start, width)
		if end >= len(line) {
			segs = append(segs, Segment{start, len(line)})
			break
		}
		if smart {
			if brk := lastBreak(line, start, end); brk > start {
				end = brk
			}
		}
		segs = append(segs, Segment{start, end})
		start = end
	}
	return segs
}

// rowEnd returns the rune offset where a row starting at start must
// break given width display columns, always advancing by at least one
// rune so a single over-wide rune still terminates its own row.
func rowEnd(line []rune, start, width int) int {
	col := 0
	for i := start; i < len(line); i++ {
		w := runewidth.RuneWidth(line[i])
		if i > start && col+w > width {
			return i
		}
		col += w
	}
	return len(line)
}

// lastBreak returns the row-end offset that lands just after the last
// breakable rune in (start, end], or end when none exists.
func lastBreak(line []rune, start, end int) int {
	for i := end; i > start; i-- {
		if isBreakable(line[i-1]) {
			return i
		}
	}
	return end
}

func isBreakable(r rune) bool {
	return r == ' ' || r == '\t' || r == '-'
}

// RowCount is a convenience for callers that only need the row count,
// not the segment boundaries.
func RowCount(line []rune, width int, smart bool) int {
	return len(Segments(line, width, smart))
}

// Locate finds which visual row col falls on and its column within
// that row, given the line's segments. col beyond the line's length
// clamps to the end of the last row.
func Locate(segs []Segment, col int) (row, rowCol int) {
	for i, seg := range segs {
		if col < seg.End || i == len(segs)-1 {
			if col < seg.Start {
				return i, 0
			}
			return i, col - seg.Start
		}
	}
	return 0, col
}
