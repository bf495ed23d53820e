package wrap

import "testing"

func TestSegmentsHardWrap(t *testing.T) {
	line := []rune("abcdefgh")
	segs := Segments(line, 3, false)
	want := []Segment{{0, 3}, {3, 6}, {6, 8}}
	if len(segs) != len(want) {
		t.Fatalf("got %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d: got %v, want %v", i, segs[i], want[i])
		}
	}
}

func TestSegmentsSmartWrapBreaksOnSpace(t *testing.T) {
	line := []rune("foo bar baz")
	segs := Segments(line, 5, true)
	// "foo b" would split "bar"; the break should land after "foo "
	if len(segs) == 0 || segs[0].End != 4 {
		t.Fatalf("expected first segment to end at the space (index 4), got %v", segs)
	}
}

func TestSegmentsSmartWrapFallsBackToHardBreak(t *testing.T) {
	line := []rune("supercalifragilistic")
	segs := Segments(line, 5, true)
	if segs[0].End-segs[0].Start != 5 {
		t.Fatalf("expected hard break at width when no breakable rune exists, got %v", segs[0])
	}
}

func TestSegmentsEmptyLine(t *testing.T) {
	segs := Segments(nil, 10, false)
	if len(segs) != 1 || segs[0] != (Segment{0, 0}) {
		t.Fatalf("expected single empty segment, got %v", segs)
	}
}

func TestLocate(t *testing.T) {
	segs := []Segment{{0, 3}, {3, 6}, {6, 8}}
	row, col := Locate(segs, 4)
	if row != 1 || col != 1 {
		t.Fatalf("got row=%d col=%d, want row=1 col=1", row, col)
	}
	row, col = Locate(segs, 8)
	if row != 2 || col != 2 {
		t.Fatalf("got row=%d col=%d, want row=2 col=2 (end of last row)", row, col)
	}
}

func TestRowCount(t *testing.T) {
	if n := RowCount([]rune("abcdefgh"), 3, false); n != 3 {
		t.Fatalf("got %d rows, want 3", n)
	}
}

func TestSegmentsCountsWideRunesAsTwoColumns(t *testing.T) {
	// Each CJK character occupies two display columns, so a width-6 row
	// fits three of them, not six.
	line := []rune("漢字漢字漢字漢字")
	segs := Segments(line, 6, false)
	if len(segs) == 0 || segs[0].End-segs[0].Start != 3 {
		t.Fatalf("expected first row to hold 3 wide runes within width 6, got %v", segs)
	}
}

func TestSegmentsBreaksSingleOverWidthWideRune(t *testing.T) {
	// A width-1 row can't fit even one wide rune at its full width, but a
	// row must still advance by at least one rune.
	line := []rune("漢字")
	segs := Segments(line, 1, false)
	if len(segs) != 2 {
		t.Fatalf("expected each wide rune to take its own row, got %v", segs)
	}
}

func TestSegmentsMixedWidthRunes(t *testing.T) {
	line := []rune("a漢b字c")
	segs := Segments(line, 4, false)
	// a(1) 漢(2) b(1) = 4 -> first row; 字(2) c(1) = 3 -> second row.
	if len(segs) != 2 || segs[0] != (Segment{0, 3}) || segs[1] != (Segment{3, 5}) {
		t.Fatalf("unexpected segments for mixed-width line: %v", segs)
	}
}
