package buffer

import (
	"errors"
	"testing"
)

func TestLineAndLineCount(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"one", "two", "three"}

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	got, err := b.Line(1)
	if err != nil || got != "two" {
		t.Fatalf("Line(1) = %q, %v; want %q, nil", got, err, "two")
	}
	if _, err := b.Line(5); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition for out-of-range line, got %v", err)
	}
}

func TestCharAt(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"héllo"}

	r, err := b.CharAt(0, 0)
	if err != nil || r != 'h' {
		t.Fatalf("CharAt(0,0) = %q, %v; want 'h', nil", r, err)
	}
	if _, err := b.CharAt(0, 1000); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition for out-of-range column, got %v", err)
	}
	if _, err := b.CharAt(9, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition for out-of-range line, got %v", err)
	}
}

func TestSliceInsertDeleteReplace(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"hello world"}

	s, err := b.Slice(Range{Start: Cursor{Col: 0}, End: Cursor{Col: 5}})
	if err != nil || s != "hello" {
		t.Fatalf("Slice = %q, %v; want %q, nil", s, err, "hello")
	}

	if err := b.Insert(Cursor{Col: 5}, ","); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.Lines[0] != "hello, world" {
		t.Fatalf("after Insert: %q", b.Lines[0])
	}

	removed, err := b.Delete(Range{Start: Cursor{Col: 5}, End: Cursor{Col: 6}})
	if err != nil || removed != "," {
		t.Fatalf("Delete = %q, %v; want %q, nil", removed, err, ",")
	}
	if b.Lines[0] != "hello world" {
		t.Fatalf("after Delete: %q", b.Lines[0])
	}

	removed, err = b.Replace(Range{Start: Cursor{Col: 0}, End: Cursor{Col: 5}}, "goodbye")
	if err != nil || removed != "hello" {
		t.Fatalf("Replace = %q, %v; want %q, nil", removed, err, "hello")
	}
	if b.Lines[0] != "goodbye world" {
		t.Fatalf("after Replace: %q", b.Lines[0])
	}
}

func TestInsertFailsOnInvalidPosition(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"abc"}

	if err := b.Insert(Cursor{Line: 4, Col: 0}, "x"); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
	if err := b.Insert(Cursor{Line: 0, Col: 99}, "x"); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestInsertHasNoSideEffectsBesidesLineMutation(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"abc"}
	before := b.Undo.Cursor()

	if err := b.Insert(Cursor{Col: 3}, "d"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.Lines[0] != "abcd" {
		t.Fatalf("expected abcd, got %q", b.Lines[0])
	}
	if b.Undo.Cursor() != before {
		t.Fatalf("Insert must not itself push an undo entry, cursor moved from %d to %d", before, b.Undo.Cursor())
	}
	if b.Dirty {
		t.Fatalf("Insert must not itself set Dirty; that is the editing layer's job")
	}
}

func TestMarkSavedTracksUndoCursorNotContent(t *testing.T) {
	b := NewBuffer(4)
	for _, ch := range "ab" {
		b.InsertChar(ch)
	}
	b.MarkSaved()
	if b.Dirty {
		t.Fatalf("expected clean immediately after MarkSaved")
	}

	b.ApplyUndo()
	if !b.Dirty {
		t.Fatalf("expected dirty after undoing past the saved point")
	}

	b.ApplyRedo()
	if b.Dirty {
		t.Fatalf("expected clean again once back at the saved undo cursor")
	}
}

func TestDisplayWidthCountsWideRunesAsTwoColumns(t *testing.T) {
	if w := DisplayWidth("abc"); w != 3 {
		t.Fatalf("DisplayWidth(\"abc\") = %d, want 3", w)
	}
	if w := DisplayWidth("漢字"); w != 4 {
		t.Fatalf("DisplayWidth(\"漢字\") = %d, want 4", w)
	}
}

func TestRuneBoundaryStepsOverMultiByteCharsNotBytes(t *testing.T) {
	line := "a日b"
	// "日" is 3 bytes, so byte offsets are a=0, 日=1..3, b=4, end=5.

	if got := NextRuneBoundary(line, 1); got != 4 {
		t.Fatalf("NextRuneBoundary(1) = %d, want 4 (skip all 3 bytes of 日)", got)
	}
	if got := PrevRuneBoundary(line, 4); got != 1 {
		t.Fatalf("PrevRuneBoundary(4) = %d, want 1", got)
	}
	if got := NextRuneBoundary(line, len(line)); got != len(line) {
		t.Fatalf("NextRuneBoundary at end should stay at end, got %d", got)
	}
	if got := PrevRuneBoundary(line, 0); got != 0 {
		t.Fatalf("PrevRuneBoundary at start should stay at 0, got %d", got)
	}
}

func TestDisplayWidthToStopsAtRuneOffset(t *testing.T) {
	line := "a漢b"
	if w := DisplayWidthTo(line, 0); w != 0 {
		t.Fatalf("DisplayWidthTo(0) = %d, want 0", w)
	}
	if w := DisplayWidthTo(line, 2); w != 3 {
		t.Fatalf("DisplayWidthTo(2) = %d, want 3 (a=1 + 漢=2)", w)
	}
	if w := DisplayWidthTo(line, 3); w != 4 {
		t.Fatalf("DisplayWidthTo(3) = %d, want 4", w)
	}
}
