package buffer

import (
	"testing"
	"time"
)

func TestUndoGroupedInsertPasteLikeSequence(t *testing.T) {
	b := NewBuffer(4)
	for _, ch := range "block" {
		b.InsertChar(ch)
	}

	// Force the coalescing window to lapse before the next insert burst,
	// so "ock" lands as its own merged entry instead of extending "block".
	if len(b.Undo.undos) == 0 {
		t.Fatalf("expected undo ops after initial insert")
	}
	b.Undo.undos[len(b.Undo.undos)-1].Time = time.Now().Add(-undoCoalesceWindow - time.Millisecond)

	for _, ch := range "ock" {
		b.InsertChar(ch)
	}
	if got := b.Lines[0]; got != "blockock" {
		t.Fatalf("expected blockock before undo, got %q", got)
	}

	b.ApplyUndo()
	if got := b.Lines[0]; got != "block" {
		t.Fatalf("expected block after undo, got %q", got)
	}

	b.ApplyRedo()
	if got := b.Lines[0]; got != "blockock" {
		t.Fatalf("expected blockock after redo, got %q", got)
	}
}

func TestUndoRedoSingleGroupedWordInsert(t *testing.T) {
	b := NewBuffer(4)
	for _, ch := range "block" {
		b.InsertChar(ch)
	}
	if got := b.Lines[0]; got != "block" {
		t.Fatalf("expected block before undo, got %q", got)
	}

	b.ApplyUndo()
	if got := b.Lines[0]; got != "" {
		t.Fatalf("expected empty line after undo, got %q", got)
	}

	b.ApplyRedo()
	if got := b.Lines[0]; got != "block" {
		t.Fatalf("expected block after redo, got %q", got)
	}
}

func TestUndoStackCoalescesAdjacentPrintableInserts(t *testing.T) {
	u := NewUndoStack()
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 0}, Text: "a"})
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 1}, Text: "b"})
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 2}, Text: "c"})

	if len(u.undos) != 1 {
		t.Fatalf("expected 3 adjacent inserts to merge into 1 entry, got %d", len(u.undos))
	}
	if u.undos[0].Text != "abc" {
		t.Fatalf("expected merged text %q, got %q", "abc", u.undos[0].Text)
	}
}

func TestUndoStackBreaksCoalescingOnNewline(t *testing.T) {
	u := NewUndoStack()
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 0}, Text: "a"})
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 1, Col: 0}, Text: "\n"})
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 1, Col: 0}, Text: "b"})

	if len(u.undos) != 3 {
		t.Fatalf("a newline entry must never merge with its neighbors, got %d entries", len(u.undos))
	}
}

func TestUndoStackBreaksCoalescingAfterFlush(t *testing.T) {
	u := NewUndoStack()
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 0}, Text: "a"})
	u.Flush()
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 1}, Text: "b"})

	if len(u.undos) != 2 {
		t.Fatalf("Flush (save/selection-change) must force a new entry, got %d", len(u.undos))
	}
}

func TestUndoStackBreaksCoalescingPastWindow(t *testing.T) {
	u := NewUndoStack()
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 0}, Text: "a"})
	u.undos[0].Time = time.Now().Add(-undoCoalesceWindow - time.Millisecond)
	u.Push(Operation{Type: OpInsert, Pos: Cursor{Line: 0, Col: 1}, Text: "b"})

	if len(u.undos) != 2 {
		t.Fatalf("entries more than the coalescing window apart must not merge, got %d", len(u.undos))
	}
}
