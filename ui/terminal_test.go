package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

// newTestTerminal builds a Terminal whose PTY spawn is guaranteed to fail
// (bogus shell path), leaving the ANSI state machine and cell grid fully
// usable without touching a real process.
func newTestTerminal(t *testing.T, rows, cols int) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	return NewTerminal(screen, "/nonexistent-shell-binary-for-tests", t.TempDir(), rows, cols)
}

func TestProcessOutputWritesPlainText(t *testing.T) {
	term := newTestTerminal(t, 5, 20)
	term.ProcessOutput([]byte("hi"))

	if term.cells[0][0].Ch != 'h' || term.cells[0][1].Ch != 'i' {
		t.Fatalf("expected first row to start with 'hi', got %q%q", term.cells[0][0].Ch, term.cells[0][1].Ch)
	}
	if term.curCol != 2 {
		t.Fatalf("expected cursor col 2 after writing 2 chars, got %d", term.curCol)
	}
}

func TestProcessOutputSetsTitleFromOSC(t *testing.T) {
	term := newTestTerminal(t, 5, 20)
	term.ProcessOutput([]byte("\x1b]0;my-shell\x07"))

	if term.Title != "my-shell" {
		t.Fatalf("expected OSC 0 to set Title, got %q", term.Title)
	}
}

func TestProcessOutputEntersAltScreenOn1049(t *testing.T) {
	term := newTestTerminal(t, 5, 20)
	term.ProcessOutput([]byte("x"))
	term.ProcessOutput([]byte("\x1b[?1049h"))

	if !term.altActive {
		t.Fatalf("expected ?1049h to enter alt screen")
	}
	if term.cells[0][0].Ch == 'x' {
		t.Fatalf("expected alt screen to start blank, not carry over main screen content")
	}

	term.ProcessOutput([]byte("\x1b[?1049l"))
	if term.altActive {
		t.Fatalf("expected ?1049l to leave alt screen")
	}
	if term.cells[0][0].Ch != 'x' {
		t.Fatalf("expected main screen content restored after leaving alt screen")
	}
}

func TestCloseWithoutLiveChildIsNoop(t *testing.T) {
	term := newTestTerminal(t, 5, 20)
	if term.HasLiveChild() {
		t.Fatalf("expected no live child for a terminal whose shell failed to spawn")
	}
	term.Close() // must not panic or block
}

func TestEraseDisplayClearsCells(t *testing.T) {
	term := newTestTerminal(t, 3, 10)
	term.ProcessOutput([]byte("abc"))
	term.ProcessOutput([]byte("\x1b[2J"))

	for col := 0; col < 3; col++ {
		if term.cells[0][col].Ch != ' ' {
			t.Fatalf("expected cell (0,%d) cleared after ED 2, got %q", col, term.cells[0][col].Ch)
		}
	}
}
