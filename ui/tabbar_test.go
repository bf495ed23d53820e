package ui

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func TestTabBarRenderKeepsActiveTabVisible(t *testing.T) {
	tb := NewTabBar()
	for i := 0; i < 14; i++ {
		tb.AddTab(fmt.Sprintf("file-%d.txt", i), false)
	}
	tb.Active = len(tb.Tabs) - 1

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()

	tb.Render(screen, 0, 0, 32, 1)

	if tb.scrollOff <= 0 {
		t.Fatalf("expected tab bar to scroll for active off-screen tab, got scrollOff=%d", tb.scrollOff)
	}
	if tb.Active < tb.scrollOff {
		t.Fatalf("active tab should stay visible: active=%d scrollOff=%d", tb.Active, tb.scrollOff)
	}
}

func TestTabBarWheelScrollsHiddenTabs(t *testing.T) {
	tb := NewTabBar()
	for i := 0; i < 10; i++ {
		tb.AddTab(fmt.Sprintf("tab-%d.txt", i), false)
	}
	tb.Active = 0

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()

	tb.Render(screen, 0, 0, 28, 1)
	if tb.scrollOff != 0 {
		t.Fatalf("expected initial scrollOff=0, got %d", tb.scrollOff)
	}

	tb.HandleMouse(tcell.NewEventMouse(5, 0, tcell.WheelDown, tcell.ModNone))
	if tb.scrollOff == 0 {
		t.Fatalf("expected wheel down to increase scrollOff")
	}

	tb.HandleMouse(tcell.NewEventMouse(5, 0, tcell.WheelUp, tcell.ModNone))
	if tb.scrollOff != 0 {
		t.Fatalf("expected wheel up to restore scrollOff=0, got %d", tb.scrollOff)
	}
}

func TestTabTitlePrefixPrecedence(t *testing.T) {
	tb := NewTabBar()

	ro := Tab{Title: "bin.dat", ReadOnly: true, Modified: true}
	if got := tb.tabTitle(ro); got != "ro:bin.dat" {
		t.Fatalf("expected read-only prefix to win over modified, got %q", got)
	}

	ext := Tab{Title: "main.go", ExternallyModified: true, Modified: true}
	if got := tb.tabTitle(ext); got != "!main.go" {
		t.Fatalf("expected externally-modified prefix to win over modified, got %q", got)
	}

	mod := Tab{Title: "main.go", Modified: true}
	if got := tb.tabTitle(mod); got != "*main.go" {
		t.Fatalf("expected modified prefix, got %q", got)
	}

	clean := Tab{Title: "main.go"}
	if got := tb.tabTitle(clean); got != "main.go" {
		t.Fatalf("expected no prefix on clean tab, got %q", got)
	}
}

func TestTabWidthAtCountsWideRunesAsTwoColumns(t *testing.T) {
	tb := NewTabBar()
	title := "漢字.go"
	tb.Tabs = []Tab{{Title: title}}

	// 1 (leading space) + display width of "漢字.go" (2+2+1+1+1=7) + 1 (space) + 1 (x) + 1 (space)
	want := 1 + runewidth.StringWidth(title) + 1 + 1 + 1
	if got := tb.tabWidthAt(0); got != want {
		t.Fatalf("tabWidthAt = %d, want %d (rune count would give %d)", got, want, 1+len([]rune(title))+1+1+1)
	}
}
