package layout

import "testing"

func TestNewManagerStartsWithWelcomePanel(t *testing.T) {
	m := New(80)
	if len(m.Groups) != 1 || len(m.Groups[0].Panels) != 1 {
		t.Fatalf("expected a single welcome group, got %+v", m.Groups)
	}
	if m.Groups[0].Panels[0].Kind != Welcome {
		t.Fatalf("expected welcome panel, got kind %v", m.Groups[0].Panels[0].Kind)
	}
	if m.Focus != 0 {
		t.Fatalf("expected focus 0, got %d", m.Focus)
	}
}

func TestAddPanelReplacesWelcomePanel(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 200)
	if len(m.Groups) != 1 || len(m.Groups[0].Panels) != 1 {
		t.Fatalf("expected one group with one panel, got %+v", m.Groups)
	}
	if m.Groups[0].Panels[0].Kind != FileManager {
		t.Fatalf("expected welcome panel to be replaced, got kind %v", m.Groups[0].Panels[0].Kind)
	}
}

// Literal scenario 4: terminal width 100, min_panel_width 80. Opening a
// second panel stacks (100/2=50 < 80); widening to 200 and opening a
// third splits into separate groups.
func TestAddPanelSplitThreshold(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 100)
	m.AddPanel(Editor, "main.go", 100)

	if len(m.Groups) != 1 {
		t.Fatalf("expected stacking at width 100, got %d groups", len(m.Groups))
	}
	if len(m.Groups[0].Panels) != 2 {
		t.Fatalf("expected 2 panels stacked in one group, got %d", len(m.Groups[0].Panels))
	}

	m.AddPanel(Terminal, "bash", 200)
	if len(m.Groups) != 2 {
		t.Fatalf("expected a split into 2 groups at width 200, got %d", len(m.Groups))
	}
	widths := m.Widths(200)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 200 {
		t.Fatalf("widths must sum to available width, got %d", sum)
	}
}

func TestWidthsSumsToAvailableWidth(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 300)
	m.AddPanel(Editor, "main.go", 300)
	m.AddPanel(Terminal, "bash", 300)

	for _, avail := range []int{300, 241, 90} {
		widths := m.Widths(avail)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != avail {
			t.Fatalf("widths %v sum to %d, want %d", widths, sum, avail)
		}
	}
}

func TestClosePanelRedistributesWeight(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 300)
	m.AddPanel(Editor, "main.go", 300)
	m.AddPanel(Terminal, "bash", 300)

	m.Focus = 2
	m.ClosePanel()

	if len(m.Groups) != 2 {
		t.Fatalf("expected 2 groups remaining, got %d", len(m.Groups))
	}
	widths := m.Widths(300)
	if widths[0]+widths[1] != 300 {
		t.Fatalf("remaining widths should still sum to available width, got %v", widths)
	}
}

func TestClosingLastPanelYieldsWelcome(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 300)
	m.ClosePanel()

	if len(m.Groups) != 1 || len(m.Groups[0].Panels) != 1 {
		t.Fatalf("expected single welcome group, got %+v", m.Groups)
	}
	if m.Groups[0].Panels[0].Kind != Welcome {
		t.Fatalf("expected welcome panel, got %v", m.Groups[0].Panels[0].Kind)
	}
	if m.Focus != 0 {
		t.Fatalf("expected focus 0, got %d", m.Focus)
	}
}

func TestClosePanelPrefersLeftFocus(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 300)
	m.AddPanel(Editor, "main.go", 300)
	m.AddPanel(Terminal, "bash", 300)

	m.Focus = 1
	m.ClosePanel()
	if m.Focus != 0 {
		t.Fatalf("expected focus to move left to 0, got %d", m.Focus)
	}
}

func TestNavigateHorizontalNotCyclic(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 300)
	m.AddPanel(Editor, "main.go", 300)

	m.Focus = 0
	m.NavigateHorizontal(-1)
	if m.Focus != 0 {
		t.Fatalf("expected no-op at left edge, got focus %d", m.Focus)
	}

	m.Focus = len(m.Groups) - 1
	m.NavigateHorizontal(1)
	if m.Focus != len(m.Groups)-1 {
		t.Fatalf("expected no-op at right edge, got focus %d", m.Focus)
	}
}

func TestNavigateVerticalCyclic(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 100)
	m.AddPanel(Editor, "main.go", 100) // stacked, since 100/2 < 80

	g := m.FocusedGroup()
	if len(g.Panels) != 2 {
		t.Fatalf("expected accordion of 2, got %d", len(g.Panels))
	}
	g.Expanded = 0
	m.NavigateVertical(-1)
	if g.Expanded != 1 {
		t.Fatalf("expected cyclic wrap to last panel, got %d", g.Expanded)
	}
	m.NavigateVertical(1)
	if g.Expanded != 0 {
		t.Fatalf("expected cyclic wrap back to first panel, got %d", g.Expanded)
	}
}

func TestResizeNoOpBelowMinWidth(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 200)
	m.AddPanel(Editor, "main.go", 200)

	before := make([]float64, len(m.Groups))
	for i, g := range m.Groups {
		before[i] = g.Weight
	}

	m.Focus = 0
	m.Resize(50, 160) // would push the other group below MinPanelWidth(80) at width 160
	for i, g := range m.Groups {
		if g.Weight != before[i] {
			t.Fatalf("expected resize to be a no-op, group %d weight changed %v -> %v", i, before[i], g.Weight)
		}
	}
}

func TestResizeShiftsWeightWithinBounds(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 400)
	m.AddPanel(Editor, "main.go", 400)

	m.Focus = 0
	m.Resize(0.5, 400)
	if m.Groups[0].Weight <= 1.0 {
		t.Fatalf("expected focused group's weight to increase, got %v", m.Groups[0].Weight)
	}
}

func TestPanelRowsGivesCollapsedOneRowEachAndRestToExpanded(t *testing.T) {
	g := &Group{
		Panels:   []*Panel{{ID: 1}, {ID: 2}, {ID: 3}},
		Expanded: 1,
	}
	rows := PanelRows(g, 20)
	if rows[0] != 1 || rows[2] != 1 {
		t.Fatalf("expected collapsed panels to take 1 row, got %v", rows)
	}
	if rows[1] != 18 {
		t.Fatalf("expected expanded panel to take height-collapsed rows, got %v", rows)
	}
}

func TestToggleStackingSplitsMultiPanelGroup(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 100)
	m.AddPanel(Editor, "main.go", 100) // stacked at width 100

	if len(m.Groups) != 1 {
		t.Fatalf("expected one stacked group, got %d", len(m.Groups))
	}
	m.ToggleStacking(300)
	if len(m.Groups) != 2 {
		t.Fatalf("expected split into 2 groups at width 300, got %d", len(m.Groups))
	}
}

func TestToggleStackingMergesSinglePanelGroup(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 300)
	m.AddPanel(Editor, "main.go", 300)

	if len(m.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(m.Groups))
	}
	m.Focus = 1
	m.ToggleStacking(300)
	if len(m.Groups) != 1 {
		t.Fatalf("expected merge back into 1 group, got %d", len(m.Groups))
	}
	if len(m.Groups[0].Panels) != 2 {
		t.Fatalf("expected merged group to hold both panels, got %d", len(m.Groups[0].Panels))
	}
}

func TestFindPanelLocatesByKind(t *testing.T) {
	m := New(80)
	m.AddPanel(FileManager, "Explorer", 300)
	m.AddPanel(Terminal, "Terminal", 300)

	p := m.FindPanel(Terminal)
	if p == nil || p.Title != "Terminal" {
		t.Fatalf("expected to find terminal panel, got %+v", p)
	}

	if m.FindPanel(Log) != nil {
		t.Fatalf("expected no Log panel to exist")
	}
}
