// Package layout implements the panel-group tiling model: an ordered
// list of horizontally-weighted groups, each an accordion stack of
// panels with exactly one expanded at a time. It owns no rendering or
// panel content; callers translate its geometry (Widths, panel row
// counts) into screen coordinates and keep their own panel payloads
// keyed by the *Panel values this package hands back.
package layout

// Kind identifies what a panel shows. Open extension happens by adding
// a variant here, not by a type hierarchy.
type Kind int

const (
	FileManager Kind = iota
	Editor
	Terminal
	Log
	Welcome
)

// Panel is one accordion entry. Content lives with the caller; this
// struct only carries what the layout model needs to place it.
type Panel struct {
	ID    int
	Kind  Kind
	Title string
}

// Group is a vertical accordion of panels participating in the
// horizontal layout with a weight.
type Group struct {
	Panels   []*Panel
	Expanded int
	Weight   float64
}

func (g *Group) expandedPanel() *Panel {
	if g.Expanded < 0 || g.Expanded >= len(g.Panels) {
		return nil
	}
	return g.Panels[g.Expanded]
}

// Manager holds the ordered group list and the focused group index.
type Manager struct {
	Groups        []*Group
	Focus         int
	MinPanelWidth int
	nextID        int
}

// New creates a manager with a single welcome panel, matching "closing
// the last panel yields exactly one welcome panel and focus = 0."
func New(minPanelWidth int) *Manager {
	m := &Manager{MinPanelWidth: minPanelWidth}
	m.insertWelcome()
	return m
}

func (m *Manager) insertWelcome() {
	p := m.newPanel(Welcome, "Welcome")
	m.Groups = []*Group{{Panels: []*Panel{p}, Expanded: 0, Weight: 1}}
	m.Focus = 0
}

func (m *Manager) newPanel(kind Kind, title string) *Panel {
	m.nextID++
	return &Panel{ID: m.nextID, Kind: kind, Title: title}
}

// Restore replaces the manager's groups wholesale, e.g. from a
// persisted session's layout skeleton. It renumbers nextID past the
// highest ID among the restored panels so subsequently added panels
// never collide with a restored one.
func (m *Manager) Restore(groups []*Group, focus int) {
	if len(groups) == 0 {
		m.insertWelcome()
		return
	}
	m.Groups = groups
	m.Focus = focus
	if m.Focus < 0 || m.Focus >= len(m.Groups) {
		m.Focus = 0
	}
	for _, g := range groups {
		for _, p := range g.Panels {
			if p.ID > m.nextID {
				m.nextID = p.ID
			}
		}
	}
}

// FocusedGroup returns the group at Focus, or nil if there are none.
func (m *Manager) FocusedGroup() *Group {
	if m.Focus < 0 || m.Focus >= len(m.Groups) {
		return nil
	}
	return m.Groups[m.Focus]
}

// FocusedPanel returns the expanded panel of the focused group.
func (m *Manager) FocusedPanel() *Panel {
	g := m.FocusedGroup()
	if g == nil {
		return nil
	}
	return g.expandedPanel()
}

// FindPanel returns the first panel of the given kind, or nil if none
// of the groups hold one.
func (m *Manager) FindPanel(kind Kind) *Panel {
	for _, g := range m.Groups {
		for _, p := range g.Panels {
			if p.Kind == kind {
				return p
			}
		}
	}
	return nil
}

// isWelcomeOnly reports whether the whole manager is just the
// placeholder welcome panel inserted by New/close-to-empty.
func (m *Manager) isWelcomeOnly() bool {
	return len(m.Groups) == 1 && len(m.Groups[0].Panels) == 1 && m.Groups[0].Panels[0].Kind == Welcome
}

// AddPanel implements the add_panel contract: split into a new group
// when there's room, otherwise stack onto the focused group.
func (m *Manager) AddPanel(kind Kind, title string, availableWidth int) *Panel {
	p := m.newPanel(kind, title)

	if m.isWelcomeOnly() {
		m.Groups[0].Panels = []*Panel{p}
		m.Groups[0].Expanded = 0
		return p
	}

	groupCount := len(m.Groups)
	newWidthIfSplit := availableWidth / (groupCount + 1)
	if newWidthIfSplit < m.MinPanelWidth {
		g := m.FocusedGroup()
		if g == nil {
			m.Groups = append(m.Groups, &Group{Panels: []*Panel{p}, Weight: 1})
			m.Focus = len(m.Groups) - 1
			return p
		}
		g.Panels = append(g.Panels, p)
		g.Expanded = len(g.Panels) - 1
		return p
	}

	weight := 1.0
	if groupCount > 0 {
		total := 0.0
		for _, g := range m.Groups {
			total += g.Weight
		}
		weight = total / float64(groupCount)
	}
	m.Groups = append(m.Groups, &Group{Panels: []*Panel{p}, Weight: weight})
	m.Focus = len(m.Groups) - 1
	return p
}

// ClosePanel implements the close_panel contract for the panel
// currently expanded in the focused group.
func (m *Manager) ClosePanel() {
	groupIdx := m.Focus
	g := m.FocusedGroup()
	if g == nil || len(g.Panels) == 0 {
		return
	}
	idx := g.Expanded
	if idx < 0 || idx >= len(g.Panels) {
		idx = 0
	}
	m.closePanelAt(groupIdx, idx)
}

// CloseKind closes the first panel of the given kind, wherever it sits,
// without disturbing the caller's current focus target beyond what
// close_panel's own focus-movement rules require. A no-op if no panel
// of that kind is open.
func (m *Manager) CloseKind(kind Kind) {
	for gi, g := range m.Groups {
		for pi, p := range g.Panels {
			if p.Kind == kind {
				m.closePanelAt(gi, pi)
				return
			}
		}
	}
}

func (m *Manager) closePanelAt(groupIdx, idx int) {
	if groupIdx < 0 || groupIdx >= len(m.Groups) {
		return
	}
	g := m.Groups[groupIdx]
	if idx < 0 || idx >= len(g.Panels) {
		return
	}
	m.Focus = groupIdx
	g.Panels = append(g.Panels[:idx], g.Panels[idx+1:]...)
	if g.Expanded >= len(g.Panels) {
		g.Expanded = len(g.Panels) - 1
	}
	if g.Expanded < 0 {
		g.Expanded = 0
	}

	if len(g.Panels) > 0 {
		return
	}

	closedIdx := m.Focus
	closedWeight := g.Weight
	m.Groups = append(m.Groups[:closedIdx], m.Groups[closedIdx+1:]...)

	if len(m.Groups) == 0 {
		m.insertWelcome()
		return
	}

	total := 0.0
	for _, rem := range m.Groups {
		total += rem.Weight
	}
	if total > 0 {
		for _, rem := range m.Groups {
			rem.Weight += closedWeight * (rem.Weight / total)
		}
	}

	if closedIdx > 0 {
		m.Focus = closedIdx - 1
	} else {
		m.Focus = 0
	}
	if m.Focus >= len(m.Groups) {
		m.Focus = len(m.Groups) - 1
	}
}

// NavigateHorizontal moves Focus by delta across groups; the edges are
// not cyclic.
func (m *Manager) NavigateHorizontal(delta int) {
	if len(m.Groups) == 0 {
		return
	}
	next := m.Focus + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.Groups) {
		next = len(m.Groups) - 1
	}
	m.Focus = next
}

// NavigateVertical expands the previous/next panel within the focused
// group, cyclically.
func (m *Manager) NavigateVertical(delta int) {
	g := m.FocusedGroup()
	if g == nil || len(g.Panels) == 0 {
		return
	}
	n := len(g.Panels)
	g.Expanded = ((g.Expanded+delta)%n + n) % n
}

// Resize adds units of horizontal weight to the focused group,
// compensating proportionally across the others so the weight sum is
// invariant. A no-op if any resulting group would fall below
// MinPanelWidth.
func (m *Manager) Resize(units float64, availableWidth int) {
	if len(m.Groups) < 2 {
		return
	}
	focused := m.FocusedGroup()
	if focused == nil {
		return
	}
	others := make([]*Group, 0, len(m.Groups)-1)
	othersTotal := 0.0
	for _, g := range m.Groups {
		if g != focused {
			others = append(others, g)
			othersTotal += g.Weight
		}
	}
	if othersTotal <= 0 {
		return
	}

	trial := make(map[*Group]float64, len(m.Groups))
	trial[focused] = focused.Weight + units
	if trial[focused] <= 0 {
		return
	}
	for _, g := range others {
		share := units * (g.Weight / othersTotal)
		trial[g] = g.Weight - share
		if trial[g] <= 0 {
			return
		}
	}

	total := 0.0
	for _, g := range m.Groups {
		total += trial[g]
	}
	for _, g := range m.Groups {
		width := int(float64(availableWidth) * trial[g] / total)
		if width < m.MinPanelWidth {
			return
		}
	}

	for g, w := range trial {
		g.Weight = w
	}
}

// ToggleStacking implements Alt+Backspace: merge a single-panel group
// into a neighbor, or split a multi-panel group's expanded panel out
// into its own group.
func (m *Manager) ToggleStacking(availableWidth int) {
	g := m.FocusedGroup()
	if g == nil {
		return
	}

	if len(g.Panels) == 1 {
		if len(m.Groups) < 2 {
			return
		}
		neighborIdx := m.Focus + 1
		if neighborIdx >= len(m.Groups) {
			neighborIdx = m.Focus - 1
		}
		neighbor := m.Groups[neighborIdx]
		neighbor.Panels = append(neighbor.Panels, g.Panels[0])
		neighbor.Expanded = len(neighbor.Panels) - 1
		neighbor.Weight += g.Weight

		closedIdx := m.Focus
		m.Groups = append(m.Groups[:closedIdx], m.Groups[closedIdx+1:]...)
		for i, grp := range m.Groups {
			if grp == neighbor {
				m.Focus = i
				break
			}
		}
		return
	}

	if len(g.Panels) >= 2 {
		newWidthIfSplit := availableWidth / (len(m.Groups) + 1)
		if newWidthIfSplit < m.MinPanelWidth {
			return
		}
		idx := g.Expanded
		if idx < 0 || idx >= len(g.Panels) {
			return
		}
		extracted := g.Panels[idx]
		g.Panels = append(g.Panels[:idx], g.Panels[idx+1:]...)
		if g.Expanded >= len(g.Panels) {
			g.Expanded = len(g.Panels) - 1
		}
		half := g.Weight / 2
		g.Weight = half
		newGroup := &Group{Panels: []*Panel{extracted}, Weight: half}
		insertAt := m.Focus + 1
		m.Groups = append(m.Groups[:insertAt], append([]*Group{newGroup}, m.Groups[insertAt:]...)...)
		m.Focus = insertAt
	}
}

// MovePanel removes the focused panel from its group and inserts it
// into the group at targetGroup, or — when targetGroup is out of
// range ("outside ends") and width permits — splits it into a brand
// new group at that end.
func (m *Manager) MovePanel(targetGroup int, availableWidth int) {
	g := m.FocusedGroup()
	if g == nil || len(g.Panels) == 0 {
		return
	}
	idx := g.Expanded
	if idx < 0 || idx >= len(g.Panels) {
		return
	}
	moved := g.Panels[idx]

	outsideEnd := targetGroup < 0 || targetGroup >= len(m.Groups)
	canSplit := availableWidth/(len(m.Groups)+1) >= m.MinPanelWidth

	var dest *Group
	var destIdx int
	if outsideEnd && canSplit {
		dest = &Group{Panels: nil, Weight: 1}
		if targetGroup < 0 {
			destIdx = 0
		} else {
			destIdx = len(m.Groups)
		}
	} else {
		destIdx = targetGroup
		if destIdx < 0 {
			destIdx = 0
		}
		if destIdx >= len(m.Groups) {
			destIdx = len(m.Groups) - 1
		}
		if m.Groups[destIdx] == g {
			return
		}
		dest = m.Groups[destIdx]
	}

	g.Panels = append(g.Panels[:idx], g.Panels[idx+1:]...)
	if g.Expanded >= len(g.Panels) {
		g.Expanded = len(g.Panels) - 1
	}
	if g.Expanded < 0 {
		g.Expanded = 0
	}

	srcEmpty := len(g.Panels) == 0
	srcIdx := -1
	for i, grp := range m.Groups {
		if grp == g {
			srcIdx = i
			break
		}
	}

	if dest.Panels == nil && outsideEnd && canSplit {
		dest.Panels = []*Panel{moved}
		if destIdx == 0 {
			m.Groups = append([]*Group{dest}, m.Groups...)
			if srcIdx >= 0 {
				srcIdx++
			}
		} else {
			m.Groups = append(m.Groups, dest)
		}
	} else {
		dest.Panels = append(dest.Panels, moved)
		dest.Expanded = len(dest.Panels) - 1
	}

	if srcEmpty && srcIdx >= 0 {
		closedWeight := m.Groups[srcIdx].Weight
		m.Groups = append(m.Groups[:srcIdx], m.Groups[srcIdx+1:]...)
		total := 0.0
		for _, rem := range m.Groups {
			total += rem.Weight
		}
		if total > 0 {
			for _, rem := range m.Groups {
				rem.Weight += closedWeight * (rem.Weight / total)
			}
		}
	}

	for i, grp := range m.Groups {
		if grp == dest {
			m.Focus = i
			break
		}
	}
}

// Widths translates the groups' horizontal weights into integer
// column widths summing exactly to availableWidth, with rounding bias
// given to the focused group.
func (m *Manager) Widths(availableWidth int) []int {
	n := len(m.Groups)
	if n == 0 {
		return nil
	}
	total := 0.0
	for _, g := range m.Groups {
		total += g.Weight
	}
	widths := make([]int, n)
	sum := 0
	for i, g := range m.Groups {
		if i == m.Focus {
			continue
		}
		w := int(float64(availableWidth) * g.Weight / total)
		if w < m.MinPanelWidth && n > 1 {
			w = m.MinPanelWidth
		}
		widths[i] = w
		sum += w
	}
	focus := m.Focus
	if focus < 0 || focus >= n {
		focus = 0
	}
	widths[focus] = availableWidth - sum
	return widths
}

// PanelRows returns each panel's row count within a group rendered in
// height rows: the expanded panel gets height minus one row per
// collapsed panel; every collapsed panel gets exactly one row.
func PanelRows(g *Group, height int) []int {
	rows := make([]int, len(g.Panels))
	collapsed := len(g.Panels) - 1
	if collapsed < 0 {
		collapsed = 0
	}
	expandedRows := height - collapsed
	if expandedRows < 0 {
		expandedRows = 0
	}
	for i := range rows {
		if i == g.Expanded {
			rows[i] = expandedRows
		} else {
			rows[i] = 1
		}
	}
	return rows
}
