package ui

import (
	"fmt"

	"termide/config"
	"github.com/gdamore/tcell/v2"
)

type StatusBar struct {
	Mode      string // "EDIT" or "TERM"
	Filename  string
	Line      int
	Col       int
	Language  string
	Encoding  string
	LineEnd   string
	TabInfo   string // "Tabs" or "Spaces: 4"
	Message   string // temporary status message
	Theme     *config.ColorScheme
	SelChars     int    // number of selected characters (0 = no selection)
	SelLines     int    // number of selected lines
	ResourceInfo string // "CPU 3% │ Mem 512M │ Disk 40%", refreshed by the resource sampler
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Mode:     "EDIT",
		Encoding: "UTF-8",
		LineEnd:  "LF",
	}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	
	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)

	// Clear the line
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x

	// Mode
	mode := " " + s.Mode + " "
	for _, ch := range mode {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, modeStyle)
			col++
		}
	}

	// Separator
	if col < x+width {
		screen.SetContent(col, y, ' ', nil, style)
		col++
	}

	// If there's a temporary message, show that instead
	if s.Message != "" {
		for _, ch := range s.Message {
			if col < x+width {
				screen.SetContent(col, y, ch, nil, style)
				col++
			}
		}
		return
	}

	// Filename
	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	for _, ch := range fname {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}

	// Right-aligned info
	var right string
	resPart := ""
	if s.ResourceInfo != "" {
		resPart = s.ResourceInfo + " │ "
	}
	tabInfo := s.TabInfo
	if tabInfo == "" {
		tabInfo = "Spaces: 4"
	}
	if s.SelChars > 0 {
		right = fmt.Sprintf("%sSel: %d chars, %d lines │ Ln %d, Col %d │ %s │ %s │ %s │ %s ", resPart, s.SelChars, s.SelLines, s.Line+1, s.Col+1, s.Language, s.Encoding, s.LineEnd, tabInfo)
	} else {
		right = fmt.Sprintf("%sLn %d, Col %d │ %s │ %s │ %s │ %s ", resPart, s.Line+1, s.Col+1, s.Language, s.Encoding, s.LineEnd, tabInfo)
	}
	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)
	if rightStart > col+2 {
		for i, ch := range rightRunes {
			screen.SetContent(rightStart+i, y, ch, nil, style)
		}
	}
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool   { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (s *StatusBar) IsFocused() bool                      { return false }
func (s *StatusBar) SetFocused(f bool)                    {}
