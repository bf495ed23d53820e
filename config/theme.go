package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// ColorScheme is the resolved, typed form of a theme: the core UI colors
// the panels render with, plus the syntax slots the highlighter resolves
// chroma token types against.
type ColorScheme struct {
	Name             string
	Background       tcell.Color
	Foreground       tcell.Color
	Selection        tcell.Color
	LineNumber       tcell.Color
	LineNumberActive tcell.Color
	StatusBarBg      tcell.Color
	StatusBarFg      tcell.Color
	StatusBarModeBg  tcell.Color
	TabBarBg         tcell.Color
	TabBarFg         tcell.Color
	TabBarActiveBg   tcell.Color
	TabBarActiveFg   tcell.Color
	TreeHeaderFg     tcell.Color
	TreeDirFg        tcell.Color
	TreeFileFg       tcell.Color
	TreeSelectionBg  tcell.Color
	TreeBorder       tcell.Color
	DialogBg         tcell.Color
	DialogFg         tcell.Color
	DialogInputBg    tcell.Color
	IndentGuide      tcell.Color

	// Disabled/Success/Warning/Error are the spec's named status colors,
	// surfaced for modal and status-bar chrome.
	Disabled tcell.Color
	Success  tcell.Color
	Warning  tcell.Color
	Error    tcell.Color

	// Syntax holds the theme's syntax slots (keyword, string, comment,
	// number, function, type, operator, ...), consulted by package
	// highlight when it resolves a chroma token to a tcell.Style.
	Syntax map[string]tcell.Color
}

// SyntaxColor looks up a slot, falling back to the theme's foreground color
// when the slot is unset — so a theme that only defines a few syntax
// colors still renders legibly.
func (cs *ColorScheme) SyntaxColor(slot string) tcell.Color {
	if cs.Syntax != nil {
		if c, ok := cs.Syntax[slot]; ok {
			return c
		}
	}
	return cs.Foreground
}

// themeFile is the raw TOML shape described in the persisted-state
// layout: core colors plus a free-form syntax table. Color values may
// be an X11-ish name string or { rgb = [r, g, b] }.
type themeFile struct {
	Bg          interface{}            `toml:"bg"`
	Fg          interface{}            `toml:"fg"`
	AccentedBg  interface{}            `toml:"accented_bg"`
	AccentedFg  interface{}            `toml:"accented_fg"`
	SelectedBg  interface{}            `toml:"selected_bg"`
	SelectedFg  interface{}            `toml:"selected_fg"`
	Disabled    interface{}            `toml:"disabled"`
	Success     interface{}            `toml:"success"`
	Warning     interface{}            `toml:"warning"`
	Error       interface{}            `toml:"error"`
	Syntax      map[string]interface{} `toml:"syntax"`
}

// parseColor accepts a bare color name ("blue", "#1a1b26") or an
// { rgb = [r, g, b] } table, per the theme file format.
func parseColor(v interface{}) (tcell.Color, bool) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return 0, false
		}
		return tcell.GetColor(val), true
	case map[string]interface{}:
		raw, ok := val["rgb"]
		if !ok {
			return 0, false
		}
		vals, ok := raw.([]interface{})
		if !ok || len(vals) != 3 {
			return 0, false
		}
		var rgb [3]int32
		for i, e := range vals {
			switch n := e.(type) {
			case int64:
				rgb[i] = int32(n)
			case float64:
				rgb[i] = int32(n)
			}
		}
		return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), true
	default:
		return 0, false
	}
}

func applyColor(dst *tcell.Color, v interface{}) {
	if c, ok := parseColor(v); ok {
		*dst = c
	}
}

// LoadTheme loads <config>/termide/themes/<name>.toml and resolves it
// into a ColorScheme, deriving the status bar, active tab, selection and
// tree selection colors from the file's small core palette; the other
// chrome colors (dialogs, line numbers, tree text) stay at the monokai
// defaults. Falls back
// to a built-in ColorScheme of the same name when no such file exists.
func LoadTheme(name string) (*ColorScheme, error) {
	path := filepath.Join(ThemesDir(), name+".toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if builtin, ok := Themes[name]; ok {
			return builtin, nil
		}
		return nil, err
	}

	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse theme %q: %w", name, err)
	}

	cs := *Themes["monokai"] // start from a sane default, override below
	cs.Name = name

	applyColor(&cs.Background, tf.Bg)
	applyColor(&cs.Foreground, tf.Fg)
	applyColor(&cs.StatusBarBg, tf.AccentedBg)
	applyColor(&cs.StatusBarFg, tf.AccentedFg)
	applyColor(&cs.TabBarActiveBg, tf.AccentedBg)
	applyColor(&cs.TabBarActiveFg, tf.AccentedFg)
	applyColor(&cs.Selection, tf.SelectedBg)
	applyColor(&cs.TreeSelectionBg, tf.SelectedBg)
	applyColor(&cs.Disabled, tf.Disabled)
	applyColor(&cs.Success, tf.Success)
	applyColor(&cs.Warning, tf.Warning)
	applyColor(&cs.Error, tf.Error)

	if len(tf.Syntax) > 0 {
		cs.Syntax = make(map[string]tcell.Color, len(tf.Syntax))
		for slot, raw := range tf.Syntax {
			if c, ok := parseColor(raw); ok {
				cs.Syntax[slot] = c
			}
		}
	}

	return &cs, nil
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:             "Dark",
		Background:       tcell.ColorBlack,
		Foreground:       tcell.ColorWhite,
		Selection:        tcell.ColorDarkBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorWhite,
		StatusBarBg:      tcell.ColorDarkBlue,
		StatusBarFg:      tcell.ColorWhite,
		StatusBarModeBg:  tcell.ColorBlue,
		TabBarBg:         tcell.ColorBlack,
		TabBarFg:         tcell.ColorGray,
		TabBarActiveBg:   tcell.ColorDarkBlue,
		TabBarActiveFg:   tcell.ColorWhite,
		TreeHeaderFg:     tcell.ColorYellow,
		TreeDirFg:        tcell.ColorBlue,
		TreeFileFg:       tcell.ColorWhite,
		TreeSelectionBg:  tcell.ColorDarkBlue,
		TreeBorder:       tcell.ColorGray,
		DialogBg:         tcell.ColorBlack,
		DialogFg:         tcell.ColorWhite,
		DialogInputBg:    tcell.ColorDarkBlue,
		IndentGuide:      tcell.ColorDimGray,
		Disabled:         tcell.ColorGray,
		Success:          tcell.ColorGreen,
		Warning:          tcell.ColorYellow,
		Error:            tcell.ColorRed,
		Syntax: map[string]tcell.Color{
			"keyword": tcell.ColorBlue, "string": tcell.ColorGreen,
			"comment": tcell.ColorGray, "number": tcell.ColorDarkCyan,
			"function": tcell.ColorYellow, "type": tcell.ColorFuchsia,
		},
	},
	"light": {
		Name:             "Light",
		Background:       tcell.ColorWhite,
		Foreground:       tcell.ColorBlack,
		Selection:        tcell.ColorLightBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorBlack,
		StatusBarBg:      tcell.ColorLightBlue,
		StatusBarFg:      tcell.ColorBlack,
		StatusBarModeBg:  tcell.ColorBlue,
		TabBarBg:         tcell.ColorWhite,
		TabBarFg:         tcell.ColorGray,
		TabBarActiveBg:   tcell.ColorLightBlue,
		TabBarActiveFg:   tcell.ColorBlack,
		TreeHeaderFg:     tcell.ColorBlue,
		TreeDirFg:        tcell.ColorBlue,
		TreeFileFg:       tcell.ColorBlack,
		TreeSelectionBg:  tcell.ColorLightBlue,
		TreeBorder:       tcell.ColorGray,
		DialogBg:         tcell.ColorWhite,
		DialogFg:         tcell.ColorBlack,
		DialogInputBg:    tcell.ColorLightGray,
		IndentGuide:      tcell.ColorLightGray,
		Disabled:         tcell.ColorGray,
		Success:          tcell.ColorGreen,
		Warning:          tcell.ColorOrange,
		Error:            tcell.ColorRed,
		Syntax: map[string]tcell.Color{
			"keyword": tcell.ColorBlue, "string": tcell.ColorGreen,
			"comment": tcell.ColorGray, "number": tcell.ColorDarkCyan,
			"function": tcell.ColorOrange, "type": tcell.ColorPurple,
		},
	},
	"monokai": {
		Name:             "Monokai",
		Background:       tcell.NewRGBColor(39, 40, 34),
		Foreground:       tcell.NewRGBColor(248, 248, 242),
		Selection:        tcell.NewRGBColor(73, 72, 62),
		LineNumber:       tcell.NewRGBColor(144, 144, 128),
		LineNumberActive: tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:      tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:      tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg:  tcell.NewRGBColor(102, 217, 239),
		TabBarBg:         tcell.NewRGBColor(39, 40, 34),
		TabBarFg:         tcell.NewRGBColor(144, 144, 128),
		TabBarActiveBg:   tcell.NewRGBColor(73, 72, 62),
		TabBarActiveFg:   tcell.NewRGBColor(248, 248, 242),
		TreeHeaderFg:     tcell.NewRGBColor(249, 38, 114),
		TreeDirFg:        tcell.NewRGBColor(102, 217, 239),
		TreeFileFg:       tcell.NewRGBColor(248, 248, 242),
		TreeSelectionBg:  tcell.NewRGBColor(73, 72, 62),
		TreeBorder:       tcell.NewRGBColor(144, 144, 128),
		DialogBg:         tcell.NewRGBColor(39, 40, 34),
		DialogFg:         tcell.NewRGBColor(248, 248, 242),
		DialogInputBg:    tcell.NewRGBColor(73, 72, 62),
		IndentGuide:      tcell.NewRGBColor(70, 71, 60),
		Disabled:         tcell.NewRGBColor(144, 144, 128),
		Success:          tcell.NewRGBColor(166, 226, 46),
		Warning:          tcell.NewRGBColor(230, 219, 116),
		Error:            tcell.NewRGBColor(249, 38, 114),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(249, 38, 114), "string": tcell.NewRGBColor(230, 219, 116),
			"comment": tcell.NewRGBColor(117, 113, 94), "number": tcell.NewRGBColor(174, 129, 255),
			"function": tcell.NewRGBColor(166, 226, 46), "type": tcell.NewRGBColor(102, 217, 239),
		},
	},
	"nord": {
		Name:             "Nord",
		Background:       tcell.NewRGBColor(46, 52, 64),
		Foreground:       tcell.NewRGBColor(236, 239, 244),
		Selection:        tcell.NewRGBColor(67, 76, 94),
		LineNumber:       tcell.NewRGBColor(76, 86, 106),
		LineNumberActive: tcell.NewRGBColor(236, 239, 244),
		StatusBarBg:      tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:      tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg:  tcell.NewRGBColor(136, 192, 208),
		TabBarBg:         tcell.NewRGBColor(46, 52, 64),
		TabBarFg:         tcell.NewRGBColor(76, 86, 106),
		TabBarActiveBg:   tcell.NewRGBColor(67, 76, 94),
		TabBarActiveFg:   tcell.NewRGBColor(236, 239, 244),
		TreeHeaderFg:     tcell.NewRGBColor(136, 192, 208),
		TreeDirFg:        tcell.NewRGBColor(136, 192, 208),
		TreeFileFg:       tcell.NewRGBColor(236, 239, 244),
		TreeSelectionBg:  tcell.NewRGBColor(67, 76, 94),
		TreeBorder:       tcell.NewRGBColor(76, 86, 106),
		DialogBg:         tcell.NewRGBColor(46, 52, 64),
		DialogFg:         tcell.NewRGBColor(236, 239, 244),
		DialogInputBg:    tcell.NewRGBColor(67, 76, 94),
		IndentGuide:      tcell.NewRGBColor(59, 66, 82),
		Disabled:         tcell.NewRGBColor(76, 86, 106),
		Success:          tcell.NewRGBColor(163, 190, 140),
		Warning:          tcell.NewRGBColor(235, 203, 139),
		Error:            tcell.NewRGBColor(191, 97, 106),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(129, 161, 193), "string": tcell.NewRGBColor(163, 190, 140),
			"comment": tcell.NewRGBColor(97, 110, 136), "number": tcell.NewRGBColor(180, 142, 173),
			"function": tcell.NewRGBColor(136, 192, 208), "type": tcell.NewRGBColor(143, 188, 187),
		},
	},
	"solarized-dark": {
		Name:             "Solarized Dark",
		Background:       tcell.NewRGBColor(0, 43, 54),
		Foreground:       tcell.NewRGBColor(131, 148, 150),
		Selection:        tcell.NewRGBColor(7, 54, 66),
		LineNumber:       tcell.NewRGBColor(88, 110, 117),
		LineNumberActive: tcell.NewRGBColor(147, 161, 161),
		StatusBarBg:      tcell.NewRGBColor(7, 54, 66),
		StatusBarFg:      tcell.NewRGBColor(147, 161, 161),
		StatusBarModeBg:  tcell.NewRGBColor(38, 139, 210),
		TabBarBg:         tcell.NewRGBColor(0, 43, 54),
		TabBarFg:         tcell.NewRGBColor(88, 110, 117),
		TabBarActiveBg:   tcell.NewRGBColor(7, 54, 66),
		TabBarActiveFg:   tcell.NewRGBColor(147, 161, 161),
		TreeHeaderFg:     tcell.NewRGBColor(203, 75, 22),
		TreeDirFg:        tcell.NewRGBColor(38, 139, 210),
		TreeFileFg:       tcell.NewRGBColor(131, 148, 150),
		TreeSelectionBg:  tcell.NewRGBColor(7, 54, 66),
		TreeBorder:       tcell.NewRGBColor(88, 110, 117),
		DialogBg:         tcell.NewRGBColor(0, 43, 54),
		DialogFg:         tcell.NewRGBColor(131, 148, 150),
		DialogInputBg:    tcell.NewRGBColor(7, 54, 66),
		IndentGuide:      tcell.NewRGBColor(30, 65, 73),
		Disabled:         tcell.NewRGBColor(88, 110, 117),
		Success:          tcell.NewRGBColor(133, 153, 0),
		Warning:          tcell.NewRGBColor(181, 137, 0),
		Error:            tcell.NewRGBColor(220, 50, 47),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(133, 153, 0), "string": tcell.NewRGBColor(42, 161, 152),
			"comment": tcell.NewRGBColor(88, 110, 117), "number": tcell.NewRGBColor(211, 54, 130),
			"function": tcell.NewRGBColor(38, 139, 210), "type": tcell.NewRGBColor(181, 137, 0),
		},
	},
	"gruvbox": {
		Name:             "Gruvbox Dark",
		Background:       tcell.NewRGBColor(40, 40, 40),
		Foreground:       tcell.NewRGBColor(235, 219, 178),
		Selection:        tcell.NewRGBColor(60, 56, 54),
		LineNumber:       tcell.NewRGBColor(146, 131, 116),
		LineNumberActive: tcell.NewRGBColor(251, 241, 199),
		StatusBarBg:      tcell.NewRGBColor(60, 56, 54),
		StatusBarFg:      tcell.NewRGBColor(235, 219, 178),
		StatusBarModeBg:  tcell.NewRGBColor(184, 187, 38),
		TabBarBg:         tcell.NewRGBColor(40, 40, 40),
		TabBarFg:         tcell.NewRGBColor(146, 131, 116),
		TabBarActiveBg:   tcell.NewRGBColor(60, 56, 54),
		TabBarActiveFg:   tcell.NewRGBColor(235, 219, 178),
		TreeHeaderFg:     tcell.NewRGBColor(254, 128, 25),
		TreeDirFg:        tcell.NewRGBColor(131, 165, 152),
		TreeFileFg:       tcell.NewRGBColor(235, 219, 178),
		TreeSelectionBg:  tcell.NewRGBColor(60, 56, 54),
		TreeBorder:       tcell.NewRGBColor(102, 92, 84),
		DialogBg:         tcell.NewRGBColor(40, 40, 40),
		DialogFg:         tcell.NewRGBColor(235, 219, 178),
		DialogInputBg:    tcell.NewRGBColor(60, 56, 54),
		IndentGuide:      tcell.NewRGBColor(80, 73, 69),
		Disabled:         tcell.NewRGBColor(146, 131, 116),
		Success:          tcell.NewRGBColor(184, 187, 38),
		Warning:          tcell.NewRGBColor(250, 189, 47),
		Error:            tcell.NewRGBColor(251, 73, 52),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(251, 73, 52), "string": tcell.NewRGBColor(184, 187, 38),
			"comment": tcell.NewRGBColor(146, 131, 116), "number": tcell.NewRGBColor(211, 134, 155),
			"function": tcell.NewRGBColor(184, 187, 38), "type": tcell.NewRGBColor(250, 189, 47),
		},
	},
	"gruvbox-light": {
		Name:             "Gruvbox Light",
		Background:       tcell.NewRGBColor(251, 241, 199),
		Foreground:       tcell.NewRGBColor(60, 56, 54),
		Selection:        tcell.NewRGBColor(213, 196, 161),
		LineNumber:       tcell.NewRGBColor(189, 174, 147),
		LineNumberActive: tcell.NewRGBColor(60, 56, 54),
		StatusBarBg:      tcell.NewRGBColor(213, 196, 161),
		StatusBarFg:      tcell.NewRGBColor(60, 56, 54),
		StatusBarModeBg:  tcell.NewRGBColor(121, 116, 14),
		TabBarBg:         tcell.NewRGBColor(251, 241, 199),
		TabBarFg:         tcell.NewRGBColor(146, 131, 116),
		TabBarActiveBg:   tcell.NewRGBColor(213, 196, 161),
		TabBarActiveFg:   tcell.NewRGBColor(60, 56, 54),
		TreeHeaderFg:     tcell.NewRGBColor(175, 58, 3),
		TreeDirFg:        tcell.NewRGBColor(69, 133, 136),
		TreeFileFg:       tcell.NewRGBColor(60, 56, 54),
		TreeSelectionBg:  tcell.NewRGBColor(213, 196, 161),
		TreeBorder:       tcell.NewRGBColor(189, 174, 147),
		DialogBg:         tcell.NewRGBColor(251, 241, 199),
		DialogFg:         tcell.NewRGBColor(60, 56, 54),
		DialogInputBg:    tcell.NewRGBColor(213, 196, 161),
		IndentGuide:      tcell.NewRGBColor(213, 196, 161),
		Disabled:         tcell.NewRGBColor(189, 174, 147),
		Success:          tcell.NewRGBColor(121, 116, 14),
		Warning:          tcell.NewRGBColor(181, 118, 20),
		Error:            tcell.NewRGBColor(157, 0, 6),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(157, 0, 6), "string": tcell.NewRGBColor(121, 116, 14),
			"comment": tcell.NewRGBColor(146, 131, 116), "number": tcell.NewRGBColor(143, 63, 113),
			"function": tcell.NewRGBColor(121, 116, 14), "type": tcell.NewRGBColor(181, 118, 20),
		},
	},
	"dracula": {
		Name:             "Dracula",
		Background:       tcell.NewRGBColor(40, 42, 54),
		Foreground:       tcell.NewRGBColor(248, 248, 242),
		Selection:        tcell.NewRGBColor(68, 71, 90),
		LineNumber:       tcell.NewRGBColor(98, 114, 164),
		LineNumberActive: tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:      tcell.NewRGBColor(68, 71, 90),
		StatusBarFg:      tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg:  tcell.NewRGBColor(189, 147, 249),
		TabBarBg:         tcell.NewRGBColor(40, 42, 54),
		TabBarFg:         tcell.NewRGBColor(98, 114, 164),
		TabBarActiveBg:   tcell.NewRGBColor(68, 71, 90),
		TabBarActiveFg:   tcell.NewRGBColor(248, 248, 242),
		TreeHeaderFg:     tcell.NewRGBColor(255, 121, 198),
		TreeDirFg:        tcell.NewRGBColor(139, 233, 253),
		TreeFileFg:       tcell.NewRGBColor(248, 248, 242),
		TreeSelectionBg:  tcell.NewRGBColor(68, 71, 90),
		TreeBorder:       tcell.NewRGBColor(98, 114, 164),
		DialogBg:         tcell.NewRGBColor(40, 42, 54),
		DialogFg:         tcell.NewRGBColor(248, 248, 242),
		DialogInputBg:    tcell.NewRGBColor(68, 71, 90),
		IndentGuide:      tcell.NewRGBColor(55, 58, 75),
		Disabled:         tcell.NewRGBColor(98, 114, 164),
		Success:          tcell.NewRGBColor(80, 250, 123),
		Warning:          tcell.NewRGBColor(241, 250, 140),
		Error:            tcell.NewRGBColor(255, 85, 85),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(255, 121, 198), "string": tcell.NewRGBColor(241, 250, 140),
			"comment": tcell.NewRGBColor(98, 114, 164), "number": tcell.NewRGBColor(189, 147, 249),
			"function": tcell.NewRGBColor(80, 250, 123), "type": tcell.NewRGBColor(139, 233, 253),
		},
	},
	"one-dark": {
		Name:             "One Dark",
		Background:       tcell.NewRGBColor(40, 44, 52),
		Foreground:       tcell.NewRGBColor(171, 178, 191),
		Selection:        tcell.NewRGBColor(61, 66, 77),
		LineNumber:       tcell.NewRGBColor(92, 99, 112),
		LineNumberActive: tcell.NewRGBColor(171, 178, 191),
		StatusBarBg:      tcell.NewRGBColor(61, 66, 77),
		StatusBarFg:      tcell.NewRGBColor(171, 178, 191),
		StatusBarModeBg:  tcell.NewRGBColor(97, 175, 239),
		TabBarBg:         tcell.NewRGBColor(40, 44, 52),
		TabBarFg:         tcell.NewRGBColor(92, 99, 112),
		TabBarActiveBg:   tcell.NewRGBColor(61, 66, 77),
		TabBarActiveFg:   tcell.NewRGBColor(171, 178, 191),
		TreeHeaderFg:     tcell.NewRGBColor(198, 120, 221),
		TreeDirFg:        tcell.NewRGBColor(97, 175, 239),
		TreeFileFg:       tcell.NewRGBColor(171, 178, 191),
		TreeSelectionBg:  tcell.NewRGBColor(61, 66, 77),
		TreeBorder:       tcell.NewRGBColor(92, 99, 112),
		DialogBg:         tcell.NewRGBColor(40, 44, 52),
		DialogFg:         tcell.NewRGBColor(171, 178, 191),
		DialogInputBg:    tcell.NewRGBColor(61, 66, 77),
		IndentGuide:      tcell.NewRGBColor(52, 56, 67),
		Disabled:         tcell.NewRGBColor(92, 99, 112),
		Success:          tcell.NewRGBColor(152, 195, 121),
		Warning:          tcell.NewRGBColor(229, 192, 123),
		Error:            tcell.NewRGBColor(224, 108, 117),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(198, 120, 221), "string": tcell.NewRGBColor(152, 195, 121),
			"comment": tcell.NewRGBColor(92, 99, 112), "number": tcell.NewRGBColor(209, 154, 102),
			"function": tcell.NewRGBColor(97, 175, 239), "type": tcell.NewRGBColor(229, 192, 123),
		},
	},
	"tokyo-night": {
		Name:             "Tokyo Night",
		Background:       tcell.NewRGBColor(26, 27, 38),
		Foreground:       tcell.NewRGBColor(169, 177, 214),
		Selection:        tcell.NewRGBColor(47, 52, 73),
		LineNumber:       tcell.NewRGBColor(86, 95, 137),
		LineNumberActive: tcell.NewRGBColor(169, 177, 214),
		StatusBarBg:      tcell.NewRGBColor(47, 52, 73),
		StatusBarFg:      tcell.NewRGBColor(169, 177, 214),
		StatusBarModeBg:  tcell.NewRGBColor(125, 207, 255),
		TabBarBg:         tcell.NewRGBColor(26, 27, 38),
		TabBarFg:         tcell.NewRGBColor(86, 95, 137),
		TabBarActiveBg:   tcell.NewRGBColor(47, 52, 73),
		TabBarActiveFg:   tcell.NewRGBColor(169, 177, 214),
		TreeHeaderFg:     tcell.NewRGBColor(187, 154, 247),
		TreeDirFg:        tcell.NewRGBColor(125, 207, 255),
		TreeFileFg:       tcell.NewRGBColor(169, 177, 214),
		TreeSelectionBg:  tcell.NewRGBColor(47, 52, 73),
		TreeBorder:       tcell.NewRGBColor(86, 95, 137),
		DialogBg:         tcell.NewRGBColor(26, 27, 38),
		DialogFg:         tcell.NewRGBColor(169, 177, 214),
		DialogInputBg:    tcell.NewRGBColor(47, 52, 73),
		IndentGuide:      tcell.NewRGBColor(40, 44, 60),
		Disabled:         tcell.NewRGBColor(86, 95, 137),
		Success:          tcell.NewRGBColor(158, 206, 106),
		Warning:          tcell.NewRGBColor(224, 175, 104),
		Error:            tcell.NewRGBColor(247, 118, 142),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(187, 154, 247), "string": tcell.NewRGBColor(158, 206, 106),
			"comment": tcell.NewRGBColor(86, 95, 137), "number": tcell.NewRGBColor(255, 158, 100),
			"function": tcell.NewRGBColor(125, 207, 255), "type": tcell.NewRGBColor(224, 175, 104),
		},
	},
	"catppuccin": {
		Name:             "Catppuccin Mocha",
		Background:       tcell.NewRGBColor(30, 30, 46),
		Foreground:       tcell.NewRGBColor(205, 214, 244),
		Selection:        tcell.NewRGBColor(69, 71, 90),
		LineNumber:       tcell.NewRGBColor(108, 112, 134),
		LineNumberActive: tcell.NewRGBColor(205, 214, 244),
		StatusBarBg:      tcell.NewRGBColor(69, 71, 90),
		StatusBarFg:      tcell.NewRGBColor(205, 214, 244),
		StatusBarModeBg:  tcell.NewRGBColor(180, 190, 254),
		TabBarBg:         tcell.NewRGBColor(30, 30, 46),
		TabBarFg:         tcell.NewRGBColor(108, 112, 134),
		TabBarActiveBg:   tcell.NewRGBColor(69, 71, 90),
		TabBarActiveFg:   tcell.NewRGBColor(205, 214, 244),
		TreeHeaderFg:     tcell.NewRGBColor(245, 194, 231),
		TreeDirFg:        tcell.NewRGBColor(137, 220, 235),
		TreeFileFg:       tcell.NewRGBColor(205, 214, 244),
		TreeSelectionBg:  tcell.NewRGBColor(69, 71, 90),
		TreeBorder:       tcell.NewRGBColor(108, 112, 134),
		DialogBg:         tcell.NewRGBColor(30, 30, 46),
		DialogFg:         tcell.NewRGBColor(205, 214, 244),
		DialogInputBg:    tcell.NewRGBColor(69, 71, 90),
		IndentGuide:      tcell.NewRGBColor(52, 53, 65),
		Disabled:         tcell.NewRGBColor(108, 112, 134),
		Success:          tcell.NewRGBColor(166, 227, 161),
		Warning:          tcell.NewRGBColor(249, 226, 175),
		Error:            tcell.NewRGBColor(243, 139, 168),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(203, 166, 247), "string": tcell.NewRGBColor(166, 227, 161),
			"comment": tcell.NewRGBColor(108, 112, 134), "number": tcell.NewRGBColor(250, 179, 135),
			"function": tcell.NewRGBColor(137, 220, 235), "type": tcell.NewRGBColor(249, 226, 175),
		},
	},
	"high-contrast": {
		Name:             "High Contrast",
		Background:       tcell.NewRGBColor(0, 0, 0),
		Foreground:       tcell.NewRGBColor(255, 255, 255),
		Selection:        tcell.NewRGBColor(0, 80, 160),
		LineNumber:       tcell.NewRGBColor(180, 180, 180),
		LineNumberActive: tcell.NewRGBColor(255, 255, 0),
		StatusBarBg:      tcell.NewRGBColor(0, 0, 200),
		StatusBarFg:      tcell.NewRGBColor(255, 255, 255),
		StatusBarModeBg:  tcell.NewRGBColor(200, 200, 0),
		TabBarBg:         tcell.NewRGBColor(0, 0, 0),
		TabBarFg:         tcell.NewRGBColor(180, 180, 180),
		TabBarActiveBg:   tcell.NewRGBColor(0, 0, 200),
		TabBarActiveFg:   tcell.NewRGBColor(255, 255, 255),
		TreeHeaderFg:     tcell.NewRGBColor(255, 255, 0),
		TreeDirFg:        tcell.NewRGBColor(100, 200, 255),
		TreeFileFg:       tcell.NewRGBColor(255, 255, 255),
		TreeSelectionBg:  tcell.NewRGBColor(0, 80, 160),
		TreeBorder:       tcell.NewRGBColor(255, 255, 255),
		DialogBg:         tcell.NewRGBColor(0, 0, 0),
		DialogFg:         tcell.NewRGBColor(255, 255, 255),
		DialogInputBg:    tcell.NewRGBColor(40, 40, 40),
		IndentGuide:      tcell.NewRGBColor(60, 60, 60),
		Disabled:         tcell.NewRGBColor(180, 180, 180),
		Success:          tcell.NewRGBColor(0, 255, 0),
		Warning:          tcell.NewRGBColor(255, 255, 0),
		Error:             tcell.NewRGBColor(255, 0, 0),
		Syntax: map[string]tcell.Color{
			"keyword": tcell.NewRGBColor(255, 255, 0), "string": tcell.NewRGBColor(0, 255, 255),
			"comment": tcell.NewRGBColor(180, 180, 180), "number": tcell.NewRGBColor(255, 150, 255),
			"function": tcell.NewRGBColor(100, 200, 255), "type": tcell.NewRGBColor(255, 200, 0),
		},
	},
}
