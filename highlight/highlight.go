// Package highlight tokenizes buffer text with chroma and resolves the
// result to tcell styles through the active theme's syntax slots.
package highlight

import (
	"crypto/sha256"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"

	"termide/config"
)

type Token struct {
	Text  string
	Style tcell.Style
}

type StyledLine struct {
	Tokens []Token
}

// fileCache holds the last full tokenization of one buffer's content,
// invalidated wholesale whenever that content changes. Chroma's
// tokenizer does not expose a resumable per-line lexer state in this
// version, so a cache hit means "re-slice the last full pass"; a miss
// means "retokenize the whole buffer" rather than true incremental
// per-line relexing.
type fileCache struct {
	hash  [32]byte
	lines []StyledLine
}

type Highlighter struct {
	mu    sync.Mutex
	theme *config.ColorScheme
	cache map[string]*fileCache
}

func New() *Highlighter {
	return &Highlighter{
		cache: make(map[string]*fileCache),
	}
}

// SetTheme installs the syntax palette future tokenization resolves
// against. Changing it does not itself invalidate cached entries, which
// hold styles already resolved against the theme in effect when they were
// tokenized; callers that need a repaint under a new theme should
// invalidate affected paths.
func (h *Highlighter) SetTheme(theme *config.ColorScheme) {
	h.mu.Lock()
	h.theme = theme
	h.mu.Unlock()
}

// InvalidateCache drops any cached tokenization for path, forcing a
// full retokenize on next use. Call on close, rename, or reload.
func (h *Highlighter) InvalidateCache(path string) {
	h.mu.Lock()
	delete(h.cache, path)
	h.mu.Unlock()
}

// InvalidateFrom drops the cached tokenization for path from line
// onward. In practice this still forces a full retokenize (see
// fileCache), but keeping the call distinct from InvalidateCache lets
// callers express "content changed starting here" precisely, so a
// future resumable-lexer-state cache can act on it without call-site
// changes.
func (h *Highlighter) InvalidateFrom(path string, line int) {
	h.InvalidateCache(path)
}

func (h *Highlighter) HighlightLines(path, code, lang string, startLine, endLine int) []StyledLine {
	lines := strings.Split(code, "\n")
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine < 0 {
		startLine = 0
	}
	if startLine > endLine {
		startLine = endLine
	}

	h.mu.Lock()
	theme := h.theme
	entry := h.cache[path]
	h.mu.Unlock()

	hash := sha256.Sum256([]byte(code))
	if entry == nil || entry.hash != hash {
		entry = &fileCache{hash: hash, lines: h.tokenize(code, lang, theme)}
		h.mu.Lock()
		h.cache[path] = entry
		h.mu.Unlock()
	}

	if startLine >= len(entry.lines) {
		return nil
	}
	if endLine > len(entry.lines) {
		endLine = len(entry.lines)
	}
	return entry.lines[startLine:endLine]
}

func (h *Highlighter) tokenize(code, lang string, theme *config.ColorScheme) []StyledLine {
	lines := strings.Split(code, "\n")

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		result := make([]StyledLine, len(lines))
		for i, line := range lines {
			result[i] = StyledLine{Tokens: []Token{{Text: line, Style: tcell.StyleDefault}}}
		}
		return result
	}

	styledLines := make([]StyledLine, len(lines))
	currentLine := 0
	for _, tok := range iter.Tokens() {
		style := tokenStyle(tok.Type, theme)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				currentLine++
			}
			if currentLine >= len(styledLines) {
				break
			}
			if part != "" {
				styledLines[currentLine].Tokens = append(styledLines[currentLine].Tokens, Token{
					Text:  part,
					Style: style,
				})
			}
		}
	}
	return styledLines
}

func DetectLanguage(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if cfg == nil {
		return ""
	}
	return cfg.Name
}

// tokenStyle maps a chroma token kind to a symbolic syntax slot and
// resolves it against the active theme. With no theme set it falls
// back to tcell's default palette so highlighting still works before
// the editor installs one.
func tokenStyle(t chroma.TokenType, theme *config.ColorScheme) tcell.Style {
	base := tcell.StyleDefault
	slot, bold, italic := tokenSlot(t)
	if slot == "" {
		if theme != nil {
			return base.Foreground(theme.Foreground)
		}
		return base.Foreground(tcell.ColorWhite)
	}

	var fg tcell.Color
	if theme != nil {
		fg = theme.SyntaxColor(slot)
	} else {
		fg = fallbackSlotColor(slot)
	}
	style := base.Foreground(fg)
	if bold {
		style = style.Bold(true)
	}
	if italic {
		style = style.Italic(true)
	}
	return style
}

func tokenSlot(t chroma.TokenType) (slot string, bold, italic bool) {
	switch {
	case t == chroma.Keyword || t == chroma.KeywordConstant || t == chroma.KeywordDeclaration ||
		t == chroma.KeywordNamespace || t == chroma.KeywordReserved || t == chroma.KeywordType:
		return "keyword", true, false
	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return "keyword", false, false
	case t == chroma.LiteralString || t == chroma.LiteralStringAffix || t == chroma.LiteralStringBacktick ||
		t == chroma.LiteralStringChar || t == chroma.LiteralStringDouble || t == chroma.LiteralStringSingle ||
		t == chroma.LiteralStringHeredoc || t == chroma.LiteralStringInterpol ||
		t == chroma.LiteralStringOther || t == chroma.LiteralStringRegex:
		return "string", false, false
	case t == chroma.Comment || t == chroma.CommentMultiline || t == chroma.CommentSingle ||
		t == chroma.CommentSpecial || t == chroma.CommentPreproc || t == chroma.CommentPreprocFile:
		return "comment", false, true
	case t == chroma.LiteralNumber || t == chroma.LiteralNumberBin || t == chroma.LiteralNumberFloat ||
		t == chroma.LiteralNumberHex || t == chroma.LiteralNumberInteger || t == chroma.LiteralNumberIntegerLong ||
		t == chroma.LiteralNumberOct:
		return "number", false, false
	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return "function", false, false
	case t == chroma.NameClass || t == chroma.NameException || t == chroma.NameDecorator:
		return "type", false, false
	case t == chroma.Operator || t == chroma.OperatorWord:
		return "operator", false, false
	case t == chroma.Punctuation:
		return "operator", false, false
	default:
		return "", false, false
	}
}

func fallbackSlotColor(slot string) tcell.Color {
	switch slot {
	case "keyword":
		return tcell.ColorBlue
	case "string":
		return tcell.ColorGreen
	case "comment":
		return tcell.ColorGray
	case "number":
		return tcell.ColorDarkCyan
	case "function":
		return tcell.ColorYellow
	case "type":
		return tcell.ColorFuchsia
	default:
		return tcell.ColorWhite
	}
}
