package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter handles syntax highlighting for the editor
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	mu         sync.RWMutex
	version    uint64
	tokenized  bool
	lines      [][]TokenPosition // Token positions per logical line
	styleCache map[chroma.TokenType]lipgloss.Style
}

// TokenPosition represents a token's position in its logical line, in runes
type TokenPosition struct {
	Token    chroma.Token
	StartCol int
	EndCol   int
}

// New creates a new syntax highlighter. language is a chroma lexer name or
// alias; when it is empty or unknown, fileName is used to pick a lexer.
func New(language, fileName, theme string) *Highlighter {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil && fileName != "" {
		lexer = lexers.Match(fileName)
	}
	if lexer == nil {
		lexer = lexers.Get("plaintext")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      style,
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Language returns the lexer name
func (sh *Highlighter) Language() string {
	return sh.lexer.Config().Name
}

// Tokenize tokenizes the whole text when version differs from the last run.
// Multi-line constructs such as block comments need the full text.
func (sh *Highlighter) Tokenize(text string, version uint64) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.tokenized && sh.version == version {
		return
	}
	sh.version = version
	sh.tokenized = true
	sh.lines = sh.lines[:0]

	if text == "" {
		return
	}

	iterator, err := sh.lexer.Tokenise(nil, text)
	if err != nil {
		sh.lines = nil
		return
	}

	current := []TokenPosition{}
	col := 0
	add := func(tokenType chroma.TokenType, value string) {
		n := len([]rune(value))
		current = append(current, TokenPosition{
			Token:    chroma.Token{Type: tokenType, Value: value},
			StartCol: col,
			EndCol:   col + n,
		})
		col += n
	}

	for _, token := range iterator.Tokens() {
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				add(token.Type, before)
			}
			sh.lines = append(sh.lines, current)
			current = []TokenPosition{}
			col = 0
			value = after
		}
		if value != "" {
			add(token.Type, value)
		}
	}
	sh.lines = append(sh.lines, current)
}

// TokensForLine returns the token positions of a logical line
func (sh *Highlighter) TokensForLine(line int) []TokenPosition {
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	if line < 0 || line >= len(sh.lines) {
		return nil
	}
	return sh.lines[line]
}

// StyleAt returns the style for the rune at col of a logical line
func (sh *Highlighter) StyleAt(line, col int) lipgloss.Style {
	token, ok := FindTokenAtPosition(sh.TokensForLine(line), col)
	if !ok {
		return lipgloss.NewStyle()
	}
	return sh.StyleForToken(token.Type)
}

// StyleForToken converts a Chroma token type to a lipgloss style.
func (sh *Highlighter) StyleForToken(tokenType chroma.TokenType) lipgloss.Style {
	sh.mu.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.mu.RUnlock()
	if ok {
		return style
	}

	entry := sh.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	sh.mu.Lock()
	sh.styleCache[tokenType] = style
	sh.mu.Unlock()

	return style
}

// FindTokenAtPosition finds which token contains the given column position.
// Positions are sorted, so the search stops at the first token past col.
func FindTokenAtPosition(positions []TokenPosition, col int) (chroma.Token, bool) {
	for _, pos := range positions {
		if col < pos.StartCol {
			break
		}
		if col < pos.EndCol {
			return pos.Token, true
		}
	}
	return chroma.Token{}, false
}
