package adapter_bubbletea

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/codepad/core"
)

// calculateLineNumberWidth computes the width needed for line numbers
func (m *Model) calculateLineNumberWidth(totalLines int) int {
	if !m.showLineNumbers {
		return 0
	}

	maxWidth := len(strconv.Itoa(max(1, totalLines)))
	lineNumWidth := max(4, maxWidth) + 1
	return min(lineNumWidth, 10)
}

// logicalLineCount returns the number of logical lines in the buffer
func (m *Model) logicalLineCount() int {
	lines := m.editor.Lines()
	if len(lines) == 0 {
		return 1
	}
	return lines[len(lines)-1].LogicalLine + 1
}

func (m *Model) gutterWidth() int {
	return m.calculateLineNumberWidth(m.logicalLineCount())
}

// refreshTextWidth rewraps the text when the gutter has grown or shrunk.
func (m *Model) refreshTextWidth() {
	textWidth := float64(max(1, m.width-m.gutterWidth()))
	if m.editor.Viewport().Width != textWidth {
		m.SetSize(m.width, m.height)
	}
}

func (m *Model) textHeight() int {
	return max(1, m.height-chromeHeight)
}

// displayRune maps runes that would break the terminal grid to a blank cell
func displayRune(r rune) string {
	if r == '\t' || unicode.IsControl(r) {
		return " "
	}
	return string(r)
}

// renderContent renders the visible slice of the wrapped layout.
func (m *Model) renderContent() string {
	lines := m.editor.Lines()
	first, last := m.editor.VisibleRange()

	if m.highlighter != nil {
		m.highlighter.Tokenize(m.editor.Text(), m.editor.Version())
	}

	cursor := m.editor.Cursor()
	cursorLine := m.editor.CurrentLine()
	currentLogical := lines[cursorLine].LogicalLine
	selStart, selEnd, hasSelection := m.editor.Selection()
	lineNumWidth := m.gutterWidth()

	var contentBuilder strings.Builder
	rendered := 0

	for idx := first; idx < last && rendered < m.textHeight(); idx++ {
		line := lines[idx]

		if m.showLineNumbers {
			lineNumStr := ""
			lineNumberStyle := m.theme.LineNumberStyle
			if line.IsFirstSegment() {
				lineNumStr = strconv.Itoa(line.LogicalLine + 1)
			}
			if line.LogicalLine == currentLogical {
				lineNumberStyle = m.theme.CurrentLineNumberStyle
			}
			contentBuilder.WriteString(lineNumberStyle.Width(lineNumWidth-1).Render(lineNumStr) + " ")
		}

		contentBuilder.WriteString(m.renderLine(line, idx == cursorLine, cursor, selStart, selEnd, hasSelection))
		contentBuilder.WriteString("\n")
		rendered++
	}

	for rendered < m.textHeight() {
		if m.showLineNumbers {
			contentBuilder.WriteString(m.theme.TildeStyle.Width(lineNumWidth-1).Render("~") + " ")
		}
		contentBuilder.WriteString("\n")
		rendered++
	}

	return strings.TrimSuffix(contentBuilder.String(), "\n")
}

func (m *Model) renderLine(line editor.WrappedLine, hasCursor bool, cursor editor.Cursor, selStart, selEnd int, hasSelection bool) string {
	var b strings.Builder

	selected := func(offset int) bool {
		return hasSelection && offset >= selStart && offset < selEnd
	}

	for i, r := range []rune(line.Text) {
		offset := line.Start + i

		style := lipgloss.NewStyle()
		if m.highlighter != nil {
			style = m.highlighter.StyleAt(line.LogicalLine, offset-line.LogicalLineStart)
		}
		if selected(offset) {
			style = style.Background(m.theme.SelectionStyle.GetBackground())
		}
		if hasCursor && offset == cursor.Position {
			style = m.theme.CursorStyle
		}

		b.WriteString(style.Render(displayRune(r)))
	}

	if hasCursor && cursor.Position == line.End() {
		b.WriteString(m.theme.CursorStyle.Render(" "))
	}

	return b.String()
}
