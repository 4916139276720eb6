package core

// WrappedLine holds data about a single line as it appears visually after wrapping.
type WrappedLine struct {
	Text             string // The text content of this visual line segment
	Start            int    // Absolute offset of the first rune
	Length           int    // Rune count of Text
	LogicalLine      int    // Number of newlines before Start
	LogicalLineStart int    // Offset of the first rune of the owning logical line
}

// End returns the offset just past the last rune of the line.
func (l WrappedLine) End() int {
	return l.Start + l.Length
}

// Contains reports whether offset lies in the closed interval [Start, End].
func (l WrappedLine) Contains(offset int) bool {
	return offset >= l.Start && offset <= l.End()
}

// IsFirstSegment reports whether the line starts its logical line
func (l WrappedLine) IsFirstSegment() bool {
	return l.Start == l.LogicalLineStart
}

// Wrap breaks text into visual lines no wider than availableWidth.
//
// A line always receives at least one rune, so glyphs wider than the
// viewport still make progress. A newline ending a non-empty segment is
// consumed with it; a newline at the start of a segment yields an empty line.
// When text is empty or ends in a newline, a trailing empty line at len(text)
// keeps the end offset addressable.
func Wrap(text []rune, availableWidth float64, measurer Measurer) []WrappedLine {
	lines := make([]WrappedLine, 0, len(text)/64+1)

	pos := 0
	length := len(text)
	logicalLine := 0
	logicalLineStart := 0

	for pos < length {
		if text[pos] == '\n' {
			lines = append(lines, WrappedLine{
				Start:            pos,
				LogicalLine:      logicalLine,
				LogicalLineStart: logicalLineStart,
			})
			pos++
			logicalLine++
			logicalLineStart = pos
			continue
		}

		lineStart := pos
		width := 0.0
		for pos < length && text[pos] != '\n' {
			charWidth := measurer.MeasureWidth(string(text[pos]))
			if width+charWidth > availableWidth && pos > lineStart {
				break
			}
			width += charWidth
			pos++
		}

		lines = append(lines, WrappedLine{
			Text:             string(text[lineStart:pos]),
			Start:            lineStart,
			Length:           pos - lineStart,
			LogicalLine:      logicalLine,
			LogicalLineStart: logicalLineStart,
		})

		if pos < length && text[pos] == '\n' {
			pos++
			logicalLine++
			logicalLineStart = pos
		}
	}

	if length == 0 || text[length-1] == '\n' {
		lines = append(lines, WrappedLine{
			Start:            length,
			LogicalLine:      logicalLine,
			LogicalLineStart: logicalLineStart,
		})
	}

	return lines
}

// layoutCache memoizes Wrap output per (document version, width).
type layoutCache struct {
	valid   bool
	version uint64
	width   float64
	lines   []WrappedLine
}

func (c *layoutCache) get(doc *Document, width float64, measurer Measurer) []WrappedLine {
	if c.valid && c.version == doc.Version() && c.width == width {
		return c.lines
	}

	c.lines = Wrap(doc.Runes(), width, measurer)
	c.version = doc.Version()
	c.width = width
	c.valid = true
	return c.lines
}

func (c *layoutCache) invalidate() {
	c.valid = false
	c.lines = nil
}
