package core

// Cursor represents the insertion point and the active selection.
// The selection is empty iff Anchor == Extent.
type Cursor struct {
	Position int // Insertion point, 0 <= Position <= document length
	Anchor   int // Where the selection started
	Extent   int // Where the selection ends; follows Position
}

// Point is a position in content coordinates, in measurer units
type Point struct {
	X float64
	Y float64
}

// HasSelection reports whether the selection is non-empty
func (c Cursor) HasSelection() bool {
	return c.Anchor != c.Extent
}

// Selection returns the selection bounds in document order
func (c Cursor) Selection() (start, end int) {
	return min(c.Anchor, c.Extent), max(c.Anchor, c.Extent)
}

// collapse puts the cursor at pos with an empty selection
func (c *Cursor) collapse(pos int) {
	c.Position = pos
	c.Anchor = pos
	c.Extent = pos
}

// moveTo moves the insertion point and applies the selection rule: extending
// keeps (or starts, from the pre-move position) the selection, anything else
// collapses it.
func (c *Cursor) moveTo(pos int, extend bool) {
	old := c.Position
	c.Position = pos
	if !extend {
		c.collapse(pos)
		return
	}
	if !c.HasSelection() {
		c.Anchor = old
	}
	c.Extent = pos
}

// --- Cursor Movement ---

// MoveLeft moves the cursor one rune left, stopping at the buffer start.
func (e *Editor) MoveLeft(extend bool) {
	pos := e.cursor.Position
	if pos > 0 {
		pos--
	}
	e.cursor.moveTo(pos, extend)
	e.syncViewport()
}

// MoveRight moves the cursor one rune right, stopping at the buffer end.
func (e *Editor) MoveRight(extend bool) {
	pos := e.cursor.Position
	if pos < e.doc.Len() {
		pos++
	}
	e.cursor.moveTo(pos, extend)
	e.syncViewport()
}

// MoveUp moves the cursor to the previous wrapped line, keeping the column
// when the line is long enough. The column comes from the current position on
// every call, so moving through a short line loses the original column.
func (e *Editor) MoveUp(extend bool) {
	lines := e.Lines()
	idx := LineIndexAt(e.cursor.Position, lines)
	if idx == 0 {
		return
	}

	col := e.cursor.Position - LineStart(idx, lines)
	target := lines[idx-1]
	e.cursor.moveTo(target.Start+min(target.Length, col), extend)
	e.syncViewport()
}

// MoveDown moves the cursor to the next wrapped line; see MoveUp.
func (e *Editor) MoveDown(extend bool) {
	lines := e.Lines()
	idx := LineIndexAt(e.cursor.Position, lines)
	if idx >= len(lines)-1 {
		return
	}

	col := e.cursor.Position - LineStart(idx, lines)
	target := lines[idx+1]
	e.cursor.moveTo(target.Start+min(target.Length, col), extend)
	e.syncViewport()
}

// MoveToLineStart moves the cursor to the start of the current wrapped line
func (e *Editor) MoveToLineStart(extend bool) {
	lines := e.Lines()
	idx := LineIndexAt(e.cursor.Position, lines)
	e.cursor.moveTo(LineStart(idx, lines), extend)
	e.syncViewport()
}

// MoveToLineEnd moves the cursor *after* the last character of the current wrapped line
func (e *Editor) MoveToLineEnd(extend bool) {
	lines := e.Lines()
	idx := LineIndexAt(e.cursor.Position, lines)
	e.cursor.moveTo(lines[idx].End(), extend)
	e.syncViewport()
}

// JumpToTop moves the cursor to the start of the buffer
func (e *Editor) JumpToTop() {
	e.cursor.collapse(0)
	e.syncViewport()
}

// JumpToBottom moves the cursor to the end of the buffer
func (e *Editor) JumpToBottom() {
	e.cursor.collapse(e.doc.Len())
	e.syncViewport()
}

// JumpToMiddleOfLine moves the cursor to the middle of the current wrapped line
func (e *Editor) JumpToMiddleOfLine() {
	lines := e.Lines()
	line := lines[LineIndexAt(e.cursor.Position, lines)]
	e.cursor.collapse(line.Start + line.Length/2)
	e.syncViewport()
}

// SelectAll selects the whole buffer, leaving the cursor at the end
func (e *Editor) SelectAll() {
	e.cursor.Anchor = 0
	e.cursor.Extent = e.doc.Len()
	e.cursor.Position = e.cursor.Extent
	e.syncViewport()
}

// SetCursor places the cursor at offset with an empty selection.
// Out-of-range offsets are clamped.
func (e *Editor) SetCursor(offset int) {
	e.cursor.collapse(e.clampOffset(offset))
	e.syncViewport()
}

// Select sets the selection to [anchor, extent], moving the cursor to extent.
// Both ends are clamped.
func (e *Editor) Select(anchor, extent int) {
	e.cursor.Anchor = e.clampOffset(anchor)
	e.cursor.Extent = e.clampOffset(extent)
	e.cursor.Position = e.cursor.Extent
	e.syncViewport()
}

// JumpTo moves the cursor to an absolute offset supplied from outside the
// engine (for example a symbol picked in a command palette) and scrolls the
// target line to the top of the viewport.
func (e *Editor) JumpTo(offset int) {
	e.cursor.collapse(e.clampOffset(offset))

	lines := e.Lines()
	idx := LineIndexAt(e.cursor.Position, lines)
	e.viewport.ScrollOffsetY = float64(idx) * e.measurer.LineHeight()
	e.syncViewport()
}

func (e *Editor) clampOffset(offset int) int {
	return max(0, min(offset, e.doc.Len()))
}
