package core

import (
	"strings"
	"unicode/utf8"
)

const (
	lineCommentPrefix  = "//"
	blockCommentOpen   = "/*"
	blockCommentClose  = "*/"
	blockCommentLength = 4
)

// changed refreshes derived state after a mutation
func (e *Editor) changed() {
	e.layout.invalidate()
	e.syncViewport()
}

// deleteSelection removes the selected text and collapses the cursor at its
// start. It reports whether anything was removed.
func (e *Editor) deleteSelection() bool {
	if !e.cursor.HasSelection() {
		return false
	}
	start, end := e.cursor.Selection()
	e.doc.Erase(start, end-start)
	e.cursor.collapse(start)
	return true
}

func (e *Editor) indentUnit() string {
	return strings.Repeat(" ", e.cfg.IndentWidth)
}

// InsertText replaces the selection, if any, with text and moves the cursor
// past it.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}
	e.checkpoint()
	e.deleteSelection()

	pos := e.cursor.Position
	e.doc.InsertString(pos, text)
	e.cursor.collapse(pos + utf8.RuneCountInString(text))
	e.changed()
}

// InsertRune inserts a single character
func (e *Editor) InsertRune(r rune) {
	e.InsertText(string(r))
}

// Newline splits the line at the cursor
func (e *Editor) Newline() {
	e.InsertText("\n")
}

// Backspace deletes the selection, or the character before the cursor.
func (e *Editor) Backspace() {
	if e.cursor.HasSelection() {
		e.checkpoint()
		e.deleteSelection()
		e.changed()
		return
	}

	pos := e.cursor.Position
	if pos == 0 {
		return
	}
	e.checkpoint()
	e.doc.Erase(pos-1, 1)
	e.cursor.collapse(pos - 1)
	e.changed()
}

// Delete deletes the selection, or the character after the cursor.
func (e *Editor) Delete() {
	if e.cursor.HasSelection() {
		e.checkpoint()
		e.deleteSelection()
		e.changed()
		return
	}

	pos := e.cursor.Position
	if pos >= e.doc.Len() {
		return
	}
	e.checkpoint()
	e.doc.Erase(pos, 1)
	e.cursor.collapse(pos)
	e.changed()
}

// Indent inserts one indent unit at the cursor, or at the start of every
// wrapped line touched by the selection.
func (e *Editor) Indent() {
	unit := e.indentUnit()
	unitLen := len(unit)

	if !e.cursor.HasSelection() {
		pos := e.cursor.Position
		e.checkpoint()
		e.doc.InsertString(pos, unit)
		e.cursor.collapse(pos + unitLen)
		e.changed()
		return
	}

	start, end := e.cursor.Selection()
	lines := e.Lines()
	startLine := LineIndexAt(start, lines)
	endLine := LineIndexAt(end, lines)

	// The layout is stale once the first insert lands, so collect starts first.
	starts := make([]int, 0, endLine-startLine+1)
	for i := startLine; i <= endLine; i++ {
		starts = append(starts, lines[i].Start)
	}

	e.checkpoint()
	offset := 0
	for _, lineStart := range starts {
		e.doc.InsertString(lineStart+offset, unit)
		offset += unitLen
	}

	// Only the end moving away from the text start picks up the full shift;
	// the other end moves only when the selection sits on a single line.
	c := &e.cursor
	if c.Anchor < c.Extent {
		if startLine == endLine {
			c.Anchor += unitLen
		}
		c.Extent += offset
	} else {
		if startLine == endLine {
			c.Extent += unitLen
		}
		c.Anchor += offset
	}
	c.Position = c.Extent
	e.changed()
}

// Outdent removes up to one indent unit of leading spaces from the cursor's
// logical line, or from the start of every wrapped line touched by the
// selection.
func (e *Editor) Outdent() {
	unitLen := e.cfg.IndentWidth

	if !e.cursor.HasSelection() {
		pos := e.cursor.Position
		lineStart := e.logicalLineStart(pos)

		limit := min(unitLen, pos-lineStart)
		spaces := e.leadingSpaces(lineStart, limit)
		if spaces == 0 {
			return
		}

		e.checkpoint()
		e.doc.Erase(lineStart, spaces)
		e.cursor.collapse(pos - spaces)
		e.changed()
		return
	}

	start, end := e.cursor.Selection()
	lines := e.Lines()
	startLine := LineIndexAt(start, lines)
	endLine := LineIndexAt(end, lines)

	starts := make([]int, 0, endLine-startLine+1)
	for i := startLine; i <= endLine; i++ {
		starts = append(starts, lines[i].Start)
	}

	removed := 0
	checkpointed := false
	for _, s := range starts {
		lineStart := s - removed
		spaces := e.leadingSpaces(lineStart, unitLen)
		if spaces == 0 {
			continue
		}
		if !checkpointed {
			e.checkpoint()
			checkpointed = true
		}
		e.doc.Erase(lineStart, spaces)
		removed += spaces
	}
	if removed == 0 {
		return
	}

	c := &e.cursor
	if c.Anchor < c.Extent {
		c.Extent -= removed
	} else {
		c.Anchor -= removed
	}
	c.Anchor = e.clampOffset(c.Anchor)
	c.Extent = e.clampOffset(c.Extent)
	c.Position = c.Extent
	e.changed()
}

// logicalLineStart returns the offset following the last newline strictly
// before pos, or 0.
func (e *Editor) logicalLineStart(pos int) int {
	runes := e.doc.Runes()
	for i := min(pos, len(runes)) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// leadingSpaces counts spaces at offset, up to limit
func (e *Editor) leadingSpaces(offset, limit int) int {
	n := 0
	for n < limit && e.doc.RuneAt(offset+n) == ' ' {
		n++
	}
	return n
}

// ToggleComment adds or removes a line comment at the start of the cursor's
// wrapped line. With a selection it wraps or unwraps the selection in a block
// comment instead.
func (e *Editor) ToggleComment() {
	if !e.cursor.HasSelection() {
		lines := e.Lines()
		line := lines[LineIndexAt(e.cursor.Position, lines)]
		lineStart := line.Start
		pos := e.cursor.Position
		prefixLen := utf8.RuneCountInString(lineCommentPrefix)

		e.checkpoint()
		// Only the wrapped line's own text counts; a prefix split across rows is not a comment.
		if strings.HasPrefix(line.Text, lineCommentPrefix) {
			e.doc.Erase(lineStart, prefixLen)
			e.cursor.collapse(max(pos-prefixLen, lineStart))
		} else {
			e.doc.InsertString(lineStart, lineCommentPrefix)
			e.cursor.collapse(pos + prefixLen)
		}
		e.changed()
		return
	}

	start, end := e.cursor.Selection()
	c := &e.cursor

	e.checkpoint()
	if end-start >= blockCommentLength &&
		e.doc.HasPrefixAt(start, blockCommentOpen) &&
		e.doc.HasPrefixAt(end-2, blockCommentClose) {
		e.doc.Erase(end-2, 2)
		e.doc.Erase(start, 2)
		c.Extent -= blockCommentLength
	} else {
		e.doc.InsertString(end, blockCommentClose)
		e.doc.InsertString(start, blockCommentOpen)
		c.Extent += blockCommentLength
	}
	c.Anchor = e.clampOffset(c.Anchor)
	c.Extent = e.clampOffset(c.Extent)
	c.Position = c.Extent
	e.changed()
}

// DuplicateLine inserts a copy of the cursor's wrapped line right after it.
// With a selection the whole span of touched wrapped lines is duplicated and
// the copy becomes the selection.
func (e *Editor) DuplicateLine() {
	if e.doc.IsEmpty() {
		return
	}
	lines := e.Lines()

	spanEnd := func(line int) int {
		if line < len(lines)-1 {
			return lines[line+1].Start
		}
		return e.doc.Len()
	}

	if !e.cursor.HasSelection() {
		idx := LineIndexAt(e.cursor.Position, lines)
		lineStart := lines[idx].Start
		lineEnd := spanEnd(idx)
		if lineEnd <= lineStart {
			return
		}

		e.checkpoint()
		e.doc.InsertString(lineEnd, e.doc.Slice(lineStart, lineEnd))
		e.cursor.collapse(lineEnd + (e.cursor.Position - lineStart))
		e.changed()
		return
	}

	start, end := e.cursor.Selection()
	spanStart := lines[LineIndexAt(start, lines)].Start
	spanStop := spanEnd(LineIndexAt(end, lines))
	if spanStop <= spanStart {
		return
	}

	e.checkpoint()
	e.doc.InsertString(spanStop, e.doc.Slice(spanStart, spanStop))
	e.cursor.Anchor = spanStop
	e.cursor.Extent = spanStop + (spanStop - spanStart)
	e.cursor.Position = e.cursor.Extent
	e.changed()
}

// ReplaceAll swaps the whole buffer in one checkpointed step, keeping the
// cursor where it was when still in range.
func (e *Editor) ReplaceAll(text string) {
	if text == e.doc.Text() {
		return
	}
	e.checkpoint()
	e.doc.SetText(text)
	e.cursor.collapse(e.clampOffset(e.cursor.Position))
	e.changed()
}

// --- Clipboard ---

// Copy writes the selection to the clipboard. Without a selection it does nothing.
func (e *Editor) Copy() error {
	if !e.cursor.HasSelection() {
		return nil
	}
	if e.clipboard == nil {
		return e.fail(ErrCopyFailedId, ErrNoClipboard)
	}

	text := e.SelectedText()
	if err := e.clipboard.Write(text); err != nil {
		return e.fail(ErrCopyFailedId, err)
	}
	e.DispatchSignal(CopySignal{length: utf8.RuneCountInString(text)})
	return nil
}

// Cut copies the selection and deletes it. The buffer is left untouched when
// the clipboard write fails.
func (e *Editor) Cut() error {
	if !e.cursor.HasSelection() {
		return nil
	}
	if e.clipboard == nil {
		return e.fail(ErrCutFailedId, ErrNoClipboard)
	}

	text := e.SelectedText()
	if err := e.clipboard.Write(text); err != nil {
		return e.fail(ErrCutFailedId, err)
	}

	e.checkpoint()
	e.deleteSelection()
	e.changed()
	e.DispatchSignal(CutSignal{length: utf8.RuneCountInString(text)})
	return nil
}

// Paste replaces the selection with the clipboard content. An empty
// clipboard is a no-op.
func (e *Editor) Paste() error {
	if e.clipboard == nil {
		return e.fail(ErrPasteFailedId, ErrNoClipboard)
	}

	text, err := e.clipboard.Read()
	if err != nil {
		return e.fail(ErrPasteFailedId, err)
	}
	if text == "" {
		return nil
	}

	e.InsertText(text)
	e.DispatchSignal(PasteSignal{length: utf8.RuneCountInString(text)})
	return nil
}
