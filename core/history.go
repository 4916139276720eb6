package core

// DefaultHistoryLimit is the number of snapshots kept on each stack
const DefaultHistoryLimit = 100

// History keeps whole-buffer snapshots on two bounded stacks.
// When a stack is full the oldest snapshot is dropped.
type History struct {
	undoStack []string
	redoStack []string
	limit     int
}

// NewHistory creates a history holding at most limit snapshots per stack.
// A limit of zero or less disables history.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 0)}
}

// Push records a checkpoint and clears the redo stack.
func (h *History) Push(text string) {
	if h.limit == 0 {
		return
	}
	h.undoStack = pushBounded(h.undoStack, text, h.limit)
	h.redoStack = h.redoStack[:0]
}

// Undo moves current onto the redo stack and returns the most recent
// checkpoint. ok is false when there is nothing to undo.
func (h *History) Undo(current string) (text string, ok bool) {
	if len(h.undoStack) == 0 {
		return "", false
	}
	h.redoStack = pushBounded(h.redoStack, current, h.limit)

	last := len(h.undoStack) - 1
	text = h.undoStack[last]
	h.undoStack = h.undoStack[:last]
	return text, true
}

// Redo is the inverse of Undo. It never clears the redo stack.
func (h *History) Redo(current string) (text string, ok bool) {
	if len(h.redoStack) == 0 {
		return "", false
	}
	h.undoStack = pushBounded(h.undoStack, current, h.limit)

	last := len(h.redoStack) - 1
	text = h.redoStack[last]
	h.redoStack = h.redoStack[:last]
	return text, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }
func (h *History) UndoLen() int  { return len(h.undoStack) }
func (h *History) RedoLen() int  { return len(h.redoStack) }
func (h *History) Limit() int    { return h.limit }

// Clear drops both stacks
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

func pushBounded(stack []string, text string, limit int) []string {
	if limit <= 0 {
		return stack
	}
	if len(stack) >= limit {
		// Shift down so the backing array does not grow without bound.
		n := copy(stack, stack[len(stack)-limit+1:])
		stack = stack[:n]
	}
	return append(stack, text)
}

// --- Editor integration ---

// checkpoint records the current buffer before a mutation
func (e *Editor) checkpoint() {
	e.history.Push(e.doc.Text())
}

// History exposes the snapshot stacks, mainly for status display
func (e *Editor) History() *History {
	return e.history
}

// Undo restores the previous snapshot. It is a no-op when there is nothing to undo.
func (e *Editor) Undo() {
	text, ok := e.history.Undo(e.doc.Text())
	if !ok {
		e.DispatchMessage(NothingToUndo)
		return
	}
	e.restore(text)
	e.DispatchSignal(UndoSignal{})
}

// Redo re-applies the snapshot most recently undone.
func (e *Editor) Redo() {
	text, ok := e.history.Redo(e.doc.Text())
	if !ok {
		e.DispatchMessage(NothingToRedo)
		return
	}
	e.restore(text)
	e.DispatchSignal(RedoSignal{})
}

// restore swaps in a snapshot, keeping the cursor at min(cursor, len-1).
func (e *Editor) restore(text string) {
	e.doc.SetText(text)
	e.layout.invalidate()
	e.cursor.collapse(max(0, min(e.cursor.Position, e.doc.Len()-1)))
	e.syncViewport()
}
