package core

import (
	"fmt"
	"strings"
	"unicode"
)

// --- KeyCode, KeyModifiers, Key ---

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyDelete
	KeyInsert
)

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents a keyboard input event
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

// String returns a string representation of a Key (Refined for clarity)
func (k KeyEvent) String() string {
	var parts []string

	// Modifiers first
	if k.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}

	// Key representation
	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		switch k.Key {
		case KeyEnter:
			parts = append(parts, "Enter")
		case KeyTab:
			parts = append(parts, "Tab")
		case KeyBackspace:
			parts = append(parts, "Backspace")
		case KeyEscape:
			parts = append(parts, "Escape")
		case KeySpace:
			parts = append(parts, "Space")
		case KeyUp:
			parts = append(parts, "Up")
		case KeyDown:
			parts = append(parts, "Down")
		case KeyLeft:
			parts = append(parts, "Left")
		case KeyRight:
			parts = append(parts, "Right")
		case KeyHome:
			parts = append(parts, "Home")
		case KeyEnd:
			parts = append(parts, "End")
		case KeyPageUp:
			parts = append(parts, "PageUp")
		case KeyPageDown:
			parts = append(parts, "PageDown")
		case KeyDelete:
			parts = append(parts, "Delete")
		case KeyInsert:
			parts = append(parts, "Insert")
		case KeyUnknown:
			parts = append(parts, "Unknown")
		default:
			parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
		}
	}

	return strings.Join(parts, "+")
}

// HandleKey applies the editing binding for k. Keys without a binding are
// ignored. The returned error comes from the clipboard collaborator.
func (e *Editor) HandleKey(k KeyEvent) error {
	ctrl := k.Modifiers&ModCtrl != 0
	shift := k.Modifiers&ModShift != 0
	alt := k.Modifiers&ModAlt != 0

	if k.Rune != 0 {
		if ctrl {
			return e.handleCtrlRune(k.Rune, shift)
		}
		if alt {
			return nil
		}
		e.InsertRune(k.Rune)
		return nil
	}

	switch k.Key {
	case KeyEnter:
		e.Newline()
	case KeySpace:
		e.InsertRune(' ')
	case KeyBackspace:
		e.Backspace()
	case KeyDelete:
		e.Delete()
	case KeyTab:
		if shift {
			e.Outdent()
		} else {
			e.Indent()
		}
	case KeyEscape:
		e.SetCursor(e.cursor.Position)
	case KeyLeft:
		e.MoveLeft(shift)
	case KeyRight:
		e.MoveRight(shift)
	case KeyUp:
		if ctrl {
			e.ScrollLines(-1)
		} else {
			e.MoveUp(shift)
		}
	case KeyDown:
		if ctrl {
			e.ScrollLines(1)
		} else {
			e.MoveDown(shift)
		}
	case KeyHome:
		if ctrl {
			e.JumpToTop()
		} else {
			e.MoveToLineStart(shift)
		}
	case KeyEnd:
		if ctrl {
			e.JumpToBottom()
		} else {
			e.MoveToLineEnd(shift)
		}
	case KeyPageUp:
		e.ScrollLines(-e.pageLines())
	case KeyPageDown:
		e.ScrollLines(e.pageLines())
	}

	return nil
}

func (e *Editor) handleCtrlRune(r rune, shift bool) error {
	if unicode.IsUpper(r) {
		shift = true
		r = unicode.ToLower(r)
	}

	switch r {
	case 'a':
		e.SelectAll()
	case 'c':
		return e.Copy()
	case 'x':
		return e.Cut()
	case 'v':
		return e.Paste()
	case 'z':
		if shift {
			e.Redo()
		} else {
			e.Undo()
		}
	case 'y':
		e.Redo()
	case 'd':
		e.DuplicateLine()
	case 'm':
		e.JumpToMiddleOfLine()
	case '/':
		e.ToggleComment()
	}

	return nil
}

func (e *Editor) pageLines() int {
	return max(1, int(e.viewport.Height/e.measurer.LineHeight()))
}
