package adapter_bubbletea

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/codepad/core"
)

// KeyMap holds the bindings handled by the host rather than the engine.
type KeyMap struct {
	Save   key.Binding
	Reload key.Binding
	Build  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default host bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "reload from disk"),
		),
		Build: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "run build command"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Reload, k.Build, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var ctrlRunes = map[tea.KeyType]rune{
	tea.KeyCtrlA:          'a',
	tea.KeyCtrlC:          'c',
	tea.KeyCtrlD:          'd',
	tea.KeyCtrlV:          'v',
	tea.KeyCtrlX:          'x',
	tea.KeyCtrlY:          'y',
	tea.KeyCtrlZ:          'z',
	tea.KeyCtrlUnderscore: '/', // Most terminals send ctrl+/ as ctrl+_
}

type namedKey struct {
	code editor.KeyCode
	mods editor.KeyModifiers
}

var namedKeys = map[tea.KeyType]namedKey{
	tea.KeyEnter:         {editor.KeyEnter, editor.ModNone},
	tea.KeySpace:         {editor.KeySpace, editor.ModNone},
	tea.KeyEsc:           {editor.KeyEscape, editor.ModNone},
	tea.KeyBackspace:     {editor.KeyBackspace, editor.ModNone},
	tea.KeyDelete:        {editor.KeyDelete, editor.ModNone},
	tea.KeyTab:           {editor.KeyTab, editor.ModNone},
	tea.KeyShiftTab:      {editor.KeyTab, editor.ModShift},
	tea.KeyUp:            {editor.KeyUp, editor.ModNone},
	tea.KeyDown:          {editor.KeyDown, editor.ModNone},
	tea.KeyLeft:          {editor.KeyLeft, editor.ModNone},
	tea.KeyRight:         {editor.KeyRight, editor.ModNone},
	tea.KeyShiftUp:       {editor.KeyUp, editor.ModShift},
	tea.KeyShiftDown:     {editor.KeyDown, editor.ModShift},
	tea.KeyShiftLeft:     {editor.KeyLeft, editor.ModShift},
	tea.KeyShiftRight:    {editor.KeyRight, editor.ModShift},
	tea.KeyCtrlUp:        {editor.KeyUp, editor.ModCtrl},
	tea.KeyCtrlDown:      {editor.KeyDown, editor.ModCtrl},
	tea.KeyHome:          {editor.KeyHome, editor.ModNone},
	tea.KeyEnd:           {editor.KeyEnd, editor.ModNone},
	tea.KeyShiftHome:     {editor.KeyHome, editor.ModShift},
	tea.KeyShiftEnd:      {editor.KeyEnd, editor.ModShift},
	tea.KeyCtrlHome:      {editor.KeyHome, editor.ModCtrl},
	tea.KeyCtrlEnd:       {editor.KeyEnd, editor.ModCtrl},
	tea.KeyPgUp:          {editor.KeyPageUp, editor.ModNone},
	tea.KeyPgDown:        {editor.KeyPageDown, editor.ModNone},
	tea.KeyCtrlH:         {editor.KeyBackspace, editor.ModNone},
	tea.KeyCtrlShiftHome: {editor.KeyHome, editor.ModCtrl | editor.ModShift},
	tea.KeyCtrlShiftEnd:  {editor.KeyEnd, editor.ModCtrl | editor.ModShift},
}

// convertBubbleKey converts a Bubbletea key to an editor key event.
// ok is false for keys the engine has no use for.
func convertBubbleKey(msg tea.KeyMsg) (ev editor.KeyEvent, ok bool) {
	if msg.Alt {
		ev.Modifiers |= editor.ModAlt
	}

	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return ev, false
		}
		ev.Rune = msg.Runes[0]
		// Alt+m stands in for ctrl+m, which terminals deliver as Enter.
		if msg.Alt && ev.Rune == 'm' {
			ev.Modifiers = editor.ModCtrl
		}
		return ev, true
	}

	if r, found := ctrlRunes[msg.Type]; found {
		ev.Rune = r
		ev.Modifiers |= editor.ModCtrl
		return ev, true
	}

	if k, found := namedKeys[msg.Type]; found {
		ev.Key = k.code
		ev.Modifiers |= k.mods
		return ev, true
	}

	return ev, false
}
