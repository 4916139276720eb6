package adapter_bubbletea

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	editor "github.com/ionut-t/codepad/core"
)

func TestConvertBubbleKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want editor.KeyEvent
		ok   bool
	}{
		{
			name: "plain rune",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}},
			want: editor.KeyEvent{Rune: 'a'},
			ok:   true,
		},
		{
			name: "alt rune keeps alt",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
			want: editor.KeyEvent{Rune: 'x', Modifiers: editor.ModAlt},
			ok:   true,
		},
		{
			name: "alt+m stands in for ctrl+m",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}, Alt: true},
			want: editor.KeyEvent{Rune: 'm', Modifiers: editor.ModCtrl},
			ok:   true,
		},
		{
			name: "ctrl+z",
			msg:  tea.KeyMsg{Type: tea.KeyCtrlZ},
			want: editor.KeyEvent{Rune: 'z', Modifiers: editor.ModCtrl},
			ok:   true,
		},
		{
			name: "ctrl+underscore is the comment toggle",
			msg:  tea.KeyMsg{Type: tea.KeyCtrlUnderscore},
			want: editor.KeyEvent{Rune: '/', Modifiers: editor.ModCtrl},
			ok:   true,
		},
		{
			name: "tab carries no rune",
			msg:  tea.KeyMsg{Type: tea.KeyTab},
			want: editor.KeyEvent{Key: editor.KeyTab},
			ok:   true,
		},
		{
			name: "shift+tab",
			msg:  tea.KeyMsg{Type: tea.KeyShiftTab},
			want: editor.KeyEvent{Key: editor.KeyTab, Modifiers: editor.ModShift},
			ok:   true,
		},
		{
			name: "shift+left extends",
			msg:  tea.KeyMsg{Type: tea.KeyShiftLeft},
			want: editor.KeyEvent{Key: editor.KeyLeft, Modifiers: editor.ModShift},
			ok:   true,
		},
		{
			name: "ctrl+shift+home",
			msg:  tea.KeyMsg{Type: tea.KeyCtrlShiftHome},
			want: editor.KeyEvent{Key: editor.KeyHome, Modifiers: editor.ModCtrl | editor.ModShift},
			ok:   true,
		},
		{
			name: "ctrl+h is backspace",
			msg:  tea.KeyMsg{Type: tea.KeyCtrlH},
			want: editor.KeyEvent{Key: editor.KeyBackspace},
			ok:   true,
		},
		{
			name: "multiple runes are not a single key",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")},
			ok:   false,
		},
		{
			name: "function keys are ignored",
			msg:  tea.KeyMsg{Type: tea.KeyF1},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertBubbleKey(tt.msg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDefaultKeyMap_MatchesHostKeys(t *testing.T) {
	keys := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, keys.Save))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlO}, keys.Reload))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlB}, keys.Build))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlQ}, keys.Quit))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit))

	assert.Len(t, keys.ShortHelp(), 4)
}
