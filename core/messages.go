package core

import "log"

var (
	ChangesSavedMessage = "changes saved"
	FileReloadedMessage = "file reloaded"
	CopyMessage         = "selection copied"
	CutMessage          = "selection cut"
	PasteMessage        = "text pasted"
	UndoMessage         = "undo"
	RedoMessage         = "redo"
	NothingToUndo       = "already at oldest change"
	NothingToRedo       = "already at newest change"
)

// DispatchMessage publishes a status message. With one argument the id is
// also the message text.
func (e *Editor) DispatchMessage(args ...string) {
	if len(args) == 0 {
		return
	}
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case e.updateSignal <- MessageSignal{id, value}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}
