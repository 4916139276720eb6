// Package clipboard provides the clipboard collaborators used by the editor.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no system clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard unsupported")

// System reads and writes the OS clipboard
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

func (System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// Memory is a process-local clipboard. The zero value is empty and ready to use.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Fallback uses the system clipboard when it works and keeps a local copy
// so that copy and paste still work inside the editor when it does not.
type Fallback struct {
	system System
	local  Memory
}

func (f *Fallback) Write(text string) error {
	_ = f.local.Write(text)
	if err := f.system.Write(text); err != nil && !errors.Is(err, ErrUnsupported) {
		return err
	}
	return nil
}

func (f *Fallback) Read() (string, error) {
	text, err := f.system.Read()
	if err != nil {
		return f.local.Read()
	}
	return text, nil
}
