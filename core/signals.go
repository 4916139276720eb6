package core

import "log"

type Signal any

type CopySignal struct {
	length int
}

// Value returns the number of runes copied
func (c CopySignal) Value() int {
	return c.length
}

type CutSignal struct {
	length int
}

func (c CutSignal) Value() int {
	return c.length
}

type PasteSignal struct {
	length int
}

func (p PasteSignal) Value() int {
	return p.length
}

type UndoSignal struct{}

func (u UndoSignal) Value() {}

type RedoSignal struct{}

func (r RedoSignal) Value() {}

type LoadSignal struct {
	size int
}

// Value returns the loaded content size in bytes
func (l LoadSignal) Value() int {
	return l.size
}

type SaveSignal struct {
	content string
}

func (s SaveSignal) Value() string {
	return s.content
}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *Editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		log.Println("Channel is full, unable to send signal")
	}
}
