package core

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrNoMeasurer     = errors.New("no measurer")
	ErrInvalidMetrics = errors.New("invalid font metrics")
	ErrNoClipboard    = errors.New("no clipboard")
	ErrNoStore        = errors.New("no store")
)

type ErrorId int

const (
	ErrCopyFailedId ErrorId = iota
	ErrCutFailedId
	ErrPasteFailedId
	ErrLoadFailedId
	ErrSaveFailedId
)

func (id ErrorId) String() string {
	switch id {
	case ErrCopyFailedId:
		return "copy failed"
	case ErrCutFailedId:
		return "cut failed"
	case ErrPasteFailedId:
		return "paste failed"
	case ErrLoadFailedId:
		return "load failed"
	case ErrSaveFailedId:
		return "save failed"
	default:
		return fmt.Sprintf("error(%d)", int(id))
	}
}

// Error is a collaborator failure surfaced by the editor
type Error struct {
	id  ErrorId
	err error
}

func (e *Error) ID() ErrorId {
	return e.id
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.id, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// fail wraps err with id, publishes it as an ErrorSignal and returns it.
func (e *Editor) fail(id ErrorId, err error) error {
	e.DispatchError(id, err)
	return &Error{id: id, err: err}
}

func (e *Editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
