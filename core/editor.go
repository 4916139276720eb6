package core

import "fmt"

// Clipboard is the system clipboard collaborator.
// Read returns an empty string when the clipboard holds no text.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Store is the persistence collaborator. The engine never touches files itself.
type Store interface {
	Load() (string, error)
	Save(text string) error
}

// Config holds the engine settings
type Config struct {
	Width             float64 // Width available for text, in measurer units
	Height            float64 // Height of the visible area, in measurer units
	HistoryLimit      int     // Max undo/redo snapshots; 0 disables history
	IndentWidth       int     // Spaces inserted/removed by indent and outdent
	ScrollMarginLines float64 // Lines kept between the cursor and the viewport edges
	SignalBuffer      int     // Capacity of the signal channel
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	return Config{
		Width:             80,
		Height:            24,
		HistoryLimit:      DefaultHistoryLimit,
		IndentWidth:       2,
		ScrollMarginLines: 1,
		SignalBuffer:      100,
	}
}

// Editor is the text-editing engine: document, wrapped layout, cursor,
// history and viewport. It is driven by one caller at a time and holds no locks.
type Editor struct {
	doc       *Document
	cursor    Cursor
	history   *History
	layout    layoutCache
	measurer  Measurer
	viewport  Viewport
	clipboard Clipboard
	cfg       Config

	updateSignal chan Signal
}

// New creates a new editor holding a single space.
// The measurer is mandatory; the clipboard may be nil, in which case copy,
// cut and paste report ErrNoClipboard.
func New(measurer Measurer, clipboard Clipboard, cfg Config) (*Editor, error) {
	if measurer == nil {
		return nil, ErrNoMeasurer
	}
	if measurer.LineHeight() <= 0 {
		return nil, fmt.Errorf("%w: line height %v", ErrInvalidMetrics, measurer.LineHeight())
	}
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = 2
	}
	if cfg.SignalBuffer <= 0 {
		cfg.SignalBuffer = 100
	}

	e := &Editor{
		doc:          NewDocument(" "),
		history:      NewHistory(cfg.HistoryLimit),
		measurer:     measurer,
		clipboard:    clipboard,
		cfg:          cfg,
		viewport:     Viewport{Width: cfg.Width, Height: cfg.Height},
		updateSignal: make(chan Signal, cfg.SignalBuffer),
	}
	e.syncViewport()

	return e, nil
}

// SetClipboard replaces the clipboard collaborator
func (e *Editor) SetClipboard(clipboard Clipboard) {
	e.clipboard = clipboard
}

// Config returns the active configuration
func (e *Editor) Config() Config {
	return e.cfg
}

// Text returns the entire buffer content
func (e *Editor) Text() string {
	return e.doc.Text()
}

// Runes returns the buffer runes. Callers must not modify the slice.
func (e *Editor) Runes() []rune {
	return e.doc.Runes()
}

// Len returns the buffer length in runes
func (e *Editor) Len() int {
	return e.doc.Len()
}

// Version changes whenever the buffer content changes
func (e *Editor) Version() uint64 {
	return e.doc.Version()
}

// Lines returns the wrapped layout for the current text and width.
// The result is shared; callers must not modify it.
func (e *Editor) Lines() []WrappedLine {
	return e.layout.get(e.doc, e.viewport.Width, e.measurer)
}

// Cursor returns the cursor and selection state
func (e *Editor) Cursor() Cursor {
	return e.cursor
}

// Selection returns the ordered selection bounds and whether it is non-empty.
func (e *Editor) Selection() (start, end int, ok bool) {
	start, end = e.cursor.Selection()
	return start, end, e.cursor.HasSelection()
}

// SelectedText returns the selected substring, or "" when collapsed.
func (e *Editor) SelectedText() string {
	if !e.cursor.HasSelection() {
		return ""
	}
	start, end := e.cursor.Selection()
	return e.doc.Slice(start, end)
}

// CurrentLine returns the index of the wrapped line holding the cursor
func (e *Editor) CurrentLine() int {
	return LineIndexAt(e.cursor.Position, e.Lines())
}

// CursorTarget returns the cursor's position in content coordinates: X is
// the measured width of the text before the cursor on its wrapped line, Y is
// the top of that line.
func (e *Editor) CursorTarget() Point {
	lines := e.Lines()
	idx := LineIndexAt(e.cursor.Position, lines)
	line := lines[idx]

	col := max(0, min(e.cursor.Position-line.Start, line.Length))
	x := e.measurer.MeasureWidth(string([]rune(line.Text)[:col]))
	return Point{X: x, Y: float64(idx) * e.measurer.LineHeight()}
}

// LineHeight returns the measurer's line height
func (e *Editor) LineHeight() float64 {
	return e.measurer.LineHeight()
}

// SetText replaces the buffer, resets cursor, selection and scroll, and
// clears the history.
func (e *Editor) SetText(text string) {
	e.doc.SetText(text)
	e.layout.invalidate()
	e.history.Clear()
	e.cursor.collapse(0)
	e.viewport.ScrollOffsetY = 0
	e.syncViewport()
}

// Load replaces the buffer with the store's content.
func (e *Editor) Load(store Store) error {
	if store == nil {
		return e.fail(ErrLoadFailedId, ErrNoStore)
	}

	text, err := store.Load()
	if err != nil {
		return e.fail(ErrLoadFailedId, fmt.Errorf("load: %w", err))
	}

	e.SetText(text)
	e.DispatchSignal(LoadSignal{size: len(text)})
	return nil
}

// Save hands the buffer content to the store.
func (e *Editor) Save(store Store) error {
	if store == nil {
		return e.fail(ErrSaveFailedId, ErrNoStore)
	}

	content := e.doc.Text()
	if err := store.Save(content); err != nil {
		return e.fail(ErrSaveFailedId, fmt.Errorf("save: %w", err))
	}

	e.DispatchSignal(SaveSignal{content: content})
	return nil
}

// Signals returns the channel on which the editor publishes notifications
func (e *Editor) Signals() <-chan Signal {
	return e.updateSignal
}
