package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/codepad/core"
)

type fakeClipboard struct {
	text     string
	writeErr error
	readErr  error
}

func (c *fakeClipboard) Write(text string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) Read() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.text, nil
}

type fakeStore struct {
	text    string
	loadErr error
	saveErr error
}

func (s *fakeStore) Load() (string, error) { return s.text, s.loadErr }

func (s *fakeStore) Save(text string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.text = text
	return nil
}

// newTestEditor builds a terminal-cell editor with the given text and width.
func newTestEditor(t *testing.T, text string, width float64) (*core.Editor, *fakeClipboard) {
	t.Helper()

	cb := &fakeClipboard{}
	cfg := core.DefaultConfig()
	cfg.Width = width
	cfg.Height = 10

	e, err := core.New(core.CellMeasurer{}, cb, cfg)
	require.NoError(t, err)
	e.SetText(text)
	return e, cb
}

func drainSignals(e *core.Editor) []core.Signal {
	var out []core.Signal
	for {
		select {
		case s := <-e.Signals():
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestNew(t *testing.T) {
	e, err := core.New(core.CellMeasurer{}, nil, core.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, " ", e.Text())
	assert.Equal(t, 0, e.Cursor().Position)
	assert.Len(t, e.Lines(), 1)
}

func TestNew_RequiresMeasurer(t *testing.T) {
	_, err := core.New(nil, nil, core.DefaultConfig())
	require.ErrorIs(t, err, core.ErrNoMeasurer)

	_, err = core.New(core.FixedMeasurer{Advance: 8}, nil, core.DefaultConfig())
	require.ErrorIs(t, err, core.ErrInvalidMetrics)
}

func TestNew_DefaultsInvalidConfig(t *testing.T) {
	e, err := core.New(core.CellMeasurer{}, nil, core.Config{Width: 80, Height: 5})
	require.NoError(t, err)

	assert.Equal(t, 2, e.Config().IndentWidth)
	assert.Equal(t, 100, e.Config().SignalBuffer)
	assert.Equal(t, 0, e.History().Limit())
}

func TestSetText_Resets(t *testing.T) {
	e, _ := newTestEditor(t, "abc", 80)
	e.SetCursor(2)
	e.InsertText("x")
	require.True(t, e.History().CanUndo())

	e.SetText("new")
	assert.Equal(t, "new", e.Text())
	assert.Equal(t, core.Cursor{}, e.Cursor())
	assert.False(t, e.History().CanUndo())
	assert.Zero(t, e.Viewport().ScrollOffsetY)
}

func TestVersion_BumpsOnMutation(t *testing.T) {
	e, _ := newTestEditor(t, "abc", 80)
	v := e.Version()

	e.MoveRight(false)
	assert.Equal(t, v, e.Version(), "navigation must not touch the buffer")

	e.InsertText("x")
	assert.Greater(t, e.Version(), v)
}

func TestCursorTarget(t *testing.T) {
	e, _ := newTestEditor(t, "hello\nworld", 80)
	e.SetCursor(8)
	assert.Equal(t, core.Point{X: 2, Y: 1}, e.CursorTarget())

	e.SetText("世界")
	e.SetCursor(1)
	assert.Equal(t, core.Point{X: 2, Y: 0}, e.CursorTarget())
}

func TestLoad(t *testing.T) {
	e, _ := newTestEditor(t, "old", 80)
	e.SetCursor(3)
	drainSignals(e)

	require.NoError(t, e.Load(&fakeStore{text: "loaded text"}))
	assert.Equal(t, "loaded text", e.Text())
	assert.Equal(t, 0, e.Cursor().Position)

	signals := drainSignals(e)
	require.Len(t, signals, 1)
	load, ok := signals[0].(core.LoadSignal)
	require.True(t, ok)
	assert.Equal(t, len("loaded text"), load.Value())
}

func TestLoad_Failure(t *testing.T) {
	e, _ := newTestEditor(t, "keep", 80)
	boom := errors.New("disk on fire")

	err := e.Load(&fakeStore{loadErr: boom})
	require.ErrorIs(t, err, boom)

	var editorErr *core.Error
	require.ErrorAs(t, err, &editorErr)
	assert.Equal(t, core.ErrLoadFailedId, editorErr.ID())
	assert.Equal(t, "keep", e.Text())

	err = e.Load(nil)
	require.ErrorIs(t, err, core.ErrNoStore)
}

func TestSave(t *testing.T) {
	e, _ := newTestEditor(t, "content", 80)
	s := &fakeStore{}
	drainSignals(e)

	require.NoError(t, e.Save(s))
	assert.Equal(t, "content", s.text)

	signals := drainSignals(e)
	require.Len(t, signals, 1)
	save, ok := signals[0].(core.SaveSignal)
	require.True(t, ok)
	assert.Equal(t, "content", save.Value())
}

func TestSave_Failure(t *testing.T) {
	e, _ := newTestEditor(t, "content", 80)
	drainSignals(e)

	err := e.Save(&fakeStore{saveErr: errors.New("read-only")})
	require.Error(t, err)

	signals := drainSignals(e)
	require.Len(t, signals, 1)
	errSignal, ok := signals[0].(core.ErrorSignal)
	require.True(t, ok)
	id, _ := errSignal.Value()
	assert.Equal(t, core.ErrSaveFailedId, id)
}

func TestDispatchSignal_DoesNotBlockWhenFull(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.SignalBuffer = 1
	e, err := core.New(core.CellMeasurer{}, nil, cfg)
	require.NoError(t, err)

	e.DispatchSignal(core.UndoSignal{})
	e.DispatchSignal(core.RedoSignal{})
	e.DispatchMessage("hello")

	signals := drainSignals(e)
	require.Len(t, signals, 1)
	assert.IsType(t, core.UndoSignal{}, signals[0])
}

func TestDispatchMessage(t *testing.T) {
	e, _ := newTestEditor(t, "", 80)

	e.DispatchMessage(core.ChangesSavedMessage)
	e.DispatchMessage("build", "STARTED (42)")

	signals := drainSignals(e)
	require.Len(t, signals, 2)

	id, msg := signals[0].(core.MessageSignal).Value()
	assert.Equal(t, core.ChangesSavedMessage, id)
	assert.Equal(t, core.ChangesSavedMessage, msg)

	id, msg = signals[1].(core.MessageSignal).Value()
	assert.Equal(t, "build", id)
	assert.Equal(t, "STARTED (42)", msg)
}
