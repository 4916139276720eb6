package adapter_bubbletea

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/codepad/adapter-bubbletea/highlighter"
	"github.com/ionut-t/codepad/build"
	"github.com/ionut-t/codepad/clipboard"
	editor "github.com/ionut-t/codepad/core"
	"github.com/ionut-t/codepad/format"
	"github.com/ionut-t/codepad/project"
	"github.com/ionut-t/codepad/store"
)

type Theme struct {
	StatusLineStyle        lipgloss.Style
	FileNameStyle          lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	CursorStyle            lipgloss.Style
	TildeStyle             lipgloss.Style
	BuildRunningStyle      lipgloss.Style
	BuildFailedStyle       lipgloss.Style
	BuildOkStyle           lipgloss.Style
}

var DefaultTheme = Theme{
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	FileNameStyle:          lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	CursorStyle:            lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	TildeStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	BuildRunningStyle:      lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")),
	BuildFailedStyle:       lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("255")),
	BuildOkStyle:           lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("255")),
}

const (
	messageDuration = 3 * time.Second
	formatTimeout   = 10 * time.Second
	watchDebounce   = 200 * time.Millisecond
	chromeHeight    = 2 // Status line and command line
)

// FileStore is the persistence collaborator the model saves to and reloads from.
type FileStore interface {
	editor.Store
	Path() string
}

// Options configures a Model
type Options struct {
	Store        FileStore
	Project      project.Config
	Clipboard    editor.Clipboard
	Language     string // Chroma lexer name; picked from the file name when empty
	Theme        string // Chroma style name
	HistoryLimit int
	Watch        bool // Reload when the file changes on disk
}

type Model struct {
	editor          *editor.Editor
	store           FileStore
	project         project.Config
	formatter       format.Formatter
	job             *build.Job
	watcher         *store.Watcher
	watchCh         <-chan struct{}
	keys            KeyMap
	width           int
	height          int
	showLineNumbers bool
	theme           Theme
	highlighter     *highlighter.Highlighter
	savedContent    string
	message         string
	err             error
	clearMsgCancel  context.CancelFunc
}

type ErrorMsg struct {
	ID    editor.ErrorId
	Error error
}

type SaveMsg struct {
	Path    string
	Content string
}

type LoadMsg struct {
	Size int
}

type UndoMsg struct{}

type RedoMsg struct{}

type BuildFinishedMsg struct {
	JobID  string
	Status build.Status
}

type editorSignalMsg struct {
	signal editor.Signal
}

type formattedMsg struct {
	text    string
	version uint64
	err     error
}

type fileChangedMsg struct{}

type clearMsg struct{}

// New creates the editor model with the given size and collaborators.
func New(width, height int, opts Options) (*Model, error) {
	cfg := editor.DefaultConfig()
	if opts.HistoryLimit > 0 {
		cfg.HistoryLimit = opts.HistoryLimit
	}

	cb := opts.Clipboard
	if cb == nil {
		cb = &clipboard.Fallback{}
	}

	e, err := editor.New(editor.CellMeasurer{}, cb, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating editor: %w", err)
	}

	m := &Model{
		editor:          e,
		store:           opts.Store,
		project:         opts.Project,
		formatter:       format.FromConfig(opts.Project),
		job:             build.Idle(),
		keys:            DefaultKeyMap(),
		showLineNumbers: true,
		theme:           DefaultTheme,
	}

	if opts.Store != nil {
		if err := e.Load(opts.Store); err != nil {
			return nil, err
		}
		// Drop the load notification; the initial load is not news.
		<-e.Signals()
	}
	m.savedContent = e.Text()

	if opts.Language != "" || m.fileName() != "" {
		m.highlighter = highlighter.New(opts.Language, m.fileName(), opts.Theme)
	}

	if opts.Watch && opts.Store != nil && opts.Store.Path() != "" {
		if err := m.startWatcher(opts.Store.Path()); err != nil {
			log.Printf("file watching disabled: %v", err)
		}
	}

	m.SetSize(width, height)

	return m, nil
}

func (m *Model) startWatcher(path string) error {
	w, err := store.NewWatcher(path, watchDebounce)
	if err != nil {
		return err
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}
	m.watcher = w
	m.watchCh = ch
	return nil
}

// Close stops the file watcher and any running build
func (m *Model) Close() error {
	m.job.Stop()
	if m.watcher != nil {
		return m.watcher.Stop()
	}
	return nil
}

// SetSize sets the terminal area available to the model.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	textWidth := max(1, width-m.gutterWidth())
	textHeight := max(1, height-chromeHeight)
	m.editor.Resize(float64(textWidth), float64(textHeight))
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// WithKeyMap replaces the host key bindings
func (m *Model) WithKeyMap(keys KeyMap) {
	m.keys = keys
}

// HideLineNumbers controls whether to show line numbers in the gutter.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
	m.SetSize(m.width, m.height)
}

// SetContent replaces the buffer without touching the file.
func (m *Model) SetContent(content string) {
	m.editor.SetText(content)
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() *editor.Editor {
	return m.editor
}

// GetCurrentContent returns the current buffer content
func (m *Model) GetCurrentContent() string {
	return m.editor.Text()
}

// HasChanges reports whether the buffer differs from what was last loaded or saved
func (m *Model) HasChanges() bool {
	return m.editor.Text() != m.savedContent
}

// BuildJob returns the most recent build job
func (m *Model) BuildJob() *build.Job {
	return m.job
}

// JumpTo moves the cursor to an absolute offset, as a symbol picker would.
func (m *Model) JumpTo(offset int) {
	m.editor.JumpTo(offset)
}

// DispatchMessage allows setting a message to be displayed in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m *Model) fileName() string {
	if m.store == nil {
		return ""
	}
	return m.store.Path()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listenForEditorUpdate(), m.waitForFileChange())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			cmds = append(cmds, m.save())
		case key.Matches(msg, m.keys.Reload):
			cmds = append(cmds, m.reload())
		case key.Matches(msg, m.keys.Build):
			cmds = append(cmds, m.startBuild())
		default:
			m.handleKey(msg)
		}

	case editorSignalMsg:
		cmds = append(cmds, m.handleSignal(msg.signal), m.listenForEditorUpdate())

	case formattedMsg:
		cmds = append(cmds, m.applyFormatted(msg))

	case BuildFinishedMsg:
		if msg.Status.State == build.StateFailed {
			cmds = append(cmds, m.DispatchError(errors.New("build "+msg.Status.Describe()), messageDuration))
		} else {
			cmds = append(cmds, m.DispatchMessage("build "+msg.Status.Describe(), messageDuration))
		}

	case fileChangedMsg:
		cmds = append(cmds, m.handleFileChanged(), m.waitForFileChange())

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, messageDuration))

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil
	}

	m.refreshTextWidth()

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		m.editor.InsertText(string(msg.Runes))
		return
	}

	ev, ok := convertBubbleKey(msg)
	if !ok {
		return
	}

	// Failures also arrive as an ErrorSignal, which is what gets displayed.
	if err := m.editor.HandleKey(ev); err != nil {
		log.Printf("key %s: %v", ev, err)
	}
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	signals := m.editor.Signals()
	return func() tea.Msg {
		return editorSignalMsg{signal: <-signals}
	}
}

func (m *Model) handleSignal(signal editor.Signal) tea.Cmd {
	switch signal := signal.(type) {
	case editor.ErrorSignal:
		id, err := signal.Value()
		return func() tea.Msg {
			return ErrorMsg{ID: id, Error: err}
		}

	case editor.MessageSignal:
		_, text := signal.Value()
		return m.DispatchMessage(text, messageDuration)

	case editor.CopySignal:
		return m.DispatchMessage(editor.CopyMessage, messageDuration)

	case editor.CutSignal:
		return m.DispatchMessage(editor.CutMessage, messageDuration)

	case editor.PasteSignal:
		return m.DispatchMessage(editor.PasteMessage, messageDuration)

	case editor.UndoSignal:
		return tea.Batch(
			m.DispatchMessage(editor.UndoMessage, messageDuration),
			func() tea.Msg { return UndoMsg{} },
		)

	case editor.RedoSignal:
		return tea.Batch(
			m.DispatchMessage(editor.RedoMessage, messageDuration),
			func() tea.Msg { return RedoMsg{} },
		)

	case editor.LoadSignal:
		size := signal.Value()
		return tea.Batch(
			m.DispatchMessage(editor.FileReloadedMessage, messageDuration),
			func() tea.Msg { return LoadMsg{Size: size} },
		)

	case editor.SaveSignal:
		content := signal.Value()
		m.savedContent = content
		path := m.fileName()
		return tea.Batch(
			m.DispatchMessage(editor.ChangesSavedMessage, messageDuration),
			func() tea.Msg { return SaveMsg{Path: path, Content: content} },
		)
	}

	return nil
}

// save writes the buffer, running the formatter first when the project asks for it.
func (m *Model) save() tea.Cmd {
	name := m.fileName()
	if !m.project.FormatOnSave || !format.Supported(name) {
		m.saveNow()
		return nil
	}

	text := m.editor.Text()
	version := m.editor.Version()
	f := m.formatter

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), formatTimeout)
		defer cancel()

		out, err := f.Format(ctx, name, text)
		return formattedMsg{text: out, version: version, err: err}
	}
}

func (m *Model) saveNow() {
	if m.store == nil {
		m.err = editor.ErrNoStore
		return
	}
	// Errors come back through the signal channel.
	_ = m.editor.Save(m.store)
}

func (m *Model) applyFormatted(msg formattedMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case msg.err != nil:
		log.Printf("formatter failed: %v", msg.err)
		cmd = m.DispatchError(fmt.Errorf("format: %w", msg.err), messageDuration)
	case msg.version != m.editor.Version():
		log.Println("buffer changed while formatting, skipping formatted output")
	default:
		m.editor.ReplaceAll(msg.text)
		log.Printf("formatted %s", filepath.Base(m.fileName()))
	}

	m.saveNow()
	return cmd
}

func (m *Model) reload() tea.Cmd {
	if m.store == nil {
		return m.DispatchError(editor.ErrNoStore, messageDuration)
	}
	if err := m.editor.Load(m.store); err != nil {
		return nil
	}
	m.savedContent = m.editor.Text()
	return nil
}

func (m *Model) startBuild() tea.Cmd {
	job, err := build.Start(context.Background(), m.project.BuildCommand, m.project.Dir)
	m.job = job
	if err != nil {
		return m.DispatchError(fmt.Errorf("build: %w", err), messageDuration)
	}

	return tea.Batch(
		m.DispatchMessage("build "+job.Describe(), messageDuration),
		func() tea.Msg {
			<-job.Done()
			return BuildFinishedMsg{JobID: job.ID, Status: job.Status()}
		},
	)
}

func (m *Model) waitForFileChange() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m *Model) handleFileChanged() tea.Cmd {
	if m.store == nil {
		return nil
	}

	disk, err := m.store.Load()
	if err != nil || disk == m.editor.Text() {
		return nil
	}

	if m.HasChanges() {
		return m.DispatchMessage("file changed on disk; "+m.keys.Reload.Help().Key+" reloads it", messageDuration)
	}
	return m.reload()
}

func (m *Model) View() string {
	content := m.renderContent()
	statusLine := m.getStatusLine()

	commandLine := ""
	if m.message != "" {
		commandLine = m.theme.MessageStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.message)
	}
	if m.err != nil {
		commandLine = m.theme.ErrorStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.err.Error())
	}

	paddingWidth := m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) getStatusLine() string {
	name := filepath.Base(m.fileName())
	if m.fileName() == "" {
		name = "[scratch]"
	}
	if m.HasChanges() {
		name += " [+]"
	}
	statusLine := m.theme.FileNameStyle.Render(" " + name + " ")

	st := m.job.Status()
	buildStyle := m.theme.StatusLineStyle
	switch st.State {
	case build.StateStarted:
		buildStyle = m.theme.BuildRunningStyle
	case build.StateFailed:
		buildStyle = m.theme.BuildFailedStyle
	case build.StateCompleted:
		buildStyle = m.theme.BuildOkStyle
	}
	buildInfo := buildStyle.Render(" BUILD: " + st.Describe() + " ")

	lines := m.editor.Lines()
	cursor := m.editor.Cursor()
	line := lines[m.editor.CurrentLine()]
	col := cursor.Position - line.LogicalLineStart + 1
	cursorInfo := fmt.Sprintf(" %d:%d ", line.LogicalLine+1, col)

	lang := ""
	if m.highlighter != nil {
		lang = " " + m.highlighter.Language() + " "
	}

	width := m.width - (lipgloss.Width(statusLine) + lipgloss.Width(buildInfo) + lipgloss.Width(cursorInfo) + lipgloss.Width(lang))
	gap := strings.Repeat(" ", max(0, width))

	return statusLine + m.theme.StatusLineStyle.Render(gap+lang) + buildInfo + m.theme.StatusLineStyle.Render(cursorInfo)
}
