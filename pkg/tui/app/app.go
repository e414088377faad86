// Package teaui hosts the Bubble Tea program for editing one grid.
package teaui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/editor"
	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/store"
	"tableflip.dev/grid/pkg/tui/components/help"
	"tableflip.dev/grid/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
)

// DefaultCellWidth is the rendered width of one cell.
const DefaultCellWidth = 8

// Model is the Bubble Tea model for one grid session.
type Model struct {
	svc    *app.Service
	sess   *app.Session
	ctx    context.Context
	cancel context.CancelFunc
	mode   mode

	input textinput.Model

	cursor    grid.Position
	pressed   *grid.Position
	cellWidth int

	termWidth  int
	termHeight int

	status string
	alert  string

	help     *help.Model
	showHelp bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	theme theme.Theme
}

// New creates a UI model editing the session's grid. svc may be nil, in
// which case the store is not watched.
func New(svc *app.Service, sess *app.Session) *Model {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 256
	ti.Prompt = "> "
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorBlock

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		svc:       svc,
		sess:      sess,
		ctx:       ctx,
		cancel:    cancel,
		mode:      modeNormal,
		input:     ti,
		cursor:    grid.Pos(1, 1),
		cellWidth: DefaultCellWidth,
		theme:     theme.Default(),
	}
	sess.OnAlert = func(msg string) { m.alert = msg }
	sess.OnInteract = func(id string) { m.status = id }
	return m
}

// Init starts watching the store.
func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.svc)
}

func (m *Model) editor() *editor.Editor { return m.sess.Editor() }

// Update handles messages and keybindings
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if m.help != nil {
			m.help.SetSize(msg.Width, msg.Height)
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.alert = "watch: " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.MouseWheelMsg:
		if m.showHelp {
			_, cmd := m.help.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.MouseClickMsg:
		m.handleMouseDown(msg.Mouse())
	case tea.MouseMotionMsg:
		m.handleMouseMotion(msg.Mouse())
	case tea.MouseReleaseMsg:
		m.handleMouseUp(msg.Mouse())
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.clampCursor()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	if m.showHelp {
		return m.handleHelpKey(msg)
	}
	if m.mode == modeInsert {
		return m.handleInsertKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "?", "esc":
		m.showHelp = false
		return nil
	case "q", "ctrl+c":
		return m.quit()
	}
	_, cmd := m.help.Update(msg)
	return cmd
}

func (m *Model) handleInsertKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		m.exitInsert()
		m.do("Edited", func() error { return m.editor().EditValue(m.cursorID(), value) })
		return nil
	case "esc":
		m.exitInsert()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	e := m.editor()
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "?":
		if m.help == nil {
			m.help = help.New(m.termWidth, m.termHeight)
		}
		m.showHelp = true
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "space":
		m.do("", func() error { return e.ToggleCheck(m.cursorID()) })
	case "enter":
		if !e.Capabilities().Edit {
			m.alert = editor.Message(editor.ErrCapabilityDisabled)
			return nil
		}
		c, _ := e.Grid().Get(m.cursorAnchor())
		m.mode = modeInsert
		m.input.SetValue(c.Value)
		m.input.CursorEnd()
		return m.input.Focus()
	case "s":
		m.do("", func() error { return e.Click(m.cursorID(), false) })
	case "x":
		m.do("", func() error { return e.Click(m.cursorID(), true) })
	case "a":
		e.SelectAll()
	case "esc":
		e.ClearSelection()
		m.alert = ""
	case "m":
		m.do("Merged", e.Merge)
	case "u":
		m.do("Unmerged", e.Unmerge)
	case "b":
		m.do("Blanked", e.Blank)
	case "B":
		m.do("Unblanked", e.Unblank)
	case "r":
		m.do("Row added", e.AddRow)
	case "c":
		m.do("Column added", e.AddColumn)
	case "g":
		rows, columns := e.Grid().Rows(), e.Grid().Columns()
		m.do("Generated", func() error { return e.Generate(rows, columns) })
	}
	return nil
}

// do runs an editor operation. Failures are reported through the session's
// alert hook.
func (m *Model) do(label string, fn func() error) {
	m.alert = ""
	if err := fn(); err != nil {
		return
	}
	if err := m.sess.Err(); err != nil {
		return
	}
	if label != "" {
		m.status = label
	}
}

func (m *Model) quit() tea.Cmd {
	m.stopWatch()
	m.cancel()
	return tea.Quit
}

func (m *Model) exitInsert() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) handleMouseDown(mouse tea.Mouse) {
	m.pressed = nil
	if m.showHelp {
		return
	}
	if mouse.Button != tea.MouseLeft {
		return
	}
	p, ok := m.cellAt(mouse.X, mouse.Y)
	if !ok {
		return
	}
	m.cursor = p
	id := m.anchorOf(p).ID()
	if mouse.Mod&tea.ModCtrl != 0 {
		m.do("", func() error { return m.editor().Click(id, true) })
		return
	}
	shift := mouse.Mod&tea.ModShift != 0
	if err := m.editor().MouseDown(id, shift, false); err == nil {
		m.pressed = &p
	}
}

func (m *Model) handleMouseMotion(mouse tea.Mouse) {
	if !m.editor().Selection().Dragging() {
		return
	}
	if p, ok := m.cellAt(mouse.X, mouse.Y); ok {
		_ = m.editor().MouseEnter(p.ID())
	}
}

// handleMouseUp ends any drag wherever the pointer is released. A release on
// the pressed cell is also a click.
func (m *Model) handleMouseUp(mouse tea.Mouse) {
	m.editor().MouseUp()
	pressed := m.pressed
	m.pressed = nil
	if pressed == nil {
		return
	}
	p, ok := m.cellAt(mouse.X, mouse.Y)
	if !ok || m.anchorOf(p) != m.anchorOf(*pressed) {
		return
	}
	m.do("", func() error { return m.editor().Click(m.anchorOf(p).ID(), false) })
}

func (m *Model) handleWatchEvent(ev store.Event) {
	changed, err := m.sess.HandleEvent(m.ctx, ev)
	if err != nil {
		m.alert = "reload: " + err.Error()
		return
	}
	if changed {
		m.status = "Reloaded"
	}
}

func (m *Model) moveCursor(dr, dc int) {
	g := m.editor().Grid()
	// Step off the current merge group first.
	from := m.cursorAnchor()
	next := grid.Pos(from.Row+dr, from.Col+dc)
	if c, err := g.Get(from); err == nil {
		if dr > 0 {
			next.Row = from.Row + c.RowSpan
		}
		if dc > 0 {
			next.Col = from.Col + c.ColSpan
		}
	}
	if g.Contains(next) {
		m.cursor = next
	}
}

func (m *Model) clampCursor() {
	g := m.editor().Grid()
	m.cursor.Row = min(max(m.cursor.Row, 1), g.Rows())
	m.cursor.Col = min(max(m.cursor.Col, 1), g.Columns())
}

func (m *Model) anchorOf(p grid.Position) grid.Position {
	a, err := m.editor().Grid().Anchor(p)
	if err != nil {
		return p
	}
	return a
}

func (m *Model) cursorAnchor() grid.Position { return m.anchorOf(m.cursor) }

func (m *Model) cursorID() string { return m.cursorAnchor().ID() }

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Run launches the interactive TUI program.
func Run(svc *app.Service, sess *app.Session) error {
	m := New(svc, sess)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.cancel()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
