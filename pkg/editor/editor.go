// Package editor drives a grid from discrete user and host events. It owns
// the live grid, the selection and the derived statistics, and reports every
// change through a Host.
//
// An Editor is not safe for concurrent use; hosts call it from a single
// event loop.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/selection"
	"tableflip.dev/grid/pkg/snapshot"
)

const (
	// DefaultRows is used when no valid default row count is configured.
	DefaultRows = 5
	// DefaultColumns is used when no valid default column count is configured.
	DefaultColumns = 5
)

// ErrCapabilityDisabled is returned when an entry point is switched off.
var ErrCapabilityDisabled = errors.New("editor: capability disabled")

// Options configure a new Editor.
type Options struct {
	Capabilities Capabilities
	Host         Host
	Logger       *slog.Logger
	// Rows and Columns size the default grid used when nothing is loaded.
	Rows    int
	Columns int
	// Now stamps encoded snapshots. Defaults to time.Now.
	Now func() time.Time
}

// Editor is the grid event controller.
type Editor struct {
	caps Capabilities
	host Host
	log  *slog.Logger
	now  func() time.Time

	defaultRows    int
	defaultColumns int

	grid  *grid.Grid
	sel   *selection.Engine
	stats grid.Stats
	echo  echoState
}

// New returns an editor holding a default grid. Construction publishes
// nothing.
func New(opts Options) *Editor {
	e := &Editor{
		caps:           opts.Capabilities,
		host:           opts.Host,
		log:            opts.Logger,
		now:            opts.Now,
		defaultRows:    opts.Rows,
		defaultColumns: opts.Columns,
		sel:            selection.New(opts.Capabilities.SelectionAllowed()),
	}
	if e.host == nil {
		e.host = nopHost{}
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if !grid.ValidDimensions(e.defaultRows, e.defaultColumns) {
		e.defaultRows, e.defaultColumns = DefaultRows, DefaultColumns
	}
	e.grid = e.defaultGrid()
	e.stats = e.grid.Stats()
	return e
}

// Grid returns the current grid version.
func (e *Editor) Grid() *grid.Grid { return e.grid }

// Stats returns the statistics of the current grid.
func (e *Editor) Stats() grid.Stats { return e.stats }

// Selection exposes the selection state for rendering.
func (e *Editor) Selection() *selection.Engine { return e.sel }

// Capabilities returns the configured capabilities.
func (e *Editor) Capabilities() Capabilities { return e.caps }

// AwaitingEcho reports whether the next inbound dimension update will be
// ignored as the echo of our own export.
func (e *Editor) AwaitingEcho() bool { return e.echo == echoAwaiting }

// Load replaces the grid with the persisted snapshot raw. An empty or
// unusable snapshot falls back to a fresh default grid; the decode error is
// returned for the caller's information only.
func (e *Editor) Load(raw string) error {
	e.sel.Clear()
	if raw == "" {
		e.grid = e.defaultGrid()
		e.recompute()
		return nil
	}
	g, err := snapshot.Decode([]byte(raw))
	if err != nil {
		e.log.Warn("snapshot unusable, starting from a default grid",
			"rows", e.defaultRows, "columns", e.defaultColumns, "err", err)
		e.grid = e.defaultGrid()
		e.recompute()
		return err
	}
	e.grid = g
	e.recompute()
	return nil
}

// ApplySnapshot replaces the grid with an externally pushed snapshot. An
// undecodable snapshot is ignored and the current grid kept.
func (e *Editor) ApplySnapshot(raw string) error {
	g, err := snapshot.Decode([]byte(raw))
	if err != nil {
		e.log.Warn("ignoring external snapshot", "err", err)
		return err
	}
	e.sel.Clear()
	e.grid = g
	e.recompute()
	return nil
}

// ApplyDimensions handles an externally observed row/column count. The
// first update after the editor exported its own dimensions is ignored.
func (e *Editor) ApplyDimensions(rows, columns int) error {
	var echo bool
	e.echo, echo = e.echo.inbound()
	if echo {
		e.log.Debug("ignoring dimension echo", "rows", rows, "columns", columns)
		return nil
	}
	if rows == e.grid.Rows() && columns == e.grid.Columns() {
		return nil
	}
	next, err := e.grid.Resize(rows, columns)
	if err != nil {
		return e.reject("resize", err)
	}
	e.commit(next)
	return nil
}

// Click handles a click on the cell id outside of a drag.
func (e *Editor) Click(id string, modifier bool) error {
	p, err := e.position(id)
	if err != nil {
		return err
	}
	e.sel.Click(p, modifier)
	e.host.CellInteracted(p.ID())
	return nil
}

// MouseDown begins a drag on the cell id. Presses on an embedded input
// control (onControl) are left to the control.
func (e *Editor) MouseDown(id string, shift, onControl bool) error {
	if onControl {
		return nil
	}
	p, err := e.position(id)
	if err != nil {
		return err
	}
	e.sel.MouseDown(p, shift)
	return nil
}

// MouseEnter extends a drag into the cell id.
func (e *Editor) MouseEnter(id string) error {
	p, err := e.position(id)
	if err != nil {
		return err
	}
	e.sel.MouseEnter(p)
	return nil
}

// MouseUp ends any drag. Hosts call it for every pointer release.
func (e *Editor) MouseUp() {
	e.sel.MouseUp()
}

// SelectAll selects every visible cell.
func (e *Editor) SelectAll() {
	e.sel.SelectAll(e.grid)
}

// ClearSelection empties the selection and exits selection mode.
func (e *Editor) ClearSelection() {
	e.sel.Clear()
}

// ToggleCheck flips the checkbox of the cell id and its merge group.
func (e *Editor) ToggleCheck(id string) error {
	if !e.caps.Checkbox {
		return e.disabled("checkbox")
	}
	p, err := e.position(id)
	if err != nil {
		return err
	}
	next, err := e.grid.ToggleChecked(p)
	if err != nil {
		return e.reject("toggle", err)
	}
	e.commit(next)
	e.host.CellInteracted(p.ID())
	return nil
}

// EditValue sets the text value of the cell id and its merge group.
func (e *Editor) EditValue(id, value string) error {
	if !e.caps.Edit {
		return e.disabled("edit")
	}
	p, err := e.position(id)
	if err != nil {
		return err
	}
	next, err := e.grid.SetValue(p, value)
	if err != nil {
		return e.reject("edit", err)
	}
	e.commit(next)
	return nil
}

// AddRow appends a row of default cells.
func (e *Editor) AddRow() error {
	if !e.caps.AddRow {
		return e.disabled("add row")
	}
	next, err := e.grid.AddRow()
	if err != nil {
		return e.reject("add row", err)
	}
	e.commitDimensions(next)
	return nil
}

// AddColumn appends a column of default cells.
func (e *Editor) AddColumn() error {
	if !e.caps.AddColumn {
		return e.disabled("add column")
	}
	next, err := e.grid.AddColumn()
	if err != nil {
		return e.reject("add column", err)
	}
	e.commitDimensions(next)
	return nil
}

// Resize changes the grid dimensions, keeping content that still fits.
func (e *Editor) Resize(rows, columns int) error {
	next, err := e.grid.Resize(rows, columns)
	if err != nil {
		return e.reject("resize", err)
	}
	e.commitDimensions(next)
	return nil
}

// Generate discards the current grid and starts a fresh default one.
func (e *Editor) Generate(rows, columns int) error {
	if !e.caps.Generate {
		return e.disabled("generate")
	}
	next, err := grid.New(rows, columns)
	if err != nil {
		return e.reject("generate", err)
	}
	e.sel.Clear()
	e.commitDimensions(next)
	return nil
}

// Merge joins the selected cells into one group. On success the selection
// collapses to the group's anchor.
func (e *Editor) Merge() error {
	if !e.caps.Merge {
		return e.disabled("merge")
	}
	next, anchor, err := e.grid.Merge(e.sel.Positions())
	if err != nil {
		return e.reject("merge", err)
	}
	e.sel.Replace(anchor)
	e.commit(next)
	return nil
}

// Unmerge dissolves the group of the first selected cell. It is a no-op
// when that cell is not merged.
func (e *Editor) Unmerge() error {
	if !e.caps.Merge {
		return e.disabled("unmerge")
	}
	first, ok := e.sel.First()
	if !ok {
		return nil
	}
	next, changed, err := e.grid.Unmerge(first)
	if err != nil {
		return e.reject("unmerge", err)
	}
	if !changed {
		return nil
	}
	e.commit(next)
	return nil
}

// Blank hides the values of the selected cells and ends the selection.
func (e *Editor) Blank() error {
	return e.setBlank(true)
}

// Unblank shows the values of the selected cells and ends the selection.
func (e *Editor) Unblank() error {
	return e.setBlank(false)
}

func (e *Editor) setBlank(blank bool) error {
	if !e.caps.Blank {
		return e.disabled("blank")
	}
	selected := e.sel.Positions()
	e.sel.Clear()
	if len(selected) == 0 {
		return nil
	}
	next, skipped := e.grid.SetBlank(selected, blank)
	if len(skipped) > 0 {
		e.log.Debug("blank skipped hidden cells", "blank", blank, "skipped", len(skipped))
	}
	e.commit(next)
	return nil
}

func (e *Editor) defaultGrid() *grid.Grid {
	g, err := grid.New(e.defaultRows, e.defaultColumns)
	if err != nil {
		// Unreachable: the defaults are validated in New.
		panic(err)
	}
	return g
}

func (e *Editor) position(id string) (grid.Position, error) {
	p, err := grid.ParseID(id)
	if err != nil {
		return grid.Position{}, err
	}
	if !e.grid.Contains(p) {
		return grid.Position{}, fmt.Errorf("%w: %s", grid.ErrOutOfBounds, id)
	}
	return p, nil
}

func (e *Editor) recompute() {
	e.stats = e.grid.Stats()
	e.host.PublishStatistics(e.stats)
}

// commit installs next and publishes statistics and the snapshot, both
// computed from next.
func (e *Editor) commit(next *grid.Grid) {
	e.grid = next
	e.sel.Retain(next.Contains)
	e.recompute()
	raw, err := snapshot.Encode(next, e.now())
	if err != nil {
		e.log.Error("encode snapshot", "err", err)
		return
	}
	e.host.PublishSnapshot(string(raw))
}

func (e *Editor) commitDimensions(next *grid.Grid) {
	e.grid = next
	e.host.PublishDimensions(next.Rows(), next.Columns())
	e.echo = e.echo.exported()
	e.commit(next)
}

func (e *Editor) disabled(what string) error {
	err := fmt.Errorf("%w: %s", ErrCapabilityDisabled, what)
	e.log.Debug("rejected", "op", what, "err", err)
	e.host.Alert(Message(err))
	return err
}

func (e *Editor) reject(op string, err error) error {
	e.log.Debug("rejected", "op", op, "err", err)
	e.host.Alert(Message(err))
	return err
}

// Message turns an editor error into the text shown to a user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, grid.ErrDimensionOutOfRange):
		return fmt.Sprintf("Rows and columns must be between 1 and %d.", grid.MaxDimension)
	case errors.Is(err, grid.ErrNotRectangular):
		return "Only a rectangular block of cells can be merged."
	case errors.Is(err, grid.ErrSelectionTooSmall):
		return "Select at least two cells to merge."
	case errors.Is(err, ErrCapabilityDisabled):
		return "That action is turned off for this grid."
	default:
		return err.Error()
	}
}
