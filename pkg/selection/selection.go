// Package selection tracks which cells a user has chosen for a batch
// operation and the drag gesture that extends that choice.
package selection

import (
	"slices"

	"tableflip.dev/grid/pkg/grid"
)

// Engine is the selection state machine. Its zero value is a disallowed
// engine; use New.
type Engine struct {
	allowed bool
	active  bool

	selected []grid.Position
	index    map[grid.Position]struct{}

	dragging bool
	anchor   grid.Position
	restore  []grid.Position
}

// New returns an engine. When allowed is false every entry point is a
// no-op.
func New(allowed bool) *Engine {
	return &Engine{
		allowed: allowed,
		index:   make(map[grid.Position]struct{}),
	}
}

// Allowed reports whether selection is reachable at all.
func (e *Engine) Allowed() bool { return e.allowed }

// Active reports whether selection mode is on.
func (e *Engine) Active() bool { return e.active }

// Dragging reports whether a drag gesture is in progress.
func (e *Engine) Dragging() bool { return e.dragging }

// Len returns the number of selected cells.
func (e *Engine) Len() int { return len(e.selected) }

// Positions returns the selected positions in the order they were added.
func (e *Engine) Positions() []grid.Position {
	return slices.Clone(e.selected)
}

// IDs returns the selected cell identifiers in the order they were added.
func (e *Engine) IDs() []string {
	out := make([]string, len(e.selected))
	for i, p := range e.selected {
		out[i] = p.ID()
	}
	return out
}

// First returns the earliest selected position.
func (e *Engine) First() (grid.Position, bool) {
	if len(e.selected) == 0 {
		return grid.Position{}, false
	}
	return e.selected[0], true
}

// Contains reports whether p is selected.
func (e *Engine) Contains(p grid.Position) bool {
	_, ok := e.index[p]
	return ok
}

// Click handles a plain click. It returns false when the click was not
// consumed by selection.
func (e *Engine) Click(p grid.Position, modifier bool) bool {
	if !e.allowed || e.dragging {
		return false
	}
	if !e.active {
		e.active = true
		e.replace([]grid.Position{p})
		return true
	}
	if !modifier {
		e.add(p)
		return true
	}
	if e.Contains(p) {
		if len(e.selected) > 1 {
			e.remove(p)
		}
		return true
	}
	e.add(p)
	return true
}

// MouseDown begins a drag at p. The current selection is kept as the restore
// point that every drag rectangle is unioned onto.
func (e *Engine) MouseDown(p grid.Position, shift bool) bool {
	if !e.allowed {
		return false
	}
	e.restore = slices.Clone(e.selected)
	if shift {
		e.add(p)
	} else {
		e.replace([]grid.Position{p})
	}
	e.active = true
	e.dragging = true
	e.anchor = p
	return true
}

// MouseEnter extends the drag to p.
func (e *Engine) MouseEnter(p grid.Position) bool {
	if !e.allowed || !e.dragging {
		return false
	}
	next := slices.Clone(e.restore)
	next = append(next, grid.Span(e.anchor, p).Positions()...)
	e.replace(next)
	return true
}

// MouseUp ends any drag. It must be called for every pointer release, not
// only those over the grid.
func (e *Engine) MouseUp() {
	e.dragging = false
	e.restore = nil
}

// SelectAll selects every visible cell of g.
func (e *Engine) SelectAll(g *grid.Grid) bool {
	if !e.allowed {
		return false
	}
	var all []grid.Position
	g.Each(func(c grid.Cell) {
		if !c.Hidden {
			all = append(all, c.Position())
		}
	})
	e.replace(all)
	e.active = true
	return true
}

// Replace sets the selection to exactly ps, keeping selection mode on.
func (e *Engine) Replace(ps ...grid.Position) {
	if !e.allowed {
		return
	}
	e.replace(ps)
	e.active = true
}

// Clear empties the selection and leaves selection mode.
func (e *Engine) Clear() {
	e.replace(nil)
	e.active = false
	e.dragging = false
	e.restore = nil
}

// Retain drops selected positions for which keep returns false.
func (e *Engine) Retain(keep func(grid.Position) bool) {
	next := e.selected[:0:0]
	for _, p := range e.selected {
		if keep(p) {
			next = append(next, p)
		}
	}
	e.replace(next)
}

func (e *Engine) replace(ps []grid.Position) {
	e.selected = nil
	e.index = make(map[grid.Position]struct{}, len(ps))
	for _, p := range ps {
		e.add(p)
	}
}

func (e *Engine) add(p grid.Position) {
	if _, ok := e.index[p]; ok {
		return
	}
	e.index[p] = struct{}{}
	e.selected = append(e.selected, p)
}

func (e *Engine) remove(p grid.Position) {
	if _, ok := e.index[p]; !ok {
		return
	}
	delete(e.index, p)
	e.selected = slices.DeleteFunc(e.selected, func(q grid.Position) bool { return q == p })
}
