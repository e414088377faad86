package grid

import (
	"fmt"
	"slices"
)

// Rect is an inclusive rectangle of positions.
type Rect struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Span returns the inclusive rectangle spanned by two corners, in any order.
func Span(a, b Position) Rect {
	return Rect{
		MinRow: min(a.Row, b.Row),
		MinCol: min(a.Col, b.Col),
		MaxRow: max(a.Row, b.Row),
		MaxCol: max(a.Col, b.Col),
	}
}

// Bound returns the bounding rectangle of ps. ok is false when ps is empty.
func Bound(ps []Position) (r Rect, ok bool) {
	if len(ps) == 0 {
		return Rect{}, false
	}
	r = Span(ps[0], ps[0])
	for _, p := range ps[1:] {
		r.MinRow = min(r.MinRow, p.Row)
		r.MinCol = min(r.MinCol, p.Col)
		r.MaxRow = max(r.MaxRow, p.Row)
		r.MaxCol = max(r.MaxCol, p.Col)
	}
	return r, true
}

// Height is the number of rows covered.
func (r Rect) Height() int { return r.MaxRow - r.MinRow + 1 }

// Width is the number of columns covered.
func (r Rect) Width() int { return r.MaxCol - r.MinCol + 1 }

// Area is the number of cells covered.
func (r Rect) Area() int { return r.Height() * r.Width() }

// TopLeft is the anchor corner.
func (r Rect) TopLeft() Position { return Position{Row: r.MinRow, Col: r.MinCol} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Position) bool {
	return p.Row >= r.MinRow && p.Row <= r.MaxRow && p.Col >= r.MinCol && p.Col <= r.MaxCol
}

// Positions lists every position in r in row-major order.
func (r Rect) Positions() []Position {
	out := make([]Position, 0, r.Area())
	for row := r.MinRow; row <= r.MaxRow; row++ {
		for col := r.MinCol; col <= r.MaxCol; col++ {
			out = append(out, Position{Row: row, Col: col})
		}
	}
	return out
}

// GroupID derives the merge group identifier from its bounds.
func (r Rect) GroupID() string {
	return fmt.Sprintf("merge_%d_%d_%d_%d", r.MinRow, r.MinCol, r.MaxRow, r.MaxCol)
}

// Group returns the positions of every cell carrying the group id.
func (g *Grid) Group(id string) []Position {
	if id == "" {
		return nil
	}
	var out []Position
	g.Each(func(c Cell) {
		if c.Merged && c.GroupID == id {
			out = append(out, c.Position())
		}
	})
	return out
}

// Bounds returns the rectangle currently covered by group id.
func (g *Grid) Bounds(id string) (Rect, bool) {
	return Bound(g.Group(id))
}

// Anchor returns the visible cell standing for p: the group anchor when p is
// a hidden member, p itself otherwise.
func (g *Grid) Anchor(p Position) (Position, error) {
	cell, err := g.Get(p)
	if err != nil {
		return Position{}, err
	}
	if !cell.Merged || !cell.Hidden {
		return p, nil
	}
	if b, ok := g.Bounds(cell.GroupID); ok {
		return b.TopLeft(), nil
	}
	return p, nil
}

func (g *Grid) groupIDs() []string {
	var ids []string
	g.Each(func(c Cell) {
		if c.Merged && c.GroupID != "" && !slices.Contains(ids, c.GroupID) {
			ids = append(ids, c.GroupID)
		}
	})
	return ids
}

// update applies fn to the cell at p and mirrors it onto every other member
// of the cell's merge group, producing a new grid.
func (g *Grid) update(p Position, fn func(*Cell)) (*Grid, error) {
	cell, err := g.Get(p)
	if err != nil {
		return nil, err
	}
	next := g.clone()
	next.apply(cell, fn)
	return next, nil
}

// apply mutates g in place; callers must own g.
func (g *Grid) apply(cell Cell, fn func(*Cell)) {
	if !cell.Merged || cell.GroupID == "" {
		fn(g.at(cell.Position()))
		return
	}
	for _, member := range g.Group(cell.GroupID) {
		fn(g.at(member))
	}
}

// dissolve resets every member of group id to the unmerged shape, in place.
func (g *Grid) dissolve(id string) {
	for _, p := range g.Group(id) {
		c := g.at(p)
		*c = c.unmerged()
	}
}
