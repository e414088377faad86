package grid

import "fmt"

// Merge joins the selected positions into one merge group. The selection
// must be exactly a filled rectangle of at least two cells. Groups that
// intersect the rectangle are dissolved first. The new group takes its
// value, checkbox, blocked and blank state from the top-left cell, which
// becomes the visible anchor and is returned.
func (g *Grid) Merge(selected []Position) (*Grid, Position, error) {
	unique := dedupe(selected)
	if len(unique) < 2 {
		return nil, Position{}, ErrSelectionTooSmall
	}
	for _, p := range unique {
		if !g.Contains(p) {
			return nil, Position{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
		}
	}
	rect, _ := Bound(unique)
	if len(unique) != rect.Area() {
		return nil, Position{}, fmt.Errorf("%w: %d cells selected, bounding box holds %d",
			ErrNotRectangular, len(unique), rect.Area())
	}

	next := g.clone()
	for _, p := range rect.Positions() {
		c := next.at(p)
		if c.Merged && c.GroupID != "" {
			next.dissolve(c.GroupID)
		}
	}

	anchor := rect.TopLeft()
	canon := *next.at(anchor)
	id := rect.GroupID()
	for _, p := range rect.Positions() {
		c := next.at(p)
		c.Value = canon.Value
		c.Checked = canon.Checked
		c.Blocked = canon.Blocked
		c.Blank = canon.Blank
		c.Merged = true
		c.GroupID = id
		if p == anchor {
			c.Hidden = false
			c.RowSpan = rect.Height()
			c.ColSpan = rect.Width()
			continue
		}
		c.Hidden = true
		c.RowSpan = 1
		c.ColSpan = 1
	}
	return next, anchor, nil
}

// Unmerge dissolves the merge group containing p. It reports false, with
// the receiver returned unchanged, when p is not merged.
func (g *Grid) Unmerge(p Position) (*Grid, bool, error) {
	cell, err := g.Get(p)
	if err != nil {
		return nil, false, err
	}
	if !cell.Merged || cell.GroupID == "" {
		return g, false, nil
	}
	next := g.clone()
	next.dissolve(cell.GroupID)
	return next, true, nil
}

func dedupe(ps []Position) []Position {
	seen := make(map[Position]struct{}, len(ps))
	out := make([]Position, 0, len(ps))
	for _, p := range ps {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
