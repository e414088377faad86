package grid

// SetBlank sets or clears the blank flag on each selected visible cell and
// the rest of its merge group. Hidden group members and positions outside
// the grid are skipped and returned; the others are still processed.
func (g *Grid) SetBlank(selected []Position, blank bool) (*Grid, []Position) {
	next := g.clone()
	var skipped []Position
	for _, p := range dedupe(selected) {
		if !next.Contains(p) {
			skipped = append(skipped, p)
			continue
		}
		cell := *next.at(p)
		if cell.Hidden {
			skipped = append(skipped, p)
			continue
		}
		next.apply(cell, func(c *Cell) {
			c.Blank = blank
		})
	}
	return next, skipped
}
