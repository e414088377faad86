package grid

import "fmt"

// Grid is an immutable rows×columns matrix of cells. Every mutating method
// returns a new Grid and leaves the receiver untouched, so holders of an
// older version can keep reading it.
type Grid struct {
	cells [][]Cell
}

// ValidDimensions reports whether rows and columns are within bounds.
func ValidDimensions(rows, columns int) bool {
	return rows > 0 && rows <= MaxDimension && columns > 0 && columns <= MaxDimension
}

// New returns a grid of default cells.
func New(rows, columns int) (*Grid, error) {
	if !ValidDimensions(rows, columns) {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionOutOfRange, rows, columns)
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = defaultRow(r+1, columns)
	}
	return &Grid{cells: cells}, nil
}

// FromCells builds a grid from rows of cells, rewriting each cell's
// coordinates to its position. Every row must have the same length.
func FromCells(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDimensionOutOfRange)
	}
	columns := len(rows[0])
	if !ValidDimensions(len(rows), columns) {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionOutOfRange, len(rows), columns)
	}
	cells := make([][]Cell, len(rows))
	for r, row := range rows {
		if len(row) != columns {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", r+1, len(row), columns)
		}
		cells[r] = make([]Cell, columns)
		for c, cell := range row {
			cell.Row, cell.Col = r+1, c+1
			cells[r][c] = cell
		}
	}
	return &Grid{cells: cells}, nil
}

func defaultRow(row, columns int) []Cell {
	out := make([]Cell, columns)
	for c := range out {
		out[c] = NewCell(row, c+1)
	}
	return out
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Contains reports whether p is inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 1 && p.Row <= g.Rows() && p.Col >= 1 && p.Col <= g.Columns()
}

// Get returns the cell at p.
func (g *Grid) Get(p Position) (Cell, error) {
	if !g.Contains(p) {
		return Cell{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return g.cells[p.Row-1][p.Col-1], nil
}

// Row returns a copy of the cells of a 1-based row.
func (g *Grid) Row(row int) []Cell {
	if row < 1 || row > g.Rows() {
		return nil
	}
	out := make([]Cell, g.Columns())
	copy(out, g.cells[row-1])
	return out
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// Set replaces the cell at p. The cell's coordinates are forced to p.
func (g *Grid) Set(p Position, cell Cell) (*Grid, error) {
	if !g.Contains(p) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	next := g.clone()
	cell.Row, cell.Col = p.Row, p.Col
	next.cells[p.Row-1][p.Col-1] = cell
	return next, nil
}

// Resize rebuilds the matrix at the new dimensions. Cells inside both the
// old and new bounds keep their content; new cells are defaults. Merge
// groups that no longer fit are dissolved.
func (g *Grid) Resize(rows, columns int) (*Grid, error) {
	if !ValidDimensions(rows, columns) {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionOutOfRange, rows, columns)
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = defaultRow(r+1, columns)
		if r >= g.Rows() {
			continue
		}
		copy(cells[r], g.cells[r])
	}
	next := &Grid{cells: cells}
	for _, id := range g.groupIDs() {
		b, ok := g.Bounds(id)
		if !ok || (b.MaxRow <= rows && b.MaxCol <= columns) {
			continue
		}
		next.dissolve(id)
	}
	return next, nil
}

// AddRow appends one row of default cells.
func (g *Grid) AddRow() (*Grid, error) {
	if g.Rows()+1 > MaxDimension {
		return nil, fmt.Errorf("%w: %d rows", ErrDimensionOutOfRange, g.Rows()+1)
	}
	next := g.clone()
	next.cells = append(next.cells, defaultRow(g.Rows()+1, g.Columns()))
	return next, nil
}

// AddColumn appends one column of default cells.
func (g *Grid) AddColumn() (*Grid, error) {
	if g.Columns()+1 > MaxDimension {
		return nil, fmt.Errorf("%w: %d columns", ErrDimensionOutOfRange, g.Columns()+1)
	}
	next := g.clone()
	col := g.Columns() + 1
	for r := range next.cells {
		next.cells[r] = append(next.cells[r], NewCell(r+1, col))
	}
	return next, nil
}

// SetValue edits the text value of the cell at p and every member of its
// merge group. The blocked flag is left alone.
func (g *Grid) SetValue(p Position, value string) (*Grid, error) {
	return g.update(p, func(c *Cell) {
		c.Value = value
	})
}

// SetChecked sets the checkbox of the cell at p and its group. Blocked
// always follows the new checked value.
func (g *Grid) SetChecked(p Position, checked bool) (*Grid, error) {
	return g.update(p, func(c *Cell) {
		c.Checked = checked
		c.Blocked = checked
	})
}

// ToggleChecked flips the checkbox of the cell at p and its group.
func (g *Grid) ToggleChecked(p Position) (*Grid, error) {
	cell, err := g.Get(p)
	if err != nil {
		return nil, err
	}
	return g.SetChecked(p, !cell.Checked)
}

// Equal reports whether both grids hold identical cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Rows() != o.Rows() || g.Columns() != o.Columns() {
		return false
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] != o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

func (g *Grid) clone() *Grid {
	cells := make([][]Cell, len(g.cells))
	for r, row := range g.cells {
		cells[r] = make([]Cell, len(row))
		copy(cells[r], row)
	}
	return &Grid{cells: cells}
}

func (g *Grid) at(p Position) *Cell {
	return &g.cells[p.Row-1][p.Col-1]
}
