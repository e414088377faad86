// Package grid holds the cell matrix of a grid document and the rules that
// keep it consistent: rectangular merge groups, blanking and the
// checkbox-driven blocked state.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDimension bounds both rows and columns.
	MaxDimension = 100

	// DefaultValue is the text value of a freshly created cell.
	DefaultValue = "-"
)

// Position addresses a cell by 1-based row and column.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// ID returns the stable cell identifier, cell_{row}_{col}.
func (p Position) ID() string {
	return fmt.Sprintf("cell_%d_%d", p.Row, p.Col)
}

func (p Position) String() string {
	return p.ID()
}

// RowID returns the stable row identifier, row_{row}.
func RowID(row int) string {
	return fmt.Sprintf("row_%d", row)
}

// ParseID parses a cell identifier produced by Position.ID.
func ParseID(id string) (Position, error) {
	rest, ok := strings.CutPrefix(id, "cell_")
	if !ok {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCellID, id)
	}
	rs, cs, ok := strings.Cut(rest, "_")
	if !ok {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCellID, id)
	}
	row, err := strconv.Atoi(rs)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCellID, id)
	}
	col, err := strconv.Atoi(cs)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCellID, id)
	}
	if row <= 0 || col <= 0 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCellID, id)
	}
	return Position{Row: row, Col: col}, nil
}

// Cell is one grid position with its value and flags.
type Cell struct {
	Row int
	Col int

	Value   string
	Checked bool
	// Blocked mirrors Checked whenever the checkbox is toggled. Value edits
	// never change it.
	Blocked bool

	Merged  bool
	GroupID string
	RowSpan int
	ColSpan int
	// Hidden is set on every member of a merge group except its anchor.
	Hidden bool

	Blank bool
}

// NewCell returns a default cell at row, col.
func NewCell(row, col int) Cell {
	return Cell{
		Row:     row,
		Col:     col,
		Value:   DefaultValue,
		RowSpan: 1,
		ColSpan: 1,
	}
}

// Position returns where the cell lives.
func (c Cell) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// ID returns the stable identifier of the cell.
func (c Cell) ID() string {
	return c.Position().ID()
}

// Anchor reports whether the cell is the visible top-left of a merge group.
func (c Cell) Anchor() bool {
	return c.Merged && !c.Hidden
}

// unmerged resets the merge shape and keeps every other attribute.
func (c Cell) unmerged() Cell {
	c.Merged = false
	c.GroupID = ""
	c.RowSpan = 1
	c.ColSpan = 1
	c.Hidden = false
	return c
}
