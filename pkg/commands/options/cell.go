package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tableflip.dev/grid/pkg/grid"
)

// ParseCell reads a cell reference given as a cell id (cell_2_3), a
// "row,column" pair (2,3) or a spreadsheet name (C2).
func ParseCell(ref string) (grid.Position, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, "cell_"):
		return grid.ParseID(ref)
	case strings.Contains(ref, ","):
		parts := strings.SplitN(ref, ",", 2)
		r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		c, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err := errors.Join(err1, err2); err != nil || r <= 0 || c <= 0 {
			return grid.Position{}, fmt.Errorf("%w: %q", grid.ErrInvalidCellID, ref)
		}
		return grid.Pos(r, c), nil
	default:
		c, r, err := excelize.CellNameToCoordinates(strings.ToUpper(ref))
		if err != nil {
			return grid.Position{}, fmt.Errorf("%w: %q", grid.ErrInvalidCellID, ref)
		}
		return grid.Pos(r, c), nil
	}
}

// ParseCells parses every reference in refs.
func ParseCells(refs []string) ([]grid.Position, error) {
	out := make([]grid.Position, 0, len(refs))
	for _, ref := range refs {
		p, err := ParseCell(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ParseRange expands "A1:B2" into every cell of the rectangle. Other
// references are parsed as a single cell.
func ParseRange(ref string) ([]grid.Position, error) {
	from, to, ok := strings.Cut(ref, ":")
	if !ok {
		p, err := ParseCell(ref)
		if err != nil {
			return nil, err
		}
		return []grid.Position{p}, nil
	}
	a, err := ParseCell(from)
	if err != nil {
		return nil, err
	}
	b, err := ParseCell(to)
	if err != nil {
		return nil, err
	}
	return grid.Span(a, b).Positions(), nil
}
