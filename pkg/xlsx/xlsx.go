// Package xlsx moves grids in and out of spreadsheet workbooks. Merge groups
// become merged ranges and blocked cells get a grey fill.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"tableflip.dev/grid/pkg/grid"
)

// DefaultSheet is the sheet written when none is named.
const DefaultSheet = "Sheet1"

// blockedFill marks blocked cells.
const blockedFill = "D9D9D9"

// ErrNoSheet is returned when a workbook has no worksheet to read.
var ErrNoSheet = errors.New("xlsx: workbook has no sheets")

// Export writes g as a workbook with a single sheet. Blank cells are written
// empty and hidden merge members are covered by their merged range.
func Export(g *grid.Grid, w io.Writer, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("xlsx: name sheet: %w", err)
		}
	}
	blocked, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{blockedFill}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: blocked style: %w", err)
	}

	var werr error
	g.Each(func(c grid.Cell) {
		if werr != nil || c.Hidden {
			return
		}
		top, err := excelize.CoordinatesToCellName(c.Col, c.Row)
		if err != nil {
			werr = err
			return
		}
		bottom, err := excelize.CoordinatesToCellName(c.Col+c.ColSpan-1, c.Row+c.RowSpan-1)
		if err != nil {
			werr = err
			return
		}
		if top != bottom {
			if err := f.MergeCell(sheet, top, bottom); err != nil {
				werr = fmt.Errorf("xlsx: merge %s:%s: %w", top, bottom, err)
				return
			}
		}
		if !c.Blank {
			if err := f.SetCellValue(sheet, top, c.Value); err != nil {
				werr = fmt.Errorf("xlsx: write %s: %w", top, err)
				return
			}
		}
		if c.Blocked {
			if err := f.SetCellStyle(sheet, top, bottom, blocked); err != nil {
				werr = fmt.Errorf("xlsx: style %s: %w", top, err)
			}
		}
	})
	if werr != nil {
		return werr
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

// Import reads the first sheet of the workbook in r. The used range, clamped
// to grid.MaxDimension, becomes the grid size; empty cells keep the default
// value, grey-filled cells are checked and merged ranges are merged.
func Import(r io.Reader) (*grid.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read %s: %w", sheet, err)
	}
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read merged ranges: %w", err)
	}
	ranges := make([]grid.Rect, 0, len(merges))
	for _, mc := range merges {
		rect, err := mergedRange(mc.GetStartAxis(), mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, rect)
	}

	nRows, nCols := usedRange(rows, ranges)
	g, err := grid.New(nRows, nCols)
	if err != nil {
		return nil, err
	}

	fills := make(map[int]bool)
	for r := 1; r <= nRows; r++ {
		for c := 1; c <= nCols; c++ {
			p := grid.Pos(r, c)
			if r <= len(rows) && c <= len(rows[r-1]) && rows[r-1][c-1] != "" {
				if g, err = g.SetValue(p, rows[r-1][c-1]); err != nil {
					return nil, err
				}
			}
			name, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			isBlocked, err := blockedCell(f, sheet, name, fills)
			if err != nil {
				return nil, err
			}
			if isBlocked {
				if g, err = g.SetChecked(p, true); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, rect := range ranges {
		if rect.Area() < 2 || !g.Contains(grid.Pos(rect.MaxRow, rect.MaxCol)) {
			continue
		}
		if g, _, err = g.Merge(rect.Positions()); err != nil {
			return nil, fmt.Errorf("xlsx: merge %s: %w", rect.GroupID(), err)
		}
	}
	return g, nil
}

func mergedRange(start, end string) (grid.Rect, error) {
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return grid.Rect{}, fmt.Errorf("xlsx: merged range %s: %w", start, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return grid.Rect{}, fmt.Errorf("xlsx: merged range %s: %w", end, err)
	}
	return grid.Span(grid.Pos(r1, c1), grid.Pos(r2, c2)), nil
}

func usedRange(rows [][]string, ranges []grid.Rect) (int, int) {
	nRows, nCols := len(rows), 0
	for _, row := range rows {
		nCols = max(nCols, len(row))
	}
	for _, rect := range ranges {
		nRows = max(nRows, rect.MaxRow)
		nCols = max(nCols, rect.MaxCol)
	}
	return clamp(nRows), clamp(nCols)
}

func clamp(n int) int {
	return min(max(n, 1), grid.MaxDimension)
}

// blockedCell reports whether the cell carries the blocked fill. Results are
// cached per style index.
func blockedCell(f *excelize.File, sheet, cell string, fills map[int]bool) (bool, error) {
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, fmt.Errorf("xlsx: style of %s: %w", cell, err)
	}
	if idx == 0 {
		return false, nil
	}
	if blocked, ok := fills[idx]; ok {
		return blocked, nil
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return false, fmt.Errorf("xlsx: style %d: %w", idx, err)
	}
	blocked := false
	for _, color := range style.Fill.Color {
		if strings.HasSuffix(strings.ToUpper(color), blockedFill) {
			blocked = true
		}
	}
	fills[idx] = blocked
	return blocked, nil
}
