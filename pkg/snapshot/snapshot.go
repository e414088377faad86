// Package snapshot converts a grid to and from its persisted JSON form.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/grid/pkg/grid"
)

// CurrentSchema tags snapshots written by this package.
const CurrentSchema = "grid/v1"

// ErrNoData is returned by Decode when the input cannot be turned into a
// grid. Callers treat it as "nothing persisted yet".
var ErrNoData = errors.New("snapshot: no usable data")

// Snapshot is the wire form of a grid.
type Snapshot struct {
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	TableRows []Row     `json:"tableRows"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Metadata describes when and how the snapshot was produced.
type Metadata struct {
	UpdatedAt string `json:"updatedAt,omitempty"`
	Schema    string `json:"schema,omitempty"`
}

// Row is one wire row.
type Row struct {
	ID       string `json:"id"`
	RowIndex int    `json:"rowIndex"`
	Cells    []Cell `json:"cells"`
}

// Cell is one wire cell.
type Cell struct {
	ID             string `json:"id"`
	RowIndex       int    `json:"rowIndex"`
	ColumnIndex    int    `json:"columnIndex"`
	SequenceNumber string `json:"sequenceNumber"`
	Checked        bool   `json:"checked"`
	IsSelected     bool   `json:"isSelected"`
	IsBlocked      bool   `json:"isBlocked"`
	IsMerged       bool   `json:"isMerged"`
	MergeID        string `json:"mergeId"`
	IsBlank        bool   `json:"isBlank"`
	RowSpan        int    `json:"rowSpan"`
	ColSpan        int    `json:"colSpan"`
	IsHidden       bool   `json:"isHidden"`
}

// Encode renders g as a snapshot stamped with at.
func Encode(g *grid.Grid, at time.Time) ([]byte, error) {
	return json.Marshal(From(g, at))
}

// From builds the wire form of g. Identifiers and indices are always
// recomputed from position.
func From(g *grid.Grid, at time.Time) Snapshot {
	s := Snapshot{
		Rows:      g.Rows(),
		Columns:   g.Columns(),
		TableRows: make([]Row, 0, g.Rows()),
		Metadata: &Metadata{
			UpdatedAt: at.UTC().Format(time.RFC3339Nano),
			Schema:    CurrentSchema,
		},
	}
	for r := 1; r <= g.Rows(); r++ {
		row := Row{ID: grid.RowID(r), RowIndex: r, Cells: make([]Cell, 0, g.Columns())}
		for c, cell := range g.Row(r) {
			p := grid.Pos(r, c+1)
			row.Cells = append(row.Cells, Cell{
				ID:             p.ID(),
				RowIndex:       p.Row,
				ColumnIndex:    p.Col,
				SequenceNumber: cell.Value,
				Checked:        cell.Checked,
				IsSelected:     cell.Checked,
				IsBlocked:      cell.Blocked,
				IsMerged:       cell.Merged,
				MergeID:        cell.GroupID,
				IsBlank:        cell.Blank,
				RowSpan:        cell.RowSpan,
				ColSpan:        cell.ColSpan,
				IsHidden:       cell.Hidden,
			})
		}
		s.TableRows = append(s.TableRows, row)
	}
	return s
}

// rawSnapshot mirrors Snapshot with optional fields so absent keys can be
// told apart from zero values.
type rawSnapshot struct {
	Rows      *int      `json:"rows"`
	Columns   *int      `json:"columns"`
	TableRows *[]rawRow `json:"tableRows"`
	Metadata  *Metadata `json:"metadata"`
}

type rawRow struct {
	Cells []rawCell `json:"cells"`
}

type rawCell struct {
	SequenceNumber *string `json:"sequenceNumber"`
	Checked        *bool   `json:"checked"`
	IsBlocked      *bool   `json:"isBlocked"`
	IsMerged       *bool   `json:"isMerged"`
	MergeID        *string `json:"mergeId"`
	MergeGroupID   *string `json:"mergeGroupId"`
	IsBlank        *bool   `json:"isBlank"`
	RowSpan        *int    `json:"rowSpan"`
	ColSpan        *int    `json:"colSpan"`
	IsHidden       *bool   `json:"isHidden"`
}

// Decode parses raw into a grid. Missing fields fall back to cell defaults.
// A missing isBlocked falls back to the decoded checked value; a present
// isBlocked is kept as written, even when it disagrees with checked, so
// older snapshots load unchanged.
func Decode(raw []byte) (*grid.Grid, error) {
	var s rawSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	switch {
	case s.Rows == nil || *s.Rows <= 0:
		return nil, fmt.Errorf("%w: rows missing or not positive", ErrNoData)
	case s.Columns == nil || *s.Columns <= 0:
		return nil, fmt.Errorf("%w: columns missing or not positive", ErrNoData)
	case s.TableRows == nil:
		return nil, fmt.Errorf("%w: tableRows missing", ErrNoData)
	case !grid.ValidDimensions(*s.Rows, *s.Columns):
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrNoData, *s.Rows, *s.Columns, grid.MaxDimension)
	}

	rows, columns := *s.Rows, *s.Columns
	table := *s.TableRows
	cells := make([][]grid.Cell, rows)
	for r := range cells {
		cells[r] = make([]grid.Cell, columns)
		for c := range cells[r] {
			var rc *rawCell
			if r < len(table) && c < len(table[r].Cells) {
				rc = &table[r].Cells[c]
			}
			cells[r][c] = rc.cell(r+1, c+1)
		}
	}
	g, err := grid.FromCells(cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	return g, nil
}

// Schema reports the schema tag of raw, defaulting to CurrentSchema.
func Schema(raw []byte) string {
	var s rawSnapshot
	if err := json.Unmarshal(raw, &s); err != nil || s.Metadata == nil || s.Metadata.Schema == "" {
		return CurrentSchema
	}
	return s.Metadata.Schema
}

func (rc *rawCell) cell(row, col int) grid.Cell {
	c := grid.NewCell(row, col)
	if rc == nil {
		return c
	}
	if rc.SequenceNumber != nil {
		c.Value = *rc.SequenceNumber
	}
	if rc.Checked != nil {
		c.Checked = *rc.Checked
	}
	c.Blocked = c.Checked
	if rc.IsBlocked != nil {
		c.Blocked = *rc.IsBlocked
	}
	if rc.IsMerged != nil {
		c.Merged = *rc.IsMerged
	}
	switch {
	case rc.MergeID != nil:
		c.GroupID = *rc.MergeID
	case rc.MergeGroupID != nil:
		c.GroupID = *rc.MergeGroupID
	}
	if rc.IsBlank != nil {
		c.Blank = *rc.IsBlank
	}
	// Spans are positive; anything else is treated as absent.
	if rc.RowSpan != nil && *rc.RowSpan > 0 {
		c.RowSpan = *rc.RowSpan
	}
	if rc.ColSpan != nil && *rc.ColSpan > 0 {
		c.ColSpan = *rc.ColSpan
	}
	if rc.IsHidden != nil {
		c.Hidden = *rc.IsHidden
	}
	return c
}
