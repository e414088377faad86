package grid

import (
	"errors"
	"testing"
)

func mustNew(t *testing.T, rows, columns int) *Grid {
	t.Helper()
	g, err := New(rows, columns)
	if err != nil {
		t.Fatalf("new grid %dx%d: %v", rows, columns, err)
	}
	return g
}

func mustGet(t *testing.T, g *Grid, p Position) Cell {
	t.Helper()
	c, err := g.Get(p)
	if err != nil {
		t.Fatalf("get %s: %v", p, err)
	}
	return c
}

func TestNewDefaults(t *testing.T) {
	g := mustNew(t, 3, 4)
	if g.Rows() != 3 || g.Columns() != 4 {
		t.Fatalf("expected 3x4, got %dx%d", g.Rows(), g.Columns())
	}
	g.Each(func(c Cell) {
		want := NewCell(c.Row, c.Col)
		if c != want {
			t.Fatalf("expected default cell %+v, got %+v", want, c)
		}
	})
	c := mustGet(t, g, Pos(2, 3))
	if c.Row != 2 || c.Col != 3 || c.Value != "-" || c.RowSpan != 1 || c.ColSpan != 1 {
		t.Fatalf("unexpected cell %+v", c)
	}
}

func TestNewRejectsOutOfRange(t *testing.T) {
	for _, tc := range []struct{ rows, columns int }{
		{0, 1}, {1, 0}, {101, 1}, {1, 101}, {-1, 5},
	} {
		if _, err := New(tc.rows, tc.columns); !errors.Is(err, ErrDimensionOutOfRange) {
			t.Fatalf("New(%d, %d): expected ErrDimensionOutOfRange, got %v", tc.rows, tc.columns, err)
		}
	}
}

func TestResizeKeepsContent(t *testing.T) {
	g := mustNew(t, 2, 2)
	g, err := g.SetValue(Pos(2, 2), "keep")
	if err != nil {
		t.Fatalf("set value: %v", err)
	}
	grown, err := g.Resize(4, 3)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if grown.Rows() != 4 || grown.Columns() != 3 {
		t.Fatalf("expected 4x3, got %dx%d", grown.Rows(), grown.Columns())
	}
	if got := mustGet(t, grown, Pos(2, 2)).Value; got != "keep" {
		t.Fatalf("expected kept value, got %q", got)
	}
	if c := mustGet(t, grown, Pos(4, 3)); c != NewCell(4, 3) {
		t.Fatalf("expected default new cell, got %+v", c)
	}

	shrunk, err := grown.Resize(1, 1)
	if err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if shrunk.Rows() != 1 || shrunk.Columns() != 1 {
		t.Fatalf("expected 1x1, got %dx%d", shrunk.Rows(), shrunk.Columns())
	}
	if grown.Rows() != 4 {
		t.Fatalf("resize must not alter the previous grid")
	}
}

func TestResizeBoundary(t *testing.T) {
	g := mustNew(t, 5, 5)
	if _, err := g.Resize(101, 5); !errors.Is(err, ErrDimensionOutOfRange) {
		t.Fatalf("expected rejection for 101 rows, got %v", err)
	}
	if _, err := g.Resize(5, 0); !errors.Is(err, ErrDimensionOutOfRange) {
		t.Fatalf("expected rejection for 0 columns, got %v", err)
	}
	if g.Rows() != 5 || g.Columns() != 5 {
		t.Fatalf("grid changed after rejected resize: %dx%d", g.Rows(), g.Columns())
	}
	if _, err := g.Resize(100, 100); err != nil {
		t.Fatalf("100x100 should be accepted: %v", err)
	}
}

func TestResizeDissolvesCutGroups(t *testing.T) {
	g := mustNew(t, 4, 4)
	g, _, err := g.Merge([]Position{Pos(3, 3), Pos(3, 4), Pos(4, 3), Pos(4, 4)})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	g, _, err = g.Merge([]Position{Pos(1, 1), Pos(1, 2)})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	shrunk, err := g.Resize(3, 3)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if c := mustGet(t, shrunk, Pos(3, 3)); c.Merged || c.Hidden || c.RowSpan != 1 || c.ColSpan != 1 {
		t.Fatalf("expected cut group dissolved, got %+v", c)
	}
	if c := mustGet(t, shrunk, Pos(1, 1)); !c.Merged || c.ColSpan != 2 {
		t.Fatalf("expected intact group kept, got %+v", c)
	}
}

func TestAddRowAndColumn(t *testing.T) {
	g := mustNew(t, 2, 3)
	g2, err := g.AddRow()
	if err != nil {
		t.Fatalf("add row: %v", err)
	}
	if g2.Rows() != 3 || g2.Columns() != 3 {
		t.Fatalf("expected 3x3, got %dx%d", g2.Rows(), g2.Columns())
	}
	if c := mustGet(t, g2, Pos(3, 2)); c != NewCell(3, 2) {
		t.Fatalf("unexpected new row cell %+v", c)
	}
	g3, err := g2.AddColumn()
	if err != nil {
		t.Fatalf("add column: %v", err)
	}
	if g3.Columns() != 4 {
		t.Fatalf("expected 4 columns, got %d", g3.Columns())
	}
	for r := 1; r <= g3.Rows(); r++ {
		if c := mustGet(t, g3, Pos(r, 4)); c != NewCell(r, 4) {
			t.Fatalf("unexpected new column cell %+v", c)
		}
	}
	if g.Rows() != 2 || g.Columns() != 3 {
		t.Fatalf("previous grid was modified")
	}

	full := mustNew(t, 100, 100)
	if _, err := full.AddRow(); !errors.Is(err, ErrDimensionOutOfRange) {
		t.Fatalf("expected add row rejection at 100, got %v", err)
	}
	if _, err := full.AddColumn(); !errors.Is(err, ErrDimensionOutOfRange) {
		t.Fatalf("expected add column rejection at 100, got %v", err)
	}
}

func TestGetSetBounds(t *testing.T) {
	g := mustNew(t, 2, 2)
	if _, err := g.Get(Pos(3, 1)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := g.Set(Pos(0, 1), NewCell(0, 1)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	cell := NewCell(9, 9)
	cell.Value = "x"
	next, err := g.Set(Pos(1, 2), cell)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	got := mustGet(t, next, Pos(1, 2))
	if got.Row != 1 || got.Col != 2 || got.Value != "x" {
		t.Fatalf("expected coordinates rewritten, got %+v", got)
	}
	if mustGet(t, g, Pos(1, 2)).Value != "-" {
		t.Fatalf("set must not alter the previous grid")
	}
}

func TestCheckboxBlockedCoupling(t *testing.T) {
	g := mustNew(t, 2, 2)
	g, err := g.ToggleChecked(Pos(1, 1))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	c := mustGet(t, g, Pos(1, 1))
	if !c.Checked || !c.Blocked {
		t.Fatalf("expected checked and blocked, got %+v", c)
	}
	g, err = g.SetValue(Pos(1, 1), "edited")
	if err != nil {
		t.Fatalf("set value: %v", err)
	}
	c = mustGet(t, g, Pos(1, 1))
	if !c.Blocked || c.Value != "edited" {
		t.Fatalf("value edit must not change blocked, got %+v", c)
	}
	g, err = g.ToggleChecked(Pos(1, 1))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if c := mustGet(t, g, Pos(1, 1)); c.Checked || c.Blocked {
		t.Fatalf("expected unchecked and unblocked, got %+v", c)
	}
}

func TestParseID(t *testing.T) {
	p, err := ParseID("cell_12_3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p != Pos(12, 3) {
		t.Fatalf("expected (12,3), got %+v", p)
	}
	if p.ID() != "cell_12_3" {
		t.Fatalf("unexpected id %q", p.ID())
	}
	for _, bad := range []string{"", "cell_", "cell_1", "cell_a_1", "row_1", "cell_0_1", "cell_1_x"} {
		if _, err := ParseID(bad); !errors.Is(err, ErrInvalidCellID) {
			t.Fatalf("ParseID(%q): expected ErrInvalidCellID, got %v", bad, err)
		}
	}
	if RowID(4) != "row_4" {
		t.Fatalf("unexpected row id %q", RowID(4))
	}
}
