package xlsx

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"tableflip.dev/grid/pkg/grid"
)

func sample(t *testing.T) *grid.Grid {
	t.Helper()
	g, _ := grid.New(3, 4)
	g, _ = g.SetValue(grid.Pos(1, 1), "A-01")
	g, _ = g.SetValue(grid.Pos(3, 4), "Z")
	g, _ = g.ToggleChecked(grid.Pos(1, 1))
	g, _, err := g.Merge([]grid.Position{grid.Pos(1, 1), grid.Pos(1, 2), grid.Pos(2, 1), grid.Pos(2, 2)})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	g, _ = g.SetBlank([]grid.Position{grid.Pos(3, 1)}, true)
	return g
}

func TestExportWritesValuesAndMerges(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(sample(t), &buf, "Plan"); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Plan" {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	if v, _ := f.GetCellValue("Plan", "A1"); v != "A-01" {
		t.Fatalf("expected A-01 in A1, got %q", v)
	}
	if v, _ := f.GetCellValue("Plan", "A3"); v != "" {
		t.Fatalf("expected blank A3 empty, got %q", v)
	}
	if v, _ := f.GetCellValue("Plan", "D3"); v != "Z" {
		t.Fatalf("expected Z in D3, got %q", v)
	}
	merges, err := f.GetMergeCells("Plan")
	if err != nil {
		t.Fatalf("merge cells: %v", err)
	}
	if len(merges) != 1 || merges[0].GetStartAxis() != "A1" || merges[0].GetEndAxis() != "B2" {
		t.Fatalf("unexpected merges %v", merges)
	}
}

func TestImportRestoresGrid(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(sample(t), &buf, ""); err != nil {
		t.Fatalf("export: %v", err)
	}
	g, err := Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if g.Rows() != 3 || g.Columns() != 4 {
		t.Fatalf("expected 3x4, got %dx%d", g.Rows(), g.Columns())
	}
	anchor, _ := g.Get(grid.Pos(1, 1))
	if !anchor.Merged || anchor.RowSpan != 2 || anchor.ColSpan != 2 || anchor.Value != "A-01" {
		t.Fatalf("unexpected anchor %+v", anchor)
	}
	if !anchor.Checked || !anchor.Blocked {
		t.Fatalf("expected grey fill imported as checked, got %+v", anchor)
	}
	member, _ := g.Get(grid.Pos(2, 2))
	if !member.Hidden || !member.Checked {
		t.Fatalf("unexpected member %+v", member)
	}
	blank, _ := g.Get(grid.Pos(3, 1))
	if blank.Value != grid.DefaultValue || blank.Blank {
		t.Fatalf("expected blank cell imported as default, got %+v", blank)
	}
	if s := g.Stats(); s.Blocked != 4 || s.Merged != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestImportClampsAndSizesFromMerges(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue(DefaultSheet, "A1", "x")
	if err := f.MergeCell(DefaultSheet, "B2", "C4"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	f.SetCellValue(DefaultSheet, "A150", "far")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	g, err := Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if g.Rows() != grid.MaxDimension || g.Columns() != 3 {
		t.Fatalf("expected %dx3, got %dx%d", grid.MaxDimension, g.Rows(), g.Columns())
	}
	if members := g.Group("merge_2_2_4_3"); len(members) != 6 {
		t.Fatalf("expected 6 merged members, got %v", members)
	}
}

func TestImportSkipsSingleCellMerges(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue(DefaultSheet, "B2", "solo")
	if err := f.MergeCell(DefaultSheet, "B2", "B2"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	g, err := Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	c, _ := g.Get(grid.Pos(2, 2))
	if c.Merged || c.Value != "solo" {
		t.Fatalf("expected plain cell, got %+v", c)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if _, err := Import(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatal("expected error")
	}
}
