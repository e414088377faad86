// Package printers renders grids and their statistics for the terminal.
package printers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/xuri/excelize/v2"

	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/store"
)

// DefaultCellWidth bounds the printed width of a cell value.
const DefaultCellWidth = 12

type PrettyPrint struct {
	Out io.Writer
	// CellWidth truncates cell values; zero uses DefaultCellWidth.
	CellWidth int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() uint {
	if pp.CellWidth <= 0 {
		return DefaultCellWidth
	}
	return uint(pp.CellWidth)
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Grid prints g as a table. Hidden merge members point at their anchor with
// "<" (same row) or "^" (rows below), blank cells print as a faint dot and
// checked cells carry an [x].
func (pp *PrettyPrint) Grid(g *grid.Grid) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	merged := color.New(color.FgCyan)
	checked := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "

	header := []interface{}{""}
	for c := 1; c <= g.Columns(); c++ {
		header = append(header, bold.Sprint(ColumnName(c)))
	}
	tbl.AddRow(header...)

	for r := 1; r <= g.Rows(); r++ {
		row := []interface{}{bold.Sprint(strconv.Itoa(r))}
		for _, c := range g.Row(r) {
			switch {
			case c.Hidden:
				a, _ := g.Anchor(c.Position())
				if a.Row == c.Row {
					row = append(row, faint.Sprint("<"))
				} else {
					row = append(row, faint.Sprint("^"))
				}
				continue
			case c.Blank:
				row = append(row, faint.Sprint("·"))
				continue
			}
			text := truncate.StringWithTail(c.Value, pp.width(), "…")
			if c.Checked {
				text = "[x] " + text
			}
			switch {
			case c.Checked:
				text = checked.Sprint(text)
			case c.Merged:
				text = merged.Sprint(text)
			}
			row = append(row, text)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Stats prints the statistics counters.
func (pp *PrettyPrint) Stats(s grid.Stats) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total"), s.Total)
	tbl.AddRow(bold.Sprint("Blocked"), s.Blocked)
	tbl.AddRow(bold.Sprint("Merged"), s.Merged)
	tbl.AddRow(bold.Sprint("Blank"), s.Blank)
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Summaries prints one line per stored grid.
func (pp *PrettyPrint) Summaries(names []string, attrs []store.Attributes) {
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Size"), bold.Sprint("Total"),
		bold.Sprint("Blocked"), bold.Sprint("Merged"), bold.Sprint("Blank"))
	for i, name := range names {
		a := attrs[i]
		size := "?"
		if a.Rows > 0 && a.Columns > 0 {
			size = fmt.Sprintf("%dx%d", a.Rows, a.Columns)
		}
		tbl.AddRow(name, size, a.Total, a.Blocked, a.Merged, a.Blank)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// ColumnName returns the spreadsheet letter of column c, 1-based.
func ColumnName(c int) string {
	name, err := excelize.ColumnNumberToName(c)
	if err != nil {
		return strconv.Itoa(c)
	}
	return name
}
