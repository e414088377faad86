package teaui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/printers"
)

// Screen layout: a title line and a column header line sit above the grid
// rows; every row starts with a label of rowLabelWidth columns and every
// cell is followed by one space.
const (
	gridTop       = 2
	rowLabelWidth = 4
)

// cellAt maps a terminal coordinate to the cell drawn there.
func (m *Model) cellAt(x, y int) (grid.Position, bool) {
	g := m.editor().Grid()
	row := y - gridTop + 1
	if row < 1 || row > g.Rows() || x < rowLabelWidth {
		return grid.Position{}, false
	}
	col := (x-rowLabelWidth)/(m.cellWidth+1) + 1
	if col > g.Columns() {
		return grid.Position{}, false
	}
	return grid.Pos(row, col), true
}

// View renders the grid, the status line and the help line.
func (m *Model) View() string {
	if m.showHelp && m.help != nil {
		return m.help.View()
	}
	var b strings.Builder
	th := m.theme.Grid
	g := m.editor().Grid()

	b.WriteString(th.Title.Render(m.sess.Name()))
	b.WriteString(fmt.Sprintf(" %dx%d\n", g.Rows(), g.Columns()))

	b.WriteString(strings.Repeat(" ", rowLabelWidth))
	for c := 1; c <= g.Columns(); c++ {
		b.WriteString(th.Header.Width(m.cellWidth).Render(printers.ColumnName(c)))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	label := th.Header.Width(rowLabelWidth - 1).Align(lipgloss.Right)
	for r := 1; r <= g.Rows(); r++ {
		b.WriteString(label.Render(strconv.Itoa(r)))
		b.WriteString(" ")
		for _, c := range g.Row(r) {
			b.WriteString(m.renderCell(c))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) renderCell(c grid.Cell) string {
	th := m.theme.Grid
	anchor := m.anchorOf(c.Position())

	text := ""
	switch {
	case c.Hidden:
	case c.Blank:
		text = "·"
	default:
		text = c.Value
		if c.Checked {
			text = "✓ " + text
		}
		text = truncate.StringWithTail(text, uint(m.cellWidth), "…")
	}

	style := th.Base
	if c.Merged {
		style = th.Merged.Inherit(style)
	}
	if c.Checked {
		style = th.Checked.Inherit(style)
	}
	if c.Blank {
		style = th.Blank.Inherit(style)
	}
	if m.editor().Selection().Contains(anchor) {
		style = th.Selected.Inherit(style)
	}
	if anchor == m.cursorAnchor() {
		style = th.Cursor.Inherit(style)
	}
	return style.Width(m.cellWidth).MaxWidth(m.cellWidth).Render(text)
}

func (m *Model) footer() string {
	ft := m.theme.Footer
	e := m.editor()
	s := e.Stats()

	var b strings.Builder
	switch {
	case m.mode == modeInsert:
		b.WriteString(ft.Mode.Render("EDIT " + m.cursorID()))
	case e.Selection().Active():
		b.WriteString(ft.Mode.Render(fmt.Sprintf("SELECT %d", e.Selection().Len())))
	default:
		b.WriteString(ft.Mode.Render("NORMAL"))
	}
	b.WriteString(ft.Status.Render(fmt.Sprintf("  total %d · blocked %d · merged %d · blank %d",
		s.Total, s.Blocked, s.Merged, s.Blank)))
	if m.status != "" {
		b.WriteString(ft.Status.Render("  " + m.status))
	}
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(ft.Alert.Render(m.alert))
		b.WriteString("\n")
	}
	if m.mode == modeInsert {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(ft.Help.Render("enter save · esc cancel"))
		return b.String()
	}
	b.WriteString(ft.Help.Render("arrows move · space check · enter edit · s/x select · a all · esc clear · m/u merge · b/B blank · r/c add · g new · ? help · q quit"))
	return b.String()
}
