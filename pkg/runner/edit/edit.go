// Package edit applies one editor operation to a stored grid.
package edit

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/editor"
	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/printers"
)

// Op is one editor operation.
type Op func(e *editor.Editor) error

type Edit struct {
	Service *app.Service
	Name    string
	Op      Op
	// Quiet skips printing the grid afterwards.
	Quiet bool
	Out   io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if n.Op == nil {
		return errors.New("can not edit, no operation")
	}
	sess, err := n.Service.OpenExisting(ctx, n.Name)
	if err != nil {
		return err
	}
	if err := n.Op(sess.Editor()); err != nil {
		return err
	}
	if err := sess.Err(); err != nil {
		return err
	}
	if n.Quiet {
		return nil
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Grid(sess.Editor().Grid())
	return nil
}

// SetValue edits the value of the cell at p.
func SetValue(p grid.Position, value string) Op {
	return func(e *editor.Editor) error {
		return e.EditValue(p.ID(), value)
	}
}

// Toggle flips the checkbox of the cell at p.
func Toggle(p grid.Position) Op {
	return func(e *editor.Editor) error {
		return e.ToggleCheck(p.ID())
	}
}

// Merge selects ps and merges them.
func Merge(ps []grid.Position) Op {
	return func(e *editor.Editor) error {
		if err := selectAll(e, ps); err != nil {
			return err
		}
		return e.Merge()
	}
}

// Unmerge dissolves the group containing p.
func Unmerge(p grid.Position) Op {
	return func(e *editor.Editor) error {
		if err := selectAll(e, []grid.Position{p}); err != nil {
			return err
		}
		return e.Unmerge()
	}
}

// Blank selects ps and blanks or unblanks them.
func Blank(ps []grid.Position, blank bool) Op {
	return func(e *editor.Editor) error {
		if err := selectAll(e, ps); err != nil {
			return err
		}
		if blank {
			return e.Blank()
		}
		return e.Unblank()
	}
}

// Resize changes the grid dimensions.
func Resize(rows, columns int) Op {
	return func(e *editor.Editor) error {
		return e.Resize(rows, columns)
	}
}

// AddRow appends a row.
func AddRow() Op {
	return func(e *editor.Editor) error { return e.AddRow() }
}

// AddColumn appends a column.
func AddColumn() Op {
	return func(e *editor.Editor) error { return e.AddColumn() }
}

// Generate replaces the grid with a fresh one.
func Generate(rows, columns int) Op {
	return func(e *editor.Editor) error {
		return e.Generate(rows, columns)
	}
}

func selectAll(e *editor.Editor, ps []grid.Position) error {
	for _, p := range ps {
		if err := e.Click(p.ID(), false); err != nil {
			return err
		}
	}
	return nil
}
