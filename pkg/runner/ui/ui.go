// Package ui opens the interactive editor on one grid.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/grid/pkg/app"
	teaui "tableflip.dev/grid/pkg/tui/app"
)

// ErrNoTerminal is returned when stdout is not an interactive terminal.
var ErrNoTerminal = errors.New("ui: stdout is not a terminal, try `grid show`")

type UI struct {
	Service *app.Service
	Name    string
	// Out is checked for a terminal. Defaults to os.Stdout.
	Out *os.File
}

// Do runs the TUI until the user quits. An absent grid is created on the
// first change.
func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open ui, no service")
	}
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	if fd := out.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNoTerminal
	}
	sess, err := d.Service.Open(ctx, d.Name)
	if err != nil {
		return err
	}
	return teaui.Run(d.Service, sess)
}
