// Package create stores a new default grid.
package create

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/grid/pkg/app"
)

type Create struct {
	Service *app.Service
	Name    string
	Rows    int
	Columns int
	Out     io.Writer
}

func (n *Create) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not create, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	sess, err := n.Service.Create(ctx, n.Name, n.Rows, n.Columns)
	if err != nil {
		return err
	}
	g := sess.Editor().Grid()
	_, _ = fmt.Fprintf(out, "created %s (%dx%d)\n", n.Name, g.Rows(), g.Columns())
	return nil
}
