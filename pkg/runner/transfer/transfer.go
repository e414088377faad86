// Package transfer exports grids to and imports grids from xlsx workbooks.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/xlsx"
)

type Export struct {
	Service *app.Service
	Name    string
	Path    string
	Sheet   string
	Out     io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	sess, err := n.Service.OpenExisting(ctx, n.Name)
	if err != nil {
		return err
	}
	sheet := n.Sheet
	if sheet == "" {
		sheet = n.Name
	}
	f, err := os.Create(n.Path)
	if err != nil {
		return err
	}
	if err := xlsx.Export(sess.Editor().Grid(), f, sheet); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(output(n.Out), "exported %s to %s\n", n.Name, n.Path)
	return nil
}

type Import struct {
	Service *app.Service
	Name    string
	Path    string
	// Force replaces an existing grid.
	Force bool
	Out   io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	exists, err := n.Service.Exists(ctx, n.Name)
	if err != nil {
		return err
	}
	if exists && !n.Force {
		return fmt.Errorf("%w: %s (use --force to replace)", app.ErrExists, n.Name)
	}
	f, err := os.Open(n.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := xlsx.Import(f)
	if err != nil {
		return err
	}
	if err := n.Service.Replace(ctx, n.Name, g); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(output(n.Out), "imported %s (%dx%d) from %s\n", n.Name, g.Rows(), g.Columns(), n.Path)
	return nil
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
