// Package show prints a stored grid.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/printers"
	"tableflip.dev/grid/pkg/snapshot"
)

type Show struct {
	Service *app.Service
	Name    string
	// JSON prints the snapshot (or the statistics) as JSON.
	JSON bool
	// StatsOnly prints only the statistics.
	StatsOnly bool
	CellWidth int
	Out       io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	sess, err := n.Service.OpenExisting(ctx, n.Name)
	if err != nil {
		return err
	}
	e := sess.Editor()

	if n.JSON {
		var v any = e.Stats()
		if !n.StatsOnly {
			v = snapshot.From(e.Grid(), time.Now())
		}
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}

	pp := printers.PrettyPrint{Out: out, CellWidth: n.CellWidth}
	pp.Title(n.Name)
	if !n.StatsOnly {
		pp.Grid(e.Grid())
	}
	pp.Stats(e.Stats())
	return nil
}
