// Package list prints the stored grids.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/printers"
	"tableflip.dev/grid/pkg/store"
)

type List struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

type jsonSummary struct {
	Name string `json:"name"`
	store.Attributes
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	sums, err := n.Service.Summaries(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		js := make([]jsonSummary, 0, len(sums))
		for _, s := range sums {
			js = append(js, jsonSummary{Name: s.Name, Attributes: s.Attributes})
		}
		b, err := json.MarshalIndent(js, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}

	names := make([]string, 0, len(sums))
	attrs := make([]store.Attributes, 0, len(sums))
	for _, s := range sums {
		names = append(names, s.Name)
		attrs = append(attrs, s.Attributes)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Title("Grids")
	pp.Summaries(names, attrs)
	return nil
}
