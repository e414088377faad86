package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/editor"
	"tableflip.dev/grid/pkg/grid"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as {"error": ..., "code": ...} when JSON output is
// on and swallows it, so scripts read one JSON document either way.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		if code := ErrorCode(err); code != "" {
			out["code"] = code
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}

// ErrorCode names the known error kinds for machine readers.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return "not_found"
	case errors.Is(err, app.ErrExists):
		return "exists"
	case errors.Is(err, editor.ErrCapabilityDisabled):
		return "disabled"
	case errors.Is(err, grid.ErrDimensionOutOfRange):
		return "dimension_out_of_range"
	case errors.Is(err, grid.ErrNotRectangular), errors.Is(err, grid.ErrSelectionTooSmall):
		return "invalid_merge"
	case errors.Is(err, grid.ErrInvalidCellID), errors.Is(err, grid.ErrOutOfBounds):
		return "invalid_cell"
	}
	return ""
}
