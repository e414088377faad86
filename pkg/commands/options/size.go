package options

import (
	"github.com/spf13/cobra"
)

// SizeOptions
type SizeOptions struct {
	Rows    int
	Columns int
}

// AddSizeArgs registers --rows and --columns. Zero means "use the default".
func AddSizeArgs(cmd *cobra.Command, o *SizeOptions) {
	cmd.Flags().IntVarP(&o.Rows, "rows", "r", 0,
		"Number of rows, 1 to 100.")
	cmd.Flags().IntVarP(&o.Columns, "columns", "c", 0,
		"Number of columns, 1 to 100.")
}

// Resolve fills unset dimensions from the defaults.
func (o *SizeOptions) Resolve(rows, columns int) (int, int) {
	r, c := o.Rows, o.Columns
	if r == 0 {
		r = rows
	}
	if c == 0 {
		c = columns
	}
	return r, c
}
