package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/commands/options"
	"tableflip.dev/grid/pkg/runner/create"
)

func addNew(topLevel *cobra.Command) {
	so := &options.SizeOptions{}

	cmd := &cobra.Command{
		Use:   "new <grid>",
		Short: "Create a grid of default cells.",
		Example: `
grid new seating
grid new seating --rows 10 --columns 12
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			rows, columns := so.Resolve(svc.Config.Rows, svc.Config.Columns)
			s := create.Create{
				Service: svc,
				Name:    args[0],
				Rows:    rows,
				Columns: columns,
			}
			return output.HandleError(s.Do(ctx))
		},
	}

	options.AddSizeArgs(cmd, so)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
