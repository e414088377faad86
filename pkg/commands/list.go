package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/commands/options"
	"tableflip.dev/grid/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored grids with their size and statistics.",
		Example: `
grid list
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := list.List{Service: svc, JSON: output.JSON}
			return output.HandleError(s.Do(ctx))
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
