package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/commands/options"
	"tableflip.dev/grid/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	var width int
	cmd := &cobra.Command{
		Use:   "show <grid>",
		Short: "Print a grid and its statistics.",
		Example: `
grid show seating
grid show seating --json
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return gridCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{
				Service:   svc,
				Name:      args[0],
				JSON:      output.JSON,
				CellWidth: width,
			}
			return output.HandleError(s.Do(ctx))
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Cell width in characters.")
	options.AddOutputArg(cmd, output)

	stats := &cobra.Command{
		Use:   "stats <grid>",
		Short: "Print the statistics of a grid.",
		Example: `
grid stats seating
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{
				Service:   svc,
				Name:      args[0],
				JSON:      output.JSON,
				StatsOnly: true,
			}
			return output.HandleError(s.Do(ctx))
		},
	}
	options.AddOutputArg(stats, output)

	topLevel.AddCommand(cmd, stats)
}
