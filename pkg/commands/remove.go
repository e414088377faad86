package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <grid>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored grid.",
		Example: `
grid delete seating
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return gridCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return err
			}
			s := remove.Remove{Service: svc, Name: args[0]}
			return s.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
