package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui <grid>",
		Short: "open the text-based grid editor",
		Example: `
grid ui seating
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return gridCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, svc, err := load()
			if err != nil {
				return err
			}
			i := ui.UI{Service: svc, Name: args[0]}
			return i.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
