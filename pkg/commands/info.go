package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about grids and where they are stored.",
		Example: `
grid info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return err
			}
			s := info.Info{
				Config:  svc.Config,
				Service: svc,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
