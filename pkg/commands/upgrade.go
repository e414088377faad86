package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

const installPath = "tableflip.dev/grid"

func addUpgrade(topLevel *cobra.Command) {
	target := "latest"
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade grid cli with go install.",
		Example: `
grid upgrade
grid upgrade --to v0.2.0
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ex := exec.CommandContext(cmd.Context(), "go", "install", installPath+"@"+target)
			ex.Stdout = os.Stdout
			ex.Stderr = os.Stderr
			if err := ex.Run(); err != nil {
				return output.HandleError(fmt.Errorf("upgrade to %s: %w", target, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ex.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "to", target, "Version to install.")

	topLevel.AddCommand(cmd)
}
