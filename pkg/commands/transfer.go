package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	var sheet string
	cmd := &cobra.Command{
		Use:   "export <grid> <file.xlsx>",
		Short: "Write a grid to an xlsx workbook.",
		Example: `
grid export seating seating.xlsx
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return err
			}
			s := transfer.Export{Service: svc, Name: args[0], Path: args[1], Sheet: sheet}
			return s.Do(ctx)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name, defaults to the grid name.")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var force bool
	cmd := &cobra.Command{
		Use:   "import <grid> <file.xlsx>",
		Short: "Read a grid from the first sheet of an xlsx workbook.",
		Long: `Read a grid from the first sheet of an xlsx workbook.

Cell values become cell text, grey filled cells are checked and merged
ranges that fit the grid become merge groups.`,
		Example: `
grid import seating seating.xlsx
grid import seating seating.xlsx --force
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, svc, err := load()
			if err != nil {
				return err
			}
			s := transfer.Import{Service: svc, Name: args[0], Path: args[1], Force: force}
			return s.Do(ctx)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing grid.")

	topLevel.AddCommand(cmd)
}
