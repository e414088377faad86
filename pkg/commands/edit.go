package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/grid/pkg/commands/options"
	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/runner/edit"
)

// editCommand builds a command that applies one editor operation. op
// receives the arguments after the grid name.
func editCommand(use, short, example string, args cobra.PositionalArgs, op func(args []string) (edit.Op, error)) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    args,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return gridCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			o, err := op(args[1:])
			if err != nil {
				return err
			}
			ctx, svc, err := load()
			if err != nil {
				return err
			}
			e := edit.Edit{
				Service: svc,
				Name:    args[0],
				Op:      o,
				Quiet:   quiet,
			}
			return e.Do(ctx)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the grid afterwards.")
	return cmd
}

func addEdit(topLevel *cobra.Command) {
	topLevel.AddCommand(
		editCommand("set <grid> <cell> <value>", "Set the text of a cell and its merge group.", `
grid set seating B2 A-07
grid set seating cell_2_2 A-07
`, cobra.ExactArgs(3), func(args []string) (edit.Op, error) {
			p, err := options.ParseCell(args[0])
			if err != nil {
				return nil, err
			}
			return edit.SetValue(p, args[1]), nil
		}),

		editCommand("check <grid> <cell>", "Toggle the checkbox of a cell and its merge group.", `
grid check seating B2
`, cobra.ExactArgs(2), func(args []string) (edit.Op, error) {
			p, err := options.ParseCell(args[0])
			if err != nil {
				return nil, err
			}
			return edit.Toggle(p), nil
		}),

		editCommand("merge <grid> <cells>...", "Merge a rectangular block of cells.", `
grid merge seating A1:B2
grid merge seating A1 A2 A3
`, cobra.MinimumNArgs(2), func(args []string) (edit.Op, error) {
			ps, err := parseRanges(args)
			if err != nil {
				return nil, err
			}
			return edit.Merge(ps), nil
		}),

		editCommand("unmerge <grid> <cell>", "Dissolve the merge group containing a cell.", `
grid unmerge seating A1
`, cobra.ExactArgs(2), func(args []string) (edit.Op, error) {
			p, err := options.ParseCell(args[0])
			if err != nil {
				return nil, err
			}
			return edit.Unmerge(p), nil
		}),

		editCommand("blank <grid> <cells>...", "Hide the values of cells.", `
grid blank seating C1:C9
`, cobra.MinimumNArgs(2), func(args []string) (edit.Op, error) {
			ps, err := parseRanges(args)
			if err != nil {
				return nil, err
			}
			return edit.Blank(ps, true), nil
		}),

		editCommand("unblank <grid> <cells>...", "Show the values of blanked cells.", `
grid unblank seating C1:C9
`, cobra.MinimumNArgs(2), func(args []string) (edit.Op, error) {
			ps, err := parseRanges(args)
			if err != nil {
				return nil, err
			}
			return edit.Blank(ps, false), nil
		}),

		editCommand("resize <grid> <rows> <columns>", "Change the size of a grid, keeping what still fits.", `
grid resize seating 8 10
`, cobra.ExactArgs(3), func(args []string) (edit.Op, error) {
			rows, columns, err := parseSize(args)
			if err != nil {
				return nil, err
			}
			return edit.Resize(rows, columns), nil
		}),

		editCommand("add-row <grid>", "Append a row of default cells.", `
grid add-row seating
`, cobra.ExactArgs(1), func([]string) (edit.Op, error) {
			return edit.AddRow(), nil
		}),

		editCommand("add-column <grid>", "Append a column of default cells.", `
grid add-column seating
`, cobra.ExactArgs(1), func([]string) (edit.Op, error) {
			return edit.AddColumn(), nil
		}),

		editCommand("generate <grid> <rows> <columns>", "Replace a grid with a fresh one of default cells.", `
grid generate seating 5 5
`, cobra.ExactArgs(3), func(args []string) (edit.Op, error) {
			rows, columns, err := parseSize(args)
			if err != nil {
				return nil, err
			}
			return edit.Generate(rows, columns), nil
		}),
	)
}

func parseRanges(refs []string) ([]grid.Position, error) {
	var out []grid.Position
	for _, ref := range refs {
		ps, err := options.ParseRange(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	if len(out) == 0 {
		return nil, errors.New("no cells given")
	}
	return out, nil
}

func parseSize(args []string) (int, int, error) {
	var rows, columns int
	if _, err := fmt.Sscan(args[0], &rows); err != nil {
		return 0, 0, fmt.Errorf("rows: %w", err)
	}
	if _, err := fmt.Sscan(args[1], &columns); err != nil {
		return 0, 0, fmt.Errorf("columns: %w", err)
	}
	return rows, columns, nil
}
