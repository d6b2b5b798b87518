// =============================================================================
// Commerce CSV - Consolidate Command
// =============================================================================
//
// COMMAND USAGE:
//   commerce consolidate --files <name>[,<name>...] [<name>...] [--output <name>]
//
// FLAGS:
//   --files   : Files to merge, in order. Repeatable, comma lists accepted.
//               Names after the flags are appended.
//   --output  : Name of the consolidated file in the output directory
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DefaultConsolidatedFile is the default name of the consolidated file.
const DefaultConsolidatedFile = "consolidated.csv"

// newConsolidateCmd builds the 'consolidate' command.
func newConsolidateCmd(a *app) *cobra.Command {
	var (
		files  []string
		output string
	)

	consolidateCmd := &cobra.Command{
		Use:   "consolidate --files <name>... [--output <name>]",
		Short: "Merge several record files into one",
		Long: `The consolidate command reads every file in order and writes their records,
file by file and row by row, to a single file in the output directory.

All files must share the same columns.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files = append(files, args...)
			if len(files) == 0 {
				return fmt.Errorf("at least one file is required (--files)")
			}

			ops, err := a.operations()
			if err != nil {
				return err
			}
			_, err = ops.Consolidate(files, output)
			return err
		},
	}

	consolidateCmd.Flags().StringSliceVar(
		&files,
		"files",
		nil,
		"Files to consolidate",
	)
	consolidateCmd.Flags().StringVar(
		&output,
		"output",
		DefaultConsolidatedFile,
		"Name of the consolidated file",
	)

	return consolidateCmd
}
