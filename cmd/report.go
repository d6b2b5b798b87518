// =============================================================================
// Commerce CSV - Report Command
// =============================================================================
//
// COMMAND USAGE:
//   commerce report [--file <name>] [--output <name>] [--summary]
//
// FLAGS:
//   --file     : Source file (default data.csv)
//   --output   : Report name in the report directory (default report.txt)
//   --summary  : Append one line per product
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"
)

// DefaultReportFile is the default report name.
const DefaultReportFile = "report.txt"

// newReportCmd builds the 'report' command.
func newReportCmd(a *app) *cobra.Command {
	var (
		file    string
		output  string
		summary bool
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Write a summary report of a record file",
		Long: `The report command counts the products of a file, sums their quantities
and their value (price × quantity), and writes the result to the report
directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := a.operations()
			if err != nil {
				return err
			}
			_, err = ops.Report(file, output, summary)
			return err
		},
	}

	reportCmd.Flags().StringVar(&file, "file", DefaultDataFile, "Source file for the report")
	reportCmd.Flags().StringVar(&output, "output", DefaultReportFile, "Name of the report file")
	reportCmd.Flags().BoolVar(&summary, "summary", false, "Include one line per product")

	return reportCmd
}
