// =============================================================================
// Commerce CSV - Search Command
// =============================================================================
//
// COMMAND USAGE:
//   commerce search [--file <name>] --query <text> [--category <text>] [--price-range <min,max>]
//
// FLAGS:
//   --file         : File to search (default data.csv)
//   --query        : Text matched against the product name, ignoring case
//   --category     : Exact category, ignoring case
//   --price-range  : Inclusive price bounds, "min,max"
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/commerce-csv/internal/commerce"
)

// DefaultDataFile is the default source of search and report.
const DefaultDataFile = "data.csv"

// newSearchCmd builds the 'search' command.
func newSearchCmd(a *app) *cobra.Command {
	var (
		file  string
		query commerce.Query
	)

	searchCmd := &cobra.Command{
		Use:   "search --query <text>",
		Short: "Search records by name, category and price",
		Long: `The search command prints the records whose name contains the query.
The category and price range filters narrow the result further, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := a.operations()
			if err != nil {
				return err
			}
			_, err = ops.Search(file, query)
			return err
		},
	}

	searchCmd.Flags().StringVar(&file, "file", DefaultDataFile, "File to search")
	searchCmd.Flags().StringVar(&query.Text, "query", "", "Text to find in the product name")
	searchCmd.Flags().StringVar(&query.Category, "category", "", "Keep only this category")
	searchCmd.Flags().StringVar(&query.PriceRange, "price-range", "", "Keep prices within min,max")
	if err := searchCmd.MarkFlagRequired("query"); err != nil {
		panic(err)
	}

	return searchCmd
}
