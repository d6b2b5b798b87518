// =============================================================================
// Commerce CSV - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Commerce CSV CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   commerce consolidate   - Merge several record files into one
//   commerce search        - Search records by name, category and price
//   commerce report        - Write a summary report of a record file
//   commerce version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Record store, codecs and commerce operations
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/commerce-csv/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
