// =============================================================================
// Commerce CSV - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (commerce)
//   ├── consolidateCmd (commerce consolidate)
//   ├── searchCmd      (commerce search)
//   ├── reportCmd      (commerce report)
//   └── versionCmd     (commerce version)
//
// The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration and building the logger for each operation
//   3. Mapping failures to messages on stderr and an exit code
//
// Commands are built by constructors rather than package globals so that
// every invocation starts from fresh flag state.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/commerce-csv/internal/commerce"
	"github.com/ginjaninja78/commerce-csv/internal/config"
	"github.com/ginjaninja78/commerce-csv/internal/logging"
	"github.com/ginjaninja78/commerce-csv/internal/store"
	"github.com/ginjaninja78/commerce-csv/internal/types"
)

// errNoCommand is returned when the root command runs without a subcommand.
// Help has already been printed; no message follows.
var errNoCommand = errors.New("no command given")

// operations is the set of commerce operations the commands dispatch to.
// *commerce.Service implements it.
type operations interface {
	Consolidate(files []string, output string) (string, error)
	Search(file string, q commerce.Query) (types.Sequence, error)
	Report(file, output string, summary bool) (string, error)
}

// operationsFactory builds the operations for one invocation.
type operationsFactory func(cfg *config.MainConfig, out io.Writer, logger commerce.Logger) operations

// newCommerceService wires the record store and the commerce service.
func newCommerceService(cfg *config.MainConfig, out io.Writer, logger commerce.Logger) operations {
	st := store.New(store.DirsFromConfig(cfg), cfg.CSVSettings)
	return commerce.New(st, commerce.Options{Out: out, Logger: logger})
}

// =============================================================================
// APPLICATION STATE
// =============================================================================

// app holds the state shared by the commands of one invocation.
type app struct {
	// cfgFile holds the path to the main configuration file.
	cfgFile string

	// verbose forces debug logging.
	verbose bool

	stdout io.Writer
	stderr io.Writer

	factory  operationsFactory
	closeLog func() error
}

// operations loads the configuration, builds the logger and returns the
// operations to run.
func (a *app) operations() (operations, error) {
	cfg, err := config.LoadMainConfig(a.cfgFile)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(a.stderr, logging.OptionsFromConfig(cfg, a.verbose))
	if err != nil {
		return nil, err
	}
	a.closeLog = closeLog

	logger.Debug("Loaded configuration",
		"config", a.cfgFile,
		"input_dir", cfg.InputDir,
		"output_dir", cfg.OutputDir,
		"report_dir", cfg.ReportPath(),
	)

	return a.factory(cfg, a.stdout, logger), nil
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commerce",
		Short: "Commerce CSV - Consolidate, search and report on product record files",
		Long: `Commerce CSV is a command-line tool for product record files.

Files are looked up in the output directory first, then in the input
directory. Consolidated files are written to the output directory and
reports to its report subdirectory.

Example Usage:
  commerce consolidate --files stock1.csv,stock2.csv --output consolidated.csv
  commerce search --file consolidated.csv --query phone --price-range 100,500
  commerce report --file consolidated.csv --summary`,

		SilenceErrors: true,
		SilenceUsage:  true,

		// Without a subcommand, print the help and fail.
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return err
			}
			return errNoCommand
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the main configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&a.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.AddCommand(
		newConsolidateCmd(a),
		newSearchCmd(a),
		newReportCmd(a),
		newVersionCmd(),
	)

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI against the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWith(args, stdout, stderr, newCommerceService)
}

func runWith(args []string, stdout, stderr io.Writer, factory operationsFactory) int {
	a := &app{stdout: stdout, stderr: stderr, factory: factory}

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if a.closeLog != nil {
		if closeErr := a.closeLog(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close log file: %w", closeErr)
		}
	}

	return exitCode(stderr, err)
}

// exitCode prints err and maps it to an exit status.
//
// FORMAT:
//   Erreur : <message>            domain failures (not found, processing)
//   Erreur imprévue : <message>   anything else
func exitCode(stderr io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoCommand):
		return 1
	case errors.Is(err, types.ErrDomain):
		fmt.Fprintf(stderr, "Erreur : %v\n", err)
		return 1
	default:
		fmt.Fprintf(stderr, "Erreur imprévue : %v\n", err)
		return 1
	}
}
