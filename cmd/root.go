// =============================================================================
// UCaaS Import Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'generate', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (uccaas-gen)
//   ├── generateCmd (uccaas-gen generate)
//   └── versionCmd (uccaas-gen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the optional .env file for environment overrides
//   3. Initializing logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/commandlink/uccaas-import-gen/internal/logging"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug-level logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "uccaas-gen",
	Short: "UCaaS Import Generator - Turn provisioning workbooks into MetaSphere import CSVs",
	Long: `UCaaS Import Generator reads a customer provisioning order workbook
(User details, CommandLink/Engineering and Call flow sheets) and produces
the flat-file import records the MetaSphere provisioning backend consumes:
Business Group, Number Block, Department, Subscriber, Managed Device,
Intercom Code Range, Hunt Group and Hunt Group Pilot sections.

Example Usage:
  uccaas-gen generate --file order.xlsx            # Two-file export
  uccaas-gen generate --file order.xlsx --combined # Single combined export
  uccaas-gen generate --file order.xlsx --offline  # Skip rate-center lookups`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags and pre-run initialization.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)

	cobra.OnInitialize(initEnv, initLogging)
}

// initEnv loads an optional .env file so the rate-center endpoint and
// timeout can be overridden per environment without editing config.yaml.
// A missing .env is not an error.
func initEnv() {
	_ = godotenv.Load()
}

// initLogging configures the global zerolog logger before any command runs.
func initLogging() {
	logging.Init(verbose)
}
