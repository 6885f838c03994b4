// =============================================================================
// UCaaS Import Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which converts one provisioning
// workbook into MetaSphere import CSVs.
//
// COMMAND USAGE:
//   uccaas-gen generate --file order.xlsx [flags]
//
// FLAGS:
//   --file      : Path to the workbook to process (required)
//   --combined  : Produce one combined export instead of two files
//   --offline   : Skip rate-center lookups (line class codes fall back to
//                 the engineering defaults)
//   --dry-run   : Build everything but write no files
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Resolve the User details / CommandLink / Call flow sheets
//   3. Ingest rows, classify templates, enrich with rate-center data
//   4. Build records and assemble the export buffers
//   5. Write the CSV files and the run summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/commandlink/uccaas-import-gen/internal/config"
	"github.com/commandlink/uccaas-import-gen/internal/generator"
)

// workbookFile is the path to the workbook to process.
var workbookFile string

// combined selects the single-buffer export.
var combined bool

// offline disables the rate-center HTTP lookup.
var offline bool

// dryRun builds everything but writes no output files.
var dryRun bool

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate MetaSphere import CSVs from a provisioning workbook",
	Long: `The generate command reads a customer provisioning workbook and produces
the flat-file import records for the MetaSphere backend.

By default two files are written:
  BG-NumberBlock-Departments-<customer>.csv
  Seats-Devices-Exts-MLHG-<customer>.csv

With --combined, a single <customer>-Meta-Import-Combined.csv is written
instead. Rate-center enrichment is best-effort: lookup failures degrade to
the engineering default line class codes and never fail the run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

// init registers the generate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(
		&workbookFile,
		"file",
		"",
		"Path to the provisioning workbook (.xlsx)",
	)
	generateCmd.MarkFlagRequired("file")

	generateCmd.Flags().BoolVar(
		&combined,
		"combined",
		false,
		"Produce one combined export instead of two files",
	)

	generateCmd.Flags().BoolVar(
		&offline,
		"offline",
		false,
		"Skip rate-center lookups",
	)

	generateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Build everything but write no files",
	)
}

// runGenerate loads the configuration, runs the generator and prints the
// outcome.
func runGenerate() error {
	startTime := time.Now()

	fmt.Println("=== UCaaS Import Generator ===")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gen := generator.New(workbookFile, cfg, generator.Options{
		Combined: combined,
		Offline:  offline,
		DryRun:   dryRun,
	})
	result := gen.Run()

	if !result.Success {
		return fmt.Errorf("processing %s failed: %w", filepath.Base(workbookFile), result.Error)
	}

	fmt.Printf("Customer:      %s (region %s)\n", result.Summary.Customer, result.Summary.Region)
	fmt.Printf("User rows:     %d (%d eligible)\n", result.Summary.UserRows, result.Summary.EligibleRows)
	for _, kind := range []string{
		"Business Group", "Number Block", "Department", "Subscriber",
		"Managed Device", "Intercom Range", "Hunt Group", "Hunt Group Pilot",
	} {
		fmt.Printf("  %-17s %d record(s)\n", kind+":", result.Summary.RecordCounts[kind])
	}

	if dryRun {
		fmt.Println("\nDry run: no files written.")
	} else {
		for _, f := range result.OutputFiles {
			fmt.Printf("  ✓ %s\n", f)
		}
	}

	fmt.Printf("\nTime elapsed: %s\n", time.Since(startTime))
	return nil
}
