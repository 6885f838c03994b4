// =============================================================================
// UCaaS Import Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the UCaaS Import Generator CLI. It turns a
// customer provisioning workbook (.xlsx) into MetaSphere flat-file import
// records (CSV), and delegates all command handling to the cmd package.
//
// USAGE:
//   uccaas-gen generate --file order.xlsx   - Generate import CSVs for one workbook
//   uccaas-gen version                      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/commandlink/uccaas-import-gen/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
