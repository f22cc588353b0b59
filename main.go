// =============================================================================
// Employee Records - Main Entry Point
// =============================================================================
//
// This is the main entry point for the employee records CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   employees <filename>... [--report payout]
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains the CLI command definition (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/employee-records/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// runs the Cobra CLI and exits with its status code.
func main() {
	cmd.Execute()
}
