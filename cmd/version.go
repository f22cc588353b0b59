// =============================================================================
// Employee Records - Version Information
// =============================================================================
//
// This file holds the application version and build information, displayed
// by the --version flag.
//
// OUTPUT:
//   Employee Records
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================
// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/employee-records/cmd.Version=1.0.0'"

// Version is the application version.
// Set at build time using ldflags.
var Version = "1.0.0"

// BuildDate is the date the application was built.
// Set at build time using ldflags.
var BuildDate = "unknown"

// versionTemplate is the cobra template printed for --version.
var versionTemplate = fmt.Sprintf(
	"Employee Records\nVersion:    {{.Version}}\nBuild Date: %s\nGo Version: %s\n",
	BuildDate,
	runtime.Version(),
)
