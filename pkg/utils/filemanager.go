// =============================================================================
// Employee Records - File Utilities
// =============================================================================
//
// This module provides small file helpers shared by the converter:
//   - Output file naming with placeholders
//   - Run identifiers for log correlation
//   - File existence checks
//
// =============================================================================

package utils

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE NAMING UTILITIES
// =============================================================================

// GenerateOutputFileName expands the placeholders of an output path.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//   - params: Additional placeholder values, keyed without braces. They
//             take precedence over the built-in placeholders.
//
// RETURNS:
//   - The generated file name. A format without placeholders is returned
//     unchanged.
//
// EXAMPLE:
//   format: "payroll_{date}.json"
//   output: "payroll_20240115.json"
func GenerateOutputFileName(format string, params map[string]string) string {
	if !strings.Contains(format, "{") {
		return format
	}

	now := time.Now()

	// Build replacements.
	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	// Add custom params.
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	// Apply replacements.
	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// NewRunID returns an identifier that tags every log entry of one run.
func NewRunID() string {
	return uuid.New().String()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
