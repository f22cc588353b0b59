// =============================================================================
// Employee Records - JSON Writer Module
// =============================================================================
//
// This module is responsible for writing the collected employee records to a
// JSON file, and for loading such a file back.
//
// JSON STRUCTURE:
//   The output is an array of objects, one object per record, with keys in
//   the record's field order:
//
//   [
//       {
//           "id": "1",
//           "name": "Alice Johnson",
//           "hours_worked": "160",
//           "hourly_rate": "50",
//           "payout": 8000
//       }
//   ]
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/employee-records/internal/types"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

// GenerateOptions contains options for JSON generation.
type GenerateOptions struct {
	// Indent is the number of spaces per nesting level. Zero writes the
	// array on a single line.
	// Default: 4
	Indent int

	// EscapeHTML escapes <, > and & inside strings.
	// Default: false
	EscapeHTML bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:     DefaultIndent,
		EscapeHTML: false,
	}
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate encodes the records with the default options.
func Generate(records []*types.Record) ([]byte, error) {
	return GenerateWithOptions(records, DefaultGenerateOptions())
}

// GenerateWithOptions encodes the records as a JSON array.
func GenerateWithOptions(records []*types.Record, options GenerateOptions) ([]byte, error) {
	if records == nil {
		records = []*types.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(options.EscapeHTML)
	if options.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", options.Indent))
	}

	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}

	// Encode terminates the document with a newline; the file does not.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write encodes the records and writes them to path, replacing any existing
// file.
//
// PARAMETERS:
//   - path: The output file path.
//   - records: The records to write.
//   - options: The generation options.
//
// RETURNS:
//   - An error if encoding or writing fails.
func Write(path string, records []*types.Record, options GenerateOptions) error {
	data, err := GenerateWithOptions(records, options)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a JSON array of objects written by Write.
func Load(path string) ([]*types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var records []*types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	return records, nil
}
