// =============================================================================
// Employee Records - CSV Parser Module
// =============================================================================
//
// This module is responsible for reading employee CSV files. The format is
// deliberately simple:
//   - The first line holds comma-separated field names (the header)
//   - Every following line holds comma-separated values, aligned by position
//   - There is no quoting or escaping; every comma separates two fields
//
// FAILURE POLICY:
//   Anticipated failures are reported with a fixed diagnostic line on the
//   parser's output (standard output by default) and recovered with a safe
//   default. The Read function exposes the underlying error for callers that
//   need it; ReadFile collapses every I/O failure into one message.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ginjaninja78/employee-records/internal/types"
	"go.uber.org/zap"
)

// =============================================================================
// DIAGNOSTICS AND ERRORS
// =============================================================================

const (
	// MsgEmptyLine is printed when a zero-length line is split.
	MsgEmptyLine = "Line is empty."

	// MsgUnreadable is printed for any failure to open or read an input file.
	MsgUnreadable = "No such file or directory."
)

var (
	// ErrEmptyLine tags a zero-length line.
	ErrEmptyLine = errors.New("line is empty")

	// ErrUnreadable tags every failure to open or read an input file.
	ErrUnreadable = errors.New("file is unreadable")
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed CSV file.
type CSVData struct {
	// Headers contains the field names from the first line.
	Headers []string

	// Rows contains one record per line after the header.
	Rows []*types.Record

	// SourceFile is the path to the source CSV file.
	SourceFile string

	// RowCount is the number of records read.
	RowCount int

	// ColumnCount is the number of header fields.
	ColumnCount int
}

// =============================================================================
// PARSER
// =============================================================================

// Parser reads CSV files and reports anticipated failures to Out.
type Parser struct {
	// Out receives the diagnostic lines.
	Out io.Writer

	// Logger receives operational log entries.
	Logger *zap.Logger
}

// NewParser creates a Parser. A nil out writes diagnostics to standard output;
// a nil logger disables logging.
func NewParser(out io.Writer, logger *zap.Logger) *Parser {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{Out: out, Logger: logger}
}

// defaultParser backs the package-level helpers.
var defaultParser = NewParser(nil, nil)

// ParseLine splits a line using a Parser that writes to standard output.
func ParseLine(line string) []string {
	return defaultParser.ParseLine(line)
}

// ReadFile reads a file using a Parser that writes to standard output.
func ReadFile(filePath string) []*types.Record {
	return defaultParser.ReadFile(filePath)
}

// =============================================================================
// LINE SPLITTING
// =============================================================================

// SplitLine splits a line on commas. The last token has its trailing
// whitespace, including the line terminator, removed. Other tokens are
// returned unchanged.
//
// RETURNS:
//   - The tokens, in order.
//   - ErrEmptyLine if the line has zero length.
//
// Example:
//   "id,name,rate\n" -> ["id", "name", "rate"]
//   "\n"             -> [""]
func SplitLine(line string) ([]string, error) {
	if line == "" {
		return []string{}, ErrEmptyLine
	}

	tokens := strings.Split(line, ",")
	last := len(tokens) - 1
	tokens[last] = strings.TrimRightFunc(tokens[last], unicode.IsSpace)

	return tokens, nil
}

// ParseLine splits a line on commas. A zero-length line is reported with
// MsgEmptyLine and yields an empty slice.
func (p *Parser) ParseLine(line string) []string {
	tokens, err := SplitLine(line)
	if errors.Is(err, ErrEmptyLine) {
		fmt.Fprintln(p.Out, MsgEmptyLine)
	}
	return tokens
}

// =============================================================================
// RECORD BUILDING
// =============================================================================

// PopulateFields pairs field names with values by position.
//
// Pairing stops at the shorter of the two slices: extra values are dropped
// and extra field names get no entry. A repeated field name keeps its first
// position and takes the later value.
func PopulateFields(fields []string, data []string) *types.Record {
	n := min(len(fields), len(data))

	record := types.NewRecord()
	for i := 0; i < n; i++ {
		record.Set(fields[i], data[i])
	}

	return record
}

// =============================================================================
// FILE READING
// =============================================================================

// Read parses a CSV file.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - The parsed data. On a read failure part way through the file this holds
//     the records built before the failure, for logging only; ReadFile and
//     the converter discard them.
//   - An error wrapping ErrUnreadable if the file cannot be opened or read.
//
// PARSING PROCESS:
//   1. Open the file
//   2. Split the first line into the header
//   3. Split every following line and pair it with the header
func (p *Parser) Read(filePath string) (*CSVData, error) {
	data := &CSVData{
		Headers:    []string{},
		Rows:       []*types.Record{},
		SourceFile: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return data, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	// The header line. An empty file yields an empty header and no rows.
	header, err := readLine(reader)
	if err != nil && err != io.EOF {
		return data, fmt.Errorf("%w: failed to read header: %w", ErrUnreadable, err)
	}

	data.Headers = p.ParseLine(header)
	data.ColumnCount = len(data.Headers)

	for err == nil {
		var line string
		line, err = readLine(reader)
		if err != nil && err != io.EOF {
			return data, fmt.Errorf("%w: failed to read line %d: %w", ErrUnreadable, data.RowCount+2, err)
		}

		// readLine returns an empty string only at end of file.
		if line == "" {
			break
		}

		data.Rows = append(data.Rows, PopulateFields(data.Headers, p.ParseLine(line)))
		data.RowCount++
	}

	p.Logger.Debug("Read CSV file",
		zap.String("path", filePath),
		zap.Int("columns", data.ColumnCount),
		zap.Int("rows", data.RowCount))

	return data, nil
}

// ReadFile parses a CSV file and returns its records. Any failure to open or
// read the file is reported with MsgUnreadable and yields no records, even
// when some lines were read before the failure.
func (p *Parser) ReadFile(filePath string) []*types.Record {
	data, err := p.Read(filePath)
	if err != nil {
		p.Logger.Debug("Failed to read CSV file",
			zap.String("path", filePath),
			zap.Int("discarded_rows", data.RowCount),
			zap.Error(err))
		fmt.Fprintln(p.Out, MsgUnreadable)
		return []*types.Record{}
	}
	return data.Rows
}

// errInvalidEncoding is returned for lines that are not valid UTF-8.
var errInvalidEncoding = errors.New("invalid UTF-8 text")

// readLine reads one line including its terminator. At end of file it returns
// the remaining text (possibly empty) together with io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if !utf8.ValidString(line) {
		return "", errInvalidEncoding
	}
	return line, err
}
