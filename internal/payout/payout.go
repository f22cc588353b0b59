// =============================================================================
// Employee Records - Payout Report
// =============================================================================
//
// This module computes the payout of an employee: hours worked multiplied by
// a rate-like field. The rate field is not fixed; it is located by matching a
// regular expression against the record's field names.
//
// FIELD SEARCH:
//   Every field name is searched (not full-matched) with the pattern, in the
//   record's field order. The matched text of every matching field name is
//   concatenated. One matching field yields the matched part of its name; two
//   matching fields yield a concatenation that names no field, which the
//   calculator then reports as a missing field.
//
// ARITHMETIC:
//   Values are converted to arbitrary-precision integers, so products never
//   overflow. A payout that fits in an int is stored as an int; a larger one
//   is stored as a *big.Int, which still encodes as a JSON number.
//
// FAILURE POLICY:
//   A missing field and a non-integer value are reported with a fixed
//   diagnostic line and yield a payout of zero.
//
// =============================================================================

package payout

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"regexp"
	"strings"

	"github.com/ginjaninja78/employee-records/internal/types"
	"go.uber.org/zap"
)

const (
	// ReportName is the report that attaches a payout to every record.
	// It is also the name of the attached field.
	ReportName = "payout"

	// DefaultPattern recognizes the rate-like field names.
	DefaultPattern = `hourly_rate|rate|salary`

	// HoursField is the field holding the hours worked.
	HoursField = "hours_worked"
)

const (
	// MsgMissingField is printed when the hours or rate field is absent.
	MsgMissingField = "Rate field is missing."

	// MsgInvalidType is printed when a value is not an integer.
	MsgInvalidType = "Invalid field type."
)

var (
	// ErrMissingField tags a lookup of a field the record does not have.
	ErrMissingField = errors.New("field is missing")

	// ErrInvalidType tags a value that cannot be converted to an integer.
	ErrInvalidType = errors.New("invalid field type")
)

// =============================================================================
// FIELD SEARCH
// =============================================================================

// SearchField returns the concatenated matches of pattern over the record's
// field names, or "" if none match.
func SearchField(pattern *regexp.Regexp, record *types.Record) string {
	var sb strings.Builder
	for _, name := range record.Keys() {
		if loc := pattern.FindStringIndex(name); loc != nil {
			sb.WriteString(name[loc[0]:loc[1]])
		}
	}
	return sb.String()
}

// SearchForField compiles pattern and calls SearchField.
func SearchForField(pattern string, record *types.Record) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid rate pattern: %w", err)
	}
	return SearchField(re, record), nil
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes payouts with a fixed rate pattern.
type Calculator struct {
	pattern *regexp.Regexp

	// Out receives the diagnostic lines.
	Out io.Writer

	// Logger receives operational log entries.
	Logger *zap.Logger
}

// NewCalculator compiles pattern and returns a Calculator. A nil out writes
// diagnostics to standard output; a nil logger disables logging.
func NewCalculator(pattern string, out io.Writer, logger *zap.Logger) (*Calculator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid rate pattern: %w", err)
	}
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{pattern: re, Out: out, Logger: logger}, nil
}

// Pattern returns the rate pattern.
func (c *Calculator) Pattern() string {
	return c.pattern.String()
}

// Compute returns hours worked multiplied by the rate.
//
// The lookups and conversions happen in this order, and the first failure
// is returned:
//   1. look up hours_worked
//   2. convert hours_worked
//   3. look up the rate field found by SearchField
//   4. convert the rate
//
// RETURNS:
//   - The payout, or 0 on failure.
//   - An error wrapping ErrMissingField or ErrInvalidType.
func (c *Calculator) Compute(record *types.Record) (*big.Int, error) {
	field := SearchField(c.pattern, record)

	hours, err := intField(record, HoursField)
	if err != nil {
		return new(big.Int), err
	}

	rate, err := intField(record, field)
	if err != nil {
		return new(big.Int), err
	}

	return new(big.Int).Mul(hours, rate), nil
}

// Calculate returns the payout of a record. Failures are reported on Out
// and yield zero.
func (c *Calculator) Calculate(record *types.Record) *big.Int {
	payout, _ := c.report(record)
	return payout
}

// Apply attaches a payout field to every record and returns the number of
// records whose payout was computed without a failure.
func (c *Calculator) Apply(records []*types.Record) int {
	computed := 0
	for _, record := range records {
		payout, err := c.report(record)
		if err == nil {
			computed++
		}
		record.Set(ReportName, FieldValue(payout))
	}
	return computed
}

// report computes a payout and prints the diagnostic for a failure.
func (c *Calculator) report(record *types.Record) (*big.Int, error) {
	payout, err := c.Compute(record)
	switch {
	case errors.Is(err, ErrMissingField):
		fmt.Fprintln(c.Out, MsgMissingField)
	case errors.Is(err, ErrInvalidType):
		fmt.Fprintln(c.Out, MsgInvalidType)
	}
	if err != nil {
		c.Logger.Debug("Payout not computed", zap.Error(err))
	}
	return payout, err
}

// FieldValue returns the value stored in a record for a payout: an int when
// it fits, the *big.Int otherwise.
func FieldValue(payout *big.Int) any {
	if payout.IsInt64() {
		if n := payout.Int64(); n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
	}
	return payout
}

// CalculatePayout compiles pattern and returns the payout of a record,
// reporting failures on standard output. The error is set only for an
// invalid pattern.
func CalculatePayout(pattern string, record *types.Record) (*big.Int, error) {
	c, err := NewCalculator(pattern, nil, nil)
	if err != nil {
		return new(big.Int), err
	}
	return c.Calculate(record), nil
}

// =============================================================================
// VALUE CONVERSION
// =============================================================================

// integerText matches base-10 integer text. Underscores may separate digits.
var integerText = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)

// intField looks up a field and converts its value to an integer.
func intField(record *types.Record, name string) (*big.Int, error) {
	value, ok := record.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, name)
	}

	n, err := toInt(value)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidType, name, err)
	}
	return n, nil
}

// toInt converts a field value to an integer of any size.
//
// CONVERSIONS:
//   - string: surrounding whitespace is trimmed, an optional sign is allowed,
//     and single underscores may separate digits ("1_000")
//   - integers: returned as is
//   - float64: truncated toward zero; NaN and infinities are rejected
//   - bool: 1 or 0
func toInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if !integerText.MatchString(text) {
			return nil, fmt.Errorf("not an integer: %q", v)
		}
		n, ok := new(big.Int).SetString(strings.ReplaceAll(text, "_", ""), 10)
		if !ok {
			return nil, fmt.Errorf("not an integer: %q", v)
		}
		return n, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case *big.Int:
		return new(big.Int).Set(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("not a finite number: %v", v)
		}
		n, _ := big.NewFloat(v).Int(nil)
		return n, nil
	case bool:
		if v {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", value)
	}
}
