package payout

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ginjaninja78/employee-records/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestCalculator(t *testing.T, pattern string) (*Calculator, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c, err := NewCalculator(pattern, &out, zaptest.NewLogger(t))
	require.NoError(t, err)
	return c, &out
}

func record(fields ...types.Field) *types.Record {
	return types.NewRecord(fields...)
}

func TestCalculatePayout(t *testing.T) {
	for _, key := range []string{"hourly_rate", "rate", "salary"} {
		t.Run(key, func(t *testing.T) {
			c, out := newTestCalculator(t, DefaultPattern)

			got := c.Calculate(record(
				types.Field{Name: key, Value: 60},
				types.Field{Name: HoursField, Value: 150},
			))

			assert.Equal(t, "9000", got.String())
			assert.Empty(t, out.String())
		})
	}
}

func TestCalculatePayoutFromText(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)

	got := c.Calculate(record(
		types.Field{Name: "id", Value: "1"},
		types.Field{Name: HoursField, Value: "160"},
		types.Field{Name: "hourly_rate", Value: " 50"},
	))

	assert.Equal(t, "8000", got.String())
	assert.Empty(t, out.String())
}

func TestCalculatePayoutWithMissingField(t *testing.T) {
	c, out := newTestCalculator(t, `income`)

	got := c.Calculate(record(
		types.Field{Name: "rate", Value: 60},
		types.Field{Name: HoursField, Value: 150},
	))

	assert.Zero(t, got.Sign())
	assert.Equal(t, "Rate field is missing.\n", out.String())
}

func TestCalculatePayoutWithInvalidField(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)

	got := c.Calculate(record(
		types.Field{Name: "rate", Value: "a"},
		types.Field{Name: HoursField, Value: 150},
	))

	assert.Zero(t, got.Sign())
	assert.Equal(t, "Invalid field type.\n", out.String())
}

func TestCalculatePayoutMissingHours(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)

	got := c.Calculate(record(types.Field{Name: "rate", Value: "a"}))

	assert.Zero(t, got.Sign())
	assert.Equal(t, "Rate field is missing.\n", out.String())
}

func TestCalculatePayoutInvalidHoursBeforeMissingRate(t *testing.T) {
	c, out := newTestCalculator(t, `income`)

	got := c.Calculate(record(types.Field{Name: HoursField, Value: "many"}))

	assert.Zero(t, got.Sign())
	assert.Equal(t, "Invalid field type.\n", out.String())
}

func TestCalculatePayoutMultipleMatches(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)

	got := c.Calculate(record(
		types.Field{Name: "rate", Value: "10"},
		types.Field{Name: "salary", Value: "20"},
		types.Field{Name: HoursField, Value: "5"},
	))

	assert.Zero(t, got.Sign())
	assert.Equal(t, "Rate field is missing.\n", out.String())
}

func TestCompute(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)

	_, err := c.Compute(record(types.Field{Name: HoursField, Value: "1"}))
	assert.True(t, errors.Is(err, ErrMissingField))

	_, err = c.Compute(record(
		types.Field{Name: HoursField, Value: "1"},
		types.Field{Name: "salary", Value: "1.5"},
	))
	assert.True(t, errors.Is(err, ErrInvalidType))

	got, err := c.Compute(record(
		types.Field{Name: HoursField, Value: "-2"},
		types.Field{Name: "salary", Value: "+7"},
	))
	require.NoError(t, err)
	assert.Equal(t, "-14", got.String())

	assert.Empty(t, out.String(), "Compute never prints")
}

func TestComputeLargeValues(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)

	got, err := c.Compute(record(
		types.Field{Name: HoursField, Value: "99999999999"},
		types.Field{Name: "rate", Value: "99999999999"},
	))
	require.NoError(t, err)
	assert.Equal(t, "9999999999800000000001", got.String())

	got, err = c.Compute(record(
		types.Field{Name: HoursField, Value: "2"},
		types.Field{Name: "rate", Value: "123456789012345678901234567890"},
	))
	require.NoError(t, err)
	assert.Equal(t, "246913578024691357802469135780", got.String())

	assert.Empty(t, out.String())
}

func TestComputeDigitSeparators(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)

	got, err := c.Compute(record(
		types.Field{Name: HoursField, Value: "2"},
		types.Field{Name: "rate", Value: "1_000"},
	))

	require.NoError(t, err)
	assert.Equal(t, "2000", got.String())
	assert.Empty(t, out.String())
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{name: "text", value: "42", want: "42"},
		{name: "padded text", value: " 42\n", want: "42"},
		{name: "signed text", value: "-7", want: "-7"},
		{name: "digit separators", value: "1_000", want: "1000"},
		{name: "huge text", value: "123456789012345678901234567890", want: "123456789012345678901234567890"},
		{name: "int", value: 7, want: "7"},
		{name: "int64", value: int64(8), want: "8"},
		{name: "big int", value: big.NewInt(11), want: "11"},
		{name: "float truncates", value: 9.9, want: "9"},
		{name: "negative float truncates", value: -9.9, want: "-9"},
		{name: "bool", value: true, want: "1"},
		{name: "decimal text", value: "1.5", wantErr: true},
		{name: "empty text", value: "", wantErr: true},
		{name: "leading separator", value: "_1", wantErr: true},
		{name: "trailing separator", value: "1_", wantErr: true},
		{name: "double separator", value: "1__0", wantErr: true},
		{name: "hex text", value: "0x10", wantErr: true},
		{name: "nan", value: math.NaN(), wantErr: true},
		{name: "infinity", value: math.Inf(1), wantErr: true},
		{name: "nil", value: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toInt(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFieldValue(t *testing.T) {
	assert.Equal(t, 8000, FieldValue(big.NewInt(8000)))

	huge, ok := new(big.Int).SetString("9999999999800000000001", 10)
	require.True(t, ok)
	assert.Same(t, huge, FieldValue(huge))
}

func TestSearchForField(t *testing.T) {
	for _, key := range []string{"hourly_rate", "rate", "salary"} {
		got, err := SearchForField(DefaultPattern, record(types.Field{Name: key, Value: 60}))
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}
}

func TestSearchForFieldWithInvalidField(t *testing.T) {
	got, err := SearchForField(`income`, record(
		types.Field{Name: "rate", Value: "a"},
		types.Field{Name: HoursField, Value: 150},
	))

	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSearchForFieldSubstringMatch(t *testing.T) {
	got, err := SearchForField(DefaultPattern, record(types.Field{Name: "base_salary_usd", Value: "1"}))
	require.NoError(t, err)
	assert.Equal(t, "salary", got)

	got, err = SearchForField(DefaultPattern, record(
		types.Field{Name: "rate", Value: "1"},
		types.Field{Name: "salary", Value: "2"},
	))
	require.NoError(t, err)
	assert.Equal(t, "ratesalary", got)
}

func TestSearchForFieldInvalidPattern(t *testing.T) {
	_, err := SearchForField(`(`, record())
	assert.Error(t, err)

	_, err = NewCalculator(`(`, nil, nil)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	c, out := newTestCalculator(t, DefaultPattern)
	records := []*types.Record{
		record(
			types.Field{Name: HoursField, Value: "160"},
			types.Field{Name: "rate", Value: "50"},
		),
		record(
			types.Field{Name: HoursField, Value: "160"},
			types.Field{Name: "rate", Value: "n/a"},
		),
	}

	computed := c.Apply(records)

	assert.Equal(t, 1, computed)
	assert.Equal(t, []string{HoursField, "rate", ReportName}, records[0].Keys())
	v, _ := records[0].Get(ReportName)
	assert.Equal(t, 8000, v)
	v, _ = records[1].Get(ReportName)
	assert.Equal(t, 0, v)
	assert.Equal(t, "Invalid field type.\n", out.String())
}

func TestApplyLargePayout(t *testing.T) {
	c, _ := newTestCalculator(t, DefaultPattern)
	records := []*types.Record{record(
		types.Field{Name: HoursField, Value: "99999999999"},
		types.Field{Name: "rate", Value: "99999999999"},
	)}

	require.Equal(t, 1, c.Apply(records))

	data, err := records[0].MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"hours_worked":"99999999999","rate":"99999999999","payout":9999999999800000000001}`,
		string(data))
}
