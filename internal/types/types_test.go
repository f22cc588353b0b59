package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeepsInsertionOrder(t *testing.T) {
	r := NewRecord(
		Field{Name: "name", Value: "momo"},
		Field{Name: "id", Value: "1"},
	)
	r.Set("payout", 9000)

	if diff := cmp.Diff([]string{"name", "id", "payout"}, r.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, r.Len())
}

func TestRecordSetExistingKeepsPosition(t *testing.T) {
	r := NewRecord(
		Field{Name: "a", Value: "1"},
		Field{Name: "b", Value: "2"},
	)
	r.Set("a", "3")

	assert.Equal(t, []string{"a", "b"}, r.Keys())
	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestRecordGetMissing(t *testing.T) {
	var r Record
	_, ok := r.Get("rate")
	assert.False(t, ok)

	r.Set("rate", "60")
	v, ok := r.Get("rate")
	assert.True(t, ok)
	assert.Equal(t, "60", v)
}

func TestRecordMarshalOrdered(t *testing.T) {
	r := NewRecord(
		Field{Name: "z", Value: "<b>"},
		Field{Name: "a", Value: 1},
	)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"<b>","a":1}`, string(data))
}

func TestRecordUnmarshal(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id": 1, "rate": "50", "ratio": 1.5, "tags": [2]}`), &r)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "rate", "ratio", "tags"}, r.Keys())
	assert.Equal(t, map[string]any{
		"id":    1,
		"rate":  "50",
		"ratio": 1.5,
		"tags":  []any{2},
	}, r.Map())
}

func TestRecordUnmarshalLargeInteger(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"payout": 9999999999800000000001, "big": 1e30}`), &r)
	require.NoError(t, err)

	v, _ := r.Get("payout")
	n, ok := v.(*big.Int)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, "9999999999800000000001", n.String())

	v, _ = r.Get("big")
	assert.Equal(t, 1e30, v)

	data, err := json.Marshal(&r)
	require.NoError(t, err)
	assert.Equal(t, `{"payout":9999999999800000000001,"big":1e+30}`, string(data))
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`["a"]`), &r)
	assert.Error(t, err)
}

func TestRecordRoundTrip(t *testing.T) {
	in := []*Record{
		NewRecord(Field{Name: "id", Value: 1}, Field{Name: "rate", Value: "50"}),
		NewRecord(),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []*Record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
