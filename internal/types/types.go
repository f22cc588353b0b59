// =============================================================================
// Employee Records - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - xlsxparser
//   - payout
//   - jsonwriter
//   - converter
//
// =============================================================================

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// Field is a single name/value pair of a Record.
type Field struct {
	// Name is the field name taken from the source file's header.
	Name string

	// Value is the field value. Values read from input files are strings;
	// computed fields (such as payout) are integers.
	Value any
}

// Record represents one employee: a mapping from field name to value that
// remembers the order in which fields were first assigned.
//
// Iteration order (Keys, Fields) and JSON key order both follow insertion
// order. Assigning an existing field replaces its value in place.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates a Record holding the given fields in order.
func NewRecord(fields ...Field) *Record {
	r := &Record{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set assigns a value to a field.
func (r *Record) Set(name string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

// Get returns the value of a field and whether it exists.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Fields returns the name/value pairs in insertion order.
func (r *Record) Fields() []Field {
	fields := make([]Field, len(r.keys))
	for i, k := range r.keys {
		fields[i] = Field{Name: k, Value: r.values[k]}
	}
	return fields
}

// Map returns an unordered copy of the record's fields.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// =============================================================================
// JSON ENCODING
// =============================================================================

// MarshalJSON encodes the record as a JSON object with keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field name %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalNoEscape(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", k, err)
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape encodes v without HTML escaping.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a JSON object into the record, keeping key order.
//
// Integral numbers decode as int, other numbers as float64. Nested objects
// and arrays decode the way encoding/json decodes them into an interface{}.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	r.keys = make([]string, 0)
	r.values = make(map[string]any)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", key, err)
		}
		r.Set(key, normalizeNumber(value))
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// normalizeNumber converts json.Number values produced by UseNumber.
// Integers beyond the int64 range load as *big.Int so that no digit is lost.
func normalizeNumber(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if n, ok := new(big.Int).SetString(val.String(), 10); ok {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumber(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumber(item)
		}
		return val
	default:
		return v
	}
}
