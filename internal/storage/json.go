// ABOUTME: JSON column helpers for string-set and struct-list fields.
// ABOUTME: Slices are stored as JSON text; empty slices round-trip as "[]".
package storage

import "encoding/json"

// marshalStrings encodes a string slice as a JSON array column value.
func marshalStrings(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// unmarshalStrings decodes a JSON array column value. Malformed or empty
// values decode to nil rather than failing the whole row scan.
func unmarshalStrings(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	return v
}

// marshalJSON encodes any value for a JSON text column.
func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
