package repository

import (
	"encoding/json"
	"time"
)

// marshalJSONColumn serializes an embedded list (shifts, expenses) for a TEXT
// column, normalizing nil to an empty array.
func marshalJSONColumn(v any) (string, error) {
	if v == nil {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalJSONColumn deserializes a TEXT column into out, treating an empty
// string like an empty array.
func unmarshalJSONColumn(s string, out any) error {
	if s == "" {
		s = "[]"
	}
	return json.Unmarshal([]byte(s), out)
}

// nullableFloat converts a *float64 to a value suitable for SQLite storage.
func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableInt64 converts a *int64 to a value suitable for SQLite storage.
func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
