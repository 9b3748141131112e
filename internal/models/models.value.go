// FilePath: internal/models/models.value.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a raw JSON scalar kept verbatim so it renders exactly as the backend sent it.
// A zero-length Value means the field was absent.
type Value []byte

// UnmarshalJSON implements the json.Unmarshaler interface
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

// MarshalJSON implements the json.Marshaler interface
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// IsNull reports whether the value is absent or JSON null.
func (v Value) IsNull() bool {
	return len(v) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// IsEmpty reports whether the value is null or an empty string.
func (v Value) IsEmpty() bool {
	return v.IsNull() || v.String() == ""
}

// String returns strings unquoted and every other scalar as its literal JSON text.
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}
	raw := bytes.TrimSpace(v)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// Or returns the value's text, or fallback when the value is null or absent.
func (v Value) Or(fallback string) string {
	if v.IsNull() {
		return fallback
	}
	return v.String()
}

// NumberValue builds a Value holding a JSON number.
func NumberValue(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// ID is an identifier the backend may send either as a JSON number or a string.
type ID string

// UnmarshalJSON implements the json.Unmarshaler interface
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID(Value(data).String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string {
	return string(id)
}
