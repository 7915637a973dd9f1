package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a partial update. A key missing from the request
// leaves the stored value alone, an explicit null clears it.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a present Optional that clears the column
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the request carried the field at all
func (o Optional[T]) Present() bool {
	return o.Set
}

// Get returns the value when it is present and not null
func (o Optional[T]) Get() (T, bool) {
	if !o.Set || o.Null {
		var zero T
		return zero, false
	}
	return o.Value, true
}

// ColumnValue is the value written to storage: nil for an explicit null
func (o Optional[T]) ColumnValue() any {
	if o.Null {
		return nil
	}
	return o.Value
}
