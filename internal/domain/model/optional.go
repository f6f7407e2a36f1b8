package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field that tells "absent" apart from "explicit null".
//
//   - absent:        Set == false, the column is left untouched
//   - present null:  Set == true, Value == nil, the column is cleared
//   - present value: Set == true, Value != nil, the column is overwritten
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// IsNull reports whether the field was sent as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// IsZero reports whether the field was absent; used by the omitzero tag option.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// UnmarshalJSON marks the field present. encoding/json only calls it when the key exists.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON renders absent and null fields as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
