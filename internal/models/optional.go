package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNameRequired is returned when a name is missing, null or blank.
var ErrNameRequired = errors.New("name is required")

// Optional is a JSON field that distinguishes an absent key from an explicit
// null. Set is true whenever the key appeared in the document.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// UnmarshalJSON records presence; it is only invoked for keys that appear.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns nil for null, otherwise a pointer to a copy of the value.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
