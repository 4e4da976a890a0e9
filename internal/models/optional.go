package models

import "encoding/json"

// Optional is a tri-state field for partial update payloads. It distinguishes
// a field that was absent from the request body from one that was sent as an
// explicit null, which plain pointers cannot do. Absent means "leave the
// stored value alone"; null means "clear it".
type Optional[T any] struct {
	present bool
	valid   bool
	value   T
}

// Some returns an Optional carrying v, as if v had appeared in a payload.
func Some[T any](v T) Optional[T] {
	return Optional[T]{present: true, valid: true, value: v}
}

// Null returns an Optional representing an explicit JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true}
}

// Present reports whether the field appeared in the payload at all.
func (o Optional[T]) Present() bool { return o.present }

// IsNull reports whether the field appeared as an explicit null.
func (o Optional[T]) IsNull() bool { return o.present && !o.valid }

// Get returns the carried value and whether a non-null value is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present && o.valid }

// UnmarshalJSON is only invoked for keys present in the payload, so the
// zero Optional correctly reads as absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if string(data) == "null" {
		o.valid = false
		var zero T
		o.value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

// MarshalJSON round-trips the carried value; absent and null both encode
// as null since JSON has no way to express field absence at value level.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present || !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
