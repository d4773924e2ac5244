package selection

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode is returned when an encoded value cannot be decoded.
var ErrDecode = errors.New("decode selection")

// Codec converts values to and from the string keys carried by rendered
// options, so that a selection event maps back to the exact value.
type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

// JSONCodec encodes values as JSON text. It round-trips nil pointers, maps,
// slices and structs with exported fields.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode selection: %w", err)
	}

	return string(b), nil
}

func (JSONCodec[T]) Decode(s string) (T, error) {
	var v T

	err := json.Unmarshal([]byte(s), &v)
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return v, nil
}

// Keys encodes the value of every option in order.
func Keys[T any](c Codec[T], options []Option[T]) ([]string, error) {
	keys := make([]string, 0, len(options))
	for i, o := range options {
		k, err := c.Encode(o.Value)
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}

		keys = append(keys, k)
	}

	return keys, nil
}
