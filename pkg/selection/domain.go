package selection

import (
	"errors"
	"reflect"
)

// ErrNoOptions is returned when an option set would be empty.
var ErrNoOptions = errors.New("at least one option is required")

// EqualFunc reports whether two values are the same selection.
type EqualFunc[T any] func(a, b T) bool

// DeepEqual compares values structurally with [reflect.DeepEqual].
func DeepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// Domain is the set of values an [Engine] accepts as controlling values.
type Domain[T any] interface {
	// Contains reports whether v is a member of the domain.
	Contains(v T) bool
	// Default is used when neither an initial nor a controlling value is given.
	Default() T
	// Equal reports whether a and b are the same member.
	Equal(a, b T) bool
}

// Option is a selectable value and the text shown for it.
type Option[T any] struct {
	Value        T      `json:"value"        jsonschema:"title=Value"`
	DisplayValue string `json:"displayValue" jsonschema:"title=Display Value"`
}

// OptionSet is an ordered, non-empty [Domain] of options.
type OptionSet[T any] struct {
	equal   EqualFunc[T]
	options []Option[T]
}

// NewOptionSet creates an [OptionSet]. A nil equal uses [DeepEqual].
func NewOptionSet[T any](options []Option[T], equal EqualFunc[T]) (*OptionSet[T], error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	if equal == nil {
		equal = DeepEqual[T]
	}

	return &OptionSet[T]{
		options: append([]Option[T](nil), options...),
		equal:   equal,
	}, nil
}

// Options returns a copy of the options in order.
func (s *OptionSet[T]) Options() []Option[T] {
	return append([]Option[T](nil), s.options...)
}

// Len returns the number of options.
func (s *OptionSet[T]) Len() int {
	return len(s.options)
}

// At returns the option at index i.
func (s *OptionSet[T]) At(i int) Option[T] {
	return s.options[i]
}

// Index returns the index of the first option equal to v, or -1.
func (s *OptionSet[T]) Index(v T) int {
	for i, o := range s.options {
		if s.equal(o.Value, v) {
			return i
		}
	}

	return -1
}

func (s *OptionSet[T]) Contains(v T) bool {
	return s.Index(v) >= 0
}

// Default returns the value of the first option.
func (s *OptionSet[T]) Default() T {
	return s.options[0].Value
}

func (s *OptionSet[T]) Equal(a, b T) bool {
	return s.equal(a, b)
}

// Same reports whether other is an [OptionSet] with the same options in the
// same order.
func (s *OptionSet[T]) Same(other Domain[T]) bool {
	o, ok := other.(*OptionSet[T])
	if !ok {
		return false
	}
	if s == o {
		return true
	}
	if len(s.options) != len(o.options) {
		return false
	}

	for i := range s.options {
		if s.options[i].DisplayValue != o.options[i].DisplayValue {
			return false
		}
		if !s.equal(s.options[i].Value, o.options[i].Value) {
			return false
		}
	}

	return true
}

// Predicate is a [Domain] described by a membership function.
type Predicate[T comparable] struct {
	Accept   func(v T) bool
	Fallback T
}

func (p Predicate[T]) Contains(v T) bool {
	return p.Accept == nil || p.Accept(v)
}

func (p Predicate[T]) Default() T {
	return p.Fallback
}

func (p Predicate[T]) Equal(a, b T) bool {
	return a == b
}

// sameDomain reports whether switching from a to b can be skipped.
func sameDomain[T any](a, b Domain[T]) bool {
	type samer interface {
		Same(other Domain[T]) bool
	}

	if s, ok := a.(samer); ok {
		return s.Same(b)
	}

	return false
}
