package mode

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tells which variant a Result holds.
type Kind int

const (
	// KindUnknown means the mode cannot be determined from the observed data.
	KindUnknown Kind = iota
	// KindKnown means a single known element.
	KindKnown
	// KindSet means several known elements tied for the mode.
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindKnown:
		return "known"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Result is the outcome of an estimator: one known element, a set of known
// elements, or undetermined. The zero Result is undetermined.
type Result[T comparable] struct {
	kind   Kind
	values []T
}

// Undetermined returns the result for "true mode cannot be determined".
func Undetermined[T comparable]() Result[T] {
	return Result[T]{}
}

func knownResult[T comparable](v T) Result[T] {
	return Result[T]{kind: KindKnown, values: []T{v}}
}

func setResult[T comparable](vs []T) Result[T] {
	return Result[T]{kind: KindSet, values: vs}
}

// Kind returns the variant held by r.
func (r Result[T]) Kind() Kind { return r.kind }

// IsUnknown reports whether r is undetermined.
func (r Result[T]) IsUnknown() bool { return r.kind == KindUnknown }

// Value returns the element of a KindKnown result.
// ok is false for sets and undetermined results.
func (r Result[T]) Value() (v T, ok bool) {
	if r.kind != KindKnown {
		return v, false
	}
	return r.values[0], true
}

// Values returns a copy of the elements held by r, in first-appearance
// order. It is nil for an undetermined result.
func (r Result[T]) Values() []T {
	if r.kind == KindUnknown {
		return nil
	}
	return append([]T(nil), r.values...)
}

// Len returns the number of elements held by r.
func (r Result[T]) Len() int { return len(r.values) }

// Contains reports whether v is one of the elements of r.
func (r Result[T]) Contains(v T) bool {
	for _, x := range r.values {
		if x == v {
			return true
		}
	}
	return false
}

// Equal reports whether r and o hold the same variant and elements in the same order.
func (r Result[T]) Equal(o Result[T]) bool {
	if r.kind != o.kind || len(r.values) != len(o.values) {
		return false
	}
	for i := range r.values {
		if r.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// String renders r as "NA", "v" or "{a, b}".
func (r Result[T]) String() string {
	switch r.kind {
	case KindKnown:
		return fmt.Sprint(r.values[0])
	case KindSet:
		parts := make([]string, len(r.values))
		for i, v := range r.values {
			parts[i] = fmt.Sprint(v)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return MissingLabel
	}
}

type resultDoc[T comparable] struct {
	Kind   string `json:"kind" yaml:"kind"`
	Values []T    `json:"values" yaml:"values"`
}

func (r Result[T]) doc() resultDoc[T] {
	vals := r.values
	if vals == nil {
		vals = []T{}
	}
	return resultDoc[T]{Kind: r.kind.String(), Values: vals}
}

// MarshalJSON encodes r as {"kind": "...", "values": [...]}.
// Undetermined results carry an empty values array.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.doc())
}

// MarshalYAML encodes r with the same shape as MarshalJSON.
func (r Result[T]) MarshalYAML() (any, error) {
	return r.doc(), nil
}
