package mode

import "fmt"

// MissingLabel is how a missing slot or an undetermined result is rendered.
const MissingLabel = "NA"

// Value is one slot of an input sequence: a known element or the missing marker.
// The zero Value is missing.
type Value[T comparable] struct {
	V     T
	Known bool
}

// Known returns a slot holding v.
func Known[T comparable](v T) Value[T] {
	return Value[T]{V: v, Known: true}
}

// Missing returns the missing marker for element type T.
func Missing[T comparable]() Value[T] {
	return Value[T]{}
}

// Of builds a sequence where every slot is known.
func Of[T comparable](vs ...T) []Value[T] {
	out := make([]Value[T], len(vs))
	for i, v := range vs {
		out[i] = Known(v)
	}
	return out
}

// FromPointers builds a sequence from pointers; nil pointers are missing.
func FromPointers[T comparable](ps []*T) []Value[T] {
	out := make([]Value[T], len(ps))
	for i, p := range ps {
		if p != nil {
			out[i] = Known(*p)
		}
	}
	return out
}

func (v Value[T]) String() string {
	if !v.Known {
		return MissingLabel
	}
	return fmt.Sprint(v.V)
}

// DropMissing returns the known slots of s in order. The input is not modified.
func DropMissing[T comparable](s []Value[T]) []Value[T] {
	out := make([]Value[T], 0, len(s))
	for _, v := range s {
		if v.Known {
			out = append(out, v)
		}
	}
	return out
}

// HasMissing reports whether any slot of s is missing.
func HasMissing[T comparable](s []Value[T]) bool {
	for _, v := range s {
		if !v.Known {
			return true
		}
	}
	return false
}
