package mode

// All returns every value tied for the highest count, in first-appearance
// order, or an undetermined result when missing slots could break or mask
// that tie. A unique mode is returned as a KindKnown result only when no
// resolution of the missing slots could tie it.
//
// Options: RemoveMissing (default false).
func All[T comparable](s []Value[T], opts ...Option) Result[T] {
	o := newOptions(opts)
	if o.removeMissing {
		s = DropMissing(s)
	}

	t := Build(s)
	modes := t.Modes()
	switch {
	case len(modes) == 0:
		return Undetermined[T]()
	case len(modes) == 1:
		return DecideUnderMissing(t, t.Values[modes[0]], false)
	case t.Missing > 0:
		// A missing slot could settle the tie toward any tied value.
		return Undetermined[T]()
	}

	vals := make([]T, len(modes))
	for i, idx := range modes {
		vals[i] = t.Values[idx]
	}
	return setResult(vals)
}

// Single returns the unique mode of s, or an undetermined result when there
// are several modes or missing slots could produce a tie.
//
// Options: RemoveMissing (default false).
func Single[T comparable](s []Value[T], opts ...Option) Result[T] {
	o := newOptions(opts)
	if o.removeMissing {
		s = DropMissing(s)
	}

	candidate, ok := All(s).Value()
	if !ok {
		return Undetermined[T]()
	}
	return DecideUnderMissing(Build(s), candidate, false)
}
