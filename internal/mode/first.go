package mode

// First returns the earliest-appearing value that is guaranteed to be a mode
// of s, or an undetermined result when no known value can be guaranteed.
//
// Options: RemoveMissing (default false) and FirstKnown (default true).
func First[T comparable](s []Value[T], opts ...Option) Result[T] {
	o := newOptions(opts)
	if o.removeMissing {
		s = DropMissing(s)
	}

	t := Build(s)
	i1 := t.Max()
	if i1 < 0 {
		return Undetermined[T]()
	}
	mode1 := t.Values[i1]
	if t.Missing == 0 {
		return knownResult(mode1)
	}

	countMode1 := t.Counts[i1]
	i2 := t.MaxExcluding(i1)
	secondMaxKnown := 0
	if i2 >= 0 {
		secondMaxKnown = t.Counts[i2]
	}
	countMode2NA := secondMaxKnown + t.Missing
	if o.firstKnown {
		countMode2NA--
	}
	if countMode1 > countMode2NA {
		return knownResult(mode1)
	}

	// Values are ordered by first appearance, so comparing table indices
	// compares earliest positions in s.
	mode1AppearsFirst := i2 < 0 || i1 < i2
	mode1IsHalfOrMore := 2*countMode1 >= t.Len
	if mode1IsHalfOrMore && (mode1AppearsFirst || o.firstKnown) {
		return knownResult(mode1)
	}

	if DecideUnderMissing(t, mode1, true).IsUnknown() {
		return Undetermined[T]()
	}
	if t.Distinct() == 1 && mode1IsHalfOrMore {
		return knownResult(mode1)
	}
	return Undetermined[T]()
}
