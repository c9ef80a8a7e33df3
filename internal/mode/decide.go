package mode

// DecideUnderMissing reports whether mode1 remains the mode of the sequence
// summarised by t once its missing slots are accounted for, assuming every
// missing slot could equal the strongest competitor.
//
// With a single distinct known value, mode1 survives only while fewer than
// half of the slots are missing. Otherwise the competitor is the most frequent
// other value (first-appearance tie-break) credited with every missing slot;
// mode1 must match it when allowTie is set and strictly beat it when not.
//
// Returns Known(mode1) or an undetermined result. A mode1 that does not occur
// in t is undetermined.
func DecideUnderMissing[T comparable](t *Table[T], mode1 T, allowTie bool) Result[T] {
	i1 := t.IndexOf(mode1)
	if i1 < 0 {
		return Undetermined[T]()
	}

	if t.Distinct() == 1 {
		if 2*t.Missing < t.Len {
			return knownResult(mode1)
		}
		return Undetermined[T]()
	}

	i2 := t.MaxExcluding(i1)
	countMode1 := t.Counts[i1]
	countMode2NA := t.Counts[i2] + t.Missing

	frequentEnough := countMode1 > countMode2NA
	if allowTie {
		frequentEnough = countMode1 >= countMode2NA
	}
	if !frequentEnough {
		return Undetermined[T]()
	}
	return knownResult(mode1)
}
