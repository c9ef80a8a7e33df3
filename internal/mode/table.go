package mode

// Table is the frequency table of a sequence.
//
// Values holds the distinct known elements in order of first appearance and
// Counts their occurrence counts; First holds the position of each value's
// first occurrence. Missing slots never count toward a value.
// Missing + sum(Counts) == Len always holds.
type Table[T comparable] struct {
	Values  []T
	Counts  []int
	First   []int
	Missing int
	Len     int

	index map[T]int
}

// Build scans s once and returns its frequency table.
func Build[T comparable](s []Value[T]) *Table[T] {
	t := &Table[T]{
		Len:   len(s),
		index: make(map[T]int),
	}
	for pos, v := range s {
		if !v.Known {
			t.Missing++
			continue
		}
		i, ok := t.index[v.V]
		if !ok {
			i = len(t.Values)
			t.index[v.V] = i
			t.Values = append(t.Values, v.V)
			t.Counts = append(t.Counts, 0)
			t.First = append(t.First, pos)
		}
		t.Counts[i]++
	}
	return t
}

// Distinct returns the number of distinct known values.
func (t *Table[T]) Distinct() int { return len(t.Values) }

// KnownCount returns the number of known slots.
func (t *Table[T]) KnownCount() int { return t.Len - t.Missing }

// IndexOf returns the position of v in Values, or -1.
func (t *Table[T]) IndexOf(v T) int {
	if i, ok := t.index[v]; ok {
		return i
	}
	return -1
}

// Count returns how many slots hold v.
func (t *Table[T]) Count(v T) int {
	if i := t.IndexOf(v); i >= 0 {
		return t.Counts[i]
	}
	return 0
}

// Max returns the index of the value with the highest count, breaking ties
// by first appearance. Returns -1 when there are no known values.
func (t *Table[T]) Max() int {
	return t.MaxExcluding(-1)
}

// MaxExcluding is Max over every value except the one at index skip.
// Returns -1 when no other value exists.
func (t *Table[T]) MaxExcluding(skip int) int {
	best := -1
	for i, c := range t.Counts {
		if i == skip {
			continue
		}
		if best < 0 || c > t.Counts[best] {
			best = i
		}
	}
	return best
}

// Modes returns the indices of every value sharing the highest count, in
// first-appearance order.
func (t *Table[T]) Modes() []int {
	best := t.Max()
	if best < 0 {
		return nil
	}
	var out []int
	for i, c := range t.Counts {
		if c == t.Counts[best] {
			out = append(out, i)
		}
	}
	return out
}
