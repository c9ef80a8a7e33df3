package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func na() Value[int] { return Missing[int]() }

func seq(vals ...any) []Value[int] {
	out := make([]Value[int], len(vals))
	for i, v := range vals {
		if v != nil {
			out[i] = Known(v.(int))
		}
	}
	return out
}

func TestBuild(t *testing.T) {
	tbl := Build([]Value[string]{Known("b"), Known("a"), Missing[string](), Known("b")})

	assert.Equal(t, []string{"b", "a"}, tbl.Values)
	assert.Equal(t, []int{2, 1}, tbl.Counts)
	assert.Equal(t, []int{0, 1}, tbl.First)
	assert.Equal(t, 1, tbl.Missing)
	assert.Equal(t, 4, tbl.Len)
	assert.Equal(t, 3, tbl.KnownCount())
	assert.Equal(t, 2, tbl.Count("b"))
	assert.Equal(t, 0, tbl.Count("z"))
	assert.Equal(t, -1, tbl.IndexOf("z"))
}

func TestBuild_Empty(t *testing.T) {
	for _, s := range [][]Value[int]{nil, {}, {na(), na()}} {
		tbl := Build(s)
		assert.Equal(t, 0, tbl.Distinct())
		assert.Equal(t, -1, tbl.Max())
		assert.Nil(t, tbl.Modes())
		assert.Equal(t, len(s), tbl.Missing)
	}
}

func TestTable_MaxTieBreaksByFirstAppearance(t *testing.T) {
	tbl := Build(seq(3, 1, 1, 3, 2, 2))

	assert.Equal(t, 0, tbl.Max())
	assert.Equal(t, 1, tbl.MaxExcluding(0))
	assert.Equal(t, []int{0, 1, 2}, tbl.Modes())
}

func TestDecideUnderMissing(t *testing.T) {
	tests := []struct {
		name     string
		s        []Value[int]
		mode1    int
		allowTie bool
		want     Result[int]
	}{
		{"single value under half missing", seq(5, 5, nil), 5, false, knownResult(5)},
		{"single value half missing", seq(5, nil), 5, true, Undetermined[int]()},
		{"single value mostly missing", seq(5, nil, nil), 5, true, Undetermined[int]()},
		{"tie allowed", seq(1, 1, 1, 2, 2, nil), 1, true, knownResult(1)},
		{"tie not allowed", seq(1, 1, 1, 2, 2, nil), 1, false, Undetermined[int]()},
		{"strictly ahead", seq(1, 1, 1, 2, nil), 1, false, knownResult(1)},
		{"candidate absent", seq(1, 2), 9, true, Undetermined[int]()},
		{"empty", nil, 1, true, Undetermined[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideUnderMissing(Build(tt.s), tt.mode1, tt.allowTie)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestScenarios(t *testing.T) {
	s := seq(7, 8, 8, 9, 9, 9)
	assert.True(t, First(s).Equal(knownResult(9)))
	assert.True(t, All(s).Equal(knownResult(9)))
	assert.True(t, Single(s).Equal(knownResult(9)))

	assert.True(t, First(seq(1, 1, 2, 2, 2, 2, nil, nil, nil, nil)).IsUnknown())
	assert.True(t, First(seq(7, 7, 7, 7, 8, 8, nil)).Equal(knownResult(7)))

	letters := Of("a", "a", "b", "b", "c", "d", "e")
	got := All(letters)
	assert.Equal(t, KindSet, got.Kind())
	assert.Equal(t, []string{"a", "b"}, got.Values())

	assert.True(t, All(seq(1, 1, 2, 2, nil)).IsUnknown())

	assert.True(t, Single(seq(3, 4, 4, 5, 5, 5)).Equal(knownResult(5)))
	assert.True(t, Single(Of("x", "x", "y", "y", "z")).IsUnknown())

	for _, s := range [][]Value[int]{{}, {na()}} {
		assert.True(t, First(s).IsUnknown())
		assert.True(t, All(s).IsUnknown())
		assert.True(t, Single(s).IsUnknown())
	}
}

func TestFirst(t *testing.T) {
	tests := []struct {
		name string
		s    []Value[int]
		opts []Option
		want Result[int]
	}{
		{"tie without missing picks first", seq(1, 2, 2, 1), nil, knownResult(1)},
		{"remove missing", seq(1, 1, 2, 2, 2, 2, nil, nil, nil, nil), []Option{RemoveMissing(true)}, knownResult(2)},
		{"lone value with one missing", seq(1, nil), nil, knownResult(1)},
		{"lone value with one missing, strict first", seq(1, nil), []Option{FirstKnown(false)}, knownResult(1)},
		{"later value known to be a mode", seq(2, 1, 1, nil), nil, knownResult(1)},
		{"later value may tie an earlier one", seq(2, 1, 1, nil), []Option{FirstKnown(false)}, Undetermined[int]()},
		{"leading value half of slots", seq(nil, 1, 1, 2), []Option{FirstKnown(false)}, knownResult(1)},
		{"all missing removed", seq(nil, nil), []Option{RemoveMissing(true)}, Undetermined[int]()},
		{"lone value mostly missing", seq(4, nil, nil), nil, Undetermined[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := First(tt.s, tt.opts...)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestAll(t *testing.T) {
	tests := []struct {
		name string
		s    []Value[int]
		opts []Option
		want Result[int]
	}{
		{"unique mode safe", seq(1, 1, 1, 2, nil), nil, knownResult(1)},
		{"unique mode could be tied", seq(1, 1, 1, 2, nil, nil), nil, Undetermined[int]()},
		{"lone value under half missing", seq(5, 5, nil), nil, knownResult(5)},
		{"lone value half missing", seq(5, nil), nil, Undetermined[int]()},
		{"tie settled by removal", seq(1, 1, 2, 2, nil), []Option{RemoveMissing(true)}, setResult([]int{1, 2})},
		{"all distinct", seq(4, 3, 2), nil, setResult([]int{4, 3, 2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := All(tt.s, tt.opts...)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestSingle(t *testing.T) {
	assert.True(t, Single(seq(1, 1, 2, 2, nil)).IsUnknown())
	assert.True(t, Single(Of("x", "x", "y"), RemoveMissing(true)).Equal(knownResult("x")))

	s := []Value[string]{Known("x"), Known("x"), Known("y"), Missing[string](), Missing[string](), Missing[string]()}
	assert.True(t, Single(s).IsUnknown())
	assert.True(t, Single(s, RemoveMissing(true)).Equal(knownResult("x")))
}

func TestIdempotent(t *testing.T) {
	s := seq(2, nil, 2, 3, 1, 2, nil)
	input := append([]Value[int](nil), s...)

	for _, m := range Methods {
		first, err := Run(m, s)
		require.NoError(t, err)
		second, err := Run(m, s)
		require.NoError(t, err)
		assert.True(t, first.Equal(second), "method %s", m)
	}
	assert.Equal(t, input, s, "input must not be modified")
}

func TestFromPointers(t *testing.T) {
	a, b := "a", "b"
	s := FromPointers([]*string{&a, nil, &b, &a})

	require.Len(t, s, 4)
	assert.False(t, s[1].Known)
	assert.Equal(t, "NA", s[1].String())
	assert.True(t, First(s).Equal(knownResult("a")))
}

func TestResult(t *testing.T) {
	u := Undetermined[int]()
	_, ok := u.Value()
	assert.False(t, ok)
	assert.Nil(t, u.Values())
	assert.Equal(t, "NA", u.String())

	k := knownResult(9)
	v, ok := k.Value()
	assert.True(t, ok)
	assert.Equal(t, 9, v)
	assert.Equal(t, "9", k.String())

	set := setResult([]string{"a", "b"})
	_, ok = set.Value()
	assert.False(t, ok)
	assert.True(t, set.Contains("b"))
	assert.Equal(t, "{a, b}", set.String())

	vals := set.Values()
	vals[0] = "z"
	assert.Equal(t, []string{"a", "b"}, set.Values(), "Values must return a copy")
}

func TestResult_MarshalJSON(t *testing.T) {
	b, err := knownResult(9).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"known","values":[9]}`, string(b))

	b, err = Undetermined[string]().MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"unknown","values":[]}`, string(b))

	b, err = setResult([]string{"a", "b"}).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"set","values":["a","b"]}`, string(b))
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"": MethodFirst, "First": MethodFirst, " all ": MethodAll, "SINGLE": MethodSingle} {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseMethod("median")
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = Run(Method("median"), seq(1))
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestFromAny(t *testing.T) {
	s, err := FromAny([]any{"a", nil, "b"})
	require.NoError(t, err)
	assert.Equal(t, []Value[any]{Known[any]("a"), Missing[any](), Known[any]("b")}, s)

	_, err = FromAny([]any{"a", 1.0})
	assert.ErrorIs(t, err, ErrContractViolation)
	assert.Contains(t, err.Error(), "mixed types")

	_, err = FromAny([]any{[]int{1}})
	assert.ErrorIs(t, err, ErrContractViolation)

	s, err = FromAny([]any{nil, nil})
	require.NoError(t, err)
	assert.True(t, First(s).IsUnknown())
}

func TestEstimate(t *testing.T) {
	got, err := Estimate("first", []any{1.0, 1.0, 2.0})
	require.NoError(t, err)
	v, ok := got.Value()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	got, err = Estimate("all", []any{"a", "a", nil, "b"})
	require.NoError(t, err)
	assert.True(t, got.IsUnknown())

	got, err = Estimate("all", []any{true, false, true, false})
	require.NoError(t, err)
	assert.Equal(t, []any{true, false}, got.Values())

	_, err = Estimate("first", []any{"1", 1.0})
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = Estimate("mean", []any{1.0})
	assert.ErrorIs(t, err, ErrContractViolation)
}
