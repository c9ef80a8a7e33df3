package mode

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrContractViolation is returned when a caller breaks the element
// contract: values of different or non-comparable types in one sequence, or
// an unrecognised method name. It is a programming error, not a data
// condition.
var ErrContractViolation = errors.New("mode: contract violation")

// Method selects an estimator.
type Method string

const (
	MethodFirst  Method = "first"
	MethodAll    Method = "all"
	MethodSingle Method = "single"
)

// Methods lists every supported method.
var Methods = []Method{MethodFirst, MethodAll, MethodSingle}

// ParseMethod parses a method name case-insensitively. An empty name selects
// MethodFirst.
func ParseMethod(name string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(name))) {
	case "", MethodFirst:
		return MethodFirst, nil
	case MethodAll:
		return MethodAll, nil
	case MethodSingle:
		return MethodSingle, nil
	}
	return "", fmt.Errorf("%w: unknown method %q", ErrContractViolation, name)
}

// Run applies method m to s.
func Run[T comparable](m Method, s []Value[T], opts ...Option) (Result[T], error) {
	switch m {
	case MethodFirst:
		return First(s, opts...), nil
	case MethodAll:
		return All(s, opts...), nil
	case MethodSingle:
		return Single(s, opts...), nil
	}
	return Undetermined[T](), fmt.Errorf("%w: unknown method %q", ErrContractViolation, string(m))
}

// FromAny converts untyped values into a sequence; nil entries are missing.
// Every non-nil entry must share one comparable dynamic type.
func FromAny(values []any) ([]Value[any], error) {
	out := make([]Value[any], len(values))
	var want reflect.Type
	wantAt := -1
	for i, v := range values {
		if v == nil {
			continue
		}
		typ := reflect.TypeOf(v)
		if !typ.Comparable() {
			return nil, fmt.Errorf("%w: element %d has non-comparable type %s", ErrContractViolation, i, typ)
		}
		if want == nil {
			want, wantAt = typ, i
		} else if typ != want {
			return nil, fmt.Errorf("%w: mixed types: element %d is %s but element %d is %s",
				ErrContractViolation, i, typ, wantAt, want)
		}
		out[i] = Known(v)
	}
	return out, nil
}

// Estimate is the untyped entry point: it validates values with FromAny,
// parses method and runs the estimator.
func Estimate(method string, values []any, opts ...Option) (Result[any], error) {
	m, err := ParseMethod(method)
	if err != nil {
		return Undetermined[any](), err
	}
	s, err := FromAny(values)
	if err != nil {
		return Undetermined[any](), err
	}
	return Run(m, s, opts...)
}
