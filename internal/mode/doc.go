// Package mode estimates the statistical mode of sequences that may contain
// missing entries.
//
// Every slot of an input sequence is either a known element or the missing
// marker (see [Value]). A missing slot means "a value exists here but its
// identity is not known", so the estimators reason about the worst case: each
// missing slot could secretly equal whichever known value benefits most. When
// that worst case could change the answer, the result is undetermined rather
// than a guess.
//
// # Operations
//
//   - [Build] counts distinct known values in first-appearance order.
//   - [DecideUnderMissing] checks whether a leading candidate survives the
//     missing slots.
//   - [First] returns the earliest value known to be a mode.
//   - [All] returns every mode, or nothing if missingness could break a tie.
//   - [Single] returns the unique mode only when there is exactly one.
//
// Results are [Result] values: a single known element, a set of known
// elements (All only), or undetermined. An undetermined result is a normal
// outcome that callers must branch on; it is never reported as an error.
//
// # Dynamic input
//
// Typed callers cannot violate the element contract because T is
// constrained to comparable. Layers that receive untyped values (decoded
// JSON, CSV cells converted at runtime) go through [FromAny], which returns
// an error wrapping [ErrContractViolation] for mixed or non-comparable
// element types.
//
// All functions are pure and safe for concurrent use on independent inputs.
package mode
