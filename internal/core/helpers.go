package core

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder assembles a parameterised WHERE clause for the filtered
// list queries that sqlc cannot express. Column names are trusted callers'
// constants; only values are parameters.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder returns an empty builder whose first placeholder is $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

func (w *WhereBuilder) add(cond string, arg any) {
	w.conditions = append(w.conditions, fmt.Sprintf(cond, w.argIndex))
	w.args = append(w.args, arg)
	w.argIndex++
}

// Add appends "col = $n". Empty values are skipped.
func (w *WhereBuilder) Add(col, val string) {
	if val == "" {
		return
	}
	w.add(col+" = $%d", val)
}

// AddAnalysisID filters on analysis_id. Empty or malformed ids are skipped.
func (w *WhereBuilder) AddAnalysisID(id string) {
	u := ToPgUUID(id)
	if !u.Valid {
		return
	}
	w.add("analysis_id = $%d", u)
}

// AddTimeRange bounds col inclusively. A zero bound is left open.
func (w *WhereBuilder) AddTimeRange(col string, start, end time.Time) {
	if !start.IsZero() {
		w.add(col+" >= $%d", start)
	}
	if !end.IsZero() {
		w.add(col+" <= $%d", end)
	}
}

// NextArgIndex is the placeholder number the next argument will take, for
// appending LIMIT/OFFSET after Build.
func (w *WhereBuilder) NextArgIndex() int {
	return w.argIndex
}

// Build returns " WHERE a AND b" and its args, or "" and nil when empty.
func (w *WhereBuilder) Build() (string, []any) {
	if len(w.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(w.conditions, " AND "), w.args
}
