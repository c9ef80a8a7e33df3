package core

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/modeest/internal/mode"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// FieldType is the type inferred for a CSV column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
	FieldNumeric
	FieldBool
)

var fieldTypeNames = [...]string{
	FieldText:    "text",
	FieldDate:    "date",
	FieldNumeric: "numeric",
	FieldBool:    "bool",
}

func (f FieldType) String() string {
	if f < 0 || int(f) >= len(fieldTypeNames) {
		return "text"
	}
	return fieldTypeNames[f]
}

// MarshalText lets FieldType appear by name in JSON and YAML output.
func (f FieldType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText. Unknown names
// decode as FieldText.
func (f *FieldType) UnmarshalText(b []byte) error {
	*f = FieldText
	for i, name := range fieldTypeNames {
		if name == string(b) {
			*f = FieldType(i)
		}
	}
	return nil
}

// HeaderIndex maps lowercase column names to their position in a CSV row.
type HeaderIndex map[string]int

// AnalyzeOptions controls a column analysis.
type AnalyzeOptions struct {
	Method        mode.Method
	RemoveMissing bool
	FirstKnown    bool

	// MissingTokens are matched case-insensitively after CleanCell. An empty
	// cell is always missing. Nil means DefaultMissingTokens.
	MissingTokens []string

	// Columns restricts the analysis to the named columns. Empty means all.
	Columns []string
}

// ColumnSummary is the outcome for one column.
type ColumnSummary struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Rows     int       `json:"rows" yaml:"rows"`
	Missing  int       `json:"missing" yaml:"missing"`
	Distinct int       `json:"distinct" yaml:"distinct"`
	TopCount int       `json:"topCount" yaml:"topCount"`

	// Kind is "known", "set" or "unknown"; Modes holds the display values.
	Kind  string   `json:"kind" yaml:"kind"`
	Modes []string `json:"modes" yaml:"modes"`
}

// Determined reports whether the column produced a value or set.
func (c ColumnSummary) Determined() bool {
	return c.Kind != mode.KindUnknown.String()
}

// ModeString renders the modes as "NA", "v" or "{a, b}".
func (c ColumnSummary) ModeString() string {
	switch {
	case !c.Determined():
		return mode.MissingLabel
	case len(c.Modes) == 1:
		return c.Modes[0]
	default:
		return "{" + strings.Join(c.Modes, ", ") + "}"
	}
}

// ColumnReport is the outcome of AnalyzeColumns.
type ColumnReport struct {
	Method        mode.Method     `json:"method" yaml:"method"`
	RemoveMissing bool            `json:"removeMissing" yaml:"removeMissing"`
	FirstKnown    bool            `json:"firstKnown" yaml:"firstKnown"`
	Rows          int             `json:"rows" yaml:"rows"`
	BytesRead     int64           `json:"bytesRead" yaml:"bytesRead"`
	Columns       []ColumnSummary `json:"columns" yaml:"columns"`
}

// Analysis is a stored column report.
type Analysis struct {
	ID         string        `json:"id"`
	FileName   string        `json:"fileName"`
	CreatedAt  time.Time     `json:"createdAt"`
	DurationMs int64         `json:"durationMs"`
	Report     *ColumnReport `json:"report"`
}

// AnalysisPage is one page of ListAnalyses.
type AnalysisPage struct {
	Analyses []Analysis `json:"analyses"`
	Total    int64      `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
