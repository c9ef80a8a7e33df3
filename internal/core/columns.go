package core

// columns.go computes a mode per CSV column.
//
// The file is streamed once. Every selected column's cells are kept (the
// estimators need the whole sequence and its order), then each column is
// typed, canonicalised and handed to the mode package.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/modeest/internal/mode"
)

// DefaultMissingTokens are the cell spellings read as a missing value when the
// caller does not supply its own list.
var DefaultMissingTokens = []string{"NA", "N/A", "NULL", "NaN", "-"}

// ContextCheckInterval is how many rows are read between cancellation checks.
var ContextCheckInterval = 1000

var (
	ErrNoHeader       = errors.New("no columns: file has no header row")
	ErrColumnNotFound = errors.New("column not found")
)

type missingSet map[string]struct{}

func newMissingSet(tokens []string) missingSet {
	if tokens == nil {
		tokens = DefaultMissingTokens
	}
	set := make(missingSet, len(tokens)+1)
	set[""] = struct{}{}
	for _, t := range tokens {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return set
}

func (m missingSet) has(cell string) bool {
	_, ok := m[strings.ToLower(cell)]
	return ok
}

// column accumulates one column's cleaned cells; "" marks missing.
type column struct {
	name  string
	pos   int
	cells []string
	known []bool
}

// AnalyzeColumns reads a CSV from r and reports the mode of each selected
// column. size is the expected byte count, 0 if unknown.
func AnalyzeColumns(ctx context.Context, r io.Reader, size int64, opts AnalyzeOptions) (*ColumnReport, error) {
	m, err := mode.ParseMethod(string(opts.Method))
	if err != nil {
		return nil, err
	}
	opts.Method = m

	counter := WrapForStreaming(r, size)
	reader := csv.NewReader(counter)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	cols, err := selectColumns(header, opts.Columns)
	if err != nil {
		return nil, err
	}

	missing := newMissingSet(opts.MissingTokens)
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if isEmptyRow(record) {
			continue
		}

		rows++
		if rows%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		for _, c := range cols {
			cell := ""
			if c.pos < len(record) {
				cell = CleanCell(record[c.pos])
			}
			isKnown := !missing.has(cell)
			if !isKnown {
				cell = ""
			}
			c.cells = append(c.cells, cell)
			c.known = append(c.known, isKnown)
		}
	}

	report := &ColumnReport{
		Method:        opts.Method,
		RemoveMissing: opts.RemoveMissing,
		FirstKnown:    opts.FirstKnown,
		Rows:          rows,
		BytesRead:     counter.BytesRead,
		Columns:       make([]ColumnSummary, 0, len(cols)),
	}
	for _, c := range cols {
		summary, err := summarizeColumn(c, opts)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.name, err)
		}
		report.Columns = append(report.Columns, summary)
	}
	return report, nil
}

func readHeader(reader *csv.Reader) ([]string, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if isEmptyRow(record) {
			continue
		}
		header := make([]string, len(record))
		for i, h := range record {
			header[i] = CleanCell(h)
		}
		return header, nil
	}
}

func selectColumns(header []string, names []string) ([]*column, error) {
	if len(names) == 0 {
		cols := make([]*column, len(header))
		for i, h := range header {
			cols[i] = &column{name: h, pos: i}
		}
		return cols, nil
	}

	idx := MakeHeaderIndex(header)
	cols := make([]*column, 0, len(names))
	seen := make(map[int]bool, len(names))
	for _, name := range names {
		pos, ok := idx[strings.ToLower(CleanCell(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		if seen[pos] {
			continue
		}
		seen[pos] = true
		cols = append(cols, &column{name: header[pos], pos: pos})
	}
	return cols, nil
}

func isEmptyRow(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func summarizeColumn(c *column, opts AnalyzeOptions) (ColumnSummary, error) {
	knownCells := make([]string, 0, len(c.cells))
	for i, cell := range c.cells {
		if c.known[i] {
			knownCells = append(knownCells, cell)
		}
	}
	ft := InferFieldType(knownCells)

	seq := make([]mode.Value[string], len(c.cells))
	display := make(map[string]string)
	for i, cell := range c.cells {
		if !c.known[i] {
			seq[i] = mode.Missing[string]()
			continue
		}
		key, ok := CanonicalCell(ft, cell)
		if !ok {
			key = cell
		}
		seq[i] = mode.Known(key)
		if _, seen := display[key]; !seen {
			display[key] = cell
		}
	}

	res, err := mode.Run(opts.Method, seq,
		mode.RemoveMissing(opts.RemoveMissing),
		mode.FirstKnown(opts.FirstKnown),
	)
	if err != nil {
		return ColumnSummary{}, err
	}

	table := mode.Build(seq)
	summary := ColumnSummary{
		Name:     c.name,
		Type:     ft,
		Rows:     table.Len,
		Missing:  table.Missing,
		Distinct: table.Distinct(),
		Kind:     res.Kind().String(),
		Modes:    []string{},
	}
	if i := table.Max(); i >= 0 {
		summary.TopCount = table.Counts[i]
	}
	for _, key := range res.Values() {
		summary.Modes = append(summary.Modes, display[key])
	}
	return summary, nil
}
