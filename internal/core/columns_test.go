package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/modeest/internal/mode"
)

const sampleCSV = `city,score,active,joined
Oslo,1,yes,2024-01-05
Bergen,"1,000",no,1/5/2024
Oslo,1000,YES,2024-01-05
NA,,N/A,
Oslo,2,no,2024-02-01
`

func analyze(t *testing.T, input string, opts AnalyzeOptions) *ColumnReport {
	t.Helper()
	report, err := AnalyzeColumns(context.Background(), strings.NewReader(input), int64(len(input)), opts)
	if err != nil {
		t.Fatalf("AnalyzeColumns: %v", err)
	}
	return report
}

func columnByName(t *testing.T, r *ColumnReport, name string) ColumnSummary {
	t.Helper()
	for _, c := range r.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not in report", name)
	return ColumnSummary{}
}

func TestAnalyzeColumns_First(t *testing.T) {
	report := analyze(t, sampleCSV, AnalyzeOptions{Method: mode.MethodFirst, FirstKnown: true})

	if report.Rows != 5 {
		t.Errorf("Rows = %d, want 5", report.Rows)
	}
	if report.BytesRead != int64(len(sampleCSV)) {
		t.Errorf("BytesRead = %d, want %d", report.BytesRead, len(sampleCSV))
	}
	if len(report.Columns) != 4 {
		t.Fatalf("got %d columns, want 4", len(report.Columns))
	}

	tests := []struct {
		column   string
		wantType FieldType
		wantKind string
		wantMode []string
		missing  int
		distinct int
	}{
		{"city", FieldText, "known", []string{"Oslo"}, 1, 2},
		// "1,000" and "1000" are one value; the first spelling is shown.
		{"score", FieldNumeric, "known", []string{"1,000"}, 1, 3},
		// true and false tie at 2 with one missing slot.
		{"active", FieldBool, "unknown", []string{}, 1, 2},
		{"joined", FieldDate, "known", []string{"2024-01-05"}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			c := columnByName(t, report, tt.column)
			if c.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", c.Type, tt.wantType)
			}
			if c.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", c.Kind, tt.wantKind)
			}
			if strings.Join(c.Modes, "|") != strings.Join(tt.wantMode, "|") {
				t.Errorf("Modes = %v, want %v", c.Modes, tt.wantMode)
			}
			if c.Missing != tt.missing || c.Distinct != tt.distinct || c.Rows != 5 {
				t.Errorf("stats = rows %d missing %d distinct %d", c.Rows, c.Missing, c.Distinct)
			}
			if c.Determined() != (tt.wantKind != "unknown") {
				t.Errorf("Determined() = %v", c.Determined())
			}
		})
	}
}

func TestAnalyzeColumns_AllAndSingle(t *testing.T) {
	for _, m := range []mode.Method{mode.MethodAll, mode.MethodSingle} {
		t.Run(string(m), func(t *testing.T) {
			report := analyze(t, sampleCSV, AnalyzeOptions{Method: m})

			// Oslo 3 beats Bergen 1 even if the missing slot is Bergen.
			if c := columnByName(t, report, "city"); c.Kind != "known" || c.Modes[0] != "Oslo" {
				t.Errorf("city = %+v", c)
			}
			// 1000 has 2; "1" plus the missing slot could also reach 2.
			if c := columnByName(t, report, "score"); c.Kind != "unknown" {
				t.Errorf("score = %+v", c)
			}
		})
	}
}

func TestAnalyzeColumns_AllReturnsSet(t *testing.T) {
	input := "fruit\napple\npear\napple\npear\nplum\n"
	report := analyze(t, input, AnalyzeOptions{Method: mode.MethodAll})

	c := report.Columns[0]
	if c.Kind != "set" {
		t.Fatalf("Kind = %q, want set", c.Kind)
	}
	if strings.Join(c.Modes, ",") != "apple,pear" {
		t.Errorf("Modes = %v, want [apple pear]", c.Modes)
	}
	if c.TopCount != 2 {
		t.Errorf("TopCount = %d, want 2", c.TopCount)
	}
}

func TestAnalyzeColumns_LargeIntegersStayDistinct(t *testing.T) {
	input := "acct\n9007199254740993\n9007199254740992\n12345\n12345\n9007199254740993\n"
	report := analyze(t, input, AnalyzeOptions{Method: mode.MethodAll})

	c := columnByName(t, report, "acct")
	if c.Type != FieldNumeric {
		t.Errorf("Type = %v, want numeric", c.Type)
	}
	if c.Distinct != 3 {
		t.Errorf("Distinct = %d, want 3", c.Distinct)
	}
	if c.Kind != "set" || strings.Join(c.Modes, ",") != "9007199254740993,12345" {
		t.Errorf("Kind = %q, Modes = %v, want set [9007199254740993 12345]", c.Kind, c.Modes)
	}
	if c.TopCount != 2 {
		t.Errorf("TopCount = %d, want 2", c.TopCount)
	}
}

func TestAnalyzeColumns_MethodNameCaseInsensitive(t *testing.T) {
	input := "fruit\napple\npear\napple\npear\n"
	report := analyze(t, input, AnalyzeOptions{Method: " ALL "})

	if report.Method != mode.MethodAll {
		t.Errorf("Method = %q, want %q", report.Method, mode.MethodAll)
	}
	if c := report.Columns[0]; c.Kind != "set" {
		t.Errorf("Kind = %q, want set", c.Kind)
	}
}

func TestAnalyzeColumns_RemoveMissing(t *testing.T) {
	input := "v\nNA\nNA\nNA\nx\n"

	kept := analyze(t, input, AnalyzeOptions{Method: mode.MethodSingle})
	if kept.Columns[0].Kind != "unknown" {
		t.Errorf("with missing kept: Kind = %q, want unknown", kept.Columns[0].Kind)
	}

	removed := analyze(t, input, AnalyzeOptions{Method: mode.MethodSingle, RemoveMissing: true})
	if c := removed.Columns[0]; c.Kind != "known" || c.Modes[0] != "x" {
		t.Errorf("with missing removed: %+v", c)
	}
	// Stats describe the column as read.
	if removed.Columns[0].Missing != 3 {
		t.Errorf("Missing = %d, want 3", removed.Columns[0].Missing)
	}
}

func TestAnalyzeColumns_SelectColumns(t *testing.T) {
	report := analyze(t, sampleCSV, AnalyzeOptions{Columns: []string{"Score", "city", "score"}})

	if len(report.Columns) != 2 {
		t.Fatalf("got %d columns, want 2", len(report.Columns))
	}
	if report.Columns[0].Name != "score" || report.Columns[1].Name != "city" {
		t.Errorf("order = %s, %s", report.Columns[0].Name, report.Columns[1].Name)
	}

	_, err := AnalyzeColumns(context.Background(), strings.NewReader(sampleCSV), 0,
		AnalyzeOptions{Columns: []string{"price"}})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestAnalyzeColumns_MissingTokens(t *testing.T) {
	input := "v\nNA\nNA\n?\n"

	def := analyze(t, input, AnalyzeOptions{})
	if def.Columns[0].Missing != 2 {
		t.Errorf("default tokens: Missing = %d, want 2", def.Columns[0].Missing)
	}

	custom := analyze(t, input, AnalyzeOptions{MissingTokens: []string{"?"}})
	c := custom.Columns[0]
	if c.Missing != 1 || c.Kind != "known" || c.Modes[0] != "NA" {
		t.Errorf("custom tokens: %+v", c)
	}
}

func TestAnalyzeColumns_ShortRowsAndBlankLines(t *testing.T) {
	input := "a,b\n\n1\n,,\n1,x\n"
	report := analyze(t, input, AnalyzeOptions{})

	if report.Rows != 2 {
		t.Errorf("Rows = %d, want 2", report.Rows)
	}
	b := columnByName(t, report, "b")
	if b.Missing != 1 || b.Rows != 2 {
		t.Errorf("b = %+v", b)
	}
	// x fills half the slots and has no known competitor.
	if b.Kind != "known" || b.Modes[0] != "x" {
		t.Errorf("b mode = %+v", b)
	}
}

func TestAnalyzeColumns_BOMAndEmptyColumn(t *testing.T) {
	input := "\xEF\xBB\xBFname,notes\nann,\nbob,NA\n"
	report := analyze(t, input, AnalyzeOptions{})

	if report.Columns[0].Name != "name" {
		t.Errorf("header = %q, BOM not stripped", report.Columns[0].Name)
	}
	notes := columnByName(t, report, "notes")
	if notes.Kind != "unknown" || notes.Distinct != 0 || notes.Missing != 2 {
		t.Errorf("notes = %+v", notes)
	}
	if notes.Type != FieldText {
		t.Errorf("empty column type = %v, want text", notes.Type)
	}
}

func TestAnalyzeColumns_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := AnalyzeColumns(ctx, strings.NewReader(""), 0, AnalyzeOptions{}); !errors.Is(err, ErrNoHeader) {
		t.Errorf("empty input: expected ErrNoHeader, got %v", err)
	}
	if _, err := AnalyzeColumns(ctx, strings.NewReader("\n\n"), 0, AnalyzeOptions{}); !errors.Is(err, ErrNoHeader) {
		t.Errorf("blank input: expected ErrNoHeader, got %v", err)
	}
	_, err := AnalyzeColumns(ctx, strings.NewReader("a\n1\n"), 0, AnalyzeOptions{Method: "median"})
	if !errors.Is(err, mode.ErrContractViolation) {
		t.Errorf("bad method: expected ErrContractViolation, got %v", err)
	}
}

func TestAnalyzeColumns_ContextCancelled(t *testing.T) {
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < 3*ContextCheckInterval; i++ {
		b.WriteString("1\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AnalyzeColumns(ctx, strings.NewReader(b.String()), 0, AnalyzeOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func BenchmarkAnalyzeColumns(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("id,category,amount\n")
	cats := []string{"alpha", "beta", "gamma", "NA"}
	for i := 0; i < 10000; i++ {
		sb.WriteString("row,")
		sb.WriteString(cats[i%len(cats)])
		sb.WriteString(",\"1,000\"\n")
	}
	input := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := AnalyzeColumns(context.Background(), strings.NewReader(input), int64(len(input)),
			AnalyzeOptions{Method: mode.MethodFirst, FirstKnown: true})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func TestColumnSummary_ModeString(t *testing.T) {
	tests := []struct {
		name string
		c    ColumnSummary
		want string
	}{
		{"unknown", ColumnSummary{Kind: "unknown"}, "NA"},
		{"known", ColumnSummary{Kind: "known", Modes: []string{"Oslo"}}, "Oslo"},
		{"set", ColumnSummary{Kind: "set", Modes: []string{"no", "yes"}}, "{no, yes}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.ModeString(); got != tt.want {
				t.Errorf("ModeString() = %q, want %q", got, tt.want)
			}
		})
	}
}
