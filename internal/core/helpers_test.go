package core

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestNewWhereBuilder(t *testing.T) {
	wb := NewWhereBuilder()
	if wb.argIndex != 1 {
		t.Errorf("expected argIndex 1, got %d", wb.argIndex)
	}

	clause, args := wb.Build()
	if clause != "" {
		t.Errorf("expected empty clause, got %q", clause)
	}
	if args != nil {
		t.Errorf("expected nil args, got %v", args)
	}
}

func TestWhereBuilder_Add(t *testing.T) {
	wb := NewWhereBuilder()
	wb.Add("action", "estimate")
	wb.Add("severity", "")
	wb.Add("severity", "low")

	clause, args := wb.Build()
	if want := " WHERE action = $1 AND severity = $2"; clause != want {
		t.Errorf("expected %q, got %q", want, clause)
	}
	if len(args) != 2 || args[0] != "estimate" || args[1] != "low" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestWhereBuilder_AddAnalysisID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantClause string
	}{
		{"valid", "6f1c2a9e-3b5d-4c8e-9f0a-1b2c3d4e5f60", " WHERE analysis_id = $1"},
		{"empty", "", ""},
		{"malformed", "not-a-uuid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			wb.AddAnalysisID(tt.id)
			clause, args := wb.Build()
			if clause != tt.wantClause {
				t.Errorf("expected %q, got %q", tt.wantClause, clause)
			}
			if tt.wantClause != "" {
				u, ok := args[0].(pgtype.UUID)
				if !ok || PgUUIDToString(u) != tt.id {
					t.Errorf("expected uuid arg %s, got %v", tt.id, args[0])
				}
			}
		})
	}
}

func TestWhereBuilder_AddTimeRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		wantClause string
		wantArgs   int
	}{
		{"both bounds", start, end, " WHERE created_at >= $1 AND created_at <= $2", 2},
		{"start only", start, time.Time{}, " WHERE created_at >= $1", 1},
		{"end only", time.Time{}, end, " WHERE created_at <= $1", 1},
		{"open", time.Time{}, time.Time{}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			wb.AddTimeRange("created_at", tt.start, tt.end)
			clause, args := wb.Build()
			if clause != tt.wantClause {
				t.Errorf("expected %q, got %q", tt.wantClause, clause)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("expected %d args, got %d", tt.wantArgs, len(args))
			}
		})
	}
}

func TestWhereBuilder_NextArgIndex(t *testing.T) {
	wb := NewWhereBuilder()
	if got := wb.NextArgIndex(); got != 1 {
		t.Errorf("initial NextArgIndex = %d, want 1", got)
	}

	wb.Add("action", "estimate")
	wb.AddTimeRange("created_at", time.Unix(0, 0), time.Unix(1, 0))
	if got := wb.NextArgIndex(); got != 4 {
		t.Errorf("NextArgIndex = %d, want 4", got)
	}
}
