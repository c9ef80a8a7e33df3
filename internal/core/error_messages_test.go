package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/modeest/internal/mode"
)

func TestMapError(t *testing.T) {
	_, mixed := mode.Estimate("first", []any{"a", 1.0})
	_, badMethod := mode.ParseMethod("median")

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"mixed element types", mixed, "VAL001"},
		{"unknown method", badMethod, "VAL002"},
		{"no header", ErrNoHeader, "VAL003"},
		{"column not found", fmt.Errorf("%w: %q", ErrColumnNotFound, "price"), "VAL004"},
		{"invalid id", ErrInvalidID, "VAL005"},
		{"invalid parameter", fmt.Errorf("%w: removeMissing %q", ErrInvalidParameter, "maybe"), "VAL006"},
		{"no file", ErrNoFile, "FILE004"},
		{"empty file", ErrEmptyFile, "FILE005"},
		{"invalid csv", errors.New(`invalid csv: parse error on line 3: bare " in non-quoted field`), "FILE002"},
		{"busy", ErrTooManyAnalyses, "ANL001"},
		{"not found sentinel", ErrAnalysisNotFound, "ANL002"},
		{"audit entry", ErrAuditEntryNotFound, "ANL005"},
		{"no rows", fmt.Errorf("get analysis: %w", pgx.ErrNoRows), "ANL002"},
		{"cancelled", context.Canceled, "ANL003"},
		{"deadline before generic timeout", fmt.Errorf("timeout: %w", context.DeadlineExceeded), "ANL004"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB001"},
		{"generic timeout", errors.New("i/o timeout"), "DB007"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("DEADLOCK DETECTED"), "DB005"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrTooManyAnalyses)
	want := "The system is busy with other analyses (Code: ANL001). Please wait a moment and try again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"known", ErrNoHeader, true},
		{"unknown", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	if got := NewUserError(nil); got != nil {
		t.Errorf("NewUserError(nil) = %v, want nil", got)
	}

	techErr := fmt.Errorf("lookup: %w", ErrAnalysisNotFound)
	userErr := NewUserError(techErr)
	if userErr.Error() != "Analysis not found" {
		t.Errorf("Error() = %q", userErr.Error())
	}
	if !errors.Is(userErr, ErrAnalysisNotFound) {
		t.Error("UserError should unwrap to the technical error")
	}
}
