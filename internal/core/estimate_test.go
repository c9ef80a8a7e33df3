package core

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/JonMunkholm/modeest/internal/mode"
)

func decodeValues(t *testing.T, raw string) []any {
	t.Helper()
	var vals []any
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return vals
}

func TestEstimate(t *testing.T) {
	no := false

	tests := []struct {
		name       string
		req        EstimateRequest
		wantResult string
		wantLen    int
		wantNA     int
	}{
		{"first default", EstimateRequest{Values: decodeValues(t, `[2,1,1,null]`)}, `{"kind":"known","values":[1]}`, 4, 1},
		{"first without first-known", EstimateRequest{Values: decodeValues(t, `[2,1,1,null]`), FirstKnown: &no}, `{"kind":"unknown","values":[]}`, 4, 1},
		{"all set", EstimateRequest{Method: "all", Values: decodeValues(t, `["a","b","a","b"]`)}, `{"kind":"set","values":["a","b"]}`, 4, 0},
		{"single ambiguous", EstimateRequest{Method: "single", Values: decodeValues(t, `["a","a","b",null]`)}, `{"kind":"unknown","values":[]}`, 4, 1},
		{"single remove missing", EstimateRequest{Method: "SINGLE", RemoveMissing: true, Values: decodeValues(t, `["a","a","b",null]`)}, `{"kind":"known","values":["a"]}`, 4, 1},
		{"empty", EstimateRequest{Values: nil}, `{"kind":"unknown","values":[]}`, 0, 0},
		{"booleans", EstimateRequest{Values: decodeValues(t, `[true,false,true]`)}, `{"kind":"known","values":[true]}`, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Estimate(tt.req)
			if err != nil {
				t.Fatalf("Estimate: %v", err)
			}
			got, err := json.Marshal(res.Result)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.wantResult {
				t.Errorf("result = %s, want %s", got, tt.wantResult)
			}
			if res.Length != tt.wantLen || res.Missing != tt.wantNA {
				t.Errorf("length/missing = %d/%d, want %d/%d", res.Length, res.Missing, tt.wantLen, tt.wantNA)
			}
		})
	}
}

func TestEstimate_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		req  EstimateRequest
	}{
		{"mixed types", EstimateRequest{Values: decodeValues(t, `["1",1]`)}},
		{"nested array", EstimateRequest{Values: decodeValues(t, `[[1],[1]]`)}},
		{"object", EstimateRequest{Values: decodeValues(t, `[{"a":1}]`)}},
		{"unknown method", EstimateRequest{Method: "median", Values: decodeValues(t, `[1]`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Estimate(tt.req)
			if !errors.Is(err, mode.ErrContractViolation) {
				t.Errorf("expected ErrContractViolation, got %v", err)
			}
			if !IsUserFacing(err) {
				t.Errorf("contract violation should map to a user message: %v", err)
			}
		})
	}
}

func TestSizeLimitReader(t *testing.T) {
	ok := &sizeLimitReader{r: strings.NewReader("abcde"), remaining: 5}
	if b, err := io.ReadAll(ok); err != nil || string(b) != "abcde" {
		t.Errorf("at limit: %q, %v", b, err)
	}

	over := &sizeLimitReader{r: strings.NewReader("abcdef"), remaining: 5}
	if _, err := io.ReadAll(over); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("over limit: expected ErrFileTooLarge, got %v", err)
	}
}
