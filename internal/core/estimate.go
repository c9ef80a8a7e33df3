package core

import (
	"github.com/JonMunkholm/modeest/internal/mode"
)

// EstimateRequest is the body of POST /api/estimate. JSON null entries in
// Values are missing.
type EstimateRequest struct {
	Values        []any  `json:"values"`
	Method        string `json:"method"`
	RemoveMissing bool   `json:"removeMissing"`
	FirstKnown    *bool  `json:"firstKnown,omitempty"`

	// Record stores the call in the audit log.
	Record bool `json:"record"`
}

// EstimateResult is the response of Estimate.
type EstimateResult struct {
	Method   mode.Method      `json:"method"`
	Result   mode.Result[any] `json:"result"`
	Length   int              `json:"length"`
	Missing  int              `json:"missing"`
	Distinct int              `json:"distinct"`
}

// Estimate runs one estimator over untyped values. Mixed or non-comparable
// element types and unknown methods fail with mode.ErrContractViolation.
func Estimate(req EstimateRequest) (*EstimateResult, error) {
	m, err := mode.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}
	seq, err := mode.FromAny(req.Values)
	if err != nil {
		return nil, err
	}

	firstKnown := true
	if req.FirstKnown != nil {
		firstKnown = *req.FirstKnown
	}

	res, err := mode.Run(m, seq, mode.RemoveMissing(req.RemoveMissing), mode.FirstKnown(firstKnown))
	if err != nil {
		return nil, err
	}

	table := mode.Build(seq)
	return &EstimateResult{
		Method:   m,
		Result:   res,
		Length:   table.Len,
		Missing:  table.Missing,
		Distinct: table.Distinct(),
	}, nil
}
