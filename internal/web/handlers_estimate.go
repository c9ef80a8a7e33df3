package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/modeest/internal/core"
)

// maxEstimateBody caps the JSON body of POST /api/estimate.
const maxEstimateBody = 10 << 20

// handleEstimate runs one estimator over the values in the request body.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEstimateBody)

	var req core.EstimateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: body: %v", core.ErrInvalidParameter, err))
		return
	}

	res, err := s.service.Estimate(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, res)
}
