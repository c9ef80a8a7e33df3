package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/modeest/internal/core"
)

// handleAuditLog lists audit entries. Query parameters: action, severity,
// analysis, from and to (YYYY-MM-DD, inclusive), limit, offset.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.AuditLogFilter{
		Action:     core.AuditAction(q.Get("action")),
		Severity:   core.AuditSeverity(q.Get("severity")),
		AnalysisID: q.Get("analysis"),
		Limit:      parseIntParam(r, "limit", core.DefaultAuditLimit),
		Offset:     parseIntParam(r, "offset", 0),
	}

	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(time.DateOnly, from); err == nil {
			filter.StartTime = t
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.DateOnly, to); err == nil {
			filter.EndTime = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	page, err := s.service.GetAuditLog(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, page)
}

// handleAuditLogEntry returns one audit entry by id.
func (s *Server) handleAuditLogEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.service.GetAuditLogByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, entry)
}
