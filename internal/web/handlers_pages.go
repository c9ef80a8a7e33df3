package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/modeest/internal/logging"
	"github.com/JonMunkholm/modeest/internal/web/templates"
)

const dashboardPageSize = 20

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := s.service.ListAnalyses(r.Context(), dashboardPageSize, parseIntParam(r, "offset", 0))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	params := templates.DashboardParams{
		Page:          page,
		Limiter:       s.service.LimiterStatus(),
		DefaultMethod: s.cfg.Analysis.DefaultMethod,
		RemoveMissing: s.cfg.Analysis.RemoveMissing,
		FirstKnown:    s.cfg.Analysis.FirstKnown,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dashboard", "error", err)
	}
}

func (s *Server) handleAnalysisPage(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.service.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.AnalysisPage(analysis).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render analysis page", "error", err)
	}
}
