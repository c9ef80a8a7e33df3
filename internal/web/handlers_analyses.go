package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/modeest/internal/core"
)

// analyzeRequest reads the multipart upload and runs the analysis. The body
// cap leaves room for the form fields around the file; the file itself is
// checked against the limit again by AnalyzeUpload.
func (s *Server) analyzeRequest(w http.ResponseWriter, r *http.Request) (*core.Analysis, error) {
	if limit := s.cfg.Analysis.MaxFileSize; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: request body exceeds %d bytes", core.ErrFileTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidParameter, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, core.ErrNoFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: file: %v", core.ErrInvalidParameter, err)
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, core.ErrEmptyFile
	}

	opts, err := s.analyzeOptions(r)
	if err != nil {
		return nil, err
	}
	return s.service.AnalyzeUpload(r.Context(), header.Filename, file, header.Size, opts)
}

// handleCreateAnalysis is POST /api/analyses.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analyzeRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/analyses/"+analysis.ID)
	writeJSONStatus(w, r, http.StatusCreated, analysis)
}

// handleAnalyzeForm is the dashboard's form target; it redirects to the new
// analysis page.
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analyzeRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/analyses/"+analysis.ID, http.StatusSeeOther)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 20)
	offset := parseIntParam(r, "offset", 0)

	page, err := s.service.ListAnalyses(r.Context(), limit, offset)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, page)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.service.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, analysis)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteAnalysis(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLimiterStatus reports analysis slot usage.
func (s *Server) handleLimiterStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.LimiterStatus())
}

// handleHealth pings the database.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, map[string]string{"status": "ok"})
}
