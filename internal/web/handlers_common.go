package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/modeest/internal/core"
	"github.com/JonMunkholm/modeest/internal/mode"
)

// multipartMemory is how much of a multipart upload is held in memory before
// spilling to a temp file.
const multipartMemory = 32 << 20

// formOverhead is the allowance for multipart headers and form fields on top
// of the file size limit.
const formOverhead = 1 << 20

// parseIntParam parses a non-negative integer query parameter, falling back
// to defaultVal when it is absent or malformed.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

// parseBoolValue parses a form boolean. Checkbox forms send a hidden "false"
// followed by "true" when ticked, so the last value wins.
func parseBoolValue(values []string, name string, defaultVal bool) (bool, error) {
	if len(values) == 0 || values[len(values)-1] == "" {
		return defaultVal, nil
	}
	v := values[len(values)-1]
	if v == "on" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", core.ErrInvalidParameter, name, v)
	}
	return b, nil
}

// splitList splits a comma-separated form value, dropping blanks. It returns
// nil when nothing is left.
func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// analyzeOptions reads method, removeMissing, firstKnown, columns and missing
// from a parsed form. Absent fields take the configured defaults.
func (s *Server) analyzeOptions(r *http.Request) (core.AnalyzeOptions, error) {
	defaults := s.cfg.Analysis
	form := r.Form

	method := form.Get("method")
	if method == "" {
		method = defaults.DefaultMethod
	}
	m, err := mode.ParseMethod(method)
	if err != nil {
		return core.AnalyzeOptions{}, err
	}

	removeMissing, err := parseBoolValue(form["removeMissing"], "removeMissing", defaults.RemoveMissing)
	if err != nil {
		return core.AnalyzeOptions{}, err
	}
	firstKnown, err := parseBoolValue(form["firstKnown"], "firstKnown", defaults.FirstKnown)
	if err != nil {
		return core.AnalyzeOptions{}, err
	}

	return core.AnalyzeOptions{
		Method:        m,
		RemoveMissing: removeMissing,
		FirstKnown:    firstKnown,
		MissingTokens: splitList(form.Get("missing")),
		Columns:       splitList(form.Get("columns")),
	}, nil
}
