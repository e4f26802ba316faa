package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/neoscope/pkg/buildinfo"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/neo"
	"github.com/matzehuels/neoscope/pkg/views"
)

type ctxKey struct{}

// requireDataset resolves the current dataset once per request, answers
// 503 when none is loaded, and handles ETag revalidation.
func (s *Server) requireDataset(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds, err := s.store.Require()
		if err != nil {
			writeError(w, err)
			return
		}

		etag := `"` + ds.ID() + `"`
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, ds)))
	})
}

func etagMatches(header, etag string) bool {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || strings.TrimPrefix(part, "W/") == etag {
			return true
		}
	}
	return false
}

func datasetFrom(r *http.Request) *neo.Dataset {
	return r.Context().Value(ctxKey{}).(*neo.Dataset)
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	State     string `json:"state"`
	Snapshot  string `json:"snapshot,omitempty"`
	Total     int    `json:"total,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: buildinfo.Version}
	switch st := s.store.State().(type) {
	case neo.Unloaded:
		resp.State = "unloaded"
	case neo.Loaded:
		resp.State = "loaded"
		resp.Snapshot = st.Dataset.ID()
		resp.Total = st.Dataset.Len()
	case neo.Failed:
		resp.State = "failed"
	}
	if f, ok := s.store.LastError(); ok {
		resp.LastError = errs.UserMessage(f.Err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, datasetFrom(r).Summary())
}

func (s *Server) handleByDate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, datasetFrom(r).ByDate())
}

func (s *Server) handleSizeCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, datasetFrom(r).BySizeCategory())
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("metric") == "" {
		writeError(w, errs.New(errs.ErrCodeInvalidInput, "metric query parameter is required"))
		return
	}
	m, err := neo.ParseMetric(q.Get("metric"))
	if err != nil {
		writeError(w, err)
		return
	}

	n := neo.DefaultTopN
	if raw := q.Get("n"); raw != "" {
		if n, err = strconv.Atoi(raw); err != nil || n < 1 {
			writeError(w, errs.New(errs.ErrCodeInvalidInput, "n must be a positive integer"))
			return
		}
	}

	top, err := datasetFrom(r).TopN(m, n)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	m, err := neo.ParseMetric(chi.URLParam(r, "metric"))
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := datasetFrom(r).Stats(m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, datasetFrom(r).DailyCounts())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, views.Catalog())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := views.Build(chi.URLParam(r, "id"), datasetFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.refresher == nil {
		writeError(w, errs.New(errs.ErrCodeUnsupported, "refresh is disabled"))
		return
	}
	res, err := s.refresher.RunNow(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("ETag", `"`+res.Dataset.ID()+`"`)
	writeJSON(w, http.StatusOK, res.Dataset.Summary())
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var rl *errs.RateLimitedError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	msg := errs.UserMessage(err)
	if rl != nil {
		msg = rl.Error()
	}
	writeJSON(w, errs.HTTPStatus(err), errorBody{Error: errorDetail{Code: code, Message: msg}})
}
