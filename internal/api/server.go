package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"confdex/internal/catalog"
	"confdex/internal/config"
	"confdex/internal/util"
)

type Server struct {
	cfg   config.Config
	store *catalog.Store
}

func NewServer(cfg config.Config, store *catalog.Store) *Server {
	return &Server{cfg: cfg, store: store}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/papers", s.handlePapers)
	mux.HandleFunc("/papers/", s.handlePaperByID)
	mux.HandleFunc("/authors", s.handleAuthors)
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/query", s.handleQuery)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePapers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	snap, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	params := filterParams(r)
	writeListing(w, catalog.FilterPapers(snap.Papers, params), params, 100)
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	snap, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	params := filterParams(r)
	writeListing(w, catalog.FilterAuthors(snap.Authors, params), params, 50)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	snap, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	params := filterParams(r)
	writeListing(w, catalog.FilterSessions(snap.Sessions, params), params, 50)
}

func (s *Server) handlePaperByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/papers/"), "/")
	if id == "" {
		writeErr(w, http.StatusNotFound, util.ErrNotFound)
		return
	}
	snap, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	for _, p := range snap.Papers {
		if p.PaperID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeErr(w, http.StatusNotFound, fmt.Errorf("paper %s: %w", id, util.ErrNotFound))
}

// filterParams flattens the query string into the catalog's parameter bag,
// keeping the first value of each name.
func filterParams(r *http.Request) catalog.Params {
	params := catalog.Params{}
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

// writeListing answers a list endpoint: limit=all returns the bare filtered
// collection, anything else a clamped page envelope.
func writeListing[T any](w http.ResponseWriter, items []T, params catalog.Params, defaultLimit int) {
	if params["limit"] == "all" {
		writeJSON(w, http.StatusOK, items)
		return
	}
	page := intParam(params, "page", 1)
	limit := intParam(params, "limit", defaultLimit)
	writeJSON(w, http.StatusOK, catalog.Paginate(items, page, limit))
}

func intParam(params catalog.Params, key string, fallback int) int {
	v := params[key]
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	body := map[string]any{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	}
	if code >= 500 && err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, code, map[string]any{"error": body})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "no such file"), strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "CD-DATA-5001",
				Message: "Dataset source is missing. Check the data directory or database and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "CD-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "CD-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		msg := "Invalid request. Check inputs and retry."
		if err != nil && errors.Is(err, util.ErrBadRequest) && strings.Contains(raw, "id") {
			msg = "Paper id is required."
		}
		return apiError{Code: "CD-API-4001", Message: msg}
	case status == http.StatusNotFound:
		return apiError{Code: "CD-API-4004", Message: "Requested resource was not found."}
	case status == http.StatusMethodNotAllowed:
		return apiError{Code: "CD-API-4005", Message: "This endpoint does not support the requested method."}
	}
	return apiError{Code: "CD-API-4000", Message: "Request failed."}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
