package server

import (
	"fmt"
	"net/http"
	"strconv"
)

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	if query == "" {
		query = r.URL.Query().Get("q")
	}

	limit, err := queryInt(r, "limit", 50)
	if err == nil && (limit < 1 || limit > 500) {
		err = fmt.Errorf("%w: limit must be in [1, 500]", errBadRequest)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	offset, err := queryInt(r, "offset", 0)
	if err == nil && offset < 0 {
		err = fmt.Errorf("%w: offset must be >= 0", errBadRequest)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	items, total, err := s.repo.SearchItems(r.Context(), query, limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleSyncItems(w http.ResponseWriter, r *http.Request) {
	if err := s.items.Sync(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.items.Status())
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return v, nil
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
	}
	return v, nil
}
