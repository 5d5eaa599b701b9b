package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Antoniohaas1337/IndexTracker/internal/catalog"
	"github.com/Antoniohaas1337/IndexTracker/internal/market"
	"github.com/Antoniohaas1337/IndexTracker/internal/store"
	"github.com/Antoniohaas1337/IndexTracker/internal/valuation"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "err", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, market.ErrUnknownMarket),
		errors.Is(err, market.ErrUnknownCurrency),
		errors.Is(err, valuation.ErrInvalidParameter),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, valuation.ErrNoItems),
		errors.Is(err, valuation.ErrNoMarkets):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrSyncInProgress):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// errBadRequest marks request-shape problems (bad JSON, bad IDs).
var errBadRequest = errors.New("bad request")
