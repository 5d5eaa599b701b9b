package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// handleCalculate runs a spot valuation of the index, stores the
// result as a price point, and returns it.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	idx, names, err := s.loadIndexItems(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	valuationResult, err := s.engine.SpotValue(r.Context(), names, idx.Markets, idx.Currency,
		s.publishProgress(idx.ID, "spot"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	point := &model.PricePoint{
		IndexID:        idx.ID,
		Timestamp:      valuationResult.Timestamp,
		Value:          valuationResult.Value,
		Currency:       valuationResult.Currency,
		ItemCount:      valuationResult.ItemCount,
		MarketsUsed:    valuationResult.MarketsUsed,
		ItemsSucceeded: valuationResult.ItemsSucceeded,
		ItemsFailed:    valuationResult.ItemsFailed,
	}
	if err := s.repo.InsertPricePoint(r.Context(), point); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, point)
}

// handleLatest returns the most recent stored price point.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// 404 on an unknown index, not just on a missing point.
	if _, err := s.repo.GetIndex(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	point, err := s.repo.LatestPricePoint(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, point)
}

// handleHistory returns stored price points over the requested window.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	days, err := queryInt(r, "days", 30)
	if err == nil && days < 1 {
		err = fmt.Errorf("%w: days must be >= 1", errBadRequest)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	if _, err := s.repo.GetIndex(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	points, err := s.repo.PriceHistory(r.Context(), id, since)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if points == nil {
		points = []model.PricePoint{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"index_id": id,
		"days":     days,
		"points":   points,
	})
}

// handleSalesHistory computes the robust daily aggregation live from
// marketplace sale records.
func (s *Server) handleSalesHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	days, err := queryInt(r, "days", 30)
	if err != nil {
		s.writeError(w, err)
		return
	}
	threshold, err := queryFloat(r, "outlier_threshold", s.valCfg.OutlierThreshold)
	if err != nil {
		s.writeError(w, err)
		return
	}
	staleDays, err := queryInt(r, "stale_days", s.valCfg.StaleDays)
	if err != nil {
		s.writeError(w, err)
		return
	}

	idx, names, err := s.loadIndexItems(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	aggregates, err := s.engine.RobustHistory(r.Context(), names, idx.Markets, idx.Currency,
		days, threshold, staleDays, s.publishProgress(idx.ID, "history"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"index_id":          id,
		"currency":          idx.Currency,
		"days":              days,
		"outlier_threshold": threshold,
		"stale_days":        staleDays,
		"aggregates":        aggregates,
	})
}
