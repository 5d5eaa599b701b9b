package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/market"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := struct {
		Status     string         `json:"status"`
		Components map[string]any `json:"components"`
	}{
		Status:     "healthy",
		Components: make(map[string]any),
	}

	if err := s.repo.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Components["database"] = map[string]string{
			"status": "disconnected",
			"error":  err.Error(),
		}
	} else {
		health.Components["database"] = "connected"
	}

	count, err := s.repo.ItemCount(ctx)
	if err == nil {
		health.Components["catalog"] = map[string]any{
			"items":  count,
			"status": s.items.Status(),
		}
		if count == 0 {
			health.Status = "degraded"
		}
	}

	status := http.StatusOK
	if health.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, health)
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"markets":    market.List(),
		"currencies": market.Currencies(),
	})
}
