package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Antoniohaas1337/IndexTracker/internal/market"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// indexRequest is the request body for creating or updating an index.
type indexRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Markets     []string `json:"markets"`
	Currency    string   `json:"currency"`
	ItemIDs     []int64  `json:"item_ids"`
}

func (req *indexRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", errBadRequest)
	}
	if len(req.ItemIDs) == 0 {
		return fmt.Errorf("%w: item_ids must not be empty", errBadRequest)
	}
	if len(req.Markets) == 0 {
		return fmt.Errorf("%w: markets must not be empty", errBadRequest)
	}
	if err := market.ValidateMarkets(req.Markets); err != nil {
		return err
	}
	return market.ValidateCurrency(req.Currency)
}

func (s *Server) handleListIndices(w http.ResponseWriter, r *http.Request) {
	kind := model.IndexKind(strings.ToUpper(r.URL.Query().Get("kind")))

	indices, err := s.repo.ListIndices(r.Context(), kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if indices == nil {
		indices = []model.Index{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"indices": indices})
}

func (s *Server) handleCreateIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	idx := &model.Index{
		Name:        req.Name,
		Description: req.Description,
		Kind:        model.IndexCustom,
		Markets:     req.Markets,
		Currency:    strings.ToUpper(req.Currency),
		ItemIDs:     req.ItemIDs,
	}
	if err := s.repo.CreateIndex(r.Context(), idx); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, idx)
}

func (s *Server) handleGetIndex(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	idx, err := s.repo.GetIndex(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, idx)
}

func (s *Server) handleUpdateIndex(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	idx := &model.Index{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Markets:     req.Markets,
		Currency:    strings.ToUpper(req.Currency),
		ItemIDs:     req.ItemIDs,
	}
	if err := s.repo.UpdateIndex(r.Context(), idx); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, idx)
}

func (s *Server) handleDeleteIndex(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.repo.DeleteIndex(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathUUID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid index id", errBadRequest)
	}
	return id, nil
}
