package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Antoniohaas1337/IndexTracker/internal/market"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
	"github.com/Antoniohaas1337/IndexTracker/internal/store"
)

// prebuiltDef maps one generated index category to the catalog item
// types it tracks.
type prebuiltDef struct {
	name  string
	types []string
}

var prebuiltDefs = map[string]prebuiltDef{
	"RIFLES":   {"Rifles Index", []string{"Rifle", "Sniper Rifle"}},
	"PISTOLS":  {"Pistols Index", []string{"Pistol"}},
	"SMGS":     {"SMGs Index", []string{"SMG"}},
	"KNIVES":   {"Knives Index", []string{"Knife"}},
	"GLOVES":   {"Gloves Index", []string{"Gloves"}},
	"CASES":    {"Cases Index", []string{"Container"}},
	"GRAFFITI": {"Graffiti Index", []string{"Graffiti"}},
}

func (s *Server) handleListPrebuilt(w http.ResponseWriter, r *http.Request) {
	indices, err := s.repo.ListIndices(r.Context(), model.IndexPrebuilt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if indices == nil {
		indices = []model.Index{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"indices": indices})
}

func (s *Server) handleGetPrebuilt(w http.ResponseWriter, r *http.Request) {
	category := strings.ToUpper(r.PathValue("category"))
	if _, ok := prebuiltDefs[category]; !ok {
		s.writeError(w, fmt.Errorf("%w: unknown prebuilt category %q", errBadRequest, category))
		return
	}

	idx, err := s.repo.PrebuiltByCategory(r.Context(), category)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, idx)
}

// handleGeneratePrebuilt creates or refreshes one generated index per
// category from the current catalog. Categories with no catalog items
// are reported but not created.
func (s *Server) handleGeneratePrebuilt(w http.ResponseWriter, r *http.Request) {
	generated := make([]model.Index, 0, len(prebuiltDefs))
	empty := []string{}

	for _, category := range prebuiltCategories() {
		idx, err := s.generatePrebuilt(r.Context(), category)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if idx == nil {
			empty = append(empty, category)
			continue
		}
		generated = append(generated, *idx)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"generated":        generated,
		"empty_categories": empty,
	})
}

// generatePrebuilt builds the basket for one category and upserts its
// index definition. Returns nil when the catalog has no matching items.
func (s *Server) generatePrebuilt(ctx context.Context, category string) (*model.Index, error) {
	def := prebuiltDefs[category]

	var itemIDs []int64
	for _, itemType := range def.types {
		items, err := s.repo.ItemsByType(ctx, itemType, 0)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID)
		}
	}
	if len(itemIDs) == 0 {
		return nil, nil
	}

	existing, err := s.repo.PrebuiltByCategory(ctx, category)
	switch {
	case err == nil:
		existing.ItemIDs = itemIDs
		if err := s.repo.UpdateIndex(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, store.ErrNotFound):
		idx := &model.Index{
			Name:        def.name,
			Description: fmt.Sprintf("Auto-generated index tracking all %s items", strings.ToLower(category)),
			Kind:        model.IndexPrebuilt,
			Category:    category,
			Markets:     market.IDs(),
			Currency:    "USD",
			ItemIDs:     itemIDs,
		}
		if err := s.repo.CreateIndex(ctx, idx); err != nil {
			return nil, err
		}
		return idx, nil
	default:
		return nil, err
	}
}

// prebuiltCategories returns the categories in a stable order.
func prebuiltCategories() []string {
	return []string{"RIFLES", "PISTOLS", "SMGS", "KNIVES", "GLOVES", "CASES", "GRAFFITI"}
}
