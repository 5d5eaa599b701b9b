package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Antoniohaas1337/IndexTracker/internal/catalog"
	"github.com/Antoniohaas1337/IndexTracker/internal/config"
	"github.com/Antoniohaas1337/IndexTracker/internal/fetch"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
	"github.com/Antoniohaas1337/IndexTracker/internal/progress"
)

// Repository is the slice of the store the server consumes.
type Repository interface {
	Ping(ctx context.Context) error

	SearchItems(ctx context.Context, query string, limit, offset int) ([]model.Item, int, error)
	ItemsByType(ctx context.Context, itemType string, limit int) ([]model.Item, error)
	ItemsByIDs(ctx context.Context, ids []int64) ([]model.Item, error)
	ItemCount(ctx context.Context) (int, error)

	CreateIndex(ctx context.Context, idx *model.Index) error
	GetIndex(ctx context.Context, id uuid.UUID) (*model.Index, error)
	ListIndices(ctx context.Context, kind model.IndexKind) ([]model.Index, error)
	PrebuiltByCategory(ctx context.Context, category string) (*model.Index, error)
	UpdateIndex(ctx context.Context, idx *model.Index) error
	DeleteIndex(ctx context.Context, id uuid.UUID) error

	InsertPricePoint(ctx context.Context, p *model.PricePoint) error
	LatestPricePoint(ctx context.Context, indexID uuid.UUID) (*model.PricePoint, error)
	PriceHistory(ctx context.Context, indexID uuid.UUID, since time.Time) ([]model.PricePoint, error)
}

// Valuator runs index valuations.
type Valuator interface {
	SpotValue(ctx context.Context, names []string, markets []string, currency string, onProgress fetch.ProgressFunc) (*model.SpotValuation, error)
	RobustHistory(ctx context.Context, names []string, markets []string, currency string, days int, outlierThreshold float64, staleDays int, onProgress fetch.ProgressFunc) ([]model.DailyAggregate, error)
}

// CatalogService triggers and reports catalog syncs.
type CatalogService interface {
	Sync(ctx context.Context) error
	Status() catalog.Status
}

// Server is the tracker's HTTP front end.
type Server struct {
	cfg    config.ServerConfig
	valCfg config.ValuationConfig
	repo   Repository
	engine Valuator
	items  CatalogService
	hub    *progress.Hub
	logger *slog.Logger

	httpSrv *http.Server
}

// New creates a server around its collaborators.
func New(cfg config.ServerConfig, valCfg config.ValuationConfig, repo Repository, engine Valuator, items CatalogService, hub *progress.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		valCfg: valCfg,
		repo:   repo,
		engine: engine,
		items:  items,
		hub:    hub,
		logger: logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/markets", s.handleMarkets)

	mux.HandleFunc("GET /api/v1/items", s.handleSearchItems)
	mux.HandleFunc("GET /api/v1/items/search", s.handleSearchItems)
	mux.HandleFunc("POST /api/v1/items/sync", s.handleSyncItems)

	mux.HandleFunc("GET /api/v1/indices", s.handleListIndices)
	mux.HandleFunc("POST /api/v1/indices", s.handleCreateIndex)
	mux.HandleFunc("GET /api/v1/indices/{id}", s.handleGetIndex)
	mux.HandleFunc("PUT /api/v1/indices/{id}", s.handleUpdateIndex)
	mux.HandleFunc("DELETE /api/v1/indices/{id}", s.handleDeleteIndex)

	mux.HandleFunc("GET /api/v1/prebuilt", s.handleListPrebuilt)
	mux.HandleFunc("GET /api/v1/prebuilt/{category}", s.handleGetPrebuilt)
	mux.HandleFunc("POST /api/v1/prebuilt/generate", s.handleGeneratePrebuilt)

	mux.HandleFunc("POST /api/v1/indices/{id}/calculate", s.handleCalculate)
	mux.HandleFunc("GET /api/v1/indices/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /api/v1/indices/{id}/latest", s.handleLatest)
	mux.HandleFunc("GET /api/v1/indices/{id}/sales-history", s.handleSalesHistory)

	mux.HandleFunc("GET /ws/progress", s.handleProgressWS)

	return mux
}

// Start begins serving in the background.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Handler(),
	}

	go func() {
		s.logger.Info("http server started", "port", s.cfg.Port)
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "err", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// loadIndexItems resolves an index and its basket's market names.
func (s *Server) loadIndexItems(ctx context.Context, id uuid.UUID) (*model.Index, []string, error) {
	idx, err := s.repo.GetIndex(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repo.ItemsByIDs(ctx, idx.ItemIDs)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.MarketName
	}
	return idx, names, nil
}

// publishProgress forwards fetch progress of one index operation to
// the websocket hub.
func (s *Server) publishProgress(indexID uuid.UUID, operation string) fetch.ProgressFunc {
	return func(completed, total int) {
		s.hub.Publish(progress.Event{
			IndexID:   indexID,
			Operation: operation,
			Completed: completed,
			Total:     total,
		})
	}
}
