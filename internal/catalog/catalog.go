// Package catalog keeps the local item catalog in sync with the
// market aggregator's item list.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/config"
	"github.com/Antoniohaas1337/IndexTracker/internal/marketapi"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// ErrSyncInProgress is returned when a sync is requested while one is
// already running.
var ErrSyncInProgress = errors.New("catalog sync already in progress")

// ItemSource lists the full remote item catalog.
type ItemSource interface {
	GetAllItems(ctx context.Context) ([]marketapi.APIItem, error)
}

// ItemStore persists catalog items.
type ItemStore interface {
	UpsertItems(ctx context.Context, items []model.Item) (inserted, updated int, err error)
}

// Status describes the sync state for the health endpoint.
type Status struct {
	LastSync time.Time `json:"last_sync"`
	Syncing  bool      `json:"syncing"`
}

// Service periodically refreshes the item catalog.
type Service struct {
	cfg    config.CatalogConfig
	source ItemSource
	store  ItemStore
	logger *slog.Logger

	mu       sync.Mutex
	lastSync time.Time
	syncing  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a catalog service.
func New(cfg config.CatalogConfig, source ItemSource, store ItemStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:    cfg,
		source: source,
		store:  store,
		logger: logger,
	}
}

// Start begins the periodic sync loop. When SyncOnStart is set the
// first sync runs immediately.
func (s *Service) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("catalog service started",
		"sync_on_start", s.cfg.SyncOnStart,
		"sync_interval", s.cfg.SyncInterval,
	)
	return nil
}

// Stop gracefully shuts down the sync loop.
func (s *Service) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("catalog service stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status reports the current sync state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{LastSync: s.lastSync, Syncing: s.syncing}
}

func (s *Service) run() {
	defer s.wg.Done()

	if s.cfg.SyncOnStart {
		if err := s.Sync(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("initial catalog sync failed", "err", err)
		}
	}

	if s.cfg.SyncInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.cfg.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sync(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("catalog sync failed", "err", err)
			}
		}
	}
}

// Sync fetches the full remote catalog and upserts it in batches.
// Only one sync runs at a time; concurrent requests are rejected.
func (s *Service) Sync(ctx context.Context) error {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	start := time.Now()

	apiItems, err := s.source.GetAllItems(ctx)
	if err != nil {
		return err
	}

	items := make([]model.Item, 0, len(apiItems))
	for _, a := range apiItems {
		if a.MarketHashName == "" {
			continue
		}
		items = append(items, a.ToItem())
	}

	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(items)
	}

	var inserted, updated int
	for from := 0; from < len(items); from += batchSize {
		to := min(from+batchSize, len(items))
		ins, upd, err := s.store.UpsertItems(ctx, items[from:to])
		if err != nil {
			return err
		}
		inserted += ins
		updated += upd
	}

	s.mu.Lock()
	s.lastSync = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info("catalog sync complete",
		"items", len(items),
		"inserted", inserted,
		"updated", updated,
		"duration", time.Since(start),
	)
	return nil
}
