package valuation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Antoniohaas1337/IndexTracker/internal/fetch"
	"github.com/Antoniohaas1337/IndexTracker/internal/market"
	"github.com/Antoniohaas1337/IndexTracker/internal/marketapi"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

var (
	// ErrNoItems means the index resolves to zero items.
	ErrNoItems = errors.New("index has no items")

	// ErrNoMarkets means the index has no marketplaces configured.
	ErrNoMarkets = errors.New("index has no markets")

	// ErrInvalidParameter means a numeric parameter is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")

	errNoListings = errors.New("no listings available")
)

// MarketData is the slice of the market API client the engine consumes.
type MarketData interface {
	GetLatestListings(ctx context.Context, marketHashName string, markets []string, currency string) (*marketapi.ListingsResponse, error)
	GetSalesHistory(ctx context.Context, marketHashName string, markets []string, currency string) (*marketapi.SalesHistoryResponse, error)
}

// Engine runs valuations against a market data client.
type Engine struct {
	client   MarketData
	fetchCfg fetch.Config
	logger   *slog.Logger

	// Coalesces identical in-flight history requests across
	// concurrent aggregations.
	historyCalls singleflight.Group

	now func() time.Time
}

// New creates a valuation engine.
func New(client MarketData, fetchCfg fetch.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		client:   client,
		fetchCfg: fetchCfg,
		logger:   logger,
		now:      time.Now,
	}
}

// validate fails fast, before any network call, on empty inputs or
// unknown market/currency identifiers.
func (e *Engine) validate(names []string, markets []string, currency string) error {
	if len(names) == 0 {
		return ErrNoItems
	}
	if len(markets) == 0 {
		return ErrNoMarkets
	}
	if err := market.ValidateMarkets(markets); err != nil {
		return err
	}
	return market.ValidateCurrency(currency)
}

// fetchHistory fetches one item's sale history, grouped by day.
// Identical concurrent requests share a single network call.
func (e *Engine) fetchHistory(ctx context.Context, name string, markets []string, currency string) (model.DailySales, error) {
	key := name + "|" + strings.Join(markets, ",") + "|" + currency

	v, err, _ := e.historyCalls.Do(key, func() (any, error) {
		resp, err := e.client.GetSalesHistory(ctx, name, markets, currency)
		if err != nil {
			return nil, err
		}
		return resp.ToDailySales(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("sales history %q: %w", name, err)
	}
	return v.(model.DailySales), nil
}
