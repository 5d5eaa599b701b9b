package valuation

import (
	"context"
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/fetch"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// SpotValue sums the latest minimum listing price of every item across
// the given marketplaces. Items whose fetch fails contribute 0 and are
// counted under ItemsFailed; the valuation itself succeeds as long as
// the inputs are valid, even if every single item failed.
func (e *Engine) SpotValue(ctx context.Context, names []string, markets []string, currency string, onProgress fetch.ProgressFunc) (*model.SpotValuation, error) {
	if err := e.validate(names, markets, currency); err != nil {
		return nil, err
	}

	start := time.Now()

	results, err := fetch.Batch(ctx, e.fetchCfg, names,
		func(ctx context.Context, name string) (float64, error) {
			resp, err := e.client.GetLatestListings(ctx, name, markets, currency)
			if err != nil {
				return 0, err
			}
			price, ok := resp.MinListingPrice()
			if !ok {
				return 0, errNoListings
			}
			return price, nil
		}, onProgress)
	if err != nil {
		return nil, err
	}

	var value float64
	succeeded := 0
	for name, outcome := range results {
		if outcome.Err != nil {
			e.logger.Warn("spot fetch failed",
				"item", name,
				"err", outcome.Err,
			)
			continue
		}
		value += outcome.Value
		succeeded++
	}

	e.logger.Info("spot valuation complete",
		"items", len(names),
		"succeeded", succeeded,
		"failed", len(names)-succeeded,
		"duration", time.Since(start),
	)

	return &model.SpotValuation{
		Value:          round2(value),
		Currency:       currency,
		ItemCount:      len(names),
		ItemsSucceeded: succeeded,
		ItemsFailed:    len(names) - succeeded,
		MarketsUsed:    markets,
		Timestamp:      e.now().UTC(),
	}, nil
}
