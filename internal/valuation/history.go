package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/fetch"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// fallbackWindow bounds how many historical prices feed the staleness
// fallback median.
const fallbackWindow = 5

// itemPriceState tracks one item's price knowledge as the day loop
// advances. Owned by a single aggregation run; never shared.
type itemPriceState struct {
	lastKnownPrice float64
	lastSaleDate   time.Time
	hasPrice       bool

	// Daily aggregated prices seen so far, in chronological order.
	history []float64
}

// fallbackPrice is the median of up to the fallbackWindow most recent
// historical prices, or false when no history exists.
func (s *itemPriceState) fallbackPrice() (float64, bool) {
	if len(s.history) == 0 {
		return 0, false
	}
	recent := s.history
	if len(recent) > fallbackWindow {
		recent = recent[len(recent)-fallbackWindow:]
	}
	return median(recent), true
}

// RobustHistory walks the window from today-days to today (inclusive,
// UTC day boundaries) and produces one aggregate per day, oldest
// first. Each day's value is the sum over items of: the item's
// volume-weighted price after outlier removal when it has sales that
// day; its last known price when the last sale is at most staleDays
// old; the median of its recent daily prices when staler than that;
// or 0 when the item has never produced data.
func (e *Engine) RobustHistory(ctx context.Context, names []string, markets []string, currency string, days int, outlierThreshold float64, staleDays int, onProgress fetch.ProgressFunc) ([]model.DailyAggregate, error) {
	if err := e.validate(names, markets, currency); err != nil {
		return nil, err
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: days %d must be >= 0", ErrInvalidParameter, days)
	}
	if outlierThreshold <= 0 || outlierThreshold > 1 {
		return nil, fmt.Errorf("%w: outlier threshold %v must be in (0, 1]", ErrInvalidParameter, outlierThreshold)
	}
	if staleDays < 1 {
		return nil, fmt.Errorf("%w: stale days %d must be >= 1", ErrInvalidParameter, staleDays)
	}

	start := time.Now()

	results, err := fetch.Batch(ctx, e.fetchCfg, names,
		func(ctx context.Context, name string) (model.DailySales, error) {
			return e.fetchHistory(ctx, name, markets, currency)
		}, onProgress)
	if err != nil {
		return nil, err
	}

	salesByItem := make(map[string]model.DailySales, len(names))
	fetched := 0
	for name, outcome := range results {
		if outcome.Err != nil {
			// The item contributes itemsSkipped until a fallback
			// kicks in; a failed fetch never fails the aggregation.
			e.logger.Warn("history fetch failed",
				"item", name,
				"err", outcome.Err,
			)
			salesByItem[name] = nil
			continue
		}
		salesByItem[name] = outcome.Value
		fetched++
	}

	states := make(map[string]*itemPriceState, len(names))
	for _, name := range names {
		states[name] = &itemPriceState{}
	}

	today := e.now().UTC().Truncate(24 * time.Hour)

	aggregates := make([]model.DailyAggregate, 0, days+1)

	// Dates must run oldest to newest: carry-forward and staleness
	// depend on state accumulated from earlier days.
	for offset := days; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset)
		key := model.DayKey(date)

		var total float64
		withData, carried, skipped := 0, 0, 0

		for _, name := range names {
			state := states[name]

			if sales := salesByItem[name][key]; len(sales) > 0 {
				prices := make([]float64, len(sales))
				volumes := make([]int64, len(sales))
				for i, s := range sales {
					prices[i] = s.Price
					volumes[i] = s.Volume
				}

				prices, volumes = removeOutliersWithVolume(prices, volumes, outlierThreshold)
				price := volumeWeightedPrice(prices, volumes)

				state.lastKnownPrice = price
				state.lastSaleDate = date
				state.hasPrice = true
				state.history = append(state.history, price)

				total += price
				withData++
				continue
			}

			if state.hasPrice && daysBetween(state.lastSaleDate, date) <= staleDays {
				total += state.lastKnownPrice
				carried++
				continue
			}

			if price, ok := state.fallbackPrice(); ok {
				total += price
				carried++
				continue
			}

			skipped++
		}

		aggregates = append(aggregates, model.DailyAggregate{
			Date:                key,
			Value:               round2(total),
			ItemsWithData:       withData,
			ItemsCarriedForward: carried,
			ItemsSkipped:        skipped,
		})
	}

	e.logger.Info("history aggregation complete",
		"items", len(names),
		"fetched", fetched,
		"days", days+1,
		"duration", time.Since(start),
	)

	return aggregates, nil
}

// daysBetween counts whole days between two UTC midnights.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
