package valuation

import (
	"context"
	"sync"
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/fetch"
	"github.com/Antoniohaas1337/IndexTracker/internal/marketapi"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

// fakeClient is an in-memory MarketData implementation.
type fakeClient struct {
	mu           sync.Mutex
	listings     map[string]*marketapi.ListingsResponse
	listingErrs  map[string]error
	histories    map[string]*marketapi.SalesHistoryResponse
	historyErrs  map[string]error
	listingCalls int
	historyCalls int
}

func (f *fakeClient) GetLatestListings(ctx context.Context, name string, markets []string, currency string) (*marketapi.ListingsResponse, error) {
	f.mu.Lock()
	f.listingCalls++
	f.mu.Unlock()

	if err := f.listingErrs[name]; err != nil {
		return nil, err
	}
	if resp, ok := f.listings[name]; ok {
		return resp, nil
	}
	return &marketapi.ListingsResponse{MarketHashName: name}, nil
}

func (f *fakeClient) GetSalesHistory(ctx context.Context, name string, markets []string, currency string) (*marketapi.SalesHistoryResponse, error) {
	f.mu.Lock()
	f.historyCalls++
	f.mu.Unlock()

	if err := f.historyErrs[name]; err != nil {
		return nil, err
	}
	if resp, ok := f.histories[name]; ok {
		return resp, nil
	}
	return &marketapi.SalesHistoryResponse{MarketHashName: name}, nil
}

// testNow is the fixed clock all engine tests run against.
var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestEngine(client MarketData) *Engine {
	e := New(client, fetch.Config{
		MaxConcurrent: 4,
		MaxRetries:    2,
		DelayStep:     time.Millisecond,
		DelayDecay:    time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
	}, nil)
	e.now = func() time.Time { return testNow }
	return e
}

func listingsWithMin(name string, min float64) *marketapi.ListingsResponse {
	return &marketapi.ListingsResponse{
		MarketHashName: name,
		Listings:       []marketapi.APIListing{{Market: "SKINPORT", MinPrice: &min}},
	}
}

// daysAgo returns the UTC calendar date n days before testNow.
func daysAgo(n int) time.Time {
	return testNow.Truncate(24 * time.Hour).AddDate(0, 0, -n)
}

func sale(price float64, volume int64) marketapi.APISale {
	return marketapi.APISale{Market: "SKINPORT", AvgPrice: &price, Volume: volume}
}

func saleDay(date time.Time, sales ...marketapi.APISale) marketapi.APISaleDay {
	return marketapi.APISaleDay{Date: model.DayKey(date), Sales: sales}
}

func historyOf(name string, days ...marketapi.APISaleDay) *marketapi.SalesHistoryResponse {
	return &marketapi.SalesHistoryResponse{MarketHashName: name, Days: days}
}
