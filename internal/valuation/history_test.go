package valuation

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Antoniohaas1337/IndexTracker/internal/marketapi"
	"github.com/Antoniohaas1337/IndexTracker/internal/model"
)

func TestRobustHistoryFullData(t *testing.T) {
	// Item sells every day in the window: volume-weighted on today,
	// outlier-filtered mean yesterday.
	client := &fakeClient{
		histories: map[string]*marketapi.SalesHistoryResponse{
			"a": historyOf("a",
				saleDay(daysAgo(1),
					sale(100, 1), sale(105, 1), sale(110, 1), sale(200, 1), sale(95, 1)),
				saleDay(daysAgo(0),
					sale(100, 10), sale(110, 5)),
			),
		},
	}
	engine := newTestEngine(client)

	aggs, err := engine.RobustHistory(context.Background(),
		[]string{"a"}, []string{"SKINPORT"}, "USD", 1, 0.25, 7, nil)
	if err != nil {
		t.Fatalf("RobustHistory failed: %v", err)
	}

	if len(aggs) != 2 {
		t.Fatalf("got %d aggregates, want 2", len(aggs))
	}

	// Oldest first.
	if aggs[0].Date >= aggs[1].Date {
		t.Errorf("dates not chronological: %q then %q", aggs[0].Date, aggs[1].Date)
	}

	// Yesterday: 200 removed as outlier, remaining volumes all 1 so the
	// weighted price is the mean of {100, 105, 110, 95}.
	if aggs[0].Value != 102.5 {
		t.Errorf("yesterday value = %v, want 102.5", aggs[0].Value)
	}
	if aggs[0].ItemsWithData != 1 || aggs[0].ItemsCarriedForward != 0 || aggs[0].ItemsSkipped != 0 {
		t.Errorf("yesterday counts = %+v, want 1/0/0", aggs[0])
	}

	// Today: (100*10 + 110*5) / 15 = 103.33 after rounding.
	if math.Abs(aggs[1].Value-103.33) > 1e-9 {
		t.Errorf("today value = %v, want 103.33", aggs[1].Value)
	}
}

func TestRobustHistoryCarryForwardAndFallback(t *testing.T) {
	// "x" sells on five consecutive days then goes quiet; "ghost"
	// never produces any data.
	client := &fakeClient{
		histories: map[string]*marketapi.SalesHistoryResponse{
			"x": historyOf("x",
				saleDay(daysAgo(14), sale(10, 1)),
				saleDay(daysAgo(13), sale(12, 1)),
				saleDay(daysAgo(12), sale(11, 1)),
				saleDay(daysAgo(11), sale(9, 1)),
				saleDay(daysAgo(10), sale(13, 1)),
			),
		},
	}
	engine := newTestEngine(client)

	aggs, err := engine.RobustHistory(context.Background(),
		[]string{"x", "ghost"}, []string{"SKINPORT"}, "USD", 15, 0.25, 7, nil)
	if err != nil {
		t.Fatalf("RobustHistory failed: %v", err)
	}

	if len(aggs) != 16 {
		t.Fatalf("got %d aggregates, want 16", len(aggs))
	}

	at := func(offset int) model.DailyAggregate {
		return aggs[15-offset]
	}

	// Sale days: x contributes its daily price, ghost is skipped.
	day := at(12)
	if day.Value != 11 || day.ItemsWithData != 1 || day.ItemsSkipped != 1 {
		t.Errorf("sale day = %+v, want value 11, 1 with data, 1 skipped", day)
	}

	// 7 days after the last sale: still within staleDays, so the last
	// known price (13) carries forward.
	day = at(3)
	if day.Value != 13 || day.ItemsCarriedForward != 1 || day.ItemsSkipped != 1 {
		t.Errorf("carry-forward day = %+v, want value 13, 1 carried, 1 skipped", day)
	}

	// 8 days after the last sale: stale, falls back to the median of
	// the recent daily prices [10 12 11 9 13] = 11.
	day = at(2)
	if day.Value != 11 || day.ItemsCarriedForward != 1 {
		t.Errorf("stale day = %+v, want fallback value 11, 1 carried", day)
	}

	// Counts always partition the item set.
	for i, agg := range aggs {
		if agg.ItemsWithData+agg.ItemsCarriedForward+agg.ItemsSkipped != 2 {
			t.Errorf("aggs[%d] counts %d+%d+%d do not sum to item count 2",
				i, agg.ItemsWithData, agg.ItemsCarriedForward, agg.ItemsSkipped)
		}
	}
}

func TestRobustHistoryFailedFetchSkipsItem(t *testing.T) {
	client := &fakeClient{
		histories: map[string]*marketapi.SalesHistoryResponse{
			"good": historyOf("good", saleDay(daysAgo(0), sale(50, 2))),
		},
		historyErrs: map[string]error{
			"bad": errors.New("upstream exploded"),
		},
	}
	engine := newTestEngine(client)

	aggs, err := engine.RobustHistory(context.Background(),
		[]string{"good", "bad"}, []string{"SKINPORT"}, "USD", 2, 0.25, 7, nil)
	if err != nil {
		t.Fatalf("RobustHistory failed: %v", err)
	}

	last := aggs[len(aggs)-1]
	if last.Value != 50 || last.ItemsWithData != 1 || last.ItemsSkipped != 1 {
		t.Errorf("today = %+v, want value 50, 1 with data, 1 skipped", last)
	}
}

func TestRobustHistoryValidation(t *testing.T) {
	engine := newTestEngine(&fakeClient{})

	tests := []struct {
		name      string
		items     []string
		markets   []string
		days      int
		threshold float64
		staleDays int
		wantErr   error
	}{
		{"no items", nil, []string{"SKINPORT"}, 7, 0.25, 7, ErrNoItems},
		{"no markets", []string{"a"}, nil, 7, 0.25, 7, ErrNoMarkets},
		{"negative days", []string{"a"}, []string{"SKINPORT"}, -1, 0.25, 7, ErrInvalidParameter},
		{"zero threshold", []string{"a"}, []string{"SKINPORT"}, 7, 0, 7, ErrInvalidParameter},
		{"threshold above one", []string{"a"}, []string{"SKINPORT"}, 7, 1.5, 7, ErrInvalidParameter},
		{"zero stale days", []string{"a"}, []string{"SKINPORT"}, 7, 0.25, 0, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.RobustHistory(context.Background(),
				tt.items, tt.markets, "USD", tt.days, tt.threshold, tt.staleDays, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRobustHistoryCoalescesIdenticalFetches(t *testing.T) {
	client := &fakeClient{
		histories: map[string]*marketapi.SalesHistoryResponse{
			"a": historyOf("a", saleDay(daysAgo(0), sale(10, 1))),
		},
	}
	engine := newTestEngine(client)

	if _, err := engine.RobustHistory(context.Background(),
		[]string{"a"}, []string{"SKINPORT"}, "USD", 1, 0.25, 7, nil); err != nil {
		t.Fatalf("RobustHistory failed: %v", err)
	}

	if client.historyCalls != 1 {
		t.Errorf("history fetched %d times, want 1", client.historyCalls)
	}
}
