package marketapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetLatestListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/listings/latest" {
			t.Errorf("path = %q, want /listings/latest", got)
		}
		if got := r.URL.Query().Get("market_hash_name"); got != "AK-47 | Redline (Field-Tested)" {
			t.Errorf("market_hash_name = %q", got)
		}
		if got := r.URL.Query().Get("markets"); got != "STEAMCOMMUNITY,SKINPORT" {
			t.Errorf("markets = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		min1, min2 := 18.50, 17.25
		resp := ListingsResponse{
			MarketHashName: "AK-47 | Redline (Field-Tested)",
			Currency:       "USD",
			Listings: []APIListing{
				{Market: "STEAMCOMMUNITY", MinPrice: &min1},
				{Market: "SKINPORT", MinPrice: &min2},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	resp, err := client.GetLatestListings(context.Background(),
		"AK-47 | Redline (Field-Tested)", []string{"STEAMCOMMUNITY", "SKINPORT"}, "USD")
	if err != nil {
		t.Fatalf("GetLatestListings failed: %v", err)
	}

	min, ok := resp.MinListingPrice()
	if !ok {
		t.Fatal("MinListingPrice reported no price")
	}
	if min != 17.25 {
		t.Errorf("MinListingPrice = %v, want 17.25", min)
	}
}

func TestRateLimitNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", WithRetries(3, 10*time.Millisecond))

	_, err := client.GetLatestListings(context.Background(), "item", []string{"SKINPORT"}, "USD")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsRateLimited(err) {
		t.Errorf("IsRateLimited(%v) = false, want true", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1 (429 must not be retried here)", got)
	}
}

func TestServerErrorRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(SalesHistoryResponse{MarketHashName: "item"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", WithRetries(3, time.Millisecond))

	resp, err := client.GetSalesHistory(context.Background(), "item", []string{"SKINPORT"}, "USD")
	if err != nil {
		t.Fatalf("GetSalesHistory failed after retries: %v", err)
	}
	if resp.MarketHashName != "item" {
		t.Errorf("MarketHashName = %q, want %q", resp.MarketHashName, "item")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", WithRetries(3, time.Millisecond))

	_, err := client.GetLatestListings(context.Background(), "no-such-item", []string{"SKINPORT"}, "USD")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsRateLimited(err) {
		t.Error("404 must not look like a rate limit")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestGetAllItems_Paginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp ItemsResponse
		switch r.URL.Query().Get("cursor") {
		case "":
			resp = ItemsResponse{Items: []APIItem{{MarketHashName: "a"}, {MarketHashName: "b"}}, Cursor: "page2"}
		case "page2":
			resp = ItemsResponse{Items: []APIItem{{MarketHashName: "c"}}}
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	items, err := client.GetAllItems(context.Background())
	if err != nil {
		t.Fatalf("GetAllItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[2].MarketHashName != "c" {
		t.Errorf("items[2] = %q, want %q", items[2].MarketHashName, "c")
	}
}
