package model

import (
	"time"

	"github.com/google/uuid"
)

// DayLayout is the calendar-day format used for grouping sales.
const DayLayout = "2006-01-02"

// DayKey returns the UTC calendar day of t as a "YYYY-MM-DD" string.
// All day-boundary decisions in the tracker use UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// -----------------------------------------------------------------------------
// Catalog Types
// -----------------------------------------------------------------------------

// Item represents a tradable catalog item synced from the market aggregator.
type Item struct {
	ID         int64     `json:"id"`          // Primary key
	MarketName string    `json:"market_name"` // Unique (e.g. "AK-47 | Redline (Field-Tested)")
	Type       string    `json:"type"`        // Item type (e.g. "Rifle", "Knife", "Container")
	Category   string    `json:"category"`
	Weapon     string    `json:"weapon"`   // Empty for non-weapons
	Exterior   string    `json:"exterior"` // Wear tier (e.g. "Factory New")
	Quality    string    `json:"quality"`
	Collection string    `json:"collection"`
	IconURL    string    `json:"icon_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ItemRef identifies one item inside a valuation run.
// Immutable; supplied by the caller.
type ItemRef struct {
	ID         int64  // Catalog item ID
	MarketName string // Market-facing name used in aggregator queries
}

// IndexKind distinguishes user-created indices from generated ones.
type IndexKind string

const (
	IndexCustom   IndexKind = "CUSTOM"
	IndexPrebuilt IndexKind = "PREBUILT"
)

// Index represents a named basket of items whose aggregate value is tracked.
type Index struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Kind        IndexKind `json:"kind"`
	Category    string    `json:"category,omitempty"` // Set for prebuilt indices (e.g. "RIFLES")
	Markets     []string  `json:"markets"`            // Marketplace IDs queried for prices
	Currency    string    `json:"currency"`           // Currency code for all valuations
	ItemIDs     []int64   `json:"item_ids"`           // Catalog items in the basket
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// -----------------------------------------------------------------------------
// Valuation Types
// -----------------------------------------------------------------------------

// SaleRecord is one observed trade for an item on a marketplace.
type SaleRecord struct {
	Market string  // Marketplace ID
	Price  float64 // Positive, in the index currency
	Volume int64   // Trade count; zero when the source reports none
}

// DailySales maps a UTC calendar day ("YYYY-MM-DD") to the sales observed
// for one item on that day. Built once per fetch cycle.
type DailySales map[string][]SaleRecord

// DailyAggregate is one output row of the robust history aggregation.
// ItemsWithData + ItemsCarriedForward + ItemsSkipped always equals the
// total item count of the run.
type DailyAggregate struct {
	Date                string  `json:"date"` // "YYYY-MM-DD", UTC
	Value               float64 `json:"value"`
	ItemsWithData       int     `json:"items_with_data"`
	ItemsCarriedForward int     `json:"items_carried_forward"`
	ItemsSkipped        int     `json:"items_skipped"`
}

// SpotValuation is the result of a spot (sum of min prices) calculation.
type SpotValuation struct {
	Value          float64   `json:"value"`
	Currency       string    `json:"currency"`
	ItemCount      int       `json:"item_count"`
	ItemsSucceeded int       `json:"items_succeeded"`
	ItemsFailed    int       `json:"items_failed"`
	MarketsUsed    []string  `json:"markets_used"`
	Timestamp      time.Time `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// Time-Series Types
// -----------------------------------------------------------------------------

// PricePoint is a stored spot valuation of an index.
type PricePoint struct {
	ID             uuid.UUID `json:"id"`
	IndexID        uuid.UUID `json:"index_id"`
	Timestamp      time.Time `json:"timestamp"`
	Value          float64   `json:"value"`
	Currency       string    `json:"currency"`
	ItemCount      int       `json:"item_count"`
	MarketsUsed    []string  `json:"markets_used"`
	ItemsSucceeded int       `json:"items_succeeded"`
	ItemsFailed    int       `json:"items_failed"`
}
