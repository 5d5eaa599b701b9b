package marketapi

// ListingsResponse from GET /listings/latest
type ListingsResponse struct {
	MarketHashName string       `json:"market_hash_name"`
	Currency       string       `json:"currency"`
	Listings       []APIListing `json:"listings"`
}

// APIListing is the latest aggregated listing state on one marketplace.
type APIListing struct {
	Market   string   `json:"market"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	AvgPrice *float64 `json:"avg_price"`
	Count    int64    `json:"count"`
}

// SalesHistoryResponse from GET /sales/history
type SalesHistoryResponse struct {
	MarketHashName string       `json:"market_hash_name"`
	Currency       string       `json:"currency"`
	Days           []APISaleDay `json:"days"`
}

// APISaleDay groups the sale records observed on one calendar day.
type APISaleDay struct {
	Date  string    `json:"date"` // "YYYY-MM-DD"
	Sales []APISale `json:"sales"`
}

// APISale is one aggregated sale record on one marketplace.
type APISale struct {
	Market   string   `json:"market"`
	AvgPrice *float64 `json:"avg_price"`
	MinPrice *float64 `json:"min_price"`
	Volume   int64    `json:"volume"`
}

// ItemsResponse from GET /items
type ItemsResponse struct {
	Items  []APIItem `json:"items"`
	Cursor string    `json:"cursor"`
}

// APIItem is one catalog item from the aggregator.
type APIItem struct {
	MarketHashName string `json:"market_hash_name"`
	Type           string `json:"type"`
	Category       string `json:"category"`
	Weapon         string `json:"weapon"`
	Exterior       string `json:"exterior"`
	Quality        string `json:"quality"`
	Collection     string `json:"collection"`
	IconURL        string `json:"icon_url"`
}
