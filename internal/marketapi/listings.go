package marketapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// GetLatestListings fetches the latest aggregated listing prices for one
// item across the given marketplaces.
func (c *Client) GetLatestListings(ctx context.Context, marketHashName string, markets []string, currency string) (*ListingsResponse, error) {
	query := url.Values{}
	query.Set("market_hash_name", marketHashName)
	query.Set("markets", strings.Join(markets, ","))
	query.Set("currency", currency)

	var resp ListingsResponse
	if err := c.get(ctx, "/listings/latest", query, &resp); err != nil {
		return nil, fmt.Errorf("get latest listings %q: %w", marketHashName, err)
	}

	return &resp, nil
}

// GetSalesHistory fetches the full per-day sale history for one item
// across the given marketplaces.
func (c *Client) GetSalesHistory(ctx context.Context, marketHashName string, markets []string, currency string) (*SalesHistoryResponse, error) {
	query := url.Values{}
	query.Set("market_hash_name", marketHashName)
	query.Set("markets", strings.Join(markets, ","))
	query.Set("currency", currency)

	var resp SalesHistoryResponse
	if err := c.get(ctx, "/sales/history", query, &resp); err != nil {
		return nil, fmt.Errorf("get sales history %q: %w", marketHashName, err)
	}

	return &resp, nil
}

// GetItems fetches a page of the item catalog.
func (c *Client) GetItems(ctx context.Context, limit int, cursor string) (*ItemsResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var resp ItemsResponse
	if err := c.get(ctx, "/items", query, &resp); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	return &resp, nil
}

// GetAllItems fetches the whole item catalog by paginating through results.
func (c *Client) GetAllItems(ctx context.Context) ([]APIItem, error) {
	var all []APIItem
	cursor := ""

	for {
		resp, err := c.GetItems(ctx, 1000, cursor)
		if err != nil {
			return nil, err
		}

		all = append(all, resp.Items...)

		if resp.Cursor == "" {
			break
		}
		cursor = resp.Cursor
	}

	return all, nil
}
