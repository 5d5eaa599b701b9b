// Package marketapi provides the HTTP client for the external market-data
// aggregator.
//
// Endpoints used:
//   - GET /listings/latest: latest aggregated listing prices for one item
//   - GET /sales/history: per-day sale records for one item
//   - GET /items: full item catalog (cursor-paginated)
//
// Rate limiting (HTTP 429) is surfaced as a distinguishable error via
// IsRateLimited so the batch fetcher can apply its adaptive backoff.
// Server errors (5xx) are retried inside the client; everything else is
// returned to the caller as-is.
package marketapi
