// Package server exposes the tracker's HTTP API: catalog browsing,
// index management, valuation operations, and a websocket progress
// feed.
//
// Errors map onto status codes through sentinel checks: unknown
// market/currency and bad parameters become 400, missing rows and
// empty indices become 404, everything else is a 500.
package server
