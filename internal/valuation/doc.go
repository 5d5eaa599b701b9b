// Package valuation computes index values from marketplace data.
//
// Two operations are exposed: a spot valuation summing the latest
// minimum listing price per item, and a robust history aggregation
// that walks a window of calendar days and produces one value per day
// using outlier filtering, volume-weighted pricing, and carry-forward
// for items without fresh sales.
//
// Both operations are pure functions of their inputs and the remote
// API's current data; no state survives between calls.
package valuation
