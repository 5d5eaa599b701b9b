// Package model defines shared data types for the index tracker.
//
// Conventions:
//   - Prices: float64 in the index currency (market aggregator native format)
//   - Calendar days: "YYYY-MM-DD" strings in UTC (see DayKey)
//   - Timestamps: time.Time in UTC
//   - IDs: uuid.UUID for indices and price points, int64 for catalog items
package model
