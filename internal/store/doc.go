// Package store persists catalog items, index definitions, and index
// price points in PostgreSQL via pgx connection pooling.
//
// Catalog writes go through batched upserts keyed on the item's
// market name; definitions and price points use plain row operations.
// Absent rows surface as ErrNotFound.
package store
