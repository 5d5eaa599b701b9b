// Package fetch drives batches of per-item requests against the market
// data API under a bounded concurrency cap.
//
// Each item is fetched by its own goroutine drawn from a channel
// semaphore. Rate-limit responses are retried per item with a wait
// derived from a delay value shared across all in-flight items: every
// rate-limit hit anywhere in the batch raises it, every success lowers
// it. Any other error fails that item immediately. Individual item
// failures never fail the batch; the result map always covers every
// requested item.
package fetch
