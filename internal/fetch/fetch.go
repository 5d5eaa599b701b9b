package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds batch fetcher configuration.
type Config struct {
	MaxConcurrent int           // Max simultaneous in-flight requests (default: 50)
	MaxRetries    int           // Retries per item on rate limits (default: 5)
	DelayStep     time.Duration // Shared delay increase per rate-limit hit (default: 500ms)
	DelayDecay    time.Duration // Shared delay decrease per success (default: 100ms)
	MaxDelay      time.Duration // Shared delay ceiling (default: 5s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent: 50,
		MaxRetries:    5,
		DelayStep:     500 * time.Millisecond,
		DelayDecay:    100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = def.MaxConcurrent
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.DelayStep <= 0 {
		c.DelayStep = def.DelayStep
	}
	if c.DelayDecay <= 0 {
		c.DelayDecay = def.DelayDecay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	return c
}

// Outcome is the per-item result of a batch fetch. Exactly one of
// Value and Err is meaningful.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Func fetches the value for one item name.
type Func[T any] func(ctx context.Context, name string) (T, error)

// ProgressFunc is invoked exactly once per completed item, success or
// failure, in completion order.
type ProgressFunc func(completed, total int)

// rateLimiter is implemented by errors that can report a throttling
// condition, such as the market API's error type.
type rateLimiter interface {
	IsRateLimited() bool
}

func isRateLimited(err error) bool {
	var rl rateLimiter
	return errors.As(err, &rl) && rl.IsRateLimited()
}

// Batch runs fn for every name concurrently, bounded by
// cfg.MaxConcurrent, and returns a map covering all requested names.
// Per-item errors are recorded in the map, never returned: Batch only
// returns an error when ctx is cancelled, in which case no partial map
// is produced.
func Batch[T any](ctx context.Context, cfg Config, names []string, fn Func[T], onProgress ProgressFunc) (map[string]Outcome[T], error) {
	cfg = cfg.withDefaults()

	total := len(names)
	delay := newAdaptiveDelay(cfg.DelayStep, cfg.DelayDecay, cfg.MaxDelay)

	// Each goroutine writes only its own slot.
	outcomes := make([]Outcome[T], total)

	sem := make(chan struct{}, cfg.MaxConcurrent)
	var wg sync.WaitGroup
	var completed atomic.Int64

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()

			// Acquire semaphore slot.
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			value, err := fetchOne(ctx, cfg, delay, name, fn)
			outcomes[i] = Outcome[T]{Value: value, Err: err}

			if onProgress != nil {
				onProgress(int(completed.Add(1)), total)
			}
		}(i, name)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make(map[string]Outcome[T], total)
	for i, name := range names {
		results[name] = outcomes[i]
	}
	return results, nil
}

// fetchOne runs the per-item retry loop. Only rate-limit errors are
// retried; anything else fails the item on the spot.
func fetchOne[T any](ctx context.Context, cfg Config, delay *adaptiveDelay, name string, fn Func[T]) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		value, err := fn(ctx, name)
		if err == nil {
			delay.success()
			return value, nil
		}
		if !isRateLimited(err) {
			return zero, err
		}

		delay.hit()

		if attempt >= cfg.MaxRetries {
			return zero, fmt.Errorf("fetch %q: rate limited after %d retries: %w", name, cfg.MaxRetries, err)
		}

		select {
		case <-time.After(delay.retryWait(attempt)):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}
