package fetch

import (
	"sync/atomic"
	"time"
)

// adaptiveDelay is the throttle value shared by all in-flight items of
// one batch. Updates are read-modify-write without a lock: a concurrent
// update may occasionally be lost, which is acceptable because the
// delay is an advisory throttling heuristic, not a correctness
// mechanism.
type adaptiveDelay struct {
	nanos atomic.Int64

	step  time.Duration // added on every rate-limit hit
	decay time.Duration // subtracted after every success
	max   time.Duration
}

func newAdaptiveDelay(step, decay, max time.Duration) *adaptiveDelay {
	return &adaptiveDelay{step: step, decay: decay, max: max}
}

// hit raises the shared delay in response to a rate-limit signal.
func (d *adaptiveDelay) hit() {
	d.add(d.step)
}

// success lowers the shared delay after a completed request.
func (d *adaptiveDelay) success() {
	d.add(-d.decay)
}

func (d *adaptiveDelay) add(delta time.Duration) {
	next := time.Duration(d.nanos.Load()) + delta
	if next < 0 {
		next = 0
	}
	if next > d.max {
		next = d.max
	}
	d.nanos.Store(int64(next))
}

// retryWait returns the wait before retry number attempt (0-based):
// the current shared delay doubled per prior attempt.
func (d *adaptiveDelay) retryWait(attempt int) time.Duration {
	return time.Duration(d.nanos.Load()) << attempt
}

func (d *adaptiveDelay) current() time.Duration {
	return time.Duration(d.nanos.Load())
}
