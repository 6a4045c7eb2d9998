package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// coarseTick is how often the cached clock is refreshed.
const coarseTick = 500 * time.Microsecond

var (
	coarseOnce sync.Once
	coarseNow  atomic.Pointer[time.Time]
)

// StartCoarseClock starts the goroutine that refreshes the cached clock.
// Only the first call starts it; it runs for the life of the process.
func StartCoarseClock() {
	coarseOnce.Do(func() {
		now := time.Now()
		coarseNow.Store(&now)
		go func() {
			ticker := time.NewTicker(coarseTick)
			for t := range ticker.C {
				coarseNow.Store(&t)
			}
		}()
	})
}

// CoarseNow returns the cached time, at most a tick old. It starts the
// clock when nothing has yet.
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	StartCoarseClock()
	return *coarseNow.Load()
}

// SecondsNow returns the cached time truncated to whole seconds, for
// channels that do not keep sub-second timestamps.
func SecondsNow() time.Time {
	return CoarseNow().Truncate(time.Second)
}
