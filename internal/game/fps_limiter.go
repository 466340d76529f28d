package game

import (
	"time"

	"mini-splash/internal/config"
)

// idleFPS caps frames while the window is minimized.
const idleFPS = 30

// FPSLimiter paces frames to the configured limit
type FPSLimiter struct {
	next time.Time
	now  func() time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now}
}

// Wait blocks until the next frame is due. Sleeps most of the interval and
// spins for the last 200µs, which keeps high caps accurate.
func (f *FPSLimiter) Wait(idle bool) {
	target := f.interval(idle)
	if target <= 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}

// interval returns the frame interval, or 0 when uncapped.
func (f *FPSLimiter) interval(idle bool) time.Duration {
	limit := config.GetFPSLimit()
	if idle && (limit <= 0 || limit > idleFPS) {
		limit = idleFPS
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}
