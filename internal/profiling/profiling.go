// Package profiling is a lightweight per-frame CPU profiler.
package profiling

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	enabled     atomic.Bool
)

// Entry is one named total from the current frame.
type Entry struct {
	Name string
	Dur  time.Duration
}

// Enabled reports whether the profiling overlay is shown.
func Enabled() bool { return enabled.Load() }

// Toggle flips the overlay flag and returns the new value.
func Toggle() bool {
	for {
		old := enabled.Load()
		if enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetEnabled sets the overlay flag.
func SetEnabled(v bool) { enabled.Store(v) }

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("overlay.Render")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	return maps.Clone(frameTotals)
}

// Top returns the n largest totals, longest first.
func Top(n int) []Entry {
	snap := Snapshot()
	list := make([]Entry, 0, len(snap))
	for k, v := range snap {
		list = append(list, Entry{Name: k, Dur: v})
	}
	slices.SortFunc(list, func(a, b Entry) int {
		if c := cmp.Compare(b.Dur, a.Dur); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return list[:max(0, min(n, len(list)))]
}

// TopN formats the n largest totals, e.g. "overlay.Render:4.2ms, textures.Tick:2ms".
func TopN(n int) string {
	top := Top(n)
	parts := make([]string, 0, len(top))
	for _, e := range top {
		parts = append(parts, e.Name+":"+FormatMs(e.Dur))
	}
	return strings.Join(parts, ", ")
}

// FormatMs renders d in milliseconds with at most one decimal.
func FormatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	return strconv.FormatFloat(float64(int64(ms*10+1e-4))/10, 'f', -1, 64) + "ms"
}

// SumWithPrefix totals every entry whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}
