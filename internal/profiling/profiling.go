package profiling

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler for tick-level insights.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCalls  = make(map[string]int)
)

// Entry is the time spent under one name during the current frame.
type Entry struct {
	Name  string
	Total time.Duration
	Calls int
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCalls[name]++
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCalls)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// Top returns the n most expensive entries of the current frame, slowest first.
func Top(n int) []Entry {
	mu.Lock()
	list := make([]Entry, 0, len(frameTotals))
	for k, v := range frameTotals {
		list = append(list, Entry{Name: k, Total: v, Calls: frameCalls[k]})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Total != list[j].Total {
			return list[i].Total > list[j].Total
		}
		return list[i].Name < list[j].Name
	})
	if n < len(list) {
		list = list[:max(n, 0)]
	}
	return list
}

// TopN formats top N durations from the current frame totals.
// Example: "pickup.Tick:4.2ms, slotrow.Rebuild:2.1ms"
func TopN(n int) string {
	top := Top(n)
	parts := make([]string, 0, len(top))
	for _, e := range top {
		parts = append(parts, e.Name+":"+formatMs(e.Total))
	}
	return strings.Join(parts, ", ")
}

// Attrs returns the top n entries as a slog group value.
func Attrs(n int) slog.Value {
	top := Top(n)
	attrs := make([]slog.Attr, 0, len(top))
	for _, e := range top {
		attrs = append(attrs, slog.Duration(e.Name, e.Total))
	}
	return slog.GroupValue(attrs...)
}

// formatMs keeps one decimal and drops a trailing .0.
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return strings.TrimSuffix(strconv.FormatFloat(ms, 'f', 1, 64), ".0") + "ms"
}
