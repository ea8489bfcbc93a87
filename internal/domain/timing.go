package domain

import (
	"sort"
	"time"
)

const DefaultCorroborationWindow = 2 * time.Second

type WorkerStats struct {
	Hooks     int
	FirstHook time.Time
	LastHook  time.Time
}

// Corroboration remembers the last sighting of a supporting signal.
type Corroboration struct {
	last time.Time
}

func (c *Corroboration) Record(now time.Time) {
	c.last = now
}

func (c Corroboration) Within(now time.Time, window time.Duration) bool {
	if c.last.IsZero() {
		return false
	}

	elapsed := now.Sub(c.last)
	return elapsed >= 0 && elapsed <= window
}

func (c *Corroboration) Reset() {
	c.last = time.Time{}
}

// Timing aggregates accepted hooks per worker name and across the crew.
type Timing struct {
	workers      map[string]WorkerStats
	total        int
	intervals    int
	meanInterval float64
	lastEvent    time.Time
}

func NewTiming() *Timing {
	return &Timing{workers: map[string]WorkerStats{}}
}

func (t *Timing) Record(name string, now time.Time) {
	stats := t.workers[name]
	stats.Hooks++
	if stats.FirstHook.IsZero() {
		stats.FirstHook = now
	}
	stats.LastHook = now
	t.workers[name] = stats

	t.total++
	if !t.lastEvent.IsZero() {
		delta := float64(now.Sub(t.lastEvent).Milliseconds()) / 1000.0
		t.intervals++
		if t.intervals == 1 {
			t.meanInterval = delta
		} else {
			t.meanInterval = (t.meanInterval*float64(t.intervals-1) + delta) / float64(t.intervals)
		}
	}
	t.lastEvent = now
}

func (t *Timing) Stats(name string) (WorkerStats, bool) {
	stats, ok := t.workers[name]
	return stats, ok
}

func (t *Timing) HookCounts() map[string]int {
	counts := make(map[string]int, len(t.workers))
	for name, stats := range t.workers {
		counts[name] = stats.Hooks
	}

	return counts
}

func (t *Timing) Names() []string {
	names := make([]string, 0, len(t.workers))
	for name := range t.workers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (t *Timing) RatePerHour(name string, now time.Time) float64 {
	stats, ok := t.workers[name]
	if !ok || stats.Hooks < 2 || stats.FirstHook.IsZero() {
		return 0
	}

	hours := float64(now.Sub(stats.FirstHook).Milliseconds()) / float64(time.Hour.Milliseconds())
	if hours <= 0 {
		return 0
	}

	return float64(stats.Hooks) / hours
}

func (t *Timing) Total() int {
	return t.total
}

func (t *Timing) MeanIntervalSeconds() float64 {
	if t.meanInterval < 0 {
		return 0
	}

	return t.meanInterval
}

func (t *Timing) LastEvent() (time.Time, bool) {
	return t.lastEvent, !t.lastEvent.IsZero()
}

// SecondsSinceLast returns -1 before the first accepted hook.
func (t *Timing) SecondsSinceLast(now time.Time) int {
	if t.lastEvent.IsZero() {
		return -1
	}

	return int(now.Sub(t.lastEvent) / time.Second)
}

func (t *Timing) Reset() {
	clear(t.workers)
	t.total = 0
	t.intervals = 0
	t.meanInterval = 0
	t.lastEvent = time.Time{}
}
