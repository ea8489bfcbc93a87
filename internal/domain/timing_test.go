package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimingRunningMeanInterval(t *testing.T) {
	start := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	timing := NewTiming()

	timing.Record("Jobless Jim", start)
	assert.Equal(t, 1, timing.Total())
	assert.Zero(t, timing.MeanIntervalSeconds())

	timing.Record("Adventurer Ada", start.Add(10*time.Second))
	assert.InDelta(t, 10.0, timing.MeanIntervalSeconds(), 1e-9)

	timing.Record("Jobless Jim", start.Add(30*time.Second))
	assert.InDelta(t, 15.0, timing.MeanIntervalSeconds(), 1e-9)
	assert.Equal(t, 3, timing.Total())

	last, ok := timing.LastEvent()
	require.True(t, ok)
	assert.Equal(t, start.Add(30*time.Second), last)
	assert.Equal(t, 4, timing.SecondsSinceLast(start.Add(34*time.Second+500*time.Millisecond)))
}

func TestTimingPerWorkerStats(t *testing.T) {
	start := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	timing := NewTiming()

	timing.Record("Jobless Jim", start)
	timing.Record("Jobless Jim", start.Add(time.Minute))
	timing.Record("Bosun Zarah", start.Add(2*time.Minute))

	stats, ok := timing.Stats("Jobless Jim")
	require.True(t, ok)
	assert.Equal(t, WorkerStats{Hooks: 2, FirstHook: start, LastHook: start.Add(time.Minute)}, stats)
	assert.Equal(t, map[string]int{"Jobless Jim": 2, "Bosun Zarah": 1}, timing.HookCounts())
	assert.Equal(t, []string{"Bosun Zarah", "Jobless Jim"}, timing.Names())
}

func TestTimingHookCountsIsACopy(t *testing.T) {
	timing := NewTiming()
	timing.Record("Jolly Jim", time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC))

	counts := timing.HookCounts()
	counts["Jolly Jim"] = 99

	assert.Equal(t, 1, timing.HookCounts()["Jolly Jim"])
}

func TestTimingRatePerHour(t *testing.T) {
	start := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	timing := NewTiming()

	assert.Zero(t, timing.RatePerHour("Jobless Jim", start))

	timing.Record("Jobless Jim", start)
	assert.Zero(t, timing.RatePerHour("Jobless Jim", start.Add(time.Hour)), "one hook has no rate")

	timing.Record("Jobless Jim", start.Add(15*time.Minute))
	assert.InDelta(t, 4.0, timing.RatePerHour("Jobless Jim", start.Add(30*time.Minute)), 1e-9)
	assert.Zero(t, timing.RatePerHour("Jobless Jim", start), "no elapsed time")
	assert.Zero(t, timing.RatePerHour("Jobless Jim", start.Add(-time.Minute)))
}

func TestTimingReset(t *testing.T) {
	start := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	timing := NewTiming()
	timing.Record("Jobless Jim", start)
	timing.Record("Jobless Jim", start.Add(5*time.Second))

	timing.Reset()

	assert.Zero(t, timing.Total())
	assert.Zero(t, timing.MeanIntervalSeconds())
	assert.Empty(t, timing.HookCounts())
	assert.Equal(t, -1, timing.SecondsSinceLast(start))

	timing.Record("Jobless Jim", start.Add(time.Minute))
	assert.Zero(t, timing.MeanIntervalSeconds(), "first hook after reset computes no interval")
}

func TestCorroborationWindow(t *testing.T) {
	seen := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	var c Corroboration

	assert.False(t, c.Within(seen, DefaultCorroborationWindow))

	c.Record(seen)
	assert.True(t, c.Within(seen, DefaultCorroborationWindow))
	assert.True(t, c.Within(seen.Add(2*time.Second), DefaultCorroborationWindow))
	assert.False(t, c.Within(seen.Add(2*time.Second+time.Millisecond), DefaultCorroborationWindow))
	assert.False(t, c.Within(seen.Add(-time.Second), DefaultCorroborationWindow))

	c.Reset()
	assert.False(t, c.Within(seen, DefaultCorroborationWindow))
}
