package domain

import "time"

const DefaultCrystalCooldown = 60 * time.Second

// Cooldown stamps the last proc of a periodic effect; the period is
// supplied per query so it can follow live settings.
type Cooldown struct {
	lastProc time.Time
}

func (c *Cooldown) Record(now time.Time) {
	c.lastProc = now
}

func (c Cooldown) LastProc() (time.Time, bool) {
	return c.lastProc, !c.lastProc.IsZero()
}

// RemainingSeconds returns -1 before the first proc, 0 once ready, and the
// whole seconds left otherwise.
func (c Cooldown) RemainingSeconds(now time.Time, period time.Duration) int {
	if c.lastProc.IsZero() {
		return -1
	}

	elapsed := int64(now.Sub(c.lastProc) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	remaining := int64(period/time.Second) - elapsed
	if remaining < 0 {
		return 0
	}

	return int(remaining)
}

func (c Cooldown) Active(now time.Time, period time.Duration) bool {
	return c.RemainingSeconds(now, period) > 0
}

func (c *Cooldown) Reset() {
	c.lastProc = time.Time{}
}
