package scripted

import (
	"sync"
	"time"

	"github.com/bnema/salvage-tracker/internal/ports"
)

// Clock only moves when told to.
type Clock struct {
	mu  sync.RWMutex
	now time.Time
}

var _ ports.Clock = (*Clock)(nil)

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}
