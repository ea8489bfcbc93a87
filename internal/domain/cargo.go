package domain

import (
	"strconv"
	"strings"
)

// Cargo hold interface layout.
const (
	CargoGroupID       = 943
	CargoRootChild     = 0
	CargoUsedChild     = 4
	CargoCapacityChild = 5
	CargoItemsChild    = 8
	CargoScanChildren  = 30
)

type Widget struct {
	Hidden       bool
	Text         string
	ItemQuantity int
	Children     []Widget
}

func (w Widget) QuantitySum() int {
	sum := 0
	for _, child := range w.Children {
		sum += child.ItemQuantity
	}

	return sum
}

type CargoState struct {
	Used     int
	Capacity int
	Full     bool
}

// Cargo fuses the cargo hold readings. A full announcement is sticky: once
// forced, used is pinned to a known max and only Reset clears the flag.
type Cargo struct {
	state  CargoState
	forced bool
}

func (c Cargo) State() CargoState {
	return c.state
}

func (c Cargo) Used() int {
	return c.state.Used
}

func (c Cargo) Capacity() int {
	return c.state.Capacity
}

// Full is the flag as of the last applied reading. Use FullAt when the
// capacity override may have changed since.
func (c Cargo) Full() bool {
	return c.state.Full
}

// FullAt re-evaluates fullness against the given override. An announced
// full stays full.
func (c Cargo) FullAt(override int) bool {
	if c.forced {
		return true
	}
	if limit := c.EffectiveMax(override); limit > 0 {
		return c.state.Used >= limit
	}

	return c.state.Full
}

func (c Cargo) Forced() bool {
	return c.forced
}

// EffectiveMax prefers a positive override over the observed capacity.
func (c Cargo) EffectiveMax(override int) int {
	if override > 0 {
		return override
	}

	return c.state.Capacity
}

func (c Cargo) DefinitelyFull(override int) bool {
	if limit := c.EffectiveMax(override); limit > 0 {
		return c.state.Used >= limit
	}

	return c.state.Full
}

func (c *Cargo) AnnounceFull(override int) {
	c.forced = true
	c.state.Full = true
	c.settle(override)
}

func (c *Cargo) ApplyFraction(used, capacity, override int) bool {
	if !validFraction(used, capacity) {
		return false
	}

	c.state.Used = used
	c.state.Capacity = capacity
	c.settle(override)
	return true
}

// ApplySlotSum takes the summed slot quantities when no numeric reading
// was available this cycle. It never replaces a known capacity.
func (c *Cargo) ApplySlotSum(sum int, numericParsed bool, override int) bool {
	if sum <= 0 || numericParsed {
		return false
	}

	c.state.Used = sum
	if c.state.Capacity == 0 && override > 0 {
		c.state.Capacity = override
	}
	c.settle(override)
	return true
}

func (c *Cargo) RecordHook(override int) {
	if limit := c.EffectiveMax(override); limit > 0 {
		c.state.Used = min(c.state.Used+1, limit)
	} else {
		c.state.Used++
	}
	c.settle(override)
}

func (c *Cargo) Reset() {
	c.state = CargoState{}
	c.forced = false
}

func (c *Cargo) settle(override int) {
	limit := c.EffectiveMax(override)
	if limit <= 0 {
		return
	}
	if c.forced {
		c.state.Used = limit
	}

	c.state.Full = c.state.Used >= limit
}

// ParseFraction reads "<used> / <capacity>" text.
func ParseFraction(text string) (int, int, bool) {
	stripped := strings.TrimSpace(RemoveTags(text))
	slash := strings.IndexByte(stripped, '/')
	if slash <= 0 || slash >= len(stripped)-1 {
		return 0, 0, false
	}

	used, err := strconv.Atoi(strings.TrimSpace(stripped[:slash]))
	if err != nil {
		return 0, 0, false
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(stripped[slash+1:]))
	if err != nil {
		return 0, 0, false
	}
	if !validFraction(used, capacity) {
		return 0, 0, false
	}

	return used, capacity, true
}

func ParseCount(text string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(RemoveTags(text)))
	if err != nil || value < 0 {
		return 0, false
	}

	return value, true
}

func validFraction(used, capacity int) bool {
	return capacity > 0 && used >= 0 && used <= capacity
}
