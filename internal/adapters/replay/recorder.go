package replay

import (
	"sync"
	"time"

	"github.com/bnema/salvage-tracker/internal/ports"
)

// Recorder collects live steps into a scenario, stamping each with its
// offset from the first recorded step.
type Recorder struct {
	mu       sync.Mutex
	clock    ports.Clock
	scenario Scenario
}

func NewRecorder(name string, clock ports.Clock) *Recorder {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Recorder{clock: clock, scenario: Scenario{Name: name}}
}

func (r *Recorder) Record(step Step) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if r.scenario.Start.IsZero() {
		r.scenario.Start = now
	}

	step.At = now.Sub(r.scenario.Start).Truncate(time.Millisecond)
	if n := len(r.scenario.Steps); n > 0 && step.At < r.scenario.Steps[n-1].At {
		step.At = r.scenario.Steps[n-1].At
	}
	r.scenario.Steps = append(r.scenario.Steps, step)
}

// Scenario returns a copy of everything recorded so far.
func (r *Recorder) Scenario() Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()

	scenario := r.scenario
	scenario.Steps = append([]Step(nil), r.scenario.Steps...)
	return scenario
}
