package application

import (
	"time"

	"github.com/bnema/salvage-tracker/internal/domain"
)

type StatusCargo struct {
	Used           int
	Capacity       int
	Max            int
	Full           bool
	DefinitelyFull bool
}

type StatusWorker struct {
	Name        string
	Hooks       int
	RatePerHour float64
	LastHook    time.Time
}

type StatusCrew struct {
	Tracked int
	Working int
	Workers []StatusWorker
}

type StatusTiming struct {
	TotalHooks             int
	AverageIntervalSeconds float64
	SecondsSinceLast       int
}

type StatusCooldown struct {
	RemainingSeconds int
	OnCooldown       bool
}

// Status is a consistent copy of every derived value at one instant.
type Status struct {
	SessionID   string
	At          time.Time
	Ticks       int
	OnBoat      bool
	StatusKnown bool
	Active      bool
	Salvaging   bool
	Labor       domain.LaborState
	Cargo       StatusCargo
	Crew        StatusCrew
	Timing      StatusTiming
	Crystal     StatusCooldown
}
