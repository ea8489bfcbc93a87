package status

import (
	"testing"
	"time"

	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onBoatStatus() application.Status {
	return application.Status{
		SessionID:   "0f8c2d1e-5b7a-4c3d-9e8f-1a2b3c4d5e6f",
		At:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Ticks:       12,
		OnBoat:      true,
		StatusKnown: true,
		Active:      true,
		Crystal:     application.StatusCooldown{RemainingSeconds: -1},
		Timing:      application.StatusTiming{SecondsSinceLast: -1},
	}
}

func TestRenderFullSession(t *testing.T) {
	status := onBoatStatus()
	status.Cargo = application.StatusCargo{Used: 9, Capacity: 20, Max: 20}
	status.Crew = application.StatusCrew{
		Tracked: 2,
		Working: 1,
		Workers: []application.StatusWorker{
			{Name: "Jolly Jim", Hooks: 3, RatePerHour: 120},
			{Name: "Bosun Zarah", Hooks: 1},
		},
	}
	status.Timing = application.StatusTiming{TotalHooks: 4, AverageIntervalSeconds: 15, SecondsSinceLast: 4}
	status.Crystal = application.StatusCooldown{RemainingSeconds: 42, OnCooldown: true}

	output, err := Render(status, RenderOptions{Settings: domain.DefaultSettings()})

	require.NoError(t, err)
	assert.Contains(t, output, "Salvage tracker")
	assert.Contains(t, output, "session 0f8c2d1e, tick 12")
	assert.Contains(t, output, "Salvaging")
	assert.Contains(t, output, "9 / 20")
	assert.Contains(t, output, "[")
	assert.Contains(t, output, "Crew salvaging:")
	assert.Contains(t, output, "1/2")
	assert.Contains(t, output, "Jolly Jim:")
	assert.Contains(t, output, "3 (120.0/hr)")
	assert.Contains(t, output, "Bosun Zarah:")
	assert.Contains(t, output, "Total salvages:")
	assert.Contains(t, output, "Avg between hooks:")
	assert.Contains(t, output, "15.0s")
	assert.Contains(t, output, "4s ago")
	assert.Contains(t, output, "Crystal hook:")
	assert.Contains(t, output, "42s")
	assert.Contains(t, output, domain.DefaultDedication)
	assert.NotContains(t, output, "No hooks yet.")
}

func TestRenderStatusLabels(t *testing.T) {
	tests := []struct {
		name      string
		active    bool
		salvaging bool
		want      string
	}{
		{name: "idle", want: "IDLE"},
		{name: "working", active: true, want: "Salvaging"},
		{name: "variant", active: true, salvaging: true, want: "Cleaning"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			status := onBoatStatus()
			status.Active = tc.active
			status.Salvaging = tc.salvaging

			output := View(status, RenderOptions{Settings: domain.DefaultSettings()})
			assert.Contains(t, output, tc.want)
		})
	}
}

func TestRenderCargoLabels(t *testing.T) {
	tests := []struct {
		name  string
		cargo application.StatusCargo
		want  string
	}{
		{name: "unknown", cargo: application.StatusCargo{Used: 3}, want: "Unknown"},
		{name: "known", cargo: application.StatusCargo{Used: 3, Capacity: 10, Max: 10}, want: "3 / 10"},
		{name: "full without capacity", cargo: application.StatusCargo{Full: true, DefinitelyFull: true}, want: "FULL"},
		{name: "full", cargo: application.StatusCargo{Used: 10, Capacity: 10, Max: 10, Full: true, DefinitelyFull: true}, want: "FULL"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			status := onBoatStatus()
			status.Cargo = tc.cargo

			output := View(status, RenderOptions{Settings: domain.DefaultSettings()})
			assert.Contains(t, output, "Cargo:")
			assert.Contains(t, output, tc.want)
		})
	}
}

func TestRenderEmptyCrewAndHiddenTiming(t *testing.T) {
	status := onBoatStatus()

	output := View(status, RenderOptions{Settings: domain.DefaultSettings()})

	assert.Contains(t, output, "No crew detected yet.")
	assert.Contains(t, output, "No hooks yet.")
	assert.NotContains(t, output, "Salvage timing")
}

func TestRenderCrystalReady(t *testing.T) {
	status := onBoatStatus()
	status.Crystal = application.StatusCooldown{RemainingSeconds: 0}

	output := View(status, RenderOptions{Settings: domain.DefaultSettings()})

	assert.Contains(t, output, "Salvage timing")
	assert.Contains(t, output, "READY")
	assert.NotContains(t, output, "Total salvages:")
}

func TestRenderOffBoatHidesPanels(t *testing.T) {
	status := onBoatStatus()
	status.OnBoat = false
	status.Cargo = application.StatusCargo{Used: 3, Capacity: 10, Max: 10}

	output := View(status, RenderOptions{Settings: domain.DefaultSettings(), Title: "three hooks"})

	assert.Contains(t, output, "three hooks")
	assert.Contains(t, output, "Not on a vessel.")
	assert.NotContains(t, output, "Cargo:")
	assert.NotContains(t, output, "IDLE")
}

func TestRenderPanelToggles(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Panels = domain.PanelSettings{Cargo: true}
	settings.Dedication = ""

	status := onBoatStatus()
	status.Crystal = application.StatusCooldown{RemainingSeconds: 5}

	output := View(status, RenderOptions{Settings: settings})

	assert.Contains(t, output, "Cargo:")
	assert.NotContains(t, output, "Salvaging")
	assert.NotContains(t, output, "Salvage crew")
	assert.NotContains(t, output, "Salvage timing")
	assert.NotContains(t, output, domain.DefaultDedication)
}

func TestRenderProgressBar(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "[=====-----]", renderProgressBar(50, 10, s))
	assert.Equal(t, "[==========]", renderProgressBar(130, 10, s))
	assert.Empty(t, renderProgressBar(50, 0, s))
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "240", string(interpolateColor(0, 0, 60)))
	assert.Equal(t, "255", string(interpolateColor(60, 0, 60)))
	assert.Equal(t, "255", string(interpolateColor(5, 3, 3)))
}
