package replay

import (
	"context"

	"github.com/bnema/salvage-tracker/internal/adapters/host/scripted"
	"github.com/bnema/salvage-tracker/internal/application"
)

type RenderFunc func(application.Status) error

// Player applies steps to a tracker and the scripted client it reads.
type Player struct {
	tracker *application.Tracker
	client  *scripted.Client
}

func NewPlayer(tracker *application.Tracker, client *scripted.Client) *Player {
	return &Player{tracker: tracker, client: client}
}

// Play runs a whole scenario, moving clock to each step's offset before
// applying it.
func (p *Player) Play(ctx context.Context, scenario Scenario, clock *scripted.Clock, render RenderFunc) error {
	clock.Set(scenario.Start)
	if scenario.LocalView != nil {
		p.client.EnterWorld(*scenario.LocalView)
	}

	for _, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		clock.Set(scenario.Start.Add(step.At))
		if err := p.Apply(step, render); err != nil {
			return err
		}
	}

	return nil
}

// Apply performs a single step without touching the clock.
func (p *Player) Apply(step Step, render RenderFunc) error {
	switch {
	case step.Event != nil:
		p.tracker.Dispatch(step.Event)
	case step.Widget != nil:
		if step.Widget.Remove {
			p.client.RemoveWidget(step.Widget.Group, step.Widget.Child)
		} else {
			p.client.SetWidget(step.Widget.Group, step.Widget.Child, step.Widget.Widget)
		}
	case step.World != nil:
		if step.World.Leave {
			p.client.LeaveWorld()
		} else {
			p.client.EnterWorld(step.World.View)
		}
	case step.Render:
		if render != nil {
			return render(p.tracker.Snapshot())
		}
	}

	return nil
}
