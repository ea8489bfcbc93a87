package replay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/bnema/salvage-tracker/internal/domain"
)

const (
	kindWidget    = "widget"
	kindWorldView = "world_view"
	kindRender    = "render"
)

// StepKinds lists every kind a scenario step may carry.
func StepKinds() []string {
	return append(application.EventKinds(), kindWidget, kindWorldView, kindRender)
}

type WidgetChange struct {
	Group  int
	Child  int
	Widget domain.Widget
	Remove bool
}

type WorldChange struct {
	View  domain.WorldViewID
	Leave bool
}

// Step is one scripted action at an offset from the scenario start.
// Exactly one of Event, Widget, World or Render is set.
type Step struct {
	At     time.Duration
	Event  application.Event
	Widget *WidgetChange
	World  *WorldChange
	Render bool
}

// converter turns raw steps into Steps. It remembers the last offset and
// the current world view so later steps can omit them.
type converter struct {
	last time.Duration
	view domain.WorldViewID
}

func (c *converter) convert(raw stepSchema) ([]Step, error) {
	at, err := c.offset(raw.At)
	if err != nil {
		return nil, err
	}

	kind := strings.ToLower(strings.TrimSpace(raw.Kind))
	step := Step{At: at}

	switch kind {
	case string(application.EventSkillProgress):
		step.Event = application.SkillProgress{Skill: domain.Skill(strings.ToLower(strings.TrimSpace(raw.Skill)))}
	case string(application.EventAnimationChanged):
		step.Event = application.AnimationChanged{
			LocalPlayer:  raw.LocalPlayer,
			Handle:       domain.WorkerHandle(raw.Handle),
			Animation:    domain.AnimationID(raw.Animation),
			TopLevelView: raw.TopLevel,
		}
	case string(application.EventOverheadText):
		step.Event = application.OverheadText{
			Handle:    domain.WorkerHandle(raw.Handle),
			Name:      raw.Name,
			WorldView: c.worldView(raw.WorldView),
			Text:      raw.Text,
		}
	case string(application.EventChatLine):
		channel, err := domain.ParseChatChannel(raw.Channel)
		if err != nil {
			return nil, withSuggestion(err, raw.Channel, domain.ChatChannels())
		}
		step.Event = application.ChatLine{Channel: channel, Text: raw.Text}
	case string(application.EventWidgetLoaded):
		step.Event = application.WidgetLoaded{Group: group(raw.Group)}
	case string(application.EventTick):
		return c.ticks(at, raw.Repeat), nil
	case string(application.EventNpcSpawned):
		step.Event = application.NpcSpawned{
			Handle:    domain.WorkerHandle(raw.Handle),
			Name:      raw.Name,
			WorldView: c.worldView(raw.WorldView),
		}
	case string(application.EventNpcDespawned):
		step.Event = application.NpcDespawned{Handle: domain.WorkerHandle(raw.Handle)}
	case string(application.EventSessionBoundary):
		boundary, err := domain.ParseSessionBoundary(raw.Boundary)
		if err != nil {
			return nil, withSuggestion(err, raw.Boundary, []string{
				string(domain.SessionBoundaryLoginScreen),
				string(domain.SessionBoundaryWorldHop),
			})
		}
		step.Event = application.SessionBoundary{Boundary: boundary}
	case kindWidget:
		step.Widget = &WidgetChange{
			Group:  group(raw.Group),
			Child:  raw.Child,
			Widget: widget(raw),
			Remove: raw.Remove,
		}
	case kindWorldView:
		if raw.Leave {
			step.World = &WorldChange{Leave: true}
			break
		}
		if raw.WorldView == nil {
			return nil, errors.New("world_view step needs world_view or leave")
		}
		c.view = domain.WorldViewID(*raw.WorldView)
		step.World = &WorldChange{View: c.view}
	case kindRender:
		step.Render = true
	default:
		return nil, withSuggestion(fmt.Errorf("%w: %q", domain.ErrUnknownEventKind, raw.Kind), kind, StepKinds())
	}

	return []Step{step}, nil
}

func (c *converter) offset(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.last, nil
	}

	at, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse step offset %q: %w", raw, err)
	}
	if at < c.last {
		return 0, fmt.Errorf("%w: %s before %s", domain.ErrOutOfOrderStep, at, c.last)
	}

	c.last = at
	return at, nil
}

func (c *converter) worldView(raw *int) domain.WorldViewID {
	if raw == nil {
		return c.view
	}

	return domain.WorldViewID(*raw)
}

func (c *converter) ticks(at time.Duration, repeat int) []Step {
	if repeat < 1 {
		repeat = 1
	}

	steps := make([]Step, repeat)
	for i := range steps {
		steps[i] = Step{At: at, Event: application.Tick{}}
	}

	return steps
}

func group(raw *int) int {
	if raw == nil {
		return domain.CargoGroupID
	}

	return *raw
}

func widget(raw stepSchema) domain.Widget {
	w := domain.Widget{Hidden: raw.Hidden, Text: raw.Text}
	for _, quantity := range raw.Quantities {
		w.Children = append(w.Children, domain.Widget{ItemQuantity: quantity})
	}

	return w
}
