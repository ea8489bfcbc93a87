package application

import "github.com/bnema/salvage-tracker/internal/domain"

type EventKind string

const (
	EventSkillProgress    EventKind = "skill_progress"
	EventAnimationChanged EventKind = "animation_changed"
	EventOverheadText     EventKind = "overhead_text"
	EventChatLine         EventKind = "chat"
	EventWidgetLoaded     EventKind = "widget_loaded"
	EventTick             EventKind = "tick"
	EventNpcSpawned       EventKind = "npc_spawned"
	EventNpcDespawned     EventKind = "npc_despawned"
	EventSessionBoundary  EventKind = "session_boundary"
)

func EventKinds() []string {
	return []string{
		string(EventSkillProgress),
		string(EventAnimationChanged),
		string(EventOverheadText),
		string(EventChatLine),
		string(EventWidgetLoaded),
		string(EventTick),
		string(EventNpcSpawned),
		string(EventNpcDespawned),
		string(EventSessionBoundary),
	}
}

// Event is one observation delivered by the host, in game-loop order.
type Event interface {
	Kind() EventKind
}

type SkillProgress struct {
	Skill domain.Skill
}

// AnimationChanged carries either the local player's animation or a crew
// handle's. TopLevelView marks the overview render pass, which is ignored.
type AnimationChanged struct {
	LocalPlayer  bool
	Handle       domain.WorkerHandle
	Animation    domain.AnimationID
	TopLevelView bool
}

type OverheadText struct {
	Handle    domain.WorkerHandle
	Name      string
	WorldView domain.WorldViewID
	Text      string
}

type ChatLine struct {
	Channel domain.ChatChannel
	Text    string
}

type WidgetLoaded struct {
	Group int
}

type Tick struct{}

type NpcSpawned struct {
	Handle    domain.WorkerHandle
	Name      string
	WorldView domain.WorldViewID
}

type NpcDespawned struct {
	Handle domain.WorkerHandle
}

type SessionBoundary struct {
	Boundary domain.SessionBoundaryKind
}

func (SkillProgress) Kind() EventKind    { return EventSkillProgress }
func (AnimationChanged) Kind() EventKind { return EventAnimationChanged }
func (OverheadText) Kind() EventKind     { return EventOverheadText }
func (ChatLine) Kind() EventKind         { return EventChatLine }
func (WidgetLoaded) Kind() EventKind     { return EventWidgetLoaded }
func (Tick) Kind() EventKind             { return EventTick }
func (NpcSpawned) Kind() EventKind       { return EventNpcSpawned }
func (NpcDespawned) Kind() EventKind     { return EventNpcDespawned }
func (SessionBoundary) Kind() EventKind  { return EventSessionBoundary }
