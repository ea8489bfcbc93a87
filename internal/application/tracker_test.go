package application

import (
	"bytes"
	"testing"
	"time"

	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/bnema/salvage-tracker/internal/ports"
	"github.com/bnema/salvage-tracker/internal/ports/mocks"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type widgetKey struct {
	group int
	child int
}

type fakeGameClient struct {
	view    domain.WorldViewID
	inWorld bool
	widgets map[widgetKey]domain.Widget
}

func newFakeGameClient(view domain.WorldViewID) *fakeGameClient {
	return &fakeGameClient{view: view, inWorld: true, widgets: map[widgetKey]domain.Widget{}}
}

func (c *fakeGameClient) LocalWorldView() (domain.WorldViewID, bool) {
	return c.view, c.inWorld
}

func (c *fakeGameClient) Widget(group, child int) (domain.Widget, bool) {
	w, ok := c.widgets[widgetKey{group: group, child: child}]
	return w, ok
}

func (c *fakeGameClient) setCargoWidget(child int, w domain.Widget) {
	c.widgets[widgetKey{group: domain.CargoGroupID, child: child}] = w
}

func (c *fakeGameClient) openCargo() {
	c.setCargoWidget(domain.CargoRootChild, domain.Widget{})
}

const localView domain.WorldViewID = 7

func newTestTracker(t *testing.T, settings domain.Settings) (*Tracker, *stepClock, *fakeGameClient) {
	t.Helper()

	clock := &stepClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	client := newFakeGameClient(localView)
	tracker := NewTracker(client, ports.StaticSettings(settings), clock, nil)
	return tracker, clock, client
}

func crewXP() ChatLine {
	return ChatLine{Channel: domain.ChatChannelSpam, Text: domain.CrewXPMessage}
}

func hook(name string) OverheadText {
	return OverheadText{Handle: 1, Name: name, WorldView: localView, Text: domain.HookOverheadPrefix + "!"}
}

func TestTrackerPresenceWindow(t *testing.T) {
	t.Parallel()

	tracker, clock, _ := newTestTracker(t, domain.DefaultSettings())
	assert.False(t, tracker.OnBoat())

	tracker.Dispatch(SkillProgress{Skill: domain.SkillSailing})
	assert.True(t, tracker.OnBoat())

	clock.Advance(4*time.Minute + 59*time.Second)
	assert.True(t, tracker.OnBoat())

	clock.Advance(time.Second)
	assert.False(t, tracker.OnBoat())
}

func TestTrackerIgnoresOtherSkills(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnSkillProgress(SkillProgress{Skill: "fishing"})
	assert.False(t, tracker.OnBoat())
}

func TestTrackerLocalAnimation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		animation     domain.AnimationID
		evidence      bool
		wantActive    bool
		wantSalvaging bool
		wantOnBoat    bool
	}{
		{name: "working", animation: 13576, evidence: true, wantActive: true, wantOnBoat: true},
		{name: "variant", animation: domain.HaulingAnimation, evidence: true, wantActive: true, wantSalvaging: true, wantOnBoat: true},
		{name: "idle", animation: 808, evidence: true},
		{name: "working without evidence", animation: 13583, evidence: false, wantActive: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			settings := domain.DefaultSettings()
			settings.AnimationPresenceEvidence = tc.evidence
			tracker, _, _ := newTestTracker(t, settings)

			tracker.OnAnimationChanged(AnimationChanged{LocalPlayer: true, Animation: tc.animation})

			assert.True(t, tracker.StatusKnown())
			assert.Equal(t, tc.wantActive, tracker.Active())
			assert.Equal(t, tc.wantSalvaging, tracker.Salvaging())
			assert.Equal(t, tc.wantOnBoat, tracker.OnBoat())
		})
	}
}

func TestTrackerIgnoresTopLevelAnimation(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnAnimationChanged(AnimationChanged{LocalPlayer: true, Animation: 13576, TopLevelView: true})

	assert.False(t, tracker.StatusKnown())
	assert.False(t, tracker.Active())
}

func TestTrackerHookRequiresCorroboration(t *testing.T) {
	t.Parallel()

	tracker, clock, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})

	assert.False(t, tracker.OnOverheadText(hook("Jobless Jim")))
	assert.Zero(t, tracker.TotalHooks())
	assert.Empty(t, tracker.CrewHookCounts())
	assert.Equal(t, -1, tracker.SecondsSinceLastHook())

	tracker.OnChatLine(crewXP())
	clock.Advance(3 * time.Second)
	assert.False(t, tracker.OnOverheadText(hook("Jobless Jim")))
	assert.Zero(t, tracker.TotalHooks())

	tracker.OnChatLine(crewXP())
	clock.Advance(2 * time.Second)
	assert.True(t, tracker.OnOverheadText(hook("Jobless Jim")))
	assert.Equal(t, 1, tracker.TotalHooks())
}

func TestTrackerHookRequiresPresence(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnChatLine(crewXP())

	assert.False(t, tracker.OnOverheadText(hook("Jobless Jim")))
	assert.Zero(t, tracker.TotalHooks())
	assert.Zero(t, tracker.CargoUsed())
}

func TestTrackerHookCandidateFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   OverheadText
	}{
		{name: "unknown npc", ev: OverheadText{Name: "Pirate Pete", WorldView: localView, Text: domain.HookOverheadPrefix}},
		{name: "other world view", ev: OverheadText{Name: "Jobless Jim", WorldView: localView + 1, Text: domain.HookOverheadPrefix}},
		{name: "other text", ev: OverheadText{Name: "Jobless Jim", WorldView: localView, Text: "Arr!"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
			tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})
			tracker.OnChatLine(crewXP())

			assert.False(t, tracker.OnOverheadText(tc.ev))
			assert.Zero(t, tracker.TotalHooks())
		})
	}
}

func TestTrackerHookAcceptsTaggedName(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})
	tracker.OnChatLine(ChatLine{Channel: domain.ChatChannelGame, Text: "<col=ef1020>" + domain.CrewXPMessage + "</col>"})

	require.True(t, tracker.OnOverheadText(hook("<col=ffff00>Jobless Jim</col>")))
	assert.Equal(t, map[string]int{"Jobless Jim": 1}, tracker.CrewHookCounts())
}

func TestTrackerMeanInterval(t *testing.T) {
	t.Parallel()

	tracker, clock, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})

	accept := func() {
		t.Helper()
		tracker.OnChatLine(crewXP())
		require.True(t, tracker.OnOverheadText(hook("Jobless Jim")))
	}

	accept()
	assert.Zero(t, tracker.AverageIntervalSeconds())

	clock.Advance(10 * time.Second)
	accept()
	assert.InDelta(t, 10.0, tracker.AverageIntervalSeconds(), 1e-9)

	clock.Advance(20 * time.Second)
	accept()
	assert.InDelta(t, 15.0, tracker.AverageIntervalSeconds(), 1e-9)
	assert.Equal(t, 3, tracker.TotalHooks())

	clock.Advance(4 * time.Second)
	assert.Equal(t, 4, tracker.SecondsSinceLastHook())
	assert.InDelta(t, 3/(34.0/3600), tracker.CrewRatePerHour("Jobless Jim"), 1e-6)
}

func TestTrackerCargoStaysFullAfterAnnouncement(t *testing.T) {
	t.Parallel()

	tracker, _, client := newTestTracker(t, domain.DefaultSettings())
	client.openCargo()
	client.setCargoWidget(3, domain.Widget{Text: "7 / 20"})

	tracker.OnWidgetLoaded(WidgetLoaded{Group: domain.CargoGroupID})
	assert.Equal(t, 7, tracker.CargoUsed())
	assert.Equal(t, 20, tracker.CargoCapacity())
	assert.False(t, tracker.CargoFull())

	tracker.OnChatLine(ChatLine{Channel: domain.ChatChannelGame, Text: domain.CargoFullCrewMessage})
	assert.True(t, tracker.CargoFull())
	assert.Equal(t, 20, tracker.CargoUsed())

	delete(client.widgets, widgetKey{group: domain.CargoGroupID, child: 3})
	client.setCargoWidget(domain.CargoItemsChild, domain.Widget{Children: []domain.Widget{{ItemQuantity: 2}, {ItemQuantity: 3}}})
	tracker.OnTick()

	assert.True(t, tracker.CargoFull())
	assert.True(t, tracker.CargoDefinitelyFull())
	assert.Equal(t, 20, tracker.CargoUsed())
}

func TestTrackerCargoFullWithoutCapacity(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnChatLine(ChatLine{Channel: domain.ChatChannelModal, Text: "The cargo hold is full."})

	assert.True(t, tracker.CargoFull())
	assert.True(t, tracker.CargoDefinitelyFull())
	assert.Zero(t, tracker.CargoMax())
}

func TestTrackerCargoIgnoresOtherChannel(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnChatLine(ChatLine{Channel: domain.ChatChannelOther, Text: domain.CargoFullCrewMessage})

	assert.False(t, tracker.CargoFull())
}

func TestTrackerCargoPairedWidgets(t *testing.T) {
	t.Parallel()

	tracker, _, client := newTestTracker(t, domain.DefaultSettings())
	client.openCargo()
	client.setCargoWidget(domain.CargoUsedChild, domain.Widget{Text: "12"})
	client.setCargoWidget(domain.CargoCapacityChild, domain.Widget{Text: "<col=ffffff>12</col>"})
	client.setCargoWidget(domain.CargoItemsChild, domain.Widget{Children: []domain.Widget{{ItemQuantity: 4}}})

	tracker.OnWidgetLoaded(WidgetLoaded{Group: domain.CargoGroupID})

	assert.Equal(t, 12, tracker.CargoUsed())
	assert.Equal(t, 12, tracker.CargoCapacity())
	assert.True(t, tracker.CargoFull())
}

func TestTrackerCargoSlotSumUsesOverride(t *testing.T) {
	t.Parallel()

	settings := domain.DefaultSettings()
	settings.Cargo.CapacityOverride = 6
	tracker, _, client := newTestTracker(t, settings)
	client.openCargo()
	client.setCargoWidget(domain.CargoUsedChild, domain.Widget{Text: "--"})
	client.setCargoWidget(domain.CargoCapacityChild, domain.Widget{Text: "--"})
	client.setCargoWidget(domain.CargoItemsChild, domain.Widget{Children: []domain.Widget{{ItemQuantity: 4}, {ItemQuantity: 1}}})

	tracker.OnWidgetLoaded(WidgetLoaded{Group: domain.CargoGroupID})

	assert.Equal(t, 5, tracker.CargoUsed())
	assert.Equal(t, 6, tracker.CargoCapacity())
	assert.Equal(t, 6, tracker.CargoMax())
	assert.False(t, tracker.CargoFull())
}

func TestTrackerCargoDialogLastMatchWins(t *testing.T) {
	t.Parallel()

	tracker, _, client := newTestTracker(t, domain.DefaultSettings())
	client.openCargo()
	client.setCargoWidget(2, domain.Widget{Text: "3 / 10"})
	client.setCargoWidget(9, domain.Widget{Text: "11 / 10"})
	client.setCargoWidget(14, domain.Widget{Text: "4 / 10"})
	client.setCargoWidget(20, domain.Widget{Text: "9 / 10", Hidden: true})

	tracker.OnWidgetLoaded(WidgetLoaded{Group: domain.CargoGroupID})

	assert.Equal(t, 4, tracker.CargoUsed())
	assert.Equal(t, 10, tracker.CargoCapacity())
}

func TestTrackerCargoClosedInterfaceIgnored(t *testing.T) {
	t.Parallel()

	tracker, _, client := newTestTracker(t, domain.DefaultSettings())
	client.setCargoWidget(domain.CargoRootChild, domain.Widget{Hidden: true})
	client.setCargoWidget(3, domain.Widget{Text: "7 / 20"})

	tracker.OnWidgetLoaded(WidgetLoaded{Group: domain.CargoGroupID})
	tracker.OnTick()

	assert.Zero(t, tracker.CargoUsed())
	assert.Zero(t, tracker.CargoCapacity())
}

func TestTrackerHookIncrementsCargoClamped(t *testing.T) {
	t.Parallel()

	settings := domain.DefaultSettings()
	settings.Cargo.CapacityOverride = 2
	tracker, clock, _ := newTestTracker(t, settings)
	tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})

	for i := 0; i < 3; i++ {
		tracker.OnChatLine(crewXP())
		require.True(t, tracker.OnOverheadText(hook("Bosun Zarah")))
		clock.Advance(time.Second)
	}

	assert.Equal(t, 2, tracker.CargoUsed())
	assert.True(t, tracker.CargoFull())
	assert.True(t, tracker.CargoDefinitelyFull())
}

func TestTrackerRosterSharesStatsByName(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})

	tracker.OnNpcSpawned(NpcSpawned{Handle: 1, Name: "Jobless Jim", WorldView: localView})
	tracker.OnNpcSpawned(NpcSpawned{Handle: 2, Name: "Jobless Jim", WorldView: localView})
	tracker.OnNpcSpawned(NpcSpawned{Handle: 3, Name: "Jobless Jim", WorldView: localView + 1})
	tracker.OnNpcSpawned(NpcSpawned{Handle: 4, Name: "Pirate Pete", WorldView: localView})
	assert.Equal(t, 2, tracker.TrackedCrew())

	tracker.OnChatLine(crewXP())
	require.True(t, tracker.OnOverheadText(hook("Jobless Jim")))

	tracker.OnNpcDespawned(NpcDespawned{Handle: 1})
	tracker.OnNpcDespawned(NpcDespawned{Handle: 2})
	assert.Zero(t, tracker.TrackedCrew())

	tracker.OnNpcSpawned(NpcSpawned{Handle: 5, Name: "Jobless Jim", WorldView: localView})
	assert.Equal(t, 1, tracker.TrackedCrew())
	assert.Equal(t, map[string]int{"Jobless Jim": 1}, tracker.CrewHookCounts())
}

func TestTrackerSpawnWithoutLocalViewIgnored(t *testing.T) {
	t.Parallel()

	tracker, _, client := newTestTracker(t, domain.DefaultSettings())
	client.inWorld = false

	tracker.OnNpcSpawned(NpcSpawned{Handle: 1, Name: "Jobless Jim", WorldView: localView})
	assert.Zero(t, tracker.TrackedCrew())
}

func TestTrackerIdleTicksSaturateAndReset(t *testing.T) {
	t.Parallel()

	tracker, _, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnNpcSpawned(NpcSpawned{Handle: 9, Name: "Sailor Jakob", WorldView: localView})

	for i := 0; i < 15; i++ {
		tracker.OnTick()
	}
	assert.Equal(t, domain.MaxIdleTicks, tracker.IdleTicks(9))
	assert.Equal(t, 15, tracker.Ticks())

	tracker.OnAnimationChanged(AnimationChanged{Handle: 9, Animation: 13577})
	assert.Zero(t, tracker.IdleTicks(9))
	assert.Equal(t, 1, tracker.WorkingCrew())

	tracker.OnTick()
	assert.Zero(t, tracker.IdleTicks(9))

	tracker.OnAnimationChanged(AnimationChanged{Handle: 9, Animation: 808})
	assert.Zero(t, tracker.IdleTicks(9))
	assert.Zero(t, tracker.WorkingCrew())

	tracker.OnTick()
	assert.Equal(t, 1, tracker.IdleTicks(9))
	assert.Equal(t, -1, tracker.IdleTicks(42))
}

func TestTrackerCrystalCooldown(t *testing.T) {
	t.Parallel()

	tracker, clock, _ := newTestTracker(t, domain.DefaultSettings())
	assert.Equal(t, -1, tracker.CrystalCooldownRemaining())
	assert.False(t, tracker.CrystalOnCooldown())

	tracker.OnChatLine(ChatLine{Channel: domain.ChatChannelGame, Text: domain.CrystalMoteMessage})
	assert.Equal(t, 60, tracker.CrystalCooldownRemaining())
	assert.True(t, tracker.CrystalOnCooldown())

	clock.Advance(45 * time.Second)
	assert.Equal(t, 15, tracker.CrystalCooldownRemaining())

	clock.Advance(time.Minute)
	assert.Zero(t, tracker.CrystalCooldownRemaining())
	assert.False(t, tracker.CrystalOnCooldown())
}

func TestTrackerSessionBoundaryResets(t *testing.T) {
	t.Parallel()

	for _, boundary := range []domain.SessionBoundaryKind{domain.SessionBoundaryLoginScreen, domain.SessionBoundaryWorldHop} {
		boundary := boundary
		t.Run(string(boundary), func(t *testing.T) {
			t.Parallel()

			tracker, _, client := newTestTracker(t, domain.DefaultSettings())
			client.openCargo()
			client.setCargoWidget(3, domain.Widget{Text: "7 / 20"})

			tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})
			tracker.OnAnimationChanged(AnimationChanged{LocalPlayer: true, Animation: 13576})
			tracker.OnNpcSpawned(NpcSpawned{Handle: 1, Name: "Jolly Jim", WorldView: localView})
			tracker.OnChatLine(crewXP())
			require.True(t, tracker.OnOverheadText(hook("Jolly Jim")))
			tracker.OnChatLine(ChatLine{Channel: domain.ChatChannelGame, Text: domain.CargoFullCrewMessage})
			tracker.OnChatLine(ChatLine{Channel: domain.ChatChannelGame, Text: domain.CrystalMoteMessage})
			tracker.OnTick()
			before := tracker.SessionID()

			tracker.Dispatch(SessionBoundary{Boundary: boundary})

			status := tracker.Snapshot()
			assert.NotEqual(t, before, status.SessionID)
			assert.False(t, status.OnBoat)
			assert.False(t, status.StatusKnown)
			assert.False(t, status.Active)
			assert.Zero(t, status.Ticks)
			assert.Equal(t, StatusCargo{}, status.Cargo)
			assert.Zero(t, status.Crew.Tracked)
			assert.Empty(t, status.Crew.Workers)
			assert.Equal(t, StatusTiming{SecondsSinceLast: -1}, status.Timing)
			assert.Equal(t, StatusCooldown{RemainingSeconds: -1}, status.Crystal)

			tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})
			assert.False(t, tracker.OnOverheadText(hook("Jolly Jim")))
		})
	}
}

func TestTrackerSnapshotSortsWorkers(t *testing.T) {
	t.Parallel()

	tracker, clock, _ := newTestTracker(t, domain.DefaultSettings())
	tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})

	for _, name := range []string{"Adventurer Ada", "Jolly Jim", "Jolly Jim", "Bosun Zarah", "Jolly Jim", "Bosun Zarah"} {
		tracker.OnChatLine(crewXP())
		require.True(t, tracker.OnOverheadText(hook(name)))
		clock.Advance(30 * time.Second)
	}

	status := tracker.Snapshot()
	require.Len(t, status.Crew.Workers, 3)
	assert.Equal(t, "Jolly Jim", status.Crew.Workers[0].Name)
	assert.Equal(t, 3, status.Crew.Workers[0].Hooks)
	assert.Equal(t, "Bosun Zarah", status.Crew.Workers[1].Name)
	assert.Equal(t, "Adventurer Ada", status.Crew.Workers[2].Name)
	assert.Zero(t, status.Crew.Workers[2].RatePerHour)
	assert.Equal(t, 6, status.Timing.TotalHooks)
}

func TestTrackerReadsSettingsLive(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSettingsStore(t)
	settings := domain.DefaultSettings()
	store.EXPECT().Settings().RunAndReturn(func() domain.Settings { return settings })

	clock := mocks.NewMockClock(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now)

	client := mocks.NewMockGameClient(t)
	client.EXPECT().LocalWorldView().Return(localView, true)

	tracker := NewTracker(client, store, clock, nil)
	tracker.OnSkillProgress(SkillProgress{Skill: domain.SkillSailing})
	tracker.OnChatLine(crewXP())

	for i := 0; i < 3; i++ {
		require.True(t, tracker.OnOverheadText(hook("Spotter Virginia")))
	}
	assert.Equal(t, 3, tracker.CargoUsed())
	assert.Zero(t, tracker.CargoMax())

	settings.Cargo.CapacityOverride = 3
	assert.Equal(t, 3, tracker.CargoMax())
	assert.True(t, tracker.CargoDefinitelyFull())
	assert.True(t, tracker.CargoFull())

	status := tracker.Snapshot()
	assert.True(t, status.Cargo.Full)
	assert.Equal(t, status.Cargo.DefinitelyFull, status.Cargo.Full)

	settings.Cargo.CapacityOverride = 10
	assert.False(t, tracker.CargoFull())
	assert.False(t, tracker.Snapshot().Cargo.Full)
}

type unhandledEvent struct{}

func (unhandledEvent) Kind() EventKind {
	return "unhandled"
}

func TestTrackerLogsIgnoredEventType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	tracker := NewTracker(nil, nil, nil, logger)
	tracker.Dispatch(unhandledEvent{})

	assert.Contains(t, buf.String(), "ignoring event")
	assert.Contains(t, buf.String(), "application.unhandledEvent")
}

func TestTrackerNilCollaborators(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(nil, nil, nil, nil)
	tracker.OnWidgetLoaded(WidgetLoaded{Group: domain.CargoGroupID})
	tracker.OnNpcSpawned(NpcSpawned{Handle: 1, Name: "Jobless Jim"})
	tracker.OnTick()

	assert.Zero(t, tracker.TrackedCrew())
	assert.NotEmpty(t, tracker.SessionID())
	require.NoError(t, tracker.Close())
}
