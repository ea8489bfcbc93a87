package application

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/bnema/salvage-tracker/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Tracker infers vessel presence, cargo fullness, crew activity and hook
// timing from the host's event stream. Handlers and queries share one
// mutex so a render goroutine never observes a half-applied event.
type Tracker struct {
	mu sync.Mutex

	client   ports.GameClient
	settings ports.SettingsStore
	clock    ports.Clock
	logger   *log.Logger

	sessionID uuid.UUID
	ticks     int

	presence    domain.Presence
	labor       domain.LaborState
	statusKnown bool
	roster      *domain.Roster
	cargo       domain.Cargo
	timing      *domain.Timing
	crewXP      domain.Corroboration
	crystal     domain.Cooldown
}

func NewTracker(client ports.GameClient, settings ports.SettingsStore, clock ports.Clock, logger *log.Logger) *Tracker {
	if settings == nil {
		settings = ports.StaticSettings(domain.DefaultSettings())
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Tracker{
		client:    client,
		settings:  settings,
		clock:     clock,
		logger:    logger,
		sessionID: uuid.New(),
		roster:    domain.NewRoster(),
		timing:    domain.NewTiming(),
	}
}

// Dispatch routes an event to its handler. Unknown event types are ignored.
func (t *Tracker) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case SkillProgress:
		t.OnSkillProgress(ev)
	case AnimationChanged:
		t.OnAnimationChanged(ev)
	case OverheadText:
		t.OnOverheadText(ev)
	case ChatLine:
		t.OnChatLine(ev)
	case WidgetLoaded:
		t.OnWidgetLoaded(ev)
	case Tick:
		t.OnTick()
	case NpcSpawned:
		t.OnNpcSpawned(ev)
	case NpcDespawned:
		t.OnNpcDespawned(ev)
	case SessionBoundary:
		t.OnSessionBoundary(ev)
	default:
		t.logger.Debug("ignoring event", "type", fmt.Sprintf("%T", ev))
	}
}

func (t *Tracker) OnSkillProgress(ev SkillProgress) {
	if ev.Skill != domain.SkillSailing {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.presence.Record(t.clock.Now())
}

func (t *Tracker) OnAnimationChanged(ev AnimationChanged) {
	if ev.TopLevelView {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	state := domain.ClassifyAnimation(ev.Animation)
	if ev.LocalPlayer {
		t.labor = state
		t.statusKnown = true
		if state.Working() && t.settings.Settings().AnimationPresenceEvidence {
			t.presence.Record(t.clock.Now())
		}
		return
	}

	t.roster.Observe(ev.Handle, state.Working())
}

// OnOverheadText counts a hook when the line comes from our crew, the
// player is on board, and the crew XP chat line corroborates it. It
// reports whether the hook was accepted.
func (t *Tracker) OnOverheadText(ev OverheadText) bool {
	if !domain.IsHookOverhead(ev.Text) || !domain.IsCrewName(ev.Name) {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if local, ok := t.localWorldView(); !ok || local != ev.WorldView {
		return false
	}

	now := t.clock.Now()
	settings := t.settings.Settings()
	name := domain.CleanName(ev.Name)

	onBoat := t.presence.OnBoat(now, settings.PresenceWindow)
	corroborated := t.crewXP.Within(now, settings.CorroborationWindow)
	if !onBoat || !corroborated {
		t.logger.Debug("hook rejected", "worker", name, "onBoat", onBoat, "corroborated", corroborated)
		return false
	}

	t.timing.Record(name, now)
	t.cargo.RecordHook(settings.Cargo.CapacityOverride)
	t.logger.Debug("hook accepted", "worker", name, "total", t.timing.Total(), "cargo", t.cargo.Used())

	return true
}

func (t *Tracker) OnChatLine(ev ChatLine) {
	if !ev.Channel.Observed() {
		return
	}

	clean := domain.RemoveTags(ev.Text)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()

	if domain.IsCrewXPMessage(clean) {
		t.crewXP.Record(now)
	}
	if domain.IsCargoFullMessage(clean) {
		t.cargo.AnnounceFull(t.settings.Settings().Cargo.CapacityOverride)
		t.logger.Debug("cargo hold announced full", "used", t.cargo.Used())
		return
	}
	if domain.IsCrystalMoteMessage(clean) {
		t.crystal.Record(now)
	}
}

func (t *Tracker) OnWidgetLoaded(ev WidgetLoaded) {
	if ev.Group != domain.CargoGroupID {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.refreshCargo()
}

func (t *Tracker) OnTick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ticks++
	t.roster.Tick()

	if t.cargoInterfaceOpen() {
		t.refreshCargo()
	}
}

func (t *Tracker) OnNpcSpawned(ev NpcSpawned) {
	t.mu.Lock()
	defer t.mu.Unlock()

	local, ok := t.localWorldView()
	if !ok {
		return
	}

	if t.roster.Spawn(ev.Handle, ev.Name, ev.WorldView, local) {
		t.logger.Debug("crew spawned", "handle", ev.Handle, "name", domain.CleanName(ev.Name))
	}
}

func (t *Tracker) OnNpcDespawned(ev NpcDespawned) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.roster.Despawn(ev.Handle) {
		t.logger.Debug("crew despawned", "handle", ev.Handle)
	}
}

func (t *Tracker) OnSessionBoundary(ev SessionBoundary) {
	switch ev.Boundary {
	case domain.SessionBoundaryLoginScreen, domain.SessionBoundaryWorldHop:
		t.Reset()
	}
}

// Reset clears every piece of session state and starts a new session id.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reset()
}

// Close releases session state at shutdown.
func (t *Tracker) Close() error {
	t.Reset()
	return nil
}

func (t *Tracker) reset() {
	previous := t.sessionID

	t.sessionID = uuid.New()
	t.ticks = 0
	t.presence.Reset()
	t.labor = domain.LaborIdle
	t.statusKnown = false
	t.roster.Reset()
	t.cargo.Reset()
	t.timing.Reset()
	t.crewXP.Reset()
	t.crystal.Reset()

	t.logger.Debug("session reset", "previous", previous, "session", t.sessionID)
}

func (t *Tracker) refreshCargo() {
	if !t.cargoInterfaceOpen() {
		return
	}

	override := t.settings.Settings().Cargo.CapacityOverride
	numeric := false

	usedWidget, usedOK := t.widget(domain.CargoUsedChild)
	capWidget, capOK := t.widget(domain.CargoCapacityChild)
	if usedOK && capOK {
		used, parsedUsed := domain.ParseCount(usedWidget.Text)
		capacity, parsedCap := domain.ParseCount(capWidget.Text)
		if parsedUsed && parsedCap {
			numeric = t.cargo.ApplyFraction(used, capacity, override)
		}
		if !numeric {
			t.logger.Debug("skipping cargo widgets", "used", usedWidget.Text, "capacity", capWidget.Text)
		}
	}

	if items, ok := t.widget(domain.CargoItemsChild); ok {
		t.cargo.ApplySlotSum(items.QuantitySum(), numeric, override)
	}

	found := false
	var fractionUsed, fractionCap int
	for child := 0; child < domain.CargoScanChildren; child++ {
		w, ok := t.widget(child)
		if !ok || w.Hidden || w.Text == "" {
			continue
		}
		if used, capacity, ok := domain.ParseFraction(w.Text); ok {
			fractionUsed, fractionCap, found = used, capacity, true
		}
	}
	if found {
		t.cargo.ApplyFraction(fractionUsed, fractionCap, override)
	}
}

func (t *Tracker) cargoInterfaceOpen() bool {
	root, ok := t.widget(domain.CargoRootChild)
	return ok && !root.Hidden
}

func (t *Tracker) widget(child int) (domain.Widget, bool) {
	if t.client == nil {
		return domain.Widget{}, false
	}

	return t.client.Widget(domain.CargoGroupID, child)
}

func (t *Tracker) localWorldView() (domain.WorldViewID, bool) {
	if t.client == nil {
		return 0, false
	}

	return t.client.LocalWorldView()
}

func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sessionID.String()
}

func (t *Tracker) OnBoat() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.presence.OnBoat(t.clock.Now(), t.settings.Settings().PresenceWindow)
}

func (t *Tracker) StatusKnown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.statusKnown
}

func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.labor.Working()
}

func (t *Tracker) Salvaging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.labor == domain.LaborHauling
}

func (t *Tracker) CargoUsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cargo.Used()
}

func (t *Tracker) CargoCapacity() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cargo.Capacity()
}

// CargoMax is the configured override when set, else the observed capacity.
func (t *Tracker) CargoMax() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cargo.EffectiveMax(t.settings.Settings().Cargo.CapacityOverride)
}

func (t *Tracker) CargoFull() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cargo.FullAt(t.settings.Settings().Cargo.CapacityOverride)
}

func (t *Tracker) CargoDefinitelyFull() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cargo.DefinitelyFull(t.settings.Settings().Cargo.CapacityOverride)
}

func (t *Tracker) CrewHookCounts() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.timing.HookCounts()
}

func (t *Tracker) CrewRatePerHour(name string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.timing.RatePerHour(name, t.clock.Now())
}

func (t *Tracker) TotalHooks() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.timing.Total()
}

func (t *Tracker) AverageIntervalSeconds() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.timing.MeanIntervalSeconds()
}

func (t *Tracker) SecondsSinceLastHook() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.timing.SecondsSinceLast(t.clock.Now())
}

func (t *Tracker) CrystalCooldownRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.crystal.RemainingSeconds(t.clock.Now(), t.settings.Settings().CrystalCooldown)
}

func (t *Tracker) CrystalOnCooldown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.crystal.Active(t.clock.Now(), t.settings.Settings().CrystalCooldown)
}

func (t *Tracker) TrackedCrew() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.roster.Len()
}

func (t *Tracker) WorkingCrew() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.roster.WorkingCount()
}

// IdleTicks returns the idle streak of a tracked handle, or -1 when the
// handle is not tracked.
func (t *Tracker) IdleTicks(handle domain.WorkerHandle) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.roster.State(handle)
	if !ok {
		return -1
	}

	return state.IdleTicks
}

func (t *Tracker) WorkerLabor(handle domain.WorkerHandle) (domain.WorkerLaborState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.roster.State(handle)
}

func (t *Tracker) Ticks() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ticks
}

func (t *Tracker) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	settings := t.settings.Settings()
	override := settings.Cargo.CapacityOverride

	return Status{
		SessionID:   t.sessionID.String(),
		At:          now,
		Ticks:       t.ticks,
		OnBoat:      t.presence.OnBoat(now, settings.PresenceWindow),
		StatusKnown: t.statusKnown,
		Active:      t.labor.Working(),
		Salvaging:   t.labor == domain.LaborHauling,
		Labor:       t.labor,
		Cargo: StatusCargo{
			Used:           t.cargo.Used(),
			Capacity:       t.cargo.Capacity(),
			Max:            t.cargo.EffectiveMax(override),
			Full:           t.cargo.FullAt(override),
			DefinitelyFull: t.cargo.DefinitelyFull(override),
		},
		Crew: StatusCrew{
			Tracked: t.roster.Len(),
			Working: t.roster.WorkingCount(),
			Workers: t.workers(now),
		},
		Timing: StatusTiming{
			TotalHooks:             t.timing.Total(),
			AverageIntervalSeconds: t.timing.MeanIntervalSeconds(),
			SecondsSinceLast:       t.timing.SecondsSinceLast(now),
		},
		Crystal: StatusCooldown{
			RemainingSeconds: t.crystal.RemainingSeconds(now, settings.CrystalCooldown),
			OnCooldown:       t.crystal.Active(now, settings.CrystalCooldown),
		},
	}
}

func (t *Tracker) workers(now time.Time) []StatusWorker {
	names := t.timing.Names()
	workers := make([]StatusWorker, 0, len(names))
	for _, name := range names {
		stats, _ := t.timing.Stats(name)
		workers = append(workers, StatusWorker{
			Name:        name,
			Hooks:       stats.Hooks,
			RatePerHour: t.timing.RatePerHour(name, now),
			LastHook:    stats.LastHook,
		})
	}

	sort.SliceStable(workers, func(i, j int) bool {
		return workers[i].Hooks > workers[j].Hooks
	})

	return workers
}
