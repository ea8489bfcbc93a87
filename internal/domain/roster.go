package domain

import "sort"

// WorkerHandle identifies one spawn of a crew NPC. A respawn gets a new
// handle even when the name is the same.
type WorkerHandle uint64

const MaxIdleTicks = 10

type WorkerLaborState struct {
	Working   bool
	IdleTicks int
}

type Roster struct {
	workers map[WorkerHandle]WorkerLaborState
}

func NewRoster() *Roster {
	return &Roster{workers: map[WorkerHandle]WorkerLaborState{}}
}

// Spawn tracks handle when name is on the crew allow-list and the NPC lives
// in the local player's world view. Spawning a tracked handle again is a
// no-op. It reports whether the handle is newly tracked.
func (r *Roster) Spawn(handle WorkerHandle, name string, view, localView WorldViewID) bool {
	if !IsCrewName(name) || view != localView {
		return false
	}
	if _, ok := r.workers[handle]; ok {
		return false
	}

	r.workers[handle] = WorkerLaborState{}
	return true
}

func (r *Roster) Despawn(handle WorkerHandle) bool {
	if _, ok := r.workers[handle]; !ok {
		return false
	}

	delete(r.workers, handle)
	return true
}

func (r *Roster) Contains(handle WorkerHandle) bool {
	_, ok := r.workers[handle]
	return ok
}

// Observe records a fresh animation for a tracked handle. Any animation,
// working or not, restarts the idle streak.
func (r *Roster) Observe(handle WorkerHandle, working bool) bool {
	if _, ok := r.workers[handle]; !ok {
		return false
	}

	r.workers[handle] = WorkerLaborState{Working: working}
	return true
}

func (r *Roster) Tick() {
	for handle, state := range r.workers {
		if state.Working || state.IdleTicks >= MaxIdleTicks {
			continue
		}
		state.IdleTicks++
		r.workers[handle] = state
	}
}

func (r *Roster) State(handle WorkerHandle) (WorkerLaborState, bool) {
	state, ok := r.workers[handle]
	return state, ok
}

func (r *Roster) Handles() []WorkerHandle {
	handles := make([]WorkerHandle, 0, len(r.workers))
	for handle := range r.workers {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	return handles
}

func (r *Roster) Len() int {
	return len(r.workers)
}

func (r *Roster) WorkingCount() int {
	count := 0
	for _, state := range r.workers {
		if state.Working {
			count++
		}
	}

	return count
}

func (r *Roster) Reset() {
	clear(r.workers)
}
