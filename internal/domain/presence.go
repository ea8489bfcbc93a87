package domain

import "time"

const DefaultPresenceWindow = 5 * time.Minute

type Skill string

const SkillSailing Skill = "sailing"

// Presence holds the last moment the player was seen doing something only
// possible aboard a vessel. Whether the player is on board is derived from
// it at query time.
type Presence struct {
	lastEvidence time.Time
}

func (p *Presence) Record(now time.Time) {
	p.lastEvidence = now
}

func (p Presence) LastEvidence() (time.Time, bool) {
	return p.lastEvidence, !p.lastEvidence.IsZero()
}

// OnBoat reports presence within window of the last evidence. A window of
// zero or less keeps the player on board for the rest of the session.
func (p Presence) OnBoat(now time.Time, window time.Duration) bool {
	if p.lastEvidence.IsZero() {
		return false
	}
	if window <= 0 {
		return true
	}

	return now.Sub(p.lastEvidence) < window
}

func (p *Presence) Reset() {
	p.lastEvidence = time.Time{}
}
