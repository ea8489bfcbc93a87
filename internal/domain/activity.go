package domain

type AnimationID int

type LaborState int

const (
	LaborIdle LaborState = iota
	LaborWorking
	LaborHauling
)

const HaulingAnimation AnimationID = 13599

var salvageAnimations = map[AnimationID]struct{}{
	13576:            {},
	13577:            {},
	13583:            {},
	13584:            {},
	HaulingAnimation: {},
}

func ClassifyAnimation(anim AnimationID) LaborState {
	if _, ok := salvageAnimations[anim]; !ok {
		return LaborIdle
	}
	if anim == HaulingAnimation {
		return LaborHauling
	}

	return LaborWorking
}

func (s LaborState) Working() bool {
	return s == LaborWorking || s == LaborHauling
}

func (s LaborState) String() string {
	switch s {
	case LaborWorking:
		return "working"
	case LaborHauling:
		return "hauling"
	default:
		return "idle"
	}
}

func (s LaborState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
