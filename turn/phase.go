package turn

// Phase is the top-level game mode.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseBurstResolving
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseBurstResolving:
		return "burst"
	case PhaseGameOver:
		return "gameover"
	}
	return "unknown"
}

// phaseEdges lists the legal transitions. Anything else is ignored.
var phaseEdges = map[Phase][]Phase{
	PhaseMenu:           {PhasePlaying},
	PhasePlaying:        {PhaseBurstResolving, PhaseGameOver},
	PhaseBurstResolving: {PhasePlaying, PhaseGameOver},
	PhaseGameOver:       {PhaseMenu},
}

// CanTransition reports whether from -> to is a legal phase change.
func CanTransition(from, to Phase) bool {
	for _, p := range phaseEdges[from] {
		if p == to {
			return true
		}
	}
	return false
}

// ShotState tracks the single projectile a player may have in play.
type ShotState uint8

const (
	ShotIdle ShotState = iota
	ShotInFlight
	ShotResolving
	ShotBurstDraining
)

func (s ShotState) String() string {
	switch s {
	case ShotIdle:
		return "idle"
	case ShotInFlight:
		return "inflight"
	case ShotResolving:
		return "resolving"
	case ShotBurstDraining:
		return "draining"
	}
	return "unknown"
}
