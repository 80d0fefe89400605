package turn

import "github.com/pthm-cable/bubbles/lattice"

// EventType identifies turn events.
type EventType uint8

const (
	EventPhase EventType = iota
	EventShotFired
	EventShotLanded
	EventClusterMatched
	EventFloating
	EventShotResolved
	EventShotAbandoned
	EventPopped
	EventLayerInserted
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventPhase:
		return "phase"
	case EventShotFired:
		return "fired"
	case EventShotLanded:
		return "landed"
	case EventClusterMatched:
		return "matched"
	case EventFloating:
		return "floating"
	case EventShotResolved:
		return "resolved"
	case EventShotAbandoned:
		return "abandoned"
	case EventPopped:
		return "popped"
	case EventLayerInserted:
		return "layer"
	case EventGameOver:
		return "gameover"
	}
	return "unknown"
}

// Event is a single notification from the turn controller.
type Event struct {
	Type EventType
	Game int
	Shot int

	// Optional fields depending on event type
	Phase    Phase
	Color    lattice.Color
	Cell     lattice.Key
	BubbleID uint32
	Count    int // cluster, floating or inserted bubble count
	Score    int
	Attempts int
	Layers   int
}

// NewPhaseEvent creates a phase change event.
func NewPhaseEvent(game int, phase Phase) Event {
	return Event{Type: EventPhase, Game: game, Phase: phase}
}

// NewShotFiredEvent creates a fired event for the projectile bubble.
func NewShotFiredEvent(game, shot int, b *lattice.Bubble) Event {
	return Event{
		Type:     EventShotFired,
		Game:     game,
		Shot:     shot,
		Color:    b.Color,
		BubbleID: b.ID,
	}
}

// NewShotLandedEvent creates a landed event once the projectile is settled.
func NewShotLandedEvent(game, shot int, b *lattice.Bubble) Event {
	return Event{
		Type:     EventShotLanded,
		Game:     game,
		Shot:     shot,
		Color:    b.Color,
		Cell:     b.Cell,
		BubbleID: b.ID,
	}
}

// NewClusterMatchedEvent creates an event for a popped same-color cluster.
func NewClusterMatchedEvent(game, shot int, seed lattice.Key, size int) Event {
	return Event{
		Type:  EventClusterMatched,
		Game:  game,
		Shot:  shot,
		Cell:  seed,
		Count: size,
	}
}

// NewFloatingEvent creates an event for bubbles cut loose from the ceiling.
func NewFloatingEvent(game, shot, count int) Event {
	return Event{Type: EventFloating, Game: game, Shot: shot, Count: count}
}

// NewShotResolvedEvent closes out a shot with the resulting turn state.
func NewShotResolvedEvent(game, shot, score, attempts, layers int) Event {
	return Event{
		Type:     EventShotResolved,
		Game:     game,
		Shot:     shot,
		Score:    score,
		Attempts: attempts,
		Layers:   layers,
	}
}

// NewShotAbandonedEvent creates an event for a projectile that never landed.
func NewShotAbandonedEvent(game, shot int, b *lattice.Bubble) Event {
	return Event{
		Type:     EventShotAbandoned,
		Game:     game,
		Shot:     shot,
		Color:    b.Color,
		BubbleID: b.ID,
	}
}

// NewPoppedEvent creates an event for one bubble leaving the burst queue.
func NewPoppedEvent(game int, b *lattice.Bubble, remaining int) Event {
	return Event{
		Type:     EventPopped,
		Game:     game,
		Color:    b.Color,
		Cell:     b.Cell,
		BubbleID: b.ID,
		Count:    remaining,
	}
}

// NewLayerInsertedEvent creates an event for a ceiling layer drop.
func NewLayerInsertedEvent(game, inserted, layers int) Event {
	return Event{Type: EventLayerInserted, Game: game, Count: inserted, Layers: layers}
}

// NewGameOverEvent creates the final event of a game.
func NewGameOverEvent(game, shots, score, layers int) Event {
	return Event{
		Type:   EventGameOver,
		Game:   game,
		Shot:   shots,
		Score:  score,
		Layers: layers,
	}
}
