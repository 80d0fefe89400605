// Package turn drives a game: shot attempts, score, the pop burst queue,
// ceiling layer drops and the phase machine.
package turn

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/cluster"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
)

// Outcome describes how a landed shot was resolved.
type Outcome struct {
	Cell          lattice.Key
	Matched       []lattice.Key // same-color cluster, empty when size <= 1
	Floating      []lattice.Key // cut loose by the pop
	Popped        int
	LayerInserted bool
	GameOver      bool
}

// State is the read model shown by the HUD and front-ends.
type State struct {
	Phase             Phase
	Shot              ShotState
	Game              int
	Shots             int
	Score             int
	FinalScore        int
	AttemptsRemaining int
	AttemptsFraction  float64
	NextColor         lattice.Color
	Warning           bool
	PendingBurst      int
	Layers            int
}

// Shot is a projectile handed out by Fire. Rest resolves it exactly once.
type Shot struct {
	Number int
	Bubble *lattice.Bubble

	ctrl *Controller
	done bool
}

// Rest reports that the projectile came to rest at position. Only the first
// call has any effect; later calls return false.
func (s *Shot) Rest(position r3.Vec) (Outcome, bool) {
	if s == nil || s.done {
		return Outcome{}, false
	}
	s.done = true
	return s.ctrl.land(s, position)
}

// Done reports whether the shot has been resolved or abandoned.
func (s *Shot) Done() bool {
	return s == nil || s.done
}

// Controller owns the turn state of one player.
type Controller struct {
	cfg    config.TurnConfig
	level  *level.Controller
	finder *cluster.Finder
	colors level.ColorSource

	phase      Phase
	shot       ShotState
	active     *Shot
	burst      []*lattice.Bubble
	next       lattice.Color
	attempts   int
	score      int
	finalScore int
	layers     int
	shots      int
	game       int

	sink   func(Event)
	logger *slog.Logger
}

// New creates a controller in the menu phase.
func New(cfg config.TurnConfig, lvl *level.Controller) *Controller {
	return &Controller{
		cfg:      cfg,
		level:    lvl,
		finder:   lvl.Finder(),
		colors:   lattice.NewColorCycler(cfg.PaletteSize, cfg.ColorStep),
		phase:    PhaseMenu,
		attempts: cfg.ShotAttempts,
		sink:     func(Event) {},
		logger:   slog.Default(),
	}
}

// SetSink installs the event callback. A nil sink discards events.
func (c *Controller) SetSink(sink func(Event)) {
	if sink == nil {
		sink = func(Event) {}
	}
	c.sink = sink
}

// SetLogger replaces the logger.
func (c *Controller) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetColorSource replaces the color cycler used for ceilings and shots.
func (c *Controller) SetColorSource(src level.ColorSource) {
	if src != nil {
		c.colors = src
	}
}

// Level returns the level controller.
func (c *Controller) Level() *level.Controller { return c.level }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// ShotState returns the current shot state.
func (c *Controller) ShotState() ShotState { return c.shot }

// ActiveShot returns the projectile in flight, or nil.
func (c *Controller) ActiveShot() *Shot { return c.active }

// State returns a snapshot of the turn state.
func (c *Controller) State() State {
	s := State{
		Phase:             c.phase,
		Shot:              c.shot,
		Game:              c.game,
		Shots:             c.shots,
		Score:             c.score,
		FinalScore:        c.finalScore,
		AttemptsRemaining: c.attempts,
		NextColor:         c.next,
		PendingBurst:      len(c.burst),
		Layers:            c.layers,
	}
	if c.cfg.ShotAttempts > 0 {
		s.AttemptsFraction = float64(c.attempts) / float64(c.cfg.ShotAttempts)
	}
	if c.phase == PhasePlaying || c.phase == PhaseBurstResolving {
		s.Warning = c.level.AnyAlmostBelowBaseline()
	}
	return s
}

// OnStart begins a new game from the menu: the lattice is cleared, one
// ceiling layer is seeded and the first shot color is rolled.
func (c *Controller) OnStart() bool {
	if c.phase != PhaseMenu {
		c.logger.Warn("start ignored", "phase", c.phase.String())
		return false
	}

	c.discardBurst()
	c.active = nil
	c.level.Reset()
	if r, ok := c.colors.(interface{ Reset() }); ok {
		r.Reset()
	}

	c.game++
	c.score = 0
	c.finalScore = 0
	c.shots = 0
	c.layers = 0
	c.attempts = c.cfg.ShotAttempts
	c.shot = ShotIdle

	c.insertLayer()
	c.next = c.colors.Next()
	c.setPhase(PhasePlaying)

	c.logger.Info("game started", "game", c.game, "next", c.next.String())
	return true
}

// Fire launches a projectile of the next color. It fails unless the game is
// playing with no shot in flight and no pending pops.
func (c *Controller) Fire() (*Shot, bool) {
	if c.phase != PhasePlaying || c.shot != ShotIdle || len(c.burst) > 0 {
		return nil, false
	}

	b := c.level.Host().CreateBubble(c.next)
	if b == nil {
		return nil, false
	}
	b.State = lattice.StateFalling
	b.Pinned = false

	c.shots++
	c.shot = ShotInFlight
	c.active = &Shot{Number: c.shots, Bubble: b, ctrl: c}
	c.next = c.colors.Next()

	c.sink(NewShotFiredEvent(c.game, c.shots, b))
	return c.active, true
}

// land settles the shot's bubble and resolves it.
func (c *Controller) land(s *Shot, position r3.Vec) (Outcome, bool) {
	if s != c.active || c.shot != ShotInFlight {
		return Outcome{}, false
	}
	c.shot = ShotResolving
	key := c.level.Settle(s.Bubble, position)
	c.sink(NewShotLandedEvent(c.game, s.Number, s.Bubble))
	return c.OnShotResolved(key), true
}

// OnShotResolved applies the rules to a bubble that just settled at key.
// A same-color cluster larger than one pops together with anything it
// leaves floating. Otherwise an attempt is spent, and running out drops a
// new ceiling layer.
func (c *Controller) OnShotResolved(key lattice.Key) Outcome {
	out := Outcome{Cell: key}
	if c.phase != PhasePlaying || c.shot == ShotBurstDraining {
		c.logger.Debug("resolve ignored", "phase", c.phase.String(), "shot", c.shot.String())
		return out
	}
	c.active = nil
	c.shot = ShotResolving

	matched := c.finder.SameColorCluster(key)
	if matched.Size() > 1 {
		out.Matched = cluster.SortedKeys(matched)
		popped := c.level.Pop(out.Matched)
		c.sink(NewClusterMatchedEvent(c.game, c.shots, key, len(out.Matched)))

		out.Floating = cluster.SortedKeys(c.finder.FindFloating())
		popped = append(popped, c.level.Pop(out.Floating)...)
		c.sink(NewFloatingEvent(c.game, c.shots, len(out.Floating)))

		out.Popped = len(popped)
		c.score += c.cfg.ScorePerBubble * len(popped)
		c.attempts = c.cfg.ShotAttempts
		c.burst = append(c.burst, popped...)

		c.shot = ShotBurstDraining
		c.setPhase(PhaseBurstResolving)
		c.sink(NewShotResolvedEvent(c.game, c.shots, c.score, c.attempts, c.layers))

		c.logger.Debug("cluster popped",
			"cell", key.String(),
			"cluster", len(out.Matched),
			"floating", len(out.Floating),
			"score", c.score,
		)
		return out
	}

	c.attempts--
	if c.attempts <= 0 {
		c.insertLayer()
		c.attempts = c.cfg.ShotAttempts
		out.LayerInserted = true
	}
	c.sink(NewShotResolvedEvent(c.game, c.shots, c.score, c.attempts, c.layers))

	if c.level.AnyBelowBaseline() {
		c.OnGameOver()
		out.GameOver = true
		return out
	}
	c.shot = ShotIdle
	return out
}

// DrainBurst disposes the head of the burst queue. When the queue empties
// the baseline is checked and play resumes or the game ends.
func (c *Controller) DrainBurst() (*lattice.Bubble, bool) {
	if len(c.burst) == 0 {
		return nil, false
	}
	b := c.burst[0]
	c.burst[0] = nil
	c.burst = c.burst[1:]

	c.level.Dispose(b)
	c.sink(NewPoppedEvent(c.game, b, len(c.burst)))

	if len(c.burst) == 0 && c.phase == PhaseBurstResolving {
		if c.level.AnyBelowBaseline() {
			c.OnGameOver()
		} else {
			c.shot = ShotIdle
			c.setPhase(PhasePlaying)
		}
	}
	return b, true
}

// PendingBurst returns the number of bubbles waiting to pop.
func (c *Controller) PendingBurst() int { return len(c.burst) }

// AbandonShot removes a projectile that will never come to rest, such as
// one that left the play volume. No attempt is consumed.
func (c *Controller) AbandonShot(s *Shot) bool {
	if s == nil || s.done || s != c.active {
		return false
	}
	s.done = true
	c.active = nil
	c.level.Dispose(s.Bubble)
	if c.shot == ShotInFlight {
		c.shot = ShotIdle
	}
	c.sink(NewShotAbandonedEvent(c.game, s.Number, s.Bubble))
	c.logger.Debug("shot abandoned", "shot", s.Number)
	return true
}

// ForceLayer drops a ceiling layer outside the normal attempt count.
func (c *Controller) ForceLayer() bool {
	if c.phase != PhasePlaying || c.shot != ShotIdle {
		return false
	}
	c.insertLayer()
	c.attempts = c.cfg.ShotAttempts
	if c.level.AnyBelowBaseline() {
		c.OnGameOver()
	}
	return true
}

// OnGameOver ends the game, discarding any projectile in flight and
// recording the final score.
func (c *Controller) OnGameOver() {
	if !c.setPhase(PhaseGameOver) {
		return
	}
	if c.active != nil {
		c.active.done = true
		c.level.Dispose(c.active.Bubble)
		c.active = nil
	}
	c.discardBurst()
	c.shot = ShotIdle
	c.finalScore = c.score

	c.sink(NewGameOverEvent(c.game, c.shots, c.finalScore, c.layers))
	c.logger.Info("game over", "game", c.game, "score", c.finalScore, "shots", c.shots, "layers", c.layers)
}

// Continue leaves the game-over screen for the menu.
func (c *Controller) Continue() bool {
	if c.phase != PhaseGameOver {
		return false
	}
	return c.setPhase(PhaseMenu)
}

// Trigger is the single player input: start from the menu, fire while
// playing, continue after game over. It returns the fired shot, if any.
func (c *Controller) Trigger() *Shot {
	switch c.phase {
	case PhaseMenu:
		c.OnStart()
	case PhasePlaying:
		s, _ := c.Fire()
		return s
	case PhaseGameOver:
		c.Continue()
	}
	return nil
}

func (c *Controller) insertLayer() {
	report := c.level.InsertLayer(c.colors)
	c.layers++
	c.sink(NewLayerInsertedEvent(c.game, report.Inserted, c.layers))
}

// discardBurst disposes every queued bubble without events.
func (c *Controller) discardBurst() {
	for _, b := range c.burst {
		c.level.Dispose(b)
	}
	c.burst = c.burst[:0]
}

func (c *Controller) setPhase(to Phase) bool {
	if c.phase == to {
		return false
	}
	if !CanTransition(c.phase, to) {
		c.logger.Warn("illegal phase transition", "from", c.phase.String(), "to", to.String())
		return false
	}
	c.logger.Debug("phase", "from", c.phase.String(), "to", to.String())
	c.phase = to
	c.sink(NewPhaseEvent(c.game, to))
	return true
}
