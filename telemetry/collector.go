package telemetry

import "github.com/pthm-cable/bubbles/turn"

// Collector turns the controller's event stream into shot records and game
// summaries. Install Record as (part of) the controller's sink.
type Collector struct {
	game    int
	lastHit int // shot number of the most recent landing
	pending *ShotRecord

	shots        int
	landed       int
	abandoned    int
	matches      int
	popped       int
	floating     int
	layers       int
	clusterSizes []float64

	lifetimes *LifetimeTracker

	onShot func(ShotRecord)
	onGame func(GameSummary)
}

// NewCollector creates a collector. Either callback may be nil.
func NewCollector(onShot func(ShotRecord), onGame func(GameSummary)) *Collector {
	return &Collector{
		lifetimes: NewLifetimeTracker(),
		onShot:    onShot,
		onGame:    onGame,
	}
}

// Record consumes one event.
func (c *Collector) Record(e turn.Event) {
	if e.Game != c.game && e.Type != turn.EventGameOver {
		c.reset(e.Game)
	}

	switch e.Type {
	case turn.EventShotFired:
		c.shots++
	case turn.EventShotAbandoned:
		c.abandoned++
	case turn.EventShotLanded:
		c.landed++
		c.lastHit = e.Shot
		c.lifetimes.Landed(e.BubbleID, e.Shot)
		c.pending = &ShotRecord{
			Game:  e.Game,
			Shot:  e.Shot,
			Color: e.Color.String(),
			Cell:  e.Cell.String(),
		}
	case turn.EventClusterMatched:
		c.matches++
		c.clusterSizes = append(c.clusterSizes, float64(e.Count))
		if c.pending != nil {
			c.pending.Cluster = e.Count
		}
	case turn.EventFloating:
		c.floating += e.Count
		if c.pending != nil {
			c.pending.Floating = e.Count
		}
	case turn.EventShotResolved:
		c.layers = e.Layers
		if c.pending != nil {
			c.pending.Score = e.Score
			c.pending.Attempts = e.Attempts
			c.pending.Layers = e.Layers
			if c.onShot != nil {
				c.onShot(*c.pending)
			}
			c.pending = nil
		}
	case turn.EventPopped:
		c.popped++
		c.lifetimes.Popped(e.BubbleID, c.lastHit)
	case turn.EventLayerInserted:
		c.layers = e.Layers
	case turn.EventGameOver:
		s := c.Summary()
		s.Game = e.Game
		s.FinalScore = e.Score
		s.Layers = e.Layers
		if c.onGame != nil {
			c.onGame(s)
		}
	}
}

// Summary returns the statistics of the game in progress.
func (c *Collector) Summary() GameSummary {
	mean, p50, p90, max := ComputeClusterStats(c.clusterSizes)

	var hitRate float64
	if c.landed > 0 {
		hitRate = float64(c.matches) / float64(c.landed)
	}

	return GameSummary{
		Game:          c.game,
		Shots:         c.shots,
		Abandoned:     c.abandoned,
		Matches:       c.matches,
		Popped:        c.popped,
		Floating:      c.floating,
		Layers:        c.layers,
		HitRate:       hitRate,
		ClusterMean:   mean,
		ClusterP50:    p50,
		ClusterP90:    p90,
		ClusterMax:    max,
		BubbleAgeMean: c.lifetimes.MeanAge(),
	}
}

func (c *Collector) reset(game int) {
	c.game = game
	c.lastHit = 0
	c.pending = nil
	c.shots = 0
	c.landed = 0
	c.abandoned = 0
	c.matches = 0
	c.popped = 0
	c.floating = 0
	c.layers = 0
	c.clusterSizes = c.clusterSizes[:0]
	c.lifetimes.Reset()
}
