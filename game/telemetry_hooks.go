package game

import (
	"github.com/pthm-cable/bubbles/turn"
)

// handleEvent fans one controller event out to telemetry, audio and effects.
func (g *Game) handleEvent(e turn.Event) {
	g.recorder.Record(e)
	g.sound.HandleEvent(e)

	switch e.Type {
	case turn.EventLayerInserted:
		g.particles.EmitDust(g.level.Bounds(), float64(g.level.Bounds().Ceiling())+0.5)
		g.sound.SetWarning(g.ctrl.State().Warning)
	case turn.EventShotResolved, turn.EventPopped:
		g.sound.SetWarning(g.ctrl.State().Warning)
	case turn.EventPhase:
		if e.Phase == turn.PhasePlaying && g.ctrl.State().Shots == 0 {
			g.counter.Reset()
			g.newRecord = false
		}
	case turn.EventGameOver:
		g.newRecord = e.Score > 0 && e.Score >= g.recorder.HallOfFame().Best()
	}
}

// flushPerf logs and writes frame timings every perfFlushFrames frames.
func (g *Game) flushPerf() {
	if g.frame%perfFlushFrames != 0 {
		return
	}
	stats := g.perf.Stats()
	stats.LogStats()
	if err := g.out.WritePerf(stats, g.frame); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
}
