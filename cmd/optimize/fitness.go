package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/game"
	"github.com/pthm-cable/bubbles/telemetry"
)

// Target describes the game the tuner aims for.
type Target struct {
	Shots   float64 // mean shots per game
	HitRate float64 // share of landed shots that matched
}

// FitnessEvaluator plays headless bot games and scores parameter vectors.
type FitnessEvaluator struct {
	params     *ParamVector
	target     Target
	games      int
	seeds      []int64
	explore    float64
	baseConfig *config.Config
	logger     *slog.Logger

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	last           Measurement
}

// Measurement is what one evaluation observed, averaged over seeds.
type Measurement struct {
	Shots   float64
	HitRate float64
	Score   float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, target Target, games int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		target:      target,
		games:       games,
		seeds:       seeds,
		explore:     0.1,
		baseConfig:  baseCfg,
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// Last returns the measurement from the most recent evaluation.
func (fe *FitnessEvaluator) Last() Measurement {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	m          Measurement
	hallOfFame *telemetry.HallOfFame
	err        error
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		return math.Inf(1)
	}

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runGames(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var avg Measurement
	var best *telemetry.HallOfFame
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		avg.Shots += r.m.Shots
		avg.HitRate += r.m.HitRate
		avg.Score += r.m.Score
		if best == nil || r.hallOfFame.Best() > best.Best() {
			best = r.hallOfFame
		}
	}
	n := float64(len(fe.seeds))
	avg.Shots /= n
	avg.HitRate /= n
	avg.Score /= n

	fitness := fe.computeFitness(avg)

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestHallOfFame = best
	}
	fe.last = avg
	fe.mu.Unlock()

	return fitness
}

// runGames plays fe.games bot games with one seed.
func (fe *FitnessEvaluator) runGames(cfg *config.Config, seed int64) seedResult {
	h, err := game.NewHeadless(cfg, game.Options{Seed: seed, Explore: fe.explore, Logger: fe.logger})
	if err != nil {
		return seedResult{err: err}
	}
	defer h.Close()

	// A game that never ends still scores; cap it well past the target
	maxShots := int(fe.target.Shots * 4)
	var m Measurement
	for i := 0; i < fe.games; i++ {
		s := h.PlayGame(maxShots)
		m.Shots += float64(s.Shots)
		m.HitRate += s.HitRate
		m.Score += float64(s.FinalScore)
	}
	n := float64(fe.games)
	m.Shots /= n
	m.HitRate /= n
	m.Score /= n
	return seedResult{m: m, hallOfFame: h.Recorder().HallOfFame()}
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness is the squared relative distance to the target; game length
// weighs twice as much as hit rate.
func (fe *FitnessEvaluator) computeFitness(m Measurement) float64 {
	shots := relErr(m.Shots, fe.target.Shots)
	hit := relErr(m.HitRate, fe.target.HitRate)
	return 2*shots*shots + hit*hit
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return got
	}
	return (got - want) / want
}
