package telemetry

import "gonum.org/v1/gonum/stat"

// LifetimeTracker measures how many shots each landed bubble survives
// before it pops. Ceiling bubbles are not tracked.
type LifetimeTracker struct {
	landed map[uint32]int
	ages   []float64
}

// NewLifetimeTracker creates an empty tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{landed: make(map[uint32]int)}
}

// Landed records the shot number at which bubble id settled.
func (lt *LifetimeTracker) Landed(id uint32, shot int) {
	lt.landed[id] = shot
}

// Popped records the age of bubble id, if it was tracked.
func (lt *LifetimeTracker) Popped(id uint32, shot int) {
	born, ok := lt.landed[id]
	if !ok {
		return
	}
	delete(lt.landed, id)
	lt.ages = append(lt.ages, float64(shot-born))
}

// MeanAge returns the mean age of popped bubbles, or 0.
func (lt *LifetimeTracker) MeanAge() float64 {
	if len(lt.ages) == 0 {
		return 0
	}
	return stat.Mean(lt.ages, nil)
}

// Reset forgets everything.
func (lt *LifetimeTracker) Reset() {
	clear(lt.landed)
	lt.ages = lt.ages[:0]
}
