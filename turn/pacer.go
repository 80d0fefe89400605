package turn

import "time"

// Pacer drains the burst queue one bubble per interval so pops play out
// as a visible chain instead of a single frame.
type Pacer struct {
	ctrl     *Controller
	interval time.Duration
	elapsed  time.Duration
}

// NewPacer creates a pacer for ctrl. A non-positive interval drains the
// whole queue on the next Advance.
func NewPacer(ctrl *Controller, interval time.Duration) *Pacer {
	return &Pacer{ctrl: ctrl, interval: interval}
}

// Advance moves the pacer forward by dt and returns how many bubbles popped.
func (p *Pacer) Advance(dt time.Duration) int {
	if p.ctrl.PendingBurst() == 0 {
		p.elapsed = 0
		return 0
	}

	if p.interval <= 0 {
		n := 0
		for {
			if _, ok := p.ctrl.DrainBurst(); !ok {
				return n
			}
			n++
		}
	}

	p.elapsed += dt
	n := 0
	for p.elapsed >= p.interval {
		if _, ok := p.ctrl.DrainBurst(); !ok {
			p.elapsed = 0
			break
		}
		p.elapsed -= p.interval
		n++
	}
	if p.ctrl.PendingBurst() == 0 {
		p.elapsed = 0
	}
	return n
}
