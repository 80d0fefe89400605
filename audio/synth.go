package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave with an optional linear pitch glide.
type oscillator struct {
	freq     float64
	glide    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates an oscillator sweeping linearly from one frequency to another.
func NewGlide(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	o := &oscillator{
		freq:     from,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(from*1000) + int64(duration))),
	}
	if secs := duration.Seconds(); secs > 0 {
		o.glide = (to - from) / secs
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		freq := o.freq + o.glide*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// colorPitch maps palette colors to a pentatonic scale so chains sound musical.
var colorPitch = []float64{523.25, 587.33, 659.25, 783.99, 880.00, 1046.50}

// PopSound is a short bright blip pitched by color index.
func PopSound(color int, rate beep.SampleRate, vol float64) beep.Streamer {
	freq := colorPitch[0]
	if color >= 0 && color < len(colorPitch) {
		freq = colorPitch[color]
	}
	const d = 90 * time.Millisecond
	tone := NewEnvelope(NewGlide(freq, freq*1.5, d, WaveSine, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	click := NewEnvelope(NewOscillator(0, 20*time.Millisecond, WaveNoise, rate), 20*time.Millisecond, 0, 15*time.Millisecond, rate)
	return newVolume(beep.Mix(newVolume(tone, 0.7), newVolume(click, 0.2)), vol)
}

// LandSound is a soft thud for a projectile that stuck without matching.
func LandSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 120 * time.Millisecond
	thud := NewEnvelope(NewGlide(180, 90, d, WaveSine, rate), d, 2*time.Millisecond, 100*time.Millisecond, rate)
	return newVolume(thud, vol*0.8)
}

// FireSound is a quick noise whoosh.
func FireSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 150 * time.Millisecond
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 30*time.Millisecond, 110*time.Millisecond, rate)
	return newVolume(noise, vol*0.3)
}

// LayerSound is a low descending rumble for a ceiling drop.
func LayerSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 400 * time.Millisecond
	saw := NewEnvelope(NewGlide(110, 55, d, WaveSaw, rate), d, 20*time.Millisecond, 250*time.Millisecond, rate)
	return newVolume(saw, vol*0.4)
}

// GameOverSound is three falling square-wave notes.
func GameOverSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 220 * time.Millisecond
	var notes []beep.Streamer
	for _, f := range []float64{392.00, 311.13, 261.63} {
		notes = append(notes, NewEnvelope(NewOscillator(f, d, WaveSquare, rate), d, 5*time.Millisecond, 120*time.Millisecond, rate))
	}
	return newVolume(beep.Seq(notes...), vol*0.25)
}

// WarningPulse is a one-second cycle of a short low beep, looped while the
// stack is one row above the baseline.
func WarningPulse(rate beep.SampleRate, vol float64) beep.Streamer {
	const beepLen = 120 * time.Millisecond
	tone := NewEnvelope(NewOscillator(220, beepLen, WaveSquare, rate), beepLen, 5*time.Millisecond, 60*time.Millisecond, rate)
	gap := beep.Silence(rate.N(time.Second - beepLen))
	return newVolume(beep.Seq(tone, gap), vol*0.15)
}
