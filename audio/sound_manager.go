// Package audio plays procedural sound effects for game events.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/turn"
)

// SoundManager owns the speaker and mixes one-shot effects into it.
// Every method is safe to call when the speaker could not be opened.
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	warning     *beep.Ctrl
	initialized bool
	muted       bool
}

// NewSoundManager creates a manager from the audio config.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &SoundManager{
		rate:   beep.SampleRate(rate),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
		muted:  !cfg.Enabled,
	}
}

// Initialize opens the speaker. A muted manager never opens it.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.stopWarning()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Active reports whether sounds are actually being played.
func (sm *SoundManager) Active() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Volume returns the effect volume in [0, 1].
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// SetVolume changes the volume of effects started from now on.
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = math.Max(0, math.Min(1, v))
}

// play adds s to the mixer. Callers hold sm.mu.
func (sm *SoundManager) play(s beep.Streamer) {
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayPop plays the pop blip for a palette color index.
func (sm *SoundManager) PlayPop(color int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(PopSound(color, sm.rate, sm.volume))
}

// PlayLand plays the landing thud.
func (sm *SoundManager) PlayLand() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(LandSound(sm.rate, sm.volume))
}

// PlayFire plays the launch whoosh.
func (sm *SoundManager) PlayFire() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(FireSound(sm.rate, sm.volume))
}

// PlayLayer plays the ceiling drop rumble.
func (sm *SoundManager) PlayLayer() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(LayerSound(sm.rate, sm.volume))
}

// PlayGameOver plays the falling game-over notes.
func (sm *SoundManager) PlayGameOver() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(GameOverSound(sm.rate, sm.volume))
}

// SetWarning starts or stops the looping warning pulse.
func (sm *SoundManager) SetWarning(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if !on {
		speaker.Lock()
		sm.stopWarning()
		speaker.Unlock()
		return
	}
	if sm.warning != nil {
		return
	}

	rate, vol := sm.rate, sm.volume
	loop := beep.Iterate(func() beep.Streamer { return WarningPulse(rate, vol) })
	sm.warning = &beep.Ctrl{Streamer: loop}
	sm.play(sm.warning)
}

// stopWarning ends the warning loop so the mixer drops it on its next
// pass. Callers hold sm.mu and the speaker lock.
func (sm *SoundManager) stopWarning() {
	if sm.warning == nil {
		return
	}
	sm.warning.Streamer = nil
	sm.warning = nil
}

// HandleEvent maps a controller event to its sound.
func (sm *SoundManager) HandleEvent(e turn.Event) {
	switch e.Type {
	case turn.EventShotFired:
		sm.PlayFire()
	case turn.EventShotLanded:
		sm.PlayLand()
	case turn.EventPopped:
		sm.PlayPop(int(e.Color))
	case turn.EventLayerInserted:
		sm.PlayLayer()
	case turn.EventGameOver:
		sm.SetWarning(false)
		sm.PlayGameOver()
	}
}
