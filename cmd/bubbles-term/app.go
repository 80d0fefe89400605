package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/bubbles/audio"
	"github.com/pthm-cable/bubbles/bot"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
	"github.com/pthm-cable/bubbles/telemetry"
	"github.com/pthm-cable/bubbles/turn"
)

// app is the terminal front-end. Shots travel straight up the selected
// column and land instantly; bursts drain on the tick.
type app struct {
	screen tcell.Screen
	logger *slog.Logger

	lvl      *level.Controller
	ctrl     *turn.Controller
	pacer    *turn.Pacer
	player   *bot.Player
	recorder *telemetry.Recorder
	sound    *audio.SoundManager

	cursorX, cursorZ int
	message          string
	quit             bool
}

func newApp(screen tcell.Screen, cfg *config.Config, seed int64, sound *audio.SoundManager, logger *slog.Logger) *app {
	lvl := level.New(cfg.Level, nil)
	lvl.SetLogger(logger)
	ctrl := turn.New(cfg.Turn, lvl)
	ctrl.SetLogger(logger)

	a := &app{
		screen:   screen,
		logger:   logger,
		lvl:      lvl,
		ctrl:     ctrl,
		pacer:    turn.NewPacer(ctrl, cfg.Derived.BurstInterval),
		player:   bot.New(seed, 0),
		recorder: telemetry.NewRecorder(nil, logger),
		sound:    sound,
	}
	ctrl.SetSink(a.handleEvent)
	return a
}

func (a *app) handleEvent(e turn.Event) {
	a.recorder.Record(e)
	if a.sound != nil {
		a.sound.HandleEvent(e)
		if e.Type == turn.EventShotResolved || e.Type == turn.EventLayerInserted {
			a.sound.SetWarning(a.ctrl.State().Warning)
		}
	}
	switch e.Type {
	case turn.EventClusterMatched:
		a.message = fmt.Sprintf("%d popped!", e.Count)
	case turn.EventLayerInserted:
		if e.Layers > 1 {
			a.message = "the ceiling drops"
		}
	case turn.EventGameOver:
		a.message = fmt.Sprintf("game over: %d", e.Score)
	}
}

// handleKey applies one key press.
func (a *app) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
	case tcell.KeyLeft:
		a.moveCursor(-1, 0)
	case tcell.KeyRight:
		a.moveCursor(1, 0)
	case tcell.KeyUp:
		a.moveCursor(0, -1)
	case tcell.KeyDown:
		a.moveCursor(0, 1)
	case tcell.KeyEnter:
		a.fire()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.quit = true
		case ' ':
			a.fire()
		case 'l', 'L':
			if !a.ctrl.ForceLayer() {
				a.message = "cannot drop now"
			}
		case 'a', 'A':
			a.suggest()
		}
	}
}

func (a *app) moveCursor(dx, dz int) {
	b := a.lvl.Bounds()
	k := b.Clamp(lattice.Key{X: a.cursorX + dx, Y: b.MinY, Z: a.cursorZ + dz})
	a.cursorX, a.cursorZ = k.X, k.Z
}

// fire starts or continues on the menu screens and shoots up the cursor
// column while playing.
func (a *app) fire() {
	if a.ctrl.Phase() != turn.PhasePlaying {
		a.message = ""
		a.ctrl.Trigger()
		return
	}

	target, ok := a.landing()
	if !ok {
		a.message = "column is full"
		return
	}
	shot, ok := a.ctrl.Fire()
	if !ok {
		return
	}
	a.message = ""
	shot.Rest(lattice.CellCenter(target))
}

// landing returns the cell a shot up the cursor column reaches.
func (a *app) landing() (lattice.Key, bool) {
	for _, c := range bot.Candidates(a.lvl, a.ctrl.State().NextColor) {
		if c.Key.X == a.cursorX && c.Key.Z == a.cursorZ {
			return c.Key, true
		}
	}
	return lattice.Key{}, false
}

// suggest moves the cursor to the bot's pick.
func (a *app) suggest() {
	if a.ctrl.Phase() != turn.PhasePlaying {
		return
	}
	k, ok := a.player.Choose(a.lvl, a.ctrl.State().NextColor)
	if !ok {
		return
	}
	a.cursorX, a.cursorZ = k.X, k.Z
}

func (a *app) tick(dt time.Duration) {
	a.pacer.Advance(dt)
}

type poller interface {
	PollEvent() tcell.Event
}

// pollEvents forwards screen events until the screen is finalized or stop
// closes. The returned channel is closed on exit.
func pollEvents(p poller, stop <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 32)
	go func() {
		defer close(events)
		for {
			ev := p.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()
	return events
}
