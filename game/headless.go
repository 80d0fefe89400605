package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/bubbles/bot"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
	"github.com/pthm-cable/bubbles/telemetry"
	"github.com/pthm-cable/bubbles/turn"
)

// Headless plays complete games with the bot and no window. Projectiles are
// teleported straight to the chosen cell and bursts drain immediately.
type Headless struct {
	cfg      *config.Config
	logger   *slog.Logger
	host     *level.HeadlessHost
	ctrl     *turn.Controller
	player   *bot.Player
	recorder *telemetry.Recorder
}

// NewHeadless creates a headless runner.
func NewHeadless(cfg *config.Config, opts Options) (*Headless, error) {
	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := out.WriteConfig(cfg); err != nil {
		return nil, err
	}

	logger := opts.logger()
	host := level.NewHeadlessHost()
	lvl := level.New(cfg.Level, host)
	lvl.SetLogger(logger)
	ctrl := turn.New(cfg.Turn, lvl)
	ctrl.SetLogger(logger)

	h := &Headless{
		cfg:      cfg,
		logger:   logger,
		host:     host,
		ctrl:     ctrl,
		player:   bot.New(opts.Seed, opts.Explore),
		recorder: telemetry.NewRecorder(out, logger),
	}
	ctrl.SetSink(h.recorder.Record)
	return h, nil
}

// PlayGame plays one game from the menu and returns its summary. A game that
// has not been lost after maxShots is ended; maxShots <= 0 means no limit.
func (h *Headless) PlayGame(maxShots int) telemetry.GameSummary {
	if h.ctrl.Phase() != turn.PhaseMenu {
		h.ctrl.Trigger()
	}
	h.ctrl.Trigger()

	for h.ctrl.Phase() != turn.PhaseGameOver {
		if maxShots > 0 && h.ctrl.State().Shots >= maxShots {
			h.ctrl.OnGameOver()
			break
		}
		if !h.step() {
			h.logger.Warn("no playable cell", "game", h.ctrl.State().Game)
			h.ctrl.OnGameOver()
			break
		}
	}

	var summary telemetry.GameSummary
	if games := h.recorder.Games(); len(games) > 0 {
		summary = games[len(games)-1]
	}
	h.ctrl.Trigger()
	return summary
}

// step fires one shot at the bot's choice and drains its burst.
func (h *Headless) step() bool {
	key, ok := h.player.Choose(h.ctrl.Level(), h.ctrl.State().NextColor)
	if !ok {
		return false
	}
	shot, ok := h.ctrl.Fire()
	if !ok {
		return false
	}
	shot.Rest(lattice.CellCenter(key))
	for h.ctrl.PendingBurst() > 0 {
		h.ctrl.DrainBurst()
	}
	return true
}

// Controller exposes the turn controller.
func (h *Headless) Controller() *turn.Controller {
	return h.ctrl
}

// Recorder exposes the telemetry recorder.
func (h *Headless) Recorder() *telemetry.Recorder {
	return h.recorder
}

// Live returns the number of bubbles created and not yet disposed.
func (h *Headless) Live() int {
	return h.host.Live()
}

// Close flushes telemetry.
func (h *Headless) Close() error {
	return h.recorder.Close()
}
