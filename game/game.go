// Package game runs the playable shell: an ECS scene of bubble entities
// driven by the turn controller, drawn with raylib.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/audio"
	"github.com/pthm-cable/bubbles/bot"
	"github.com/pthm-cable/bubbles/camera"
	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/inspector"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
	"github.com/pthm-cable/bubbles/renderer"
	"github.com/pthm-cable/bubbles/systems"
	"github.com/pthm-cable/bubbles/telemetry"
	"github.com/pthm-cable/bubbles/turn"
	"github.com/pthm-cable/bubbles/ui"
)

// perfFlushFrames is how often frame timings are logged and written.
const perfFlushFrames = 600

// autoDelay is how long the autoplayer waits on the menu and game-over screens.
const autoDelay = 2.0

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	world     *ecs.World
	host      *Host
	level     *level.Controller
	ctrl      *turn.Controller
	pacer     *turn.Pacer
	player    *bot.Player
	bodyQuery *ecs.Filter3[components.Position, components.Body, components.BubbleRef]
	posMap    *ecs.Map[components.Position]
	bodyMap   *ecs.Map[components.Body]

	// Systems
	projectiles *systems.ProjectileSystem
	shifts      *systems.ShiftSystem
	pops        *systems.PopSystem
	anchors     *systems.AnchorSystem
	particles   *systems.ParticleSystem

	// View
	camera           *camera.Camera
	aim              *camera.Aim
	background       *renderer.BackgroundRenderer
	particleRenderer *renderer.ParticleRenderer

	// Collaborators
	sound    *audio.SoundManager
	out      *telemetry.OutputManager
	recorder *telemetry.Recorder
	perf     *telemetry.PerfCollector

	// UI
	hud       *ui.HUD
	menu      *ui.Menu
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry
	inspector *inspector.Inspector
	counter   ui.ScoreCounter

	// State
	frame     int64
	time      float64
	idle      float64 // seconds spent on the current menu screen
	newRecord bool
	quit      bool

	screenWidth, screenHeight int32
}

// NewGame wires the core to its ECS presentation and collaborators.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := out.WriteConfig(cfg); err != nil {
		return nil, err
	}

	logger := opts.logger()
	world := ecs.NewWorld()
	particles := systems.NewParticleSystem(opts.Seed)
	host := NewHost(world, cfg.Level.BubbleRadius, particles)

	lvl := level.New(cfg.Level, host)
	lvl.SetLogger(logger)
	ctrl := turn.New(cfg.Turn, lvl)
	ctrl.SetLogger(logger)

	bounds := cfg.Derived.Bounds
	center := r3.Vec{
		X: float64(bounds.MinX+bounds.MaxX) / 2,
		Y: float64(bounds.Ceiling()) / 2,
		Z: float64(bounds.MinZ+bounds.MaxZ) / 2,
	}
	launcher := r3.Vec{X: center.X, Y: cfg.Launcher.Height, Z: center.Z}

	g := &Game{
		cfg:              cfg,
		opts:             opts,
		logger:           logger,
		world:            world,
		host:             host,
		level:            lvl,
		ctrl:             ctrl,
		pacer:            turn.NewPacer(ctrl, cfg.Derived.BurstInterval),
		player:           bot.New(opts.Seed, opts.Explore),
		bodyQuery:        ecs.NewFilter3[components.Position, components.Body, components.BubbleRef](world),
		posMap:           ecs.NewMap[components.Position](world),
		bodyMap:          ecs.NewMap[components.Body](world),
		projectiles:      systems.NewProjectileSystem(world, lvl.Lattice(), cfg.Launcher.MaxTravel),
		shifts:           systems.NewShiftSystem(world),
		pops:             systems.NewPopSystem(world),
		anchors:          systems.NewAnchorSystem(world),
		particles:        particles,
		camera:           camera.New(center, float64(bounds.Width()+bounds.Depth())*1.4),
		aim:              camera.NewAim(launcher),
		background:       renderer.NewBackgroundRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height), renderer.SkyTop, renderer.SkyBottom),
		particleRenderer: renderer.NewParticleRenderer(ui.BubbleColor),
		sound:            audio.NewSoundManager(cfg.Audio),
		out:              out,
		recorder:         telemetry.NewRecorder(out, logger),
		perf:             telemetry.NewPerfCollector(120),
		hud:              ui.NewHUD(),
		menu:             ui.NewMenu(),
		controls:         ui.NewControlsPanel(10, 200, 220),
		perfPanel:        ui.NewPerfPanel(int32(cfg.Screen.Width)-250, 10),
		overlays:         ui.NewOverlayRegistry(),
		inspector:        inspector.NewInspector(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		screenWidth:      int32(cfg.Screen.Width),
		screenHeight:     int32(cfg.Screen.Height),
	}
	if opts.Muted {
		g.sound = audio.NewSoundManager(config.AudioConfig{})
	}
	if err := g.sound.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
	}
	ctrl.SetSink(g.handleEvent)

	logger.Info("game ready",
		"bounds", fmt.Sprintf("%dx%dx%d", bounds.Width(), bounds.Ceiling()+1, bounds.Depth()),
		"baseline", cfg.Level.Baseline,
		"autoplay", opts.AutoPlay,
		"output_dir", out.Dir(),
	)
	return g, nil
}

// Update advances one frame by dt seconds.
func (g *Game) Update(dt float64) {
	if dt > 0.1 {
		dt = 0.1
	}
	g.time += dt

	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput(dt)
	if g.opts.AutoPlay {
		g.autoPlay(dt)
	}

	g.perf.StartPhase(telemetry.PhaseTurn)
	g.pacer.Advance(time.Duration(dt * float64(time.Second)))

	g.perf.StartPhase(telemetry.PhaseProjectile)
	g.updateProjectiles(dt)

	g.perf.StartPhase(telemetry.PhaseAnimation)
	g.shifts.Update(dt)
	g.pops.Update(g.world, dt)
	g.anchors.Update()
	g.particles.Update(dt)
	g.counter.Update(g.ctrl.State().Score)
}

// Fire launches the next bubble along the current aim. On the menu and
// game-over screens it advances the screen instead.
func (g *Game) Fire() {
	shot := g.ctrl.Trigger()
	if shot == nil {
		return
	}
	velocity := g.aim.Velocity(g.cfg.Launcher.ShootSpeed)
	if !g.host.Launch(shot.Bubble, components.Projectile{Shot: shot}, g.aim.Origin, velocity) {
		g.logger.Warn("shot has no entity", "shot", shot.Number)
		g.ctrl.AbandonShot(shot)
	}
}

// updateProjectiles moves shots and resolves those that stopped.
func (g *Game) updateProjectiles(dt float64) {
	landed, abandoned := g.projectiles.Update(dt)
	for _, l := range landed {
		if l.Shot == nil {
			continue
		}
		if _, ok := l.Shot.Rest(l.Position); ok {
			g.host.Snap(l.Shot.Bubble, l.Position)
		}
	}
	for _, l := range abandoned {
		if l.Shot != nil {
			g.ctrl.AbandonShot(l.Shot)
		}
	}
}

// autoPlay aims and fires for the player.
func (g *Game) autoPlay(dt float64) {
	switch g.ctrl.Phase() {
	case turn.PhaseMenu, turn.PhaseGameOver:
		g.idle += dt
		if g.idle >= autoDelay {
			g.idle = 0
			g.ctrl.Trigger()
		}
	case turn.PhasePlaying:
		g.idle = 0
		if g.ctrl.ShotState() != turn.ShotIdle || g.ctrl.PendingBurst() > 0 {
			return
		}
		key, ok := g.player.Choose(g.level, g.ctrl.State().NextColor)
		if !ok {
			return
		}
		g.aim.AimAt(lattice.CellCenter(key))
		g.Fire()
	}
}

// ShouldQuit reports whether the player asked to leave.
func (g *Game) ShouldQuit() bool {
	return g.quit
}

// Controller exposes the turn controller.
func (g *Game) Controller() *turn.Controller {
	return g.ctrl
}

// Unload releases audio and GPU resources and flushes telemetry.
func (g *Game) Unload() {
	g.background.Unload()
	g.sound.Cleanup()
	if err := g.recorder.Close(); err != nil {
		g.logger.Error("failed to close telemetry", "error", err)
	}
}
