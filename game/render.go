package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/renderer"
	"github.com/pthm-cable/bubbles/telemetry"
	"github.com/pthm-cable/bubbles/turn"
	"github.com/pthm-cable/bubbles/ui"
)

const controlsLegend = "ENTER/Click: Fire | Arrows/Mouse: Aim | RMB: Orbit | Wheel: Zoom | Space: Drop | Tab: Overlays | Home: Camera | Esc: Quit"

// rlCamera builds the raylib camera from the orbit camera.
func (g *Game) rlCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   renderer.Vec(g.camera.Eye()),
		Target:     renderer.Vec(g.camera.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the current frame.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)

	state := g.ctrl.State()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.background.Draw(float32(g.time), rl.GetFrameTime(), state.Warning)

	cam := g.rlCamera()
	rl.BeginMode3D(cam)
	bounds := g.level.Bounds()
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		renderer.DrawGrid(bounds)
	}
	g.drawBubbles()
	g.particleRenderer.Draw(g.particles.Particles)
	g.drawLauncher(state)
	if g.overlays.IsEnabled(ui.OverlayInspect) {
		g.inspector.DrawSelectionHighlight(g.world, g.posMap, g.bodyMap)
	}
	if g.overlays.IsEnabled(ui.OverlayBaseline) {
		renderer.DrawBaseline(bounds, g.level.Baseline())
	}
	rl.EndMode3D()

	if g.overlays.IsEnabled(ui.OverlayCellKeys) {
		g.drawCellKeys(cam)
	}
	g.drawUI()

	rl.EndDrawing()

	g.perf.EndFrame()
	g.frame++
	g.flushPerf()
}

// drawBubbles draws every bubble entity, scaled by its pop animation.
func (g *Game) drawBubbles() {
	query := g.bodyQuery.Query()
	for query.Next() {
		pos, body, ref := query.Get()
		if ref.Bubble == nil || body.Scale <= 0 {
			continue
		}
		rl.DrawSphereEx(renderer.Vec(pos.Vec()), float32(body.Radius*body.Scale), 10, 14, ui.BubbleColor(ref.Bubble.Color))
	}
}

// drawLauncher draws the launcher, the next bubble and the aim guide.
func (g *Game) drawLauncher(state turn.State) {
	radius := float32(g.cfg.Level.BubbleRadius)
	renderer.DrawLauncher(g.aim.Origin, radius)

	if state.Phase != turn.PhasePlaying {
		return
	}
	if state.Shot == turn.ShotIdle {
		rl.DrawSphere(renderer.Vec(g.aim.Origin), radius, ui.BubbleColor(state.NextColor))
	}
	if !g.overlays.IsEnabled(ui.OverlayAimGuide) {
		return
	}
	if end, ok := g.aim.Crossing(float64(g.level.Bounds().Ceiling())); ok {
		renderer.DrawGuide(g.aim.Origin, end)
	}
}

// drawCellKeys labels occupied cells with their lattice key.
func (g *Game) drawCellKeys(cam rl.Camera3D) {
	g.level.Lattice().Each(func(k lattice.Key, _ *lattice.Bubble) {
		p := rl.GetWorldToScreen(renderer.Vec(lattice.CellCenter(k)), cam)
		rl.DrawText(k.String(), int32(p.X)-12, int32(p.Y)-5, 10, rl.White)
	})
}

// drawUI draws the 2D layer for the current phase.
func (g *Game) drawUI() {
	state := g.ctrl.State()
	best := g.recorder.HallOfFame().Best()

	switch state.Phase {
	case turn.PhaseMenu:
		res := g.menu.DrawStart(ui.MenuData{
			Title:        "BUBBLES",
			Best:         best,
			Games:        len(g.recorder.Games()),
			Volume:       float32(g.sound.Volume()),
			ScreenWidth:  g.screenWidth,
			ScreenHeight: g.screenHeight,
		})
		if float64(res.Volume) != g.sound.Volume() {
			g.sound.SetVolume(float64(res.Volume))
		}
		if res.Start {
			g.ctrl.Trigger()
		}
		if res.Quit {
			g.quit = true
		}
	case turn.PhaseGameOver:
		if g.menu.DrawGameOver(ui.GameOverData{
			FinalScore:   state.FinalScore,
			Best:         best,
			Shots:        state.Shots,
			Layers:       state.Layers,
			NewRecord:    g.newRecord,
			ScreenWidth:  g.screenWidth,
			ScreenHeight: g.screenHeight,
		}) {
			g.ctrl.Trigger()
		}
	default:
		g.hud.Draw(ui.HUDData{
			Game:             state.Game,
			Score:            g.counter.Shown(),
			Best:             best,
			Layers:           state.Layers,
			Attempts:         state.AttemptsRemaining,
			AttemptsFraction: float32(state.AttemptsFraction),
			NextColor:        state.NextColor,
			Warning:          state.Warning,
			Pending:          state.PendingBurst,
			Phase:            state.Phase.String(),
			FPS:              rl.GetFPS(),
			Time:             g.time,
		})
	}

	g.controls.Draw(g.overlays)
	if g.overlays.IsEnabled(ui.OverlayInspect) {
		g.inspector.Draw(g.world, g.posMap, g.bodyMap, g.level)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perf.Stats())
	}
	g.hud.DrawControls(g.screenHeight, controlsLegend)

	if g.frame%60 == 0 && state.Phase == turn.PhasePlaying {
		g.logger.Debug("frame", "frame", g.frame, "live", g.host.Live(), "particles", g.particles.Count(), "score", state.Score)
	}
}
