package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/turn"
	"github.com/pthm-cable/bubbles/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput(dt float64) {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			if id, on, ok := g.overlays.HandleKeyPress(key); ok {
				g.logger.Debug("overlay toggled", "overlay", string(id), "enabled", on)
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	g.handleCameraInput()

	clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	if clicked && g.overlays.IsEnabled(ui.OverlayInspect) {
		mouse := rl.GetMousePosition()
		ray := rl.GetScreenToWorldRay(mouse, g.rlCamera())
		if g.inspector.HandleClick(mouse.X, mouse.Y, fromRL(ray.Position), fromRL(ray.Direction), g.bodyQuery) {
			clicked = false
		}
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		g.Fire()
	}

	if g.ctrl.Phase() != turn.PhasePlaying || g.opts.AutoPlay {
		return
	}

	g.handleAimInput(dt)

	if clicked {
		g.Fire()
	}
	// Drop the ceiling on demand
	if rl.IsKeyPressed(rl.KeySpace) {
		g.ctrl.ForceLayer()
	}
}

// handleResize tracks the window size for UI layout.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())
	g.perfPanel.SetPosition(g.screenWidth-250, 10)
	g.background.Resize(g.screenWidth, g.screenHeight)
	g.inspector.Resize(g.screenWidth, g.screenHeight)
}

// handleAimInput turns the launcher with the arrow keys, or points it where
// the mouse ray meets the ceiling.
func (g *Game) handleAimInput(dt float64) {
	step := g.cfg.Launcher.AimSpeed * dt
	if rl.IsKeyDown(rl.KeyLeft) {
		g.aim.Turn(step, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.aim.Turn(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.aim.Turn(0, step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.aim.Turn(0, -step)
	}

	delta := rl.GetMouseDelta()
	if (delta.X == 0 && delta.Y == 0) || rl.IsMouseButtonDown(rl.MouseButtonRight) {
		return
	}
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), g.rlCamera())
	if ray.Direction.Y == 0 {
		return
	}
	ceiling := float32(g.level.Bounds().Ceiling())
	t := (ceiling - ray.Position.Y) / ray.Direction.Y
	if t <= 0 {
		return
	}
	g.aim.AimAt(fromRL(rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t))))
}

// handleCameraInput orbits with the right mouse button and zooms with the wheel.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Orbit(-float64(delta.X)*0.01, float64(delta.Y)*0.01)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + float64(wheel)*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
