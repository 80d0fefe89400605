// Package inspector shows a debug panel for a clicked bubble.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
)

// Panel dimensions
const (
	PanelWidth   = 280
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector manages bubble selection and panel rendering.
type Inspector struct {
	selected     ecs.Entity
	bubble       *lattice.Bubble
	hasSelected  bool
	panelX       int32
	panelY       int32
	panelHeight  int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize keeps the panel docked to the right edge.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 60
}

// HandleClick selects the nearest bubble under the mouse ray. It returns
// true when the click was consumed by the panel or a selection.
func (ins *Inspector) HandleClick(
	mouseX, mouseY float32,
	origin, dir r3.Vec,
	filter *ecs.Filter3[components.Position, components.Body, components.BubbleRef],
) bool {
	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return true
		}
		if ins.overPanel(mouseX, mouseY) {
			return true
		}
	}

	var closest ecs.Entity
	var bubble *lattice.Bubble
	closestDist := 0.0
	found := false

	query := filter.Query()
	for query.Next() {
		pos, body, ref := query.Get()
		if ref.Bubble == nil || ref.Bubble.State != lattice.StateSettled {
			continue
		}
		dist, ok := RaySphere(origin, dir, pos.Vec(), body.Radius*body.Scale)
		if ok && (!found || dist < closestDist) {
			closest = query.Entity()
			bubble = ref.Bubble
			closestDist = dist
			found = true
		}
	}

	if found {
		ins.selected = closest
		ins.bubble = bubble
		ins.hasSelected = true
	}
	return found
}

func (ins *Inspector) overPanel(mouseX, mouseY float32) bool {
	return int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
		int32(mouseY) >= ins.panelY && int32(mouseY) <= ins.panelY+ins.panelHeight
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.bubble = nil
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if a bubble is selected. A selection
// that has popped or been disposed is dropped.
func (ins *Inspector) Draw(
	world *ecs.World,
	posMap *ecs.Map[components.Position],
	bodyMap *ecs.Map[components.Body],
	lvl *level.Controller,
) {
	if !ins.hasSelected {
		return
	}
	if !world.Alive(ins.selected) || ins.bubble.State != lattice.StateSettled {
		ins.Deselect()
		return
	}
	report, ok := Inspect(lvl, ins.bubble)
	if !ok {
		ins.Deselect()
		return
	}
	pos := posMap.Get(ins.selected)
	body := bodyMap.Get(ins.selected)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, ins.panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(ins.panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("Bubble #%d  cell %s", ins.bubble.ID, ins.bubble.Cell), x, y, 14, ColorHeaderText)
	y += 22
	y = ins.separator(x, y)

	y += DrawFields(x, y, ins.bubble)
	y += DrawLabel(x, y, "Position", pos.Vec(), nil)
	y += DrawFields(x, y, body)
	y = ins.separator(x, y)

	ins.drawSectionHeader(x, y, "LATTICE")
	y += 20
	y += DrawFields(x, y, report)

	ins.panelHeight = y + PanelPadding - ins.panelY
}

func (ins *Inspector) separator(x, y int32) int32 {
	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	return y + 8
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight draws a wire sphere around the selected bubble.
// Call inside a 3D mode block.
func (ins *Inspector) DrawSelectionHighlight(
	world *ecs.World,
	posMap *ecs.Map[components.Position],
	bodyMap *ecs.Map[components.Body],
) {
	if !ins.hasSelected || !world.Alive(ins.selected) {
		return
	}
	pos := posMap.Get(ins.selected)
	body := bodyMap.Get(ins.selected)
	if pos == nil || body == nil {
		return
	}
	center := rl.Vector3{X: float32(pos.X), Y: float32(pos.Y), Z: float32(pos.Z)}
	rl.DrawSphereWires(center, float32(body.Radius*1.15), 8, 12, rl.Yellow)
}
