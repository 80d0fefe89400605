package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/telemetry"
)

// HUDData holds all the data needed to render the in-game HUD.
type HUDData struct {
	Game             int
	Score            int // displayed score, already eased
	Best             int
	Layers           int
	Attempts         int
	AttemptsFraction float32
	NextColor        lattice.Color
	Warning          bool
	Pending          int
	Phase            string
	FPS              int32
	Time             float64 // seconds, drives the warning blink
}

// HUD renders the in-game heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	padding := r.Theme.Padding
	x, y := padding, padding
	width := int32(240)

	r.DrawPanel(x, y, width, r.Theme.LineHeight*6+padding*2+8)
	x += padding
	y += padding

	rl.DrawText(fmt.Sprintf("%d", data.Score), x, y, 28, rl.White)
	rl.DrawText(fmt.Sprintf("best %d", data.Best), x+130, y+8, r.Theme.FontSize, r.Theme.LabelColor)
	y += 34

	y = r.DrawLabelValue(x, y, "Game", fmt.Sprintf("%d", data.Game))
	y = r.DrawLabelValue(x, y, "Layers", fmt.Sprintf("%d", data.Layers))

	rl.DrawText("Shots:", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	gui.ProgressBar(
		rl.Rectangle{X: float32(x + r.Theme.LabelWidth), Y: float32(y), Width: 120, Height: float32(r.Theme.BarHeight + 2)},
		"", fmt.Sprintf("%d", data.Attempts),
		data.AttemptsFraction, 0, 1,
	)
	y += r.Theme.LineHeight + 2

	y = r.DrawColorSwatch(x, y, "Next", BubbleColor(data.NextColor))

	if data.Warning && int(data.Time*2)%2 == 0 {
		rl.DrawText("CEILING LOW", x, y, r.Theme.HeaderFontSize, r.Theme.Warning)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame timings by phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	phases := telemetry.FramePhases()
	width := int32(240)
	r.DrawPanel(p.x, p.y, width, int32(len(phases)+2)*r.Theme.LineHeight+r.Theme.Padding*2)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText(fmt.Sprintf("Frame %s  %.0f fps", stats.AvgFrame.Round(time.Microsecond), stats.FPS), x, y, r.Theme.FontSize, rl.Yellow)
	y += r.Theme.LineHeight + 4

	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		y = r.DrawBar(x, y, phase, float32(pct/100), 0, width-r.Theme.Padding*2)
	}
}
