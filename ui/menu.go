package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MenuData holds what the start menu shows.
type MenuData struct {
	Title        string
	Best         int
	Games        int
	Volume       float32
	ScreenWidth  int32
	ScreenHeight int32
}

// MenuResult reports what the player did on the menu this frame.
type MenuResult struct {
	Start  bool
	Quit   bool
	Volume float32
}

// Menu renders the start screen and the game-over screen.
type Menu struct {
	renderer *Renderer
}

// NewMenu creates a menu renderer.
func NewMenu() *Menu {
	return &Menu{renderer: NewRenderer()}
}

// DrawStart renders the start screen.
func (m *Menu) DrawStart(data MenuData) MenuResult {
	r := m.renderer
	w, h := int32(320), int32(230)
	x := data.ScreenWidth/2 - w/2
	y := data.ScreenHeight/2 - h/2
	r.DrawPanel(x, y, w, h)

	titleWidth := rl.MeasureText(data.Title, 32)
	rl.DrawText(data.Title, data.ScreenWidth/2-titleWidth/2, y+20, 32, rl.White)

	info := fmt.Sprintf("best %d  |  games %d", data.Best, data.Games)
	infoWidth := rl.MeasureText(info, r.Theme.FontSize)
	rl.DrawText(info, data.ScreenWidth/2-infoWidth/2, y+62, r.Theme.FontSize, r.Theme.LabelColor)

	bx := float32(x + 60)
	res := MenuResult{Volume: data.Volume}
	res.Start = gui.Button(rl.Rectangle{X: bx, Y: float32(y + 95), Width: 200, Height: 36}, "Start")

	rl.DrawText("Volume", x+60, y+143, r.Theme.FontSize, r.Theme.LabelColor)
	res.Volume = gui.SliderBar(
		rl.Rectangle{X: bx, Y: float32(y + 160), Width: 200, Height: 16},
		"", fmt.Sprintf("%.0f%%", data.Volume*100),
		data.Volume, 0, 1,
	)
	res.Quit = gui.Button(rl.Rectangle{X: bx, Y: float32(y + 186), Width: 200, Height: 28}, "Quit")
	return res
}

// GameOverData holds what the game-over screen shows.
type GameOverData struct {
	FinalScore   int
	Best         int
	Shots        int
	Layers       int
	NewRecord    bool
	ScreenWidth  int32
	ScreenHeight int32
}

// DrawGameOver renders the game-over screen and reports whether the player
// pressed Menu.
func (m *Menu) DrawGameOver(data GameOverData) bool {
	r := m.renderer
	w, h := int32(320), int32(200)
	x := data.ScreenWidth/2 - w/2
	y := data.ScreenHeight/2 - h/2
	r.DrawPanel(x, y, w, h)

	title := "GAME OVER"
	titleWidth := rl.MeasureText(title, 32)
	rl.DrawText(title, data.ScreenWidth/2-titleWidth/2, y+20, 32, r.Theme.Warning)

	score := fmt.Sprintf("%d", data.FinalScore)
	scoreWidth := rl.MeasureText(score, 40)
	color := rl.White
	if data.NewRecord {
		color = rl.Gold
	}
	rl.DrawText(score, data.ScreenWidth/2-scoreWidth/2, y+60, 40, color)

	info := fmt.Sprintf("%d shots  |  %d layers  |  best %d", data.Shots, data.Layers, data.Best)
	infoWidth := rl.MeasureText(info, r.Theme.FontSize)
	rl.DrawText(info, data.ScreenWidth/2-infoWidth/2, y+110, r.Theme.FontSize, r.Theme.LabelColor)

	return gui.Button(rl.Rectangle{X: float32(x + 60), Y: float32(y + 145), Width: 200, Height: 36}, "Menu")
}
