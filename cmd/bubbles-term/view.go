package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/turn"
)

const controlsLine = "arrows: column  enter/space: fire  a: suggest  l: drop ceiling  q: quit"

var bubbleStyles = [lattice.MaxPalette]tcell.Color{
	tcell.ColorRed, tcell.ColorBlue, tcell.ColorGreen,
	tcell.ColorYellow, tcell.ColorPurple, tcell.ColorDarkCyan,
}

func colorStyle(c lattice.Color) tcell.Style {
	fg := tcell.ColorWhite
	if int(c) >= 0 && int(c) < len(bubbleStyles) {
		fg = bubbleStyles[c]
	}
	return tcell.StyleDefault.Foreground(fg).Bold(true)
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	drawText(s, cx-len([]rune(text))/2, cy, text, st)
}

// draw renders the whole frame.
func (a *app) draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	state := a.ctrl.State()

	switch state.Phase {
	case turn.PhaseMenu:
		drawCentered(s, w/2, h/2-2, "B U B B L E S", tcell.StyleDefault.Bold(true))
		drawCentered(s, w/2, h/2, fmt.Sprintf("best %d  games %d", a.recorder.HallOfFame().Best(), len(a.recorder.Games())), tcell.StyleDefault)
		drawCentered(s, w/2, h/2+2, "press enter to start", tcell.StyleDefault.Dim(true))
	case turn.PhaseGameOver:
		drawCentered(s, w/2, h/2-2, "GAME OVER", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		drawCentered(s, w/2, h/2, fmt.Sprintf("score %d  shots %d  layers %d", state.FinalScore, state.Shots, state.Layers), tcell.StyleDefault)
		drawCentered(s, w/2, h/2+2, "press enter for the menu", tcell.StyleDefault.Dim(true))
	default:
		a.drawHUD(state)
		y := a.drawTopView(2)
		a.drawSideView(y+1, state)
	}

	if a.message != "" {
		drawText(s, 1, h-2, a.message, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	drawText(s, 1, h-1, controlsLine, tcell.StyleDefault.Dim(true))
	s.Show()
}

func (a *app) drawHUD(state turn.State) {
	hud := fmt.Sprintf("game %d  score %d  best %d  shots %s  layers %d  next ",
		state.Game, state.Score, a.recorder.HallOfFame().Best(),
		strings.Repeat("*", state.AttemptsRemaining), state.Layers)
	drawText(a.screen, 1, 0, hud, tcell.StyleDefault)
	drawText(a.screen, 1+len(hud), 0, "("+state.NextColor.String()+")", colorStyle(state.NextColor))
	if state.Warning {
		drawText(a.screen, 1, 1, "CEILING LOW", tcell.StyleDefault.Foreground(tcell.ColorRed).Blink(true))
	}
}

// drawTopView shows each column from above by its lowest bubble and returns
// the next free row.
func (a *app) drawTopView(top int) int {
	s := a.screen
	b := a.lvl.Bounds()
	lat := a.lvl.Lattice()

	drawText(s, 1, top, "from above", tcell.StyleDefault.Underline(true))
	y := top + 1
	for z := b.MinZ; z <= b.MaxZ; z++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			cx := 2 + (x-b.MinX)*3
			glyph, st := '.', tcell.StyleDefault.Dim(true)
			for yy := b.MinY; yy <= b.MaxY; yy++ {
				if bub := lat.Get(lattice.Key{X: x, Y: yy, Z: z}); bub != nil {
					glyph, st = rune('0'+yy), colorStyle(bub.Color)
					break
				}
			}
			if x == a.cursorX && z == a.cursorZ {
				s.SetContent(cx-1, y, '[', nil, tcell.StyleDefault)
				s.SetContent(cx+1, y, ']', nil, tcell.StyleDefault)
			}
			s.SetContent(cx, y, glyph, nil, st)
		}
		y++
	}
	return y
}

// drawSideView shows the x-y slice through the cursor column.
func (a *app) drawSideView(top int, state turn.State) {
	s := a.screen
	b := a.lvl.Bounds()
	lat := a.lvl.Lattice()
	target, canLand := a.landing()

	drawText(s, 1, top, fmt.Sprintf("slice z=%d", a.cursorZ), tcell.StyleDefault.Underline(true))
	y := top + 1
	for row := b.MaxY; row >= b.MinY; row-- {
		label := fmt.Sprintf("%d", row)
		labelStyle := tcell.StyleDefault
		if row <= a.lvl.Baseline() {
			labelStyle = labelStyle.Foreground(tcell.ColorRed)
		}
		drawText(s, 0, y, label, labelStyle)

		for x := b.MinX; x <= b.MaxX; x++ {
			cx := 2 + (x-b.MinX)*3
			k := lattice.Key{X: x, Y: row, Z: a.cursorZ}
			switch bub := lat.Get(k); {
			case bub != nil:
				s.SetContent(cx, y, 'O', nil, colorStyle(bub.Color))
			case canLand && k == target:
				s.SetContent(cx, y, '+', nil, colorStyle(state.NextColor))
			case x == a.cursorX:
				s.SetContent(cx, y, '|', nil, tcell.StyleDefault.Dim(true))
			default:
				s.SetContent(cx, y, '.', nil, tcell.StyleDefault.Dim(true))
			}
		}
		y++
	}
}
