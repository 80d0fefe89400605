package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/turn"
)

func newTestApp(t *testing.T) (*app, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)
	return newApp(screen, config.Defaults(), 1, nil, slog.New(slog.NewTextHandler(io.Discard, nil))), screen
}

func press(a *app, k tcell.Key, r rune) {
	a.handleKey(tcell.NewEventKey(k, r, tcell.ModNone))
}

// row returns the text of screen line y.
func row(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestEnterStartsAndFires(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, tcell.KeyEnter, 0)
	if a.ctrl.Phase() != turn.PhasePlaying {
		t.Fatalf("phase = %v, want playing", a.ctrl.Phase())
	}

	target, ok := a.landing()
	if !ok {
		t.Fatal("no landing cell under a fresh ceiling")
	}
	if target.Y != a.lvl.Bounds().Ceiling()-1 {
		t.Errorf("landing = %v, want just below the ceiling", target)
	}

	press(a, tcell.KeyRune, ' ')
	if got := a.ctrl.State().Shots; got != 1 {
		t.Errorf("shots = %d, want 1", got)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	a, _ := newTestApp(t)
	b := a.lvl.Bounds()

	for i := 0; i < 20; i++ {
		press(a, tcell.KeyLeft, 0)
		press(a, tcell.KeyUp, 0)
	}
	if a.cursorX != b.MinX || a.cursorZ != b.MinZ {
		t.Errorf("cursor = (%d, %d), want (%d, %d)", a.cursorX, a.cursorZ, b.MinX, b.MinZ)
	}
	for i := 0; i < 20; i++ {
		press(a, tcell.KeyRight, 0)
		press(a, tcell.KeyDown, 0)
	}
	if a.cursorX != b.MaxX || a.cursorZ != b.MaxZ {
		t.Errorf("cursor = (%d, %d), want (%d, %d)", a.cursorX, a.cursorZ, b.MaxX, b.MaxZ)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"escape", tcell.KeyEscape, 0},
		{"q", tcell.KeyRune, 'q'},
		{"ctrl-c", tcell.KeyCtrlC, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			press(a, tt.key, tt.r)
			if !a.quit {
				t.Error("key did not quit")
			}
		})
	}
}

func TestDrawScreens(t *testing.T) {
	a, s := newTestApp(t)

	a.draw()
	_, h := s.Size()
	if !strings.Contains(row(s, h/2-2), "B U B B L E S") {
		t.Errorf("menu title missing: %q", row(s, h/2-2))
	}

	press(a, tcell.KeyEnter, 0)
	a.draw()
	if !strings.Contains(row(s, 0), "game 1") {
		t.Errorf("hud = %q", row(s, 0))
	}
	if !strings.Contains(row(s, 2), "from above") {
		t.Errorf("top view header = %q", row(s, 2))
	}
	if !strings.Contains(row(s, h-1), "q: quit") {
		t.Errorf("controls = %q", row(s, h-1))
	}
}

func TestTickDrainsBurst(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, tcell.KeyEnter, 0)

	// Fire until something pops or the game ends
	for i := 0; i < 50 && a.ctrl.Phase() == turn.PhasePlaying && a.ctrl.PendingBurst() == 0; i++ {
		press(a, tcell.KeyRune, 'a')
		press(a, tcell.KeyEnter, 0)
	}
	if a.ctrl.PendingBurst() == 0 {
		t.Skip("no burst produced")
	}
	for i := 0; i < 1000 && a.ctrl.PendingBurst() > 0; i++ {
		a.tick(time.Second)
	}
	if a.ctrl.PendingBurst() != 0 {
		t.Errorf("burst still pending: %d", a.ctrl.PendingBurst())
	}
}

// scriptedPoller replays a fixed list of events, then reports a finalized
// screen. With loop set it repeats the first event forever.
type scriptedPoller struct {
	events []tcell.Event
	loop   bool
}

func (p *scriptedPoller) PollEvent() tcell.Event {
	if p.loop {
		return p.events[0]
	}
	if len(p.events) == 0 {
		return nil
	}
	ev := p.events[0]
	p.events = p.events[1:]
	return ev
}

// drainEvents counts events until the channel closes or the timeout hits.
func drainEvents(t *testing.T, events <-chan tcell.Event) int {
	t.Helper()
	n := 0
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return n
			}
			n++
		case <-timeout:
			t.Fatalf("event pump still running after %d events", n)
		}
	}
}

func TestPollEventsStopsOnFinalizedScreen(t *testing.T) {
	key := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	p := &scriptedPoller{events: []tcell.Event{key, key, key}}

	if n := drainEvents(t, pollEvents(p, make(chan struct{}))); n != 3 {
		t.Errorf("forwarded %d events, want 3", n)
	}
}

func TestPollEventsStopsWhenAsked(t *testing.T) {
	key := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	stop := make(chan struct{})
	events := pollEvents(&scriptedPoller{events: []tcell.Event{key}, loop: true}, stop)

	// Fill the buffer so the pump blocks on send
	time.Sleep(10 * time.Millisecond)
	close(stop)
	if n := drainEvents(t, events); n == 0 {
		t.Error("no events forwarded before stop")
	}
}
