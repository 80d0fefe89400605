// Command bubbles-term plays the bubble lattice in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/bubbles/audio"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/turn"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed for suggestions (0 = time-based)")
	logFile := flag.String("log-file", "bubbles-term.log", "Log destination (the terminal is taken)")
	mute := flag.Bool("mute", false, "Disable audio")
	flag.Parse()

	if err := run(*configPath, *seed, *logFile, *mute); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, logFile string, mute bool) error {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()
	logger := slog.New(slog.NewJSONHandler(f, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	audioCfg := cfg.Audio
	if mute {
		audioCfg.Enabled = false
	}
	sound := audio.NewSoundManager(audioCfg)
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
	}
	defer sound.Cleanup()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.HideCursor()

	a := newApp(s, cfg, seed, sound, logger)

	stop := make(chan struct{})
	defer close(stop)
	events := pollEvents(s, stop)

	const frame = time.Second / 30
	tick := time.NewTicker(frame)
	defer tick.Stop()

	a.draw()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				a.quit = true
				continue
			}
			switch e := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventKey:
				a.handleKey(e)
			}
			a.draw()
		case <-tick.C:
			a.tick(frame)
			a.draw()
		}
	}

	// Close out a game in progress so its summary is logged
	if p := a.ctrl.Phase(); p == turn.PhasePlaying || p == turn.PhaseBurstResolving {
		a.ctrl.OnGameOver()
	}
	return nil
}
