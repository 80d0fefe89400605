package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run bot games without graphics")
	games := flag.Int("games", 10, "Number of games to play in headless mode")
	maxShots := flag.Int("max-shots", 500, "End a headless game after N shots (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	explore := flag.Float64("explore", 0.1, "Bot exploration rate")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	mute := flag.Bool("mute", false, "Disable audio")
	autoplay := flag.Bool("autoplay", false, "Let the bot play in the window")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(2)
	}
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	dir := cfg.Telemetry.OutputDir
	if *outputDir != "" {
		dir = *outputDir
	}

	opts := game.Options{
		Seed:      rngSeed,
		OutputDir: dir,
		Muted:     *mute || *headless,
		AutoPlay:  *autoplay,
		Explore:   *explore,
		Logger:    logger,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *games, *maxShots); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Bubbles")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.ShouldQuit() {
		g.Update(float64(rl.GetFrameTime()))
		g.Draw()
	}
}

// runHeadless plays bot games back to back and logs the best result.
func runHeadless(cfg *config.Config, opts game.Options, games, maxShots int) error {
	h, err := game.NewHeadless(cfg, opts)
	if err != nil {
		return err
	}

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"games", games,
		"max_shots", maxShots,
		"explore", opts.Explore,
	)

	start := time.Now()
	for i := 0; i < games; i++ {
		h.PlayGame(maxShots)
	}
	slog.Info("headless run finished",
		"games", games,
		"best", h.Recorder().HallOfFame().Best(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return h.Close()
}
