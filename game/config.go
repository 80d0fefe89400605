package game

import "log/slog"

// Options holds configuration for game initialization.
type Options struct {
	Seed      int64
	OutputDir string
	Muted     bool
	AutoPlay  bool    // the bot aims and fires
	Explore   float64 // bot exploration rate
	Logger    *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
