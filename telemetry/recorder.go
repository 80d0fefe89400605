package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/bubbles/turn"
)

// Recorder wires a Collector to the output files, the bookmark detector and
// the hall of fame. Write errors are logged, never returned to the game.
type Recorder struct {
	collector *Collector
	bookmarks *BookmarkDetector
	hof       *HallOfFame
	out       *OutputManager
	logger    *slog.Logger

	games []GameSummary
}

// NewRecorder creates a recorder. A nil out disables file output.
func NewRecorder(out *OutputManager, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		bookmarks: NewBookmarkDetector(12),
		hof:       NewHallOfFame(10),
		out:       out,
		logger:    logger,
	}
	r.collector = NewCollector(r.onShot, r.onGame)
	return r
}

// Record consumes one controller event.
func (r *Recorder) Record(e turn.Event) {
	r.collector.Record(e)
}

// Summary returns the statistics of the game in progress.
func (r *Recorder) Summary() GameSummary {
	return r.collector.Summary()
}

// Games returns the summaries of every finished game.
func (r *Recorder) Games() []GameSummary {
	return r.games
}

// HallOfFame returns the best games so far.
func (r *Recorder) HallOfFame() *HallOfFame {
	return r.hof
}

// Close writes the hall of fame and closes the output files.
func (r *Recorder) Close() error {
	if err := r.out.WriteHallOfFame(r.hof); err != nil {
		r.logger.Warn("hall of fame not written", "error", err)
	}
	return r.out.Close()
}

func (r *Recorder) onShot(rec ShotRecord) {
	if err := r.out.WriteShot(rec); err != nil {
		r.logger.Warn("shot record not written", "error", err)
	}
	for _, b := range r.bookmarks.Check(rec) {
		b.LogBookmark()
		if err := r.out.WriteBookmark(b); err != nil {
			r.logger.Warn("bookmark not written", "error", err)
		}
	}
}

func (r *Recorder) onGame(s GameSummary) {
	r.games = append(r.games, s)
	if r.hof.Consider(s) {
		r.logger.Debug("hall of fame", "game", s.Game, "score", s.FinalScore)
	}
	r.logger.Info("game summary", "summary", s)
	if err := r.out.WriteGame(s); err != nil {
		r.logger.Warn("game summary not written", "error", err)
	}
}
