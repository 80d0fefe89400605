package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkBigCombo  BookmarkType = "big_combo"
	BookmarkAvalanche BookmarkType = "avalanche"
	BookmarkDrought   BookmarkType = "drought"
	BookmarkComeback  BookmarkType = "comeback"
)

// Bookmark marks a notable shot.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Game        int          `csv:"game"`
	Shot        int          `csv:"shot"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"game", b.Game,
		"shot", b.Shot,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable shots from the stream of shot records.
type BookmarkDetector struct {
	comboSize     int // cluster+floating at or above this is a big combo
	avalancheSize int // floating at or above this is an avalanche
	droughtLen    int // misses in a row that count as a drought

	game        int
	misses      int
	layersAtLow int // layer count when the current drought began
}

// NewBookmarkDetector creates a detector with the given combo threshold.
func NewBookmarkDetector(comboSize int) *BookmarkDetector {
	if comboSize < 3 {
		comboSize = 3
	}
	return &BookmarkDetector{
		comboSize:     comboSize,
		avalancheSize: comboSize / 2,
		droughtLen:    6,
	}
}

// Check analyzes one shot record and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(rec ShotRecord) []Bookmark {
	if rec.Game != bd.game {
		bd.game = rec.Game
		bd.misses = 0
	}

	var bookmarks []Bookmark

	if rec.Cluster == 0 {
		if bd.misses == 0 {
			bd.layersAtLow = rec.Layers
		}
		bd.misses++
		if bd.misses == bd.droughtLen {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkDrought,
				Game:        rec.Game,
				Shot:        rec.Shot,
				Description: fmt.Sprintf("%d shots without a match", bd.misses),
			})
		}
		return bookmarks
	}

	if total := rec.Cluster + rec.Floating; total >= bd.comboSize {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkBigCombo,
			Game:        rec.Game,
			Shot:        rec.Shot,
			Description: fmt.Sprintf("Popped %d bubbles (%d matched, %d floating)", total, rec.Cluster, rec.Floating),
		})
	}

	if bd.avalancheSize > 0 && rec.Floating >= bd.avalancheSize {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkAvalanche,
			Game:        rec.Game,
			Shot:        rec.Shot,
			Description: fmt.Sprintf("%d bubbles cut loose", rec.Floating),
		})
	}

	if bd.misses >= bd.droughtLen {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkComeback,
			Game:        rec.Game,
			Shot:        rec.Shot,
			Description: fmt.Sprintf("Match after %d misses and %d dropped layers", bd.misses, rec.Layers-bd.layersAtLow),
		})
	}
	bd.misses = 0

	return bookmarks
}
