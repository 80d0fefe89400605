package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, b := range bookmarks {
		if b.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_BigCombo(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if got := bd.Check(ShotRecord{Game: 1, Shot: 1, Cluster: 4, Floating: 2}); len(got) != 0 {
		t.Errorf("small combo triggered %v", got)
	}

	got := bd.Check(ShotRecord{Game: 1, Shot: 2, Cluster: 6, Floating: 5})
	if !hasBookmark(got, BookmarkBigCombo) {
		t.Error("expected big_combo bookmark")
	}
	if !hasBookmark(got, BookmarkAvalanche) {
		t.Error("expected avalanche bookmark for 5 floating")
	}
}

func TestBookmarkDetector_DroughtAndComeback(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var droughts int
	for shot := 1; shot <= 8; shot++ {
		got := bd.Check(ShotRecord{Game: 1, Shot: shot, Layers: 1 + shot/3})
		if hasBookmark(got, BookmarkDrought) {
			droughts++
		}
	}
	if droughts != 1 {
		t.Errorf("drought fired %d times, want once", droughts)
	}

	got := bd.Check(ShotRecord{Game: 1, Shot: 9, Cluster: 3, Layers: 4})
	if !hasBookmark(got, BookmarkComeback) {
		t.Error("expected comeback bookmark")
	}

	got = bd.Check(ShotRecord{Game: 1, Shot: 10, Cluster: 3, Layers: 4})
	if hasBookmark(got, BookmarkComeback) {
		t.Error("comeback should fire only after a drought")
	}
}

func TestBookmarkDetector_NewGameResets(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for shot := 1; shot <= 5; shot++ {
		bd.Check(ShotRecord{Game: 1, Shot: shot})
	}
	got := bd.Check(ShotRecord{Game: 2, Shot: 1})
	if hasBookmark(got, BookmarkDrought) {
		t.Error("misses should not carry over between games")
	}
}
