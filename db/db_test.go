package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenPath(filepath.Join(t.TempDir(), "nested", "data.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpenPathIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	for i := 0; i < 2; i++ {
		database, err := OpenPath(path)
		if err != nil {
			t.Fatalf("open %d failed: %v", i, err)
		}
		var n int
		if err := database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
			t.Fatalf("count migrations: %v", err)
		}
		if n != 1 {
			t.Fatalf("schema_migrations rows = %d, want 1", n)
		}
		database.Close()
	}
}

func TestEnsureVideo(t *testing.T) {
	database := openTest(t)

	v, err := EnsureVideo(database, "/videos/Match Day.mp4", 1024, 60)
	if err != nil {
		t.Fatalf("EnsureVideo failed: %v", err)
	}
	if v.Filename != "Match Day.mp4" || v.Extension != "mp4" {
		t.Fatalf("unexpected video: %+v", v)
	}

	again, err := EnsureVideo(database, "/videos/Match Day.mp4", 2048, 61.5)
	if err != nil {
		t.Fatalf("EnsureVideo again failed: %v", err)
	}
	if again.ID != v.ID {
		t.Fatalf("EnsureVideo inserted a duplicate: %d vs %d", again.ID, v.ID)
	}
	if again.Filesize != 2048 || again.Duration != 61.5 {
		t.Fatalf("probe values not refreshed: %+v", again)
	}
}

func TestTrimLifecycle(t *testing.T) {
	database := openTest(t)
	v, err := EnsureVideo(database, "/videos/a.mp4", 10, 60)
	if err != nil {
		t.Fatalf("EnsureVideo failed: %v", err)
	}

	if _, err := InsertTrim(database, v.ID, 5, 5, ""); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("InsertTrim empty range err = %v, want ErrInvalidRange", err)
	}

	id, err := InsertTrim(database, v.ID, 12.5, 20, "try")
	if err != nil {
		t.Fatalf("InsertTrim failed: %v", err)
	}

	trims, err := ListTrims(database, "")
	if err != nil {
		t.Fatalf("ListTrims failed: %v", err)
	}
	if len(trims) != 1 {
		t.Fatalf("ListTrims returned %d rows, want 1", len(trims))
	}
	got := trims[0]
	if got.ID != id || got.VideoPath != "/videos/a.mp4" || got.Label != "try" || got.Status != StatusSaved {
		t.Fatalf("unexpected trim: %+v", got)
	}
	if got.Duration() != 7.5 {
		t.Fatalf("Duration() = %v, want 7.5", got.Duration())
	}
	if got.StartedAt != nil || got.FinishedAt != nil {
		t.Fatalf("new trim has timestamps: %+v", got)
	}

	other, _ := EnsureVideo(database, "/videos/b.mp4", 10, 30)
	if _, err := InsertTrim(database, other.ID, 0, 3, ""); err != nil {
		t.Fatalf("InsertTrim failed: %v", err)
	}
	byVideo, err := ListTrims(database, "/videos/b.mp4")
	if err != nil {
		t.Fatalf("ListTrims by video failed: %v", err)
	}
	if len(byVideo) != 1 || byVideo[0].VideoID != other.ID {
		t.Fatalf("ListTrims by video = %+v", byVideo)
	}

	if err := DeleteTrim(database, id); err != nil {
		t.Fatalf("DeleteTrim failed: %v", err)
	}
	if err := DeleteTrim(database, id); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("DeleteTrim twice err = %v, want sql.ErrNoRows", err)
	}
	if _, err := SelectTrimByID(database, id); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("SelectTrimByID err = %v, want sql.ErrNoRows", err)
	}
}

func TestExportQueue(t *testing.T) {
	database := openTest(t)
	v, _ := EnsureVideo(database, "/videos/a.mp4", 10, 60)
	first, _ := InsertTrim(database, v.ID, 0, 5, "")
	second, _ := InsertTrim(database, v.ID, 10, 15, "")

	next, err := SelectNextPendingTrim(database)
	if err != nil {
		t.Fatalf("SelectNextPendingTrim failed: %v", err)
	}
	if next != nil {
		t.Fatalf("expected empty queue, got %+v", next)
	}

	if err := QueueTrimExport(database, second, "/out/second.mp4"); err != nil {
		t.Fatalf("QueueTrimExport failed: %v", err)
	}
	if err := QueueTrimExport(database, first, "/out/first.mp4"); err != nil {
		t.Fatalf("QueueTrimExport failed: %v", err)
	}
	if err := QueueTrimExport(database, 999, "/out/x.mp4"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("QueueTrimExport missing err = %v, want sql.ErrNoRows", err)
	}

	next, err = SelectNextPendingTrim(database)
	if err != nil || next == nil {
		t.Fatalf("SelectNextPendingTrim = %v, %v", next, err)
	}
	if next.ID != first || next.OutputPath != "/out/first.mp4" {
		t.Fatalf("expected oldest pending trim first, got %+v", next)
	}

	now := time.Now()
	if err := MarkTrimProcessing(database, first, now); err != nil {
		t.Fatalf("MarkTrimProcessing failed: %v", err)
	}
	if err := QueueTrimExport(database, first, "/out/again.mp4"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("re-queue while processing err = %v, want sql.ErrNoRows", err)
	}

	next, _ = SelectNextPendingTrim(database)
	if next == nil || next.ID != second {
		t.Fatalf("expected second trim next, got %+v", next)
	}

	if n, err := ResetProcessingTrims(database); err != nil || n != 1 {
		t.Fatalf("ResetProcessingTrims = %d, %v; want 1", n, err)
	}
	if err := MarkTrimProcessing(database, first, now); err != nil {
		t.Fatalf("MarkTrimProcessing failed: %v", err)
	}

	if err := MarkTrimComplete(database, first, now); err != nil {
		t.Fatalf("MarkTrimComplete failed: %v", err)
	}
	if err := MarkTrimError(database, second, now, "ffmpeg exploded"); err != nil {
		t.Fatalf("MarkTrimError failed: %v", err)
	}

	done, err := SelectTrimByID(database, first)
	if err != nil {
		t.Fatalf("SelectTrimByID failed: %v", err)
	}
	if done.Status != StatusComplete || done.StartedAt == nil || done.FinishedAt == nil {
		t.Fatalf("unexpected completed trim: %+v", done)
	}
	failed, _ := SelectTrimByID(database, second)
	if failed.Status != StatusError || failed.Log != "ffmpeg exploded" {
		t.Fatalf("unexpected failed trim: %+v", failed)
	}
}

func TestDeleteVideoCascades(t *testing.T) {
	database := openTest(t)
	v, _ := EnsureVideo(database, "/videos/a.mp4", 10, 60)
	if _, err := InsertTrim(database, v.ID, 0, 5, ""); err != nil {
		t.Fatalf("InsertTrim failed: %v", err)
	}
	if _, err := database.Exec("DELETE FROM videos WHERE id = ?", v.ID); err != nil {
		t.Fatalf("delete video: %v", err)
	}
	trims, err := ListTrims(database, "")
	if err != nil {
		t.Fatalf("ListTrims failed: %v", err)
	}
	if len(trims) != 0 {
		t.Fatalf("expected cascade delete, found %d trims", len(trims))
	}
}
