package clip

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/trim-timeline-cli/db"
)

func TestTrimPaths(t *testing.T) {
	tests := []struct {
		name         string
		video        string
		start        float64
		finish       float64
		label        string
		wantFolder   string
		wantFilename string
	}{
		{
			name:         "no label",
			video:        "/videos/Match Day.mp4",
			start:        75,
			finish:       3725.5,
			wantFolder:   "/videos/trims/match_day",
			wantFilename: "000115-010205.mp4",
		},
		{
			name:         "label slugged",
			video:        "/videos/a.mkv",
			start:        0,
			finish:       12,
			label:        "  Great Try!! ",
			wantFolder:   "/videos/trims/a",
			wantFilename: "000000-000012-great_try.mkv",
		},
		{
			name:         "no extension",
			video:        "/videos/raw",
			start:        1,
			finish:       2,
			wantFolder:   "/videos/trims/raw",
			wantFilename: "000001-000002.mp4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, filename := TrimPaths(tt.video, tt.start, tt.finish, tt.label)
			if folder != tt.wantFolder {
				t.Fatalf("folder = %q, want %q", folder, tt.wantFolder)
			}
			if filename != tt.wantFilename {
				t.Fatalf("filename = %q, want %q", filename, tt.wantFilename)
			}
		})
	}
}

func TestExportArgs(t *testing.T) {
	args := strings.Join(ExportArgs("/v.mp4", 12.5, 20, "/o.mp4"), " ")
	for _, want := range []string{"-ss 12.500", "-i /v.mp4", "-t 7.500", "/o.mp4"} {
		if !strings.Contains(args, want) {
			t.Fatalf("args %q missing %q", args, want)
		}
	}
	if strings.Index(args, "-ss") > strings.Index(args, "-i") {
		t.Fatalf("expected input seek before -i: %q", args)
	}
}

func TestExportRejectsEmptyRange(t *testing.T) {
	called := false
	run := func(ctx context.Context, args []string) ([]byte, error) {
		called = true
		return nil, nil
	}
	err := Export(context.Background(), run, "/v.mp4", 5, 5, filepath.Join(t.TempDir(), "o.mp4"))
	if !errors.Is(err, ErrEmptyRange) {
		t.Fatalf("Export err = %v, want ErrEmptyRange", err)
	}
	if called {
		t.Fatal("ffmpeg ran for an empty range")
	}
}

func TestProcessorProcessNext(t *testing.T) {
	database, err := db.OpenPath(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer database.Close()

	v, err := db.EnsureVideo(database, "/videos/a.mp4", 10, 60)
	if err != nil {
		t.Fatalf("EnsureVideo failed: %v", err)
	}
	okID, _ := db.InsertTrim(database, v.ID, 0, 5, "")
	badID, _ := db.InsertTrim(database, v.ID, 10, 15, "")
	outDir := t.TempDir()
	if err := db.QueueTrimExport(database, okID, filepath.Join(outDir, "ok.mp4")); err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	if err := db.QueueTrimExport(database, badID, filepath.Join(outDir, "bad.mp4")); err != nil {
		t.Fatalf("queue failed: %v", err)
	}

	var ran [][]string
	var done []int64
	p := &Processor{
		DB: database,
		Run: func(ctx context.Context, args []string) ([]byte, error) {
			ran = append(ran, args)
			if strings.HasSuffix(args[len(args)-1], "bad.mp4") {
				return []byte("Invalid data found"), errors.New("exit status 1")
			}
			return nil, nil
		},
		OnDone: func(id int64, err error) { done = append(done, id) },
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		worked, err := p.ProcessNext(ctx)
		if err != nil {
			t.Fatalf("ProcessNext %d failed: %v", i, err)
		}
		if !worked {
			t.Fatalf("ProcessNext %d found no work", i)
		}
	}
	if worked, _ := p.ProcessNext(ctx); worked {
		t.Fatal("expected empty queue")
	}

	if len(ran) != 2 || len(done) != 2 || done[0] != okID || done[1] != badID {
		t.Fatalf("ran %d exports, done %v", len(ran), done)
	}

	ok, _ := db.SelectTrimByID(database, okID)
	if ok.Status != db.StatusComplete {
		t.Fatalf("ok trim status = %q", ok.Status)
	}
	bad, _ := db.SelectTrimByID(database, badID)
	if bad.Status != db.StatusError || !strings.Contains(bad.Log, "Invalid data found") {
		t.Fatalf("bad trim = %+v", bad)
	}
}

func TestProcessorClaimFailureReportsNoWork(t *testing.T) {
	database, err := db.OpenPath(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer database.Close()

	v, err := db.EnsureVideo(database, "/videos/a.mp4", 10, 60)
	if err != nil {
		t.Fatalf("EnsureVideo failed: %v", err)
	}
	id, _ := db.InsertTrim(database, v.ID, 0, 5, "")
	if err := db.QueueTrimExport(database, id, filepath.Join(t.TempDir(), "out.mp4")); err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	if _, err := database.Exec(`CREATE TRIGGER refuse_processing BEFORE UPDATE ON trims
		WHEN NEW.status = 'processing'
		BEGIN SELECT RAISE(ABORT, 'database is locked'); END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	ran := 0
	p := &Processor{
		DB: database,
		Run: func(ctx context.Context, args []string) ([]byte, error) {
			ran++
			return nil, nil
		},
	}
	worked, err := p.ProcessNext(context.Background())
	if err == nil {
		t.Fatal("expected the claim to fail")
	}
	if worked {
		t.Fatal("a failed claim must not count as work, or the worker retries without waiting")
	}
	if ran != 0 {
		t.Fatalf("ffmpeg ran %d times for an unclaimed trim", ran)
	}
	if got, _ := db.SelectTrimByID(database, id); got.Status != db.StatusPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}
}
