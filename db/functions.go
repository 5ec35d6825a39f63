package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidRange is returned when a trim's finish is not after its start.
var ErrInvalidRange = errors.New("trim finish must be after start")

// EnsureVideo returns the videos row for path, inserting it if missing.
// filesize and duration are refreshed when they differ from the stored values.
func EnsureVideo(database *sql.DB, path string, filesize int64, duration float64) (*Video, error) {
	var v Video
	err := database.QueryRow(SelectVideoByPathSQL, path).Scan(&v.ID, &v.Path, &v.Filename, &v.Extension, &v.Filesize, &v.Duration)
	if err == nil {
		if v.Filesize != filesize || v.Duration != duration {
			if _, err := database.Exec(UpdateVideoProbeSQL, filesize, duration, v.ID); err != nil {
				return nil, fmt.Errorf("update video: %w", err)
			}
			v.Filesize, v.Duration = filesize, duration
		}
		return &v, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("select video by path: %w", err)
	}

	v = Video{
		Path:      path,
		Filename:  filepath.Base(path),
		Extension: strings.TrimPrefix(filepath.Ext(path), "."),
		Filesize:  filesize,
		Duration:  duration,
	}
	result, err := database.Exec(InsertVideoSQL, v.Path, v.Filename, v.Extension, v.Filesize, v.Duration)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	if v.ID, err = result.LastInsertId(); err != nil {
		return nil, fmt.Errorf("get video id: %w", err)
	}
	return &v, nil
}

// InsertTrim stores a trim range for a video and returns its ID.
func InsertTrim(database *sql.DB, videoID int64, start, finish float64, label string) (int64, error) {
	if finish <= start {
		return 0, ErrInvalidRange
	}
	result, err := database.Exec(InsertTrimSQL, videoID, start, finish, label)
	if err != nil {
		return 0, fmt.Errorf("insert trim: %w", err)
	}
	return result.LastInsertId()
}

// ListTrims returns every trim ordered by ID. A non-empty videoPath limits the
// result to that video.
func ListTrims(database *sql.DB, videoPath string) ([]Trim, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if videoPath == "" {
		rows, err = database.Query(SelectTrimsSQL)
	} else {
		rows, err = database.Query(SelectTrimsByVideoSQL, videoPath)
	}
	if err != nil {
		return nil, fmt.Errorf("select trims: %w", err)
	}
	defer rows.Close()

	var trims []Trim
	for rows.Next() {
		t, err := scanTrim(rows)
		if err != nil {
			return nil, err
		}
		trims = append(trims, *t)
	}
	return trims, rows.Err()
}

// SelectTrimByID returns a single trim. sql.ErrNoRows is returned unwrapped
// when the trim does not exist.
func SelectTrimByID(database *sql.DB, id int64) (*Trim, error) {
	t, err := scanTrim(database.QueryRow(SelectTrimByIDSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	return t, err
}

// DeleteTrim deletes a trim by ID.
func DeleteTrim(database *sql.DB, id int64) error {
	result, err := database.Exec(DeleteTrimSQL, id)
	if err != nil {
		return fmt.Errorf("delete trim: %w", err)
	}
	return requireRow(result)
}

// QueueTrimExport marks a trim pending so the export worker picks it up.
// A trim that is currently processing is left alone and reports sql.ErrNoRows.
func QueueTrimExport(database *sql.DB, id int64, outputPath string) error {
	result, err := database.Exec(QueueTrimExportSQL, outputPath, id)
	if err != nil {
		return fmt.Errorf("queue trim export: %w", err)
	}
	return requireRow(result)
}

// SelectNextPendingTrim returns the oldest pending trim, or nil if none.
func SelectNextPendingTrim(database *sql.DB) (*Trim, error) {
	t, err := scanTrim(database.QueryRow(SelectNextPendingTrimSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select next pending trim: %w", err)
	}
	return t, nil
}

// MarkTrimProcessing moves a trim to processing.
func MarkTrimProcessing(database *sql.DB, id int64, startedAt time.Time) error {
	if _, err := database.Exec(MarkTrimProcessingSQL, startedAt, id); err != nil {
		return fmt.Errorf("mark trim processing: %w", err)
	}
	return nil
}

// MarkTrimComplete moves a trim to complete.
func MarkTrimComplete(database *sql.DB, id int64, finishedAt time.Time) error {
	if _, err := database.Exec(MarkTrimCompleteSQL, finishedAt, id); err != nil {
		return fmt.Errorf("mark trim complete: %w", err)
	}
	return nil
}

// MarkTrimError moves a trim to error and stores the ffmpeg output.
func MarkTrimError(database *sql.DB, id int64, finishedAt time.Time, logMsg string) error {
	if _, err := database.Exec(MarkTrimErrorSQL, finishedAt, logMsg, id); err != nil {
		return fmt.Errorf("mark trim error: %w", err)
	}
	return nil
}

// ResetProcessingTrims re-queues trims left processing by a previous run.
func ResetProcessingTrims(database *sql.DB) (int64, error) {
	result, err := database.Exec(ResetProcessingTrimsSQL)
	if err != nil {
		return 0, fmt.Errorf("reset processing trims: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrim(s scanner) (*Trim, error) {
	var t Trim
	var startedAt, finishedAt sql.NullTime
	err := s.Scan(&t.ID, &t.VideoID, &t.VideoPath, &t.Start, &t.Finish, &t.Label, &t.Status,
		&t.OutputPath, &t.Log, &t.CreatedAt, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	if startedAt.Valid {
		t.StartedAt = &startedAt.Time
	}
	if finishedAt.Valid {
		t.FinishedAt = &finishedAt.Time
	}
	return &t, nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
