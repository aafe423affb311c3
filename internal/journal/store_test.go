package journal_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flightrec/internal/journal"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := journal.NewStore(dir)

	start := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	rec := journal.Record{
		VideoPath:  filepath.Join(dir, "capture_001.mp4"),
		Status:     journal.StatusRecording,
		StartTime:  start,
		Duration:   60,
		FPS:        30,
		Resolution: journal.ResolutionString(-1, -1),
	}
	if err := store.Write(rec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.VideoPath != rec.VideoPath {
		t.Fatalf("video path mismatch: %q", got.VideoPath)
	}
	if got.Status != journal.StatusRecording {
		t.Fatalf("status mismatch: %q", got.Status)
	}
	if !got.StartTime.Equal(start) {
		t.Fatalf("start time mismatch: %v", got.StartTime)
	}
	if got.Duration != 60 || got.FPS != 30 {
		t.Fatalf("duration/fps mismatch: %d/%d", got.Duration, got.FPS)
	}
	if got.Resolution != "-1x-1" {
		t.Fatalf("resolution mismatch: %q", got.Resolution)
	}
	if got.MetaPath != journal.MetaPathFor(rec.VideoPath) {
		t.Fatalf("meta path mismatch: %q", got.MetaPath)
	}
}

func TestWriteOverwritesExistingRecord(t *testing.T) {
	dir := t.TempDir()
	store := journal.NewStore(dir)
	videoPath := filepath.Join(dir, "capture.mp4")

	if err := store.Write(journal.Record{VideoPath: videoPath, Status: journal.StatusRecording}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	updated := journal.Record{
		VideoPath:      videoPath,
		CrashVideoPath: journal.CrashVideoPathFor(videoPath),
		Status:         journal.StatusCrashRecorded,
	}
	if err := store.Write(updated); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected single record after rewrite, got %d", len(records))
	}
	if records[0].Status != journal.StatusCrashRecorded {
		t.Fatalf("status not updated: %q", records[0].Status)
	}
	if records[0].CrashVideoPath != updated.CrashVideoPath {
		t.Fatalf("crash path not persisted: %q", records[0].CrashVideoPath)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store := journal.NewStore(dir)
	videoPath := filepath.Join(dir, "capture.mp4")

	if err := store.Write(journal.Record{VideoPath: videoPath, Status: journal.StatusRecording}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Remove(videoPath); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(videoPath); err != nil {
		t.Fatalf("second Remove should be a no-op: %v", err)
	}

	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestReadAllToleratesPartialAndUnknownLines(t *testing.T) {
	dir := t.TempDir()
	store := journal.NewStore(dir)

	content := "VideoPath=/tmp/clip.mp4\nGarbageWithoutSeparator\nFutureKey=whatever\nStatus=RECORDING\nDuration=not-a-number\nFPS=24\n"
	if err := os.WriteFile(filepath.Join(dir, "clip.meta"), []byte(content), 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.VideoPath != "/tmp/clip.mp4" {
		t.Fatalf("video path mismatch: %q", rec.VideoPath)
	}
	if rec.Status != journal.StatusRecording {
		t.Fatalf("status mismatch: %q", rec.Status)
	}
	if rec.Duration != 0 {
		t.Fatalf("unparseable duration should stay zero, got %d", rec.Duration)
	}
	if rec.FPS != 24 {
		t.Fatalf("fps mismatch: %d", rec.FPS)
	}
}

func TestReadAllFlagsRecordWithoutVideoPath(t *testing.T) {
	dir := t.TempDir()
	store := journal.NewStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "orphan.meta"), []byte("Status=RECORDING\n"), 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].Malformed() {
		t.Fatal("record without VideoPath should be malformed")
	}
}

func TestReadAllMissingDirectory(t *testing.T) {
	store := journal.NewStore(filepath.Join(t.TempDir(), "never-created"))
	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on missing dir: %v", err)
	}
	if records != nil {
		t.Fatalf("expected nil records, got %v", records)
	}
}

func TestNamingHelpers(t *testing.T) {
	if got := journal.MetaPathFor("/rec/capture_01.mp4"); got != "/rec/capture_01.meta" {
		t.Fatalf("MetaPathFor: %q", got)
	}
	if got := journal.CrashVideoPathFor("/rec/capture_01.mp4"); got != "/rec/capture_01_crash_recovery.mp4" {
		t.Fatalf("CrashVideoPathFor: %q", got)
	}
}
