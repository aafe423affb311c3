package recovery_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"flightrec/internal/journal"
	"flightrec/internal/logging"
	"flightrec/internal/recovery"
	"flightrec/internal/testsupport"
)

func newScanner(t *testing.T) (*recovery.Scanner, *journal.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := journal.NewStore(dir)
	return recovery.NewScanner(store, logging.NewNop()), store, dir
}

func TestReconcileCrashRecordedWithDeliveredArtifact(t *testing.T) {
	scanner, store, dir := newScanner(t)

	videoPath := filepath.Join(dir, "capture.mp4")
	crashPath := journal.CrashVideoPathFor(videoPath)
	testsupport.WriteFile(t, crashPath, 1024)
	mustWrite(t, store, journal.Record{
		VideoPath:      videoPath,
		CrashVideoPath: crashPath,
		Status:         journal.StatusCrashRecorded,
	})

	report, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.ArtifactsRemoved != 1 || report.RecordsRemoved != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if _, err := os.Stat(crashPath); !os.IsNotExist(err) {
		t.Fatal("delivered crash artifact must be deleted, not re-sent")
	}
	if _, err := os.Stat(journal.MetaPathFor(videoPath)); !os.IsNotExist(err) {
		t.Fatal("metadata record must be deleted")
	}
}

func TestReconcileCrashRecordedWithEmptyArtifact(t *testing.T) {
	scanner, store, dir := newScanner(t)

	videoPath := filepath.Join(dir, "capture.mp4")
	crashPath := journal.CrashVideoPathFor(videoPath)
	if err := os.WriteFile(crashPath, nil, 0o644); err != nil {
		t.Fatalf("write empty artifact: %v", err)
	}
	mustWrite(t, store, journal.Record{
		VideoPath:      videoPath,
		CrashVideoPath: crashPath,
		Status:         journal.StatusCrashRecorded,
	})

	report, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.ArtifactsRemoved != 1 || report.RecordsRemoved != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if _, err := os.Stat(crashPath); !os.IsNotExist(err) {
		t.Fatal("empty crash artifact must be deleted")
	}
}

func TestReconcileCrashRecordedWithAbsentArtifact(t *testing.T) {
	scanner, store, dir := newScanner(t)

	videoPath := filepath.Join(dir, "capture.mp4")
	mustWrite(t, store, journal.Record{
		VideoPath: videoPath,
		Status:    journal.StatusCrashRecorded,
	})

	report, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.ArtifactsRemoved != 0 {
		t.Fatalf("no artifact to remove, got %+v", report)
	}
	if report.RecordsRemoved != 1 {
		t.Fatalf("record must be removed, got %+v", report)
	}
}

func TestReconcileRecordingStatusDeletesOnlyRecord(t *testing.T) {
	scanner, store, dir := newScanner(t)

	videoPath := filepath.Join(dir, "capture.mp4")
	mustWrite(t, store, journal.Record{
		VideoPath: videoPath,
		Status:    journal.StatusRecording,
	})

	report, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.RecordsRemoved != 1 || report.ArtifactsRemoved != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestReconcileRecordingStatusDeletesOrphanedVideo(t *testing.T) {
	scanner, store, dir := newScanner(t)

	videoPath := filepath.Join(dir, "capture.mp4")
	testsupport.WriteFile(t, videoPath, 64)
	mustWrite(t, store, journal.Record{
		VideoPath: videoPath,
		Status:    journal.StatusRecording,
	})

	report, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.ArtifactsRemoved != 1 || report.RecordsRemoved != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if _, err := os.Stat(videoPath); !os.IsNotExist(err) {
		t.Fatal("orphaned video must be deleted")
	}
}

func TestReconcileMalformedRecord(t *testing.T) {
	scanner, _, dir := newScanner(t)

	metaPath := filepath.Join(dir, "orphan.meta")
	if err := os.WriteFile(metaPath, []byte("Status=RECORDING\n"), 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	report, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.MalformedRemoved != 1 {
		t.Fatalf("malformed record must be removed: %+v", report)
	}
	if _, err := os.Stat(metaPath); !os.IsNotExist(err) {
		t.Fatal("malformed metadata file must be deleted")
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	scanner, store, dir := newScanner(t)

	videoPath := filepath.Join(dir, "capture.mp4")
	crashPath := journal.CrashVideoPathFor(videoPath)
	testsupport.WriteFile(t, crashPath, 256)
	mustWrite(t, store, journal.Record{
		VideoPath:      videoPath,
		CrashVideoPath: crashPath,
		Status:         journal.StatusCrashRecorded,
	})

	first, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	if first.Empty() {
		t.Fatal("first pass should have effects")
	}

	second, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if !second.Empty() {
		t.Fatalf("second pass must be a no-op, got %+v", second)
	}
	if second.RecordsScanned != 0 {
		t.Fatalf("no records should remain, scanned %d", second.RecordsScanned)
	}
}

func TestReconcileEmptyDirectory(t *testing.T) {
	scanner, _, _ := newScanner(t)
	report, err := scanner.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !report.Empty() || report.RecordsScanned != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func mustWrite(t *testing.T, store *journal.Store, rec journal.Record) {
	t.Helper()
	if err := store.Write(rec); err != nil {
		t.Fatalf("store.Write: %v", err)
	}
}
