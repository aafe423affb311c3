package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"flightrec/internal/fileutil"
)

func TestExistsNonEmpty(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.mp4")
	if fileutil.ExistsNonEmpty(missing) {
		t.Fatal("missing file reported non-empty")
	}

	empty := filepath.Join(dir, "empty.mp4")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if fileutil.ExistsNonEmpty(empty) {
		t.Fatal("empty file reported non-empty")
	}

	full := filepath.Join(dir, "full.mp4")
	if err := os.WriteFile(full, []byte("frames"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !fileutil.ExistsNonEmpty(full) {
		t.Fatal("non-empty file reported empty")
	}

	if fileutil.ExistsNonEmpty(dir) {
		t.Fatal("directory reported as non-empty file")
	}
}

func TestCopyFilePreservesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	payload := []byte("circular buffer payload")
	if err := os.WriteFile(src, payload, 0o600); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestMoveFileRemovesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.mp4")
	dst := filepath.Join(dir, "a_crash_recovery.mp4")
	if err := os.WriteFile(src, []byte("video"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := fileutil.MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("expected source removed")
	}
	if !fileutil.ExistsNonEmpty(dst) {
		t.Fatal("expected destination present")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp4")
	dst := filepath.Join(dir, "dst.mp4")
	if err := os.WriteFile(src, []byte("verified payload"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}
	if !fileutil.ExistsNonEmpty(dst) {
		t.Fatal("expected verified copy")
	}
}
