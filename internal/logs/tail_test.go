package logs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLastLinesReturnsTrailingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightrec.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, offset, err := LastLines(path, 2)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("unexpected lines: %v", lines)
	}
	if offset == 0 {
		t.Fatal("expected non-zero offset")
	}
}

func TestLastLinesMissingFile(t *testing.T) {
	lines, offset, err := LastLines(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %v at %d", lines, offset)
	}
}

func TestLastLinesFewerThanLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightrec.log")
	if err := os.WriteFile(path, []byte("only\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, _, err := LastLines(path, 10)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightrec.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	_, offset, err := LastLines(path, 1)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := f.WriteString("new\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var got []string
	err = Follow(ctx, path, offset, time.Millisecond, func(line string) {
		got = append(got, line)
		cancel()
	})
	if err != nil && err != context.Canceled {
		t.Fatalf("Follow: %v", err)
	}
	if len(got) != 1 || got[0] != "new" {
		t.Fatalf("unexpected lines: %v", got)
	}
}
