package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// CrashSuffix distinguishes crash-time recovery encodes from ordinary
	// artifacts: {base}_crash_recovery.mp4.
	CrashSuffix = "_crash_recovery"

	// VideoExt is the artifact extension produced by the recorder.
	VideoExt = ".mp4"

	metaExt         = ".meta"
	startTimeLayout = time.RFC3339
)

// Store reads and writes recovery metadata records in a single directory.
// At most one process writes at a time; recovery only reads records left by
// a terminated process, so no locking is required here.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the recovery directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// MetaPathFor maps an artifact path to its metadata record path.
func MetaPathFor(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + metaExt
}

// CrashVideoPathFor maps an artifact path to its crash-recovery variant.
func CrashVideoPathFor(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + CrashSuffix + ext
}

// Write persists the record atomically (temp file + rename) keyed by the
// record's video path. The write is small and must remain so: it happens on
// the session start path and, during a crash, on the finalize path.
func (s *Store) Write(rec Record) error {
	if rec.Malformed() {
		return fmt.Errorf("write metadata: record has no video path")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ensure recovery directory: %w", err)
	}

	var b strings.Builder
	writeLine := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	writeLine("VideoPath", rec.VideoPath)
	writeLine("CrashVideoPath", rec.CrashVideoPath)
	writeLine("Status", string(rec.Status))
	if !rec.StartTime.IsZero() {
		writeLine("StartTime", rec.StartTime.UTC().Format(startTimeLayout))
	}
	writeLine("Duration", strconv.Itoa(rec.Duration))
	writeLine("FPS", strconv.Itoa(rec.FPS))
	writeLine("Resolution", rec.Resolution)

	metaPath := MetaPathFor(rec.VideoPath)
	tmpPath := metaPath + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write metadata temp file: %w", err)
	}
	if err := os.Rename(tmpPath, metaPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("commit metadata: %w", err)
	}
	return nil
}

// Remove deletes the metadata record for the given artifact path. A missing
// record is not an error: removal is the clean-shutdown signal and must be
// idempotent.
func (s *Store) Remove(videoPath string) error {
	err := os.Remove(MetaPathFor(videoPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove metadata: %w", err)
	}
	return nil
}

// RemoveRecord deletes the on-disk file a record was read from.
func (s *Store) RemoveRecord(rec Record) error {
	if rec.MetaPath == "" {
		return nil
	}
	err := os.Remove(rec.MetaPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove metadata: %w", err)
	}
	return nil
}

// ReadAll returns every metadata record in the recovery directory, sorted by
// path for stable iteration. Unreadable or partially written files yield
// records with whatever fields survived; they are never fatal.
func (s *Store) ReadAll() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read recovery directory: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metaExt) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		rec, err := readRecord(path)
		if err != nil {
			// Unreadable records are surfaced to the scanner as malformed
			// rather than aborting the whole scan.
			records = append(records, Record{MetaPath: path})
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].MetaPath < records[j].MetaPath })
	return records, nil
}

func readRecord(path string) (Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer file.Close()

	rec := Record{MetaPath: path}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			// Partial write from a crashed process. Skip, not fatal.
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "VideoPath":
			rec.VideoPath = value
		case "CrashVideoPath":
			rec.CrashVideoPath = value
		case "Status":
			rec.Status = Status(value)
		case "StartTime":
			if ts, err := time.Parse(startTimeLayout, value); err == nil {
				rec.StartTime = ts
			}
		case "Duration":
			if n, err := strconv.Atoi(value); err == nil {
				rec.Duration = n
			}
		case "FPS":
			if n, err := strconv.Atoi(value); err == nil {
				rec.FPS = n
			}
		case "Resolution":
			rec.Resolution = value
		}
		// Unknown keys are ignored for forward compatibility.
	}
	// Scan errors leave rec holding whatever fields parsed before the
	// failure, which is all a crashed writer guarantees anyway.
	return rec, nil
}
