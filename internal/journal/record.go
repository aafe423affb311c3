package journal

import (
	"fmt"
	"strings"
	"time"
)

// Status describes where a recording session was in its lifecycle when the
// metadata record was last written.
type Status string

const (
	// StatusRecording means the session was live; the circular buffer was
	// memory-resident and no artifact is expected on disk.
	StatusRecording Status = "RECORDING"
	// StatusCrashRecorded means the crash-time finalize flushed the buffer
	// and the crash artifact was handed to the reporter before exit.
	StatusCrashRecorded Status = "CRASH_RECORDED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusRecording || s == StatusCrashRecorded
}

// Record is the durable description of one in-flight recording session.
// Its existence after a process restart implies the prior process did not
// stop cleanly. The record is an index only; the artifact file on disk is
// the ground truth consulted during recovery.
type Record struct {
	VideoPath      string
	CrashVideoPath string
	Status         Status
	StartTime      time.Time
	Duration       int
	FPS            int
	Resolution     string

	// MetaPath is where this record was read from. Not serialized.
	MetaPath string
}

// Malformed reports whether the record is unusable for recovery. A record
// without a video path cannot be reconciled against any artifact.
func (r Record) Malformed() bool {
	return strings.TrimSpace(r.VideoPath) == ""
}

// ResolutionString formats a width/height pair using the -1 viewport sentinel
// untouched.
func ResolutionString(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}
