// Package recording implements the crash-safe recording session lifecycle.
//
// A session wraps an external circular-buffer Recorder and an external
// crash Reporter. While recording, a durable metadata record marks the
// session as in flight; a clean stop removes it. If the process dies first,
// the record is reconciled by the recovery scanner on the next start. The
// only in-flight coordination that survives a crash is this file-system
// state.
package recording
