// Package journal persists recovery metadata for in-flight recording
// sessions.
//
// Each active session owns exactly one .meta file in the recovery
// directory, written when recording starts and removed on a clean stop.
// The file is a minimal write-ahead record: small, written atomically,
// and parsed tolerantly so a crash mid-write never blocks recovery.
package journal
