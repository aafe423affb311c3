// Package recovery reconciles recording state left behind by a process
// that terminated without a clean stop.
//
// The scanner runs at session start, before the new session writes its own
// metadata record, so a scan never observes live state. Exactly-once
// delivery of crash artifacts is enforced structurally: recovery deletes,
// it never attaches.
package recovery
