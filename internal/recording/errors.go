package recording

import "errors"

// Start precondition failures. The operation aborts with no partial state
// change; none of these are fatal to the host process.
var (
	ErrAlreadyActive       = errors.New("recording session already active")
	ErrReporterUnavailable = errors.New("reporter unavailable")
	ErrRecorderUnavailable = errors.New("recorder unavailable")
	ErrRecorderStart       = errors.New("recorder start failed")
	ErrRecoveryDirLocked   = errors.New("recovery directory locked by another process")
)
