package preflight

import (
	"flightrec/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// MinFreeBytes is the free-space floor for the recovery directory. A full
// ten-minute buffer at the top bitrate stays well under it.
const MinFreeBytes uint64 = 512 << 20

// RunAll executes all environment checks for the given config. Checks never
// abort early; callers get the complete picture in one pass.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Recovery directory", cfg.Paths.RecoveryDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckFreeSpace("Recovery free space", cfg.Paths.RecoveryDir, MinFreeBytes))

	return results
}

// Healthy reports whether every result passed.
func Healthy(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
