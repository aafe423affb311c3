package recording

import (
	appconfig "flightrec/internal/config"
	"flightrec/internal/journal"
)

// Domain bounds for recording parameters. Out-of-range values are clamped,
// never rejected: no component downstream of Clamped ever observes a value
// outside these ranges.
const (
	MinDurationSeconds = 5
	MaxDurationSeconds = 600
	MinFPS             = 10
	MaxFPS             = 120
	MinQuality         = 0
	MaxQuality         = 100

	// ViewportSize is the width/height sentinel meaning "use the host
	// viewport size". The recorder resolves it at start time.
	ViewportSize = -1

	minBitrate = 2_000_000
	maxBitrate = 10_000_000
)

// Config holds the parameters for one recording session.
type Config struct {
	LastSecondsToRecord int
	TargetFPS           int
	Width               int
	Height              int
	RecordUI            bool
	RecordAudio         bool
	QualityPreset       int
}

// FromAppConfig maps the [recording] config section onto a session config.
func FromAppConfig(rc appconfig.Recording) Config {
	return Config{
		LastSecondsToRecord: rc.DurationSeconds,
		TargetFPS:           rc.TargetFPS,
		Width:               rc.Width,
		Height:              rc.Height,
		RecordUI:            rc.RecordUI,
		RecordAudio:         rc.RecordAudio,
		QualityPreset:       rc.Quality,
	}
}

// Clamped returns a copy with every numeric field forced into its domain.
// Non-positive dimensions collapse to the viewport sentinel.
func (c Config) Clamped() Config {
	out := c
	out.LastSecondsToRecord = clampInt(c.LastSecondsToRecord, MinDurationSeconds, MaxDurationSeconds)
	out.TargetFPS = clampInt(c.TargetFPS, MinFPS, MaxFPS)
	out.QualityPreset = clampInt(c.QualityPreset, MinQuality, MaxQuality)
	if out.Width <= 0 {
		out.Width = ViewportSize
	}
	if out.Height <= 0 {
		out.Height = ViewportSize
	}
	return out
}

// Bitrate maps the quality preset monotonically onto the 2-10 Mbps range.
func (c Config) Bitrate() int {
	quality := clampInt(c.QualityPreset, MinQuality, MaxQuality)
	return minBitrate + quality*(maxBitrate-minBitrate)/MaxQuality
}

// Resolution renders the configured dimensions for the metadata record.
func (c Config) Resolution() string {
	return journal.ResolutionString(c.Width, c.Height)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
