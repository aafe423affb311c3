package config

const (
	defaultRecoveryDir      = "~/.local/share/flightrec/recovery"
	defaultLogDir           = "~/.local/share/flightrec/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 60
	defaultDurationSeconds  = 60
	defaultTargetFPS        = 30
	defaultQuality          = 50
	defaultMaxKeptVideos    = 10
	defaultSettleDelayMS    = 500
	defaultProductName      = "flightrec"

	// ViewportSize is the width/height sentinel meaning "use the host viewport size".
	ViewportSize = -1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RecoveryDir: defaultRecoveryDir,
			LogDir:      defaultLogDir,
		},
		Recording: Recording{
			DurationSeconds: defaultDurationSeconds,
			TargetFPS:       defaultTargetFPS,
			Width:           ViewportSize,
			Height:          ViewportSize,
			RecordUI:        true,
			RecordAudio:     false,
			Quality:         defaultQuality,
			MaxKeptVideos:   defaultMaxKeptVideos,
			SettleDelayMS:   defaultSettleDelayMS,
		},
		Reporting: Reporting{
			Enabled:     true,
			ProductName: defaultProductName,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
