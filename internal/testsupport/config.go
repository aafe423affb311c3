package testsupport

import (
	"path/filepath"
	"testing"

	"flightrec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.RecoveryDir = filepath.Join(base, "recovery")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	// Keep the flush settle negligible so session tests stay fast.
	cfg.Recording.SettleDelayMS = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithMaxKept overrides the retention limit on the test config.
func WithMaxKept(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Recording.MaxKeptVideos = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RecoveryDir)
}
