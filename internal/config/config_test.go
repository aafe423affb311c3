package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flightrec/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantRecovery := filepath.Join(tempHome, ".local", "share", "flightrec", "recovery")
	if cfg.Paths.RecoveryDir != wantRecovery {
		t.Fatalf("unexpected recovery dir: got %q want %q", cfg.Paths.RecoveryDir, wantRecovery)
	}
	if !filepath.IsAbs(cfg.Paths.LogDir) {
		t.Fatalf("expected absolute log dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.Recording.DurationSeconds != 60 {
		t.Fatalf("unexpected default duration: %d", cfg.Recording.DurationSeconds)
	}
	if cfg.Recording.Width != config.ViewportSize || cfg.Recording.Height != config.ViewportSize {
		t.Fatalf("expected viewport sentinel resolution, got %dx%d", cfg.Recording.Width, cfg.Recording.Height)
	}
	if !cfg.Reporting.Enabled {
		t.Fatal("expected reporting enabled by default")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if got, want := cfg.HistoryDBPath(), filepath.Join(cfg.Paths.LogDir, "history.db"); got != want {
		t.Fatalf("unexpected history db path: got %q want %q", got, want)
	}
}

func TestLoadExplicitConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`recovery_dir = "` + filepath.Join(dir, "rec") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		"",
		"[recording]",
		"duration_seconds = 120",
		"target_fps = 60",
		"quality = 80",
		"record_audio = true",
		"",
		"[logging]",
		`format = "JSON"`,
		`level = "DEBUG"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Recording.DurationSeconds != 120 || cfg.Recording.TargetFPS != 60 {
		t.Fatalf("unexpected recording overrides: %+v", cfg.Recording)
	}
	if !cfg.Recording.RecordAudio {
		t.Fatal("expected record_audio override")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected format normalized to json, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected level normalized to debug, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsSharedDirectories(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.RecoveryDir = "/tmp/flightrec-shared"
	cfg.Paths.LogDir = "/tmp/flightrec-shared"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for shared recovery/log dir")
	}
}

func TestValidateRejectsExcessiveSettleDelay(t *testing.T) {
	cfg := config.Default()
	cfg.Recording.SettleDelayMS = 60000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for settle delay")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[recording]") {
		t.Fatal("sample config missing [recording] section")
	}

	// The sample must itself load cleanly.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
