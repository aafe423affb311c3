package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Recording parameters are not
// range-checked here: the session clamps them into their domain at start.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRecording(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.RecoveryDir == "" {
		return errors.New("paths.recovery_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.RecoveryDir == c.Paths.LogDir {
		return errors.New("paths.recovery_dir and paths.log_dir must be distinct directories")
	}
	return nil
}

func (c *Config) validateRecording() error {
	if c.Recording.SettleDelayMS > 5000 {
		return fmt.Errorf("recording.settle_delay_ms must not exceed 5000, got %d", c.Recording.SettleDelayMS)
	}
	if c.Recording.MaxKeptVideos > 1000 {
		return fmt.Errorf("recording.max_kept_videos must not exceed 1000, got %d", c.Recording.MaxKeptVideos)
	}
	return nil
}
