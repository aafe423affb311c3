package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRecording()
	c.normalizeReporting()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.RecoveryDir) == "" {
		c.Paths.RecoveryDir = defaultRecoveryDir
	}
	if c.Paths.RecoveryDir, err = expandPath(c.Paths.RecoveryDir); err != nil {
		return fmt.Errorf("paths.recovery_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) != "" {
		if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
			return fmt.Errorf("paths.history_db: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeRecording() {
	if c.Recording.MaxKeptVideos <= 0 {
		c.Recording.MaxKeptVideos = defaultMaxKeptVideos
	}
	if c.Recording.SettleDelayMS <= 0 {
		c.Recording.SettleDelayMS = defaultSettleDelayMS
	}
	if c.Recording.Width == 0 {
		c.Recording.Width = ViewportSize
	}
	if c.Recording.Height == 0 {
		c.Recording.Height = ViewportSize
	}
}

func (c *Config) normalizeReporting() {
	c.Reporting.ProductName = strings.TrimSpace(c.Reporting.ProductName)
	if c.Reporting.ProductName == "" {
		c.Reporting.ProductName = defaultProductName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
