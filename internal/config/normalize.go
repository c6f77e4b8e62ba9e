package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWorkflow()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.NotificationsDir) == "" {
		c.Paths.NotificationsDir = defaultNotificationsDir
	}
	if c.Paths.NotificationsDir, err = expandPath(c.Paths.NotificationsDir); err != nil {
		return fmt.Errorf("paths.notifications_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWorkflow() {
	c.Workflow.DefaultPriority = strings.ToLower(strings.TrimSpace(c.Workflow.DefaultPriority))
	if c.Workflow.DefaultPriority == "" {
		c.Workflow.DefaultPriority = defaultPriority
	}
}

func (c *Config) normalizeNotifications() {
	if c.Notifications.PruneAfterDays < 0 {
		c.Notifications.PruneAfterDays = 0
	}
	if c.Notifications.MaxUnreadDisplay <= 0 {
		c.Notifications.MaxUnreadDisplay = defaultMaxUnreadDisplay
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
}
