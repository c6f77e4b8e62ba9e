package config

import (
	"errors"
	"fmt"
)

var knownPriorities = map[string]struct{}{
	"low":    {},
	"medium": {},
	"high":   {},
	"urgent": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.NotificationsDir == "" {
		return errors.New("paths.notifications_dir must be set")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if _, ok := knownPriorities[c.Workflow.DefaultPriority]; !ok {
		return fmt.Errorf("workflow.default_priority: unknown priority %q", c.Workflow.DefaultPriority)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
