package config

const (
	defaultDataDir          = "~/.local/share/rinna"
	defaultLogDir           = "~/.local/share/rinna/logs"
	defaultNotificationsDir = "~/.local/share/rinna/notifications"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultPriority         = "medium"
	defaultPruneAfterDays   = 30
	defaultMaxUnreadDisplay = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:          defaultDataDir,
			LogDir:           defaultLogDir,
			NotificationsDir: defaultNotificationsDir,
		},
		Workflow: Workflow{
			DefaultPriority: defaultPriority,
		},
		Notifications: Notifications{
			Enabled:          true,
			Assignment:       true,
			Update:           true,
			Completion:       true,
			Attention:        true,
			System:           true,
			PruneAfterDays:   defaultPruneAfterDays,
			MaxUnreadDisplay: defaultMaxUnreadDisplay,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
