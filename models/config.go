// Package models holds the configuration records the rest of the bot
// decodes from config.yaml.
package models

// BotConfig represents the "bot" section of config.yaml. The section also
// carries admin_channel_id, read directly by the utils logger.
type BotConfig struct {
	// TargetChannel is the display name of the channel the bot curates.
	TargetChannel string `mapstructure:"target_channel"`
	// SyncSchedule is a cron expression for periodic reconciliation.
	SyncSchedule string `mapstructure:"sync_schedule"`
	// SyncAtStartup runs one reconciliation pass right after connecting.
	SyncAtStartup bool `mapstructure:"sync_at_startup"`
}

// ForumConfig represents the "forum" section of config.yaml.
type ForumConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Repo     string `mapstructure:"repo"`
	Category string `mapstructure:"category"`
}

// CommandsConfig represents the "commands" section of config.yaml.
type CommandsConfig struct {
	Auth AuthConfig `mapstructure:"auth"`
}

// AuthConfig lists who may run privileged commands.
type AuthConfig struct {
	Developers  []string `mapstructure:"developers"`
	AdminsRoles []string `mapstructure:"admins_roles"`
}
