// Package utils carries the operator-facing helpers shared across the bot:
// the admin-channel logger and command authorization checks.
package utils

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

var (
	session   *discordgo.Session
	channelID string
)

// InitLogger points the operational logger at a Discord session. Without a
// configured bot.admin_channel_id, entries only go to the process log.
func InitLogger(s *discordgo.Session) {
	session = s
	channelID = viper.GetString("bot.admin_channel_id")
	if channelID == "" {
		log.Warn().Msg("bot.admin_channel_id is not set, channel logging disabled")
	}
}

// Log writes one operational entry to the process log and mirrors it as an
// embed in the admin channel when one is configured.
func Log(level, module, operation, details string) {
	var event *zerolog.Event
	var color int
	switch level {
	case "WARN":
		event = log.Warn()
		color = ColorWarn
	case "ERROR":
		event = log.Error()
		color = ColorError
	default:
		event = log.Info()
		color = ColorInfo
	}
	event.Str("module", module).Str("operation", operation).Msg(details)

	if session == nil || channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Log Level: %s", level),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Module",
				Value:  module,
				Inline: true,
			},
			{
				Name:   "Operation",
				Value:  operation,
				Inline: true,
			},
			{
				Name:  "Details",
				Value: details,
			},
		},
	}

	if _, err := session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Error().Err(err).Msg("Failed to send log embed to admin channel")
	}
}

// Info logs an informational entry.
func Info(module, operation, details string) {
	Log("INFO", module, operation, details)
}

// Warn logs a warning entry.
func Warn(module, operation, details string) {
	Log("WARN", module, operation, details)
}

// Error logs an error entry.
func Error(module, operation, details string) {
	Log("ERROR", module, operation, details)
}
