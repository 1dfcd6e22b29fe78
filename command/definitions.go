package command

import "github.com/bwmarrin/discordgo"

// SyncCommand defines the structure for the /sync command.
type SyncCommand struct{}

// Definition returns the application command definition.
func (c *SyncCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "sync",
		Description: "Moderate the opportunities channel and forward new forum posts",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:         "channel_id",
				Description:  "Only reconcile this channel (default: every matching channel)",
				Type:         discordgo.ApplicationCommandOptionString,
				Required:     false,
				Autocomplete: true,
			},
		},
	}
}

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}
