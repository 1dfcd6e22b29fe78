package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"opportunities-bot/bot"
)

// Discord shows at most 25 autocomplete choices.
const maxChoices = 25

// HandleAutocomplete handles all autocomplete interactions.
func HandleAutocomplete(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "sync":
		for _, opt := range data.Options {
			if opt.Name == "channel_id" && opt.Focused {
				handleChannelAutocomplete(b, s, i)
			}
		}
	}
}

// handleChannelAutocomplete suggests the opportunities channels the bot can
// see, one per guild carrying the target name.
func handleChannelAutocomplete(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := b.Reconciler.TargetChannel()

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, guild := range s.State.Guilds {
		channels, err := s.GuildChannels(guild.ID)
		if err != nil {
			log.Error().Err(err).Str("guild_id", guild.ID).Msg("Failed to list channels for autocomplete")
			continue
		}
		for _, ch := range channels {
			if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == target {
				choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
					Name:  fmt.Sprintf("#%s in %s", ch.Name, guild.Name),
					Value: ch.ID,
				})
			}
		}
	}
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Error responding to autocomplete interaction")
	}
}
