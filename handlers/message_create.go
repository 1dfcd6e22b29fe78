package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"opportunities-bot/bot"
	"opportunities-bot/scanner"
	"opportunities-bot/utils"
)

// MessageCreate moderates new messages as they arrive: a human post in the
// opportunities channel is removed on the spot and its author pointed at
// the forum. Direct messages to the bot just get a heart.
func MessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore all messages created by the bot itself.
		if m.Author == nil || m.Author.ID == s.State.User.ID {
			return
		}

		// A message without a guild is a DM.
		if m.GuildID == "" {
			if err := s.MessageReactionAdd(m.ChannelID, m.ID, "❤️"); err != nil {
				log.Debug().Err(err).Str("message_id", m.ID).Msg("Failed to react to DM")
			}
			return
		}

		channel, err := s.State.Channel(m.ChannelID)
		if err != nil {
			channel, err = s.Channel(m.ChannelID)
			if err != nil {
				log.Error().Err(err).Str("channel_id", m.ChannelID).Msg("Failed to resolve channel")
				return
			}
		}
		if channel.Name != b.Reconciler.TargetChannel() {
			return
		}

		log.Info().
			Str("channel_id", m.ChannelID).
			Str("author", m.Author.Username).
			Msg("Human post in the opportunities channel, removing")

		msg := scanner.Message{
			ID:        m.ID,
			ChannelID: m.ChannelID,
			AuthorID:  m.Author.ID,
			Author:    m.Author.Username,
			Content:   m.Content,
		}
		if err := b.Reconciler.RemoveDisallowed(msg); err != nil {
			log.Error().Err(err).Str("message_id", m.ID).Msg("Failed to remove disallowed post")
			utils.Error("moderator", "remove_post", err.Error())
			return
		}
		utils.Info("moderator", "remove_post",
			fmt.Sprintf("Removed a post from %s in #%s", m.Author.Username, channel.Name))
	}
}
