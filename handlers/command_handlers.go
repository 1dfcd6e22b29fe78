package handlers

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"opportunities-bot/bot"
	"opportunities-bot/utils"
)

// HandleSync handles the logic for the /sync command. The interaction gets
// an immediate ephemeral acknowledgment; the reconciliation itself runs in
// the background and reports back in a followup message. A channel_id
// argument must resolve to a channel carrying the target name; anything
// else is refused before a pass starts.
func HandleSync(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}

	var channelID string
	if opt, ok := optionMap["channel_id"]; ok {
		channelID = opt.StringValue()
	}
	if channelID != "" {
		channel, err := s.State.Channel(channelID)
		if err != nil {
			channel, err = s.Channel(channelID)
		}
		if err != nil || channel.Name != b.Reconciler.TargetChannel() {
			s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("🚫 Channel `%s` is not a **%s** channel.",
						channelID, b.Reconciler.TargetChannel()),
					Flags: discordgo.MessageFlagsEphemeral,
				},
			})
			return
		}
	}

	initialResponse := "Received command to sync every opportunities channel. Starting..."
	if channelID != "" {
		initialResponse = fmt.Sprintf("Received command to sync channel **%s**. Starting...", channelID)
	}
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: initialResponse,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})

	go func() {
		var err error
		if channelID == "" {
			b.Reconciler.ReconcileAll(context.Background())
		} else {
			err = b.Reconciler.Reconcile(context.Background(), channelID)
		}

		followupContent := "✅ Sync has completed."
		if err != nil {
			log.Error().Err(err).Str("channel_id", channelID).Msg("Manual sync failed")
			utils.Error("scanner", "manual_sync", err.Error())
			followupContent = fmt.Sprintf("❌ Sync failed: %v", err)
		} else {
			utils.Info("scanner", "manual_sync", "Manual sync pass completed.")
		}
		s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: followupContent,
		})
	}()
}

// HandlePing handles the logic for the /ping command.
func HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Pong!",
		},
	})
}
