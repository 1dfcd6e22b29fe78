package scanner

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// moderate removes every human message sitting above the bot's most recent
// own post in the channel. If the bot has never posted there, nothing is
// deleted: at least one own message must anchor the scan before any history
// is purged.
//
// Failures on individual messages are logged and counted, and the pass
// moves on to the next message. Only a failure to read the history itself
// aborts the pass.
func (r *Reconciler) moderate(channelID string) error {
	var candidates []Message
	anchored := false
	err := r.platform.EachMessage(channelID, func(m Message) bool {
		if m.IsSelf {
			anchored = true
			return false
		}
		candidates = append(candidates, m)
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to list history for channel %s: %w", channelID, err)
	}

	if !anchored {
		if len(candidates) > 0 {
			log.Warn().
				Str("channel_id", channelID).
				Int("messages", len(candidates)).
				Msg("No own message found in channel, skipping moderation")
		}
		return nil
	}

	removed := 0
	for _, m := range candidates {
		if err := r.RemoveDisallowed(m); err != nil {
			log.Error().
				Err(err).
				Str("channel_id", channelID).
				Str("message_id", m.ID).
				Str("author", m.Author).
				Msg("Failed to moderate message")
			continue
		}
		removed++
	}
	if len(candidates) > 0 {
		log.Info().
			Str("channel_id", channelID).
			Int("flagged", len(candidates)).
			Int("removed", removed).
			Msg("Moderation pass finished")
	}
	return nil
}

// RemoveDisallowed deletes a message posted by someone other than the bot
// and tells its author where opportunities belong. The notice carries the
// complete original text, split over several direct messages when it does
// not fit into one. Notification is skipped when the deletion fails.
func (r *Reconciler) RemoveDisallowed(m Message) error {
	if err := r.platform.DeleteMessage(m.ChannelID, m.ID); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", m.ID, err)
	}
	for _, chunk := range chunkMessage(r.removalNotice(m.Content), maxMessageLen) {
		if err := r.platform.SendDirectMessage(m.AuthorID, chunk); err != nil {
			return fmt.Errorf("failed to notify author %s: %w", m.AuthorID, err)
		}
	}
	return nil
}

// removalNotice is the direct message sent to the author of a removed post,
// carrying their original text and the forum URL to repost it to.
func (r *Reconciler) removalNotice(original string) string {
	return fmt.Sprintf(
		"Only the bot may post in the %s channel. Please post opportunities here: %s\n\nYour original message:\n%s",
		r.target, r.forum.PostToURL(), original)
}
