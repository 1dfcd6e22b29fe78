package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"opportunities-bot/scanner"
)

// Discord caps history reads at 100 messages per request.
const historyPageSize = 100

// sessionPlatform adapts a live Discord session to the scanner.Platform
// interface.
type sessionPlatform struct {
	s *discordgo.Session
}

// NewSessionPlatform wraps a Discord session for the reconciler.
func NewSessionPlatform(s *discordgo.Session) scanner.Platform {
	return &sessionPlatform{s: s}
}

// EachMessage pages through a channel's history newest-first, 100 messages
// at a time, until fn returns false or the channel is exhausted.
func (p *sessionPlatform) EachMessage(channelID string, fn func(scanner.Message) bool) error {
	beforeID := ""
	for {
		msgs, err := p.s.ChannelMessages(channelID, historyPageSize, beforeID, "", "")
		if err != nil {
			return fmt.Errorf("failed to fetch messages for channel %s: %w", channelID, err)
		}
		if len(msgs) == 0 {
			return nil
		}
		for _, m := range msgs {
			if !fn(p.toMessage(m)) {
				return nil
			}
		}
		beforeID = msgs[len(msgs)-1].ID
		if len(msgs) < historyPageSize {
			return nil
		}
	}
}

func (p *sessionPlatform) toMessage(m *discordgo.Message) scanner.Message {
	msg := scanner.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}
	// System messages such as pin notices carry no author.
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.Author = m.Author.Username
		msg.IsSelf = m.Author.ID == p.s.State.User.ID
	}
	return msg
}

func (p *sessionPlatform) DeleteMessage(channelID, messageID string) error {
	return p.s.ChannelMessageDelete(channelID, messageID)
}

func (p *sessionPlatform) SendDirectMessage(userID, content string) error {
	dm, err := p.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel with user %s: %w", userID, err)
	}
	if _, err := p.s.ChannelMessageSend(dm.ID, content); err != nil {
		return fmt.Errorf("failed to send DM to user %s: %w", userID, err)
	}
	return nil
}

func (p *sessionPlatform) SendChannelMessage(channelID, content string) error {
	if _, err := p.s.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

// TargetChannels returns every text channel named name across all guilds
// the session is connected to.
func (p *sessionPlatform) TargetChannels(name string) ([]string, error) {
	var ids []string
	for _, guild := range p.s.State.Guilds {
		channels, err := p.s.GuildChannels(guild.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get channels for guild %s: %w", guild.ID, err)
		}
		for _, ch := range channels {
			if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
				ids = append(ids, ch.ID)
			}
		}
	}
	return ids, nil
}
