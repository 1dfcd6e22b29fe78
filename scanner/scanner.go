// Package scanner implements the per-channel reconciliation pass: it removes
// disallowed human posts from the target channel, works out which forum
// discussions were already forwarded, and forwards the new ones in order.
package scanner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"opportunities-bot/forum"
)

// DefaultTargetChannel is the display name of the channel the bot curates.
const DefaultTargetChannel = "opportunities"

// Discord rejects messages longer than 2000 characters.
const maxMessageLen = 2000

// Forum is the discussion-forum side the reconciler reads from.
// *forum.Client satisfies it.
type Forum interface {
	ListOpportunities(ctx context.Context) ([]forum.DiscussionLink, error)
	FetchPost(ctx context.Context, link forum.DiscussionLink) (forum.DiscussionPost, error)
	Extract(text string) []forum.DiscussionLink
	PostToURL() string
}

// Reconciler drives moderation and forwarding for every channel carrying the
// target name. It holds only immutable configuration; all per-pass state
// lives in the call, so one Reconciler may serve concurrent passes.
type Reconciler struct {
	platform Platform
	forum    Forum
	target   string
}

// NewReconciler wires a reconciler to a platform and a forum. An empty
// targetChannel falls back to DefaultTargetChannel.
func NewReconciler(p Platform, f Forum, targetChannel string) *Reconciler {
	if targetChannel == "" {
		targetChannel = DefaultTargetChannel
	}
	return &Reconciler{platform: p, forum: f, target: targetChannel}
}

// TargetChannel returns the display name of the channel being curated.
func (r *Reconciler) TargetChannel() string {
	return r.target
}

// ReconcileAll discovers every channel named after the target and runs one
// reconciliation pass over each. Passes run concurrently; each one only
// touches its own channel.
func (r *Reconciler) ReconcileAll(ctx context.Context) {
	channels, err := r.platform.TargetChannels(r.target)
	if err != nil {
		log.Error().Err(err).Msg("Failed to discover target channels")
		return
	}
	if len(channels) == 0 {
		log.Warn().Str("channel", r.target).Msg("No target channels found, nothing to reconcile")
		return
	}

	var wg sync.WaitGroup
	for _, channelID := range channels {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := r.Reconcile(ctx, id); err != nil {
				log.Error().Err(err).Str("channel_id", id).Msg("Reconciliation failed")
			}
		}(channelID)
	}
	wg.Wait()
}

// Reconcile runs one full pass over a single channel: moderate, resolve the
// watermark, then fetch and forward every discussion above it in ascending
// id order. A failure while forwarding stops the pass; whatever was already
// forwarded stays, and the next pass picks up from the new watermark.
func (r *Reconciler) Reconcile(ctx context.Context, channelID string) error {
	log.Info().Str("channel_id", channelID).Msg("Starting reconciliation pass")

	if err := r.moderate(channelID); err != nil {
		return fmt.Errorf("moderation failed for channel %s: %w", channelID, err)
	}

	watermark, err := r.resolveWatermark(channelID)
	if err != nil {
		return fmt.Errorf("failed to resolve watermark for channel %s: %w", channelID, err)
	}

	links, err := r.forum.ListOpportunities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list opportunities: %w", err)
	}

	forwarded := 0
	for _, link := range links {
		if link.ID <= watermark {
			continue
		}
		post, err := r.forum.FetchPost(ctx, link)
		if err != nil {
			return fmt.Errorf("stopping forward pass for channel %s: %w", channelID, err)
		}
		if err := r.platform.SendChannelMessage(channelID, truncate(formatPost(post), maxMessageLen)); err != nil {
			return fmt.Errorf("stopping forward pass for channel %s: failed to send discussion %d: %w",
				channelID, link.ID, err)
		}
		forwarded++
		log.Info().
			Str("channel_id", channelID).
			Uint16("discussion_id", link.ID).
			Str("author", post.Author).
			Msg("Forwarded opportunity")
	}

	log.Info().
		Str("channel_id", channelID).
		Uint16("watermark", watermark).
		Int("forwarded", forwarded).
		Msg("Reconciliation pass finished")
	return nil
}

// formatPost renders one forwarded channel message. The discussion URL sits
// at the top so a later watermark scan can re-extract the id even if the
// body below was truncated.
func formatPost(p forum.DiscussionPost) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**New opportunity from %s!**\n%s", p.Author, p.Link.URL())
	if p.Content != "" {
		b.WriteString("\n\n")
		b.WriteString(p.Content)
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// chunkMessage splits s into successive pieces of at most max runes each.
// Joining the pieces reproduces s exactly.
func chunkMessage(s string, max int) []string {
	runes := []rune(s)
	var chunks []string
	for len(runes) > max {
		chunks = append(chunks, string(runes[:max]))
		runes = runes[max:]
	}
	return append(chunks, string(runes))
}
