package scanner

import "fmt"

// resolveWatermark scans a channel newest-first for the bot's most recent
// own message and returns the first discussion id extracted from it. A
// channel the bot never posted in, or a latest post carrying no links,
// yields 0: nothing was forwarded yet, so everything is new.
//
// Only the most recent own message is consulted. Older own messages are
// never a watermark source, even when the most recent one has no links.
func (r *Reconciler) resolveWatermark(channelID string) (uint16, error) {
	var watermark uint16
	err := r.platform.EachMessage(channelID, func(m Message) bool {
		if !m.IsSelf {
			return true
		}
		if links := r.forum.Extract(m.Content); len(links) > 0 {
			// First element of the ascending extraction, i.e. the smallest
			// id in the message. A single message carrying several
			// discussion links would rewind the watermark here.
			// TODO: switch to the largest id once it's confirmed that no
			// forwarded message ever references other discussions.
			watermark = links[0].ID
		}
		return false
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list history for channel %s: %w", channelID, err)
	}
	return watermark, nil
}
