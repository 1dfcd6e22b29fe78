// Package forum reads the GitHub Discussions side of the bot: it extracts
// discussion links from raw text, fetches listing and discussion pages, and
// converts discussion bodies to Discord-friendly markdown.
package forum

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the origin discussion pages are fetched from.
	DefaultBaseURL = "https://github.com"
	// DefaultRepo is the repository whose discussions are forwarded.
	DefaultRepo = "UWAppDev/community"
	// DefaultCategory is the discussion category users should post to.
	DefaultCategory = "opportunities"
)

// DiscussionLink is a parsed pointer to one discussion thread.
type DiscussionLink struct {
	// ID is GitHub's stable numeric identifier for the discussion.
	ID uint16
	// Text is the exact substring the link was matched from. It may be a
	// relative path or a full URL, so keep it around to resolve a
	// browsable URL later.
	Text string
}

// URL resolves the matched text to an absolute, browsable URL.
func (l DiscussionLink) URL() string {
	switch {
	case strings.HasPrefix(l.Text, "http"):
		return l.Text
	case strings.HasPrefix(l.Text, "github"), strings.HasPrefix(l.Text, "www."):
		return "https://" + l.Text
	case strings.HasPrefix(l.Text, "/"):
		return "https://github.com" + l.Text
	default:
		return "https://github.com/" + l.Text
	}
}

// Extractor pulls discussion links for a single repository out of raw text.
type Extractor struct {
	re *regexp.Regexp
}

// NewExtractor compiles the link pattern for the given "owner/name" repo path.
// Only links under that repository match; an optional github.com origin in
// front of the path is kept as part of the matched text.
func NewExtractor(repo string) *Extractor {
	repo = strings.Trim(repo, "/")
	pattern := `(?:https?://(?:www\.)?github\.com)?/` + regexp.QuoteMeta(repo) + `/discussions/+(\d+)`
	return &Extractor{re: regexp.MustCompile(pattern)}
}

// Extract returns every unique discussion link found in text, sorted
// ascending by id. When an id occurs more than once the first match wins and
// its text is the one retained. Extract never fails; text without links
// yields an empty result.
func (e *Extractor) Extract(text string) []DiscussionLink {
	matches := e.re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[uint16]bool, len(matches))
	links := make([]DiscussionLink, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseUint(m[1], 10, 16)
		if err != nil {
			// A run of digits too wide for a discussion number. Skip the
			// match rather than abort the whole extraction.
			log.Debug().Str("match", m[0]).Msg("Discussion id overflows uint16, skipping match")
			continue
		}
		if seen[uint16(id)] {
			continue
		}
		seen[uint16(id)] = true
		links = append(links, DiscussionLink{ID: uint16(id), Text: m[0]})
	}

	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links
}
