package forum

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// UnknownAuthor is the fallback author name for a discussion page whose
// author markup cannot be resolved.
const UnknownAuthor = "Unknown Author"

const userAgent = "opportunities-bot (+https://github.com/UWAppDev/community)"

// DiscussionPost is one fetched discussion with its first comment body
// rendered as markdown. Posts are plain value records and are never mutated
// after FetchPost returns them.
type DiscussionPost struct {
	Link    DiscussionLink
	Author  string
	Content string
}

// Client fetches and parses one repository's discussion category over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	repo       string
	category   string
	extractor  *Extractor
}

// NewClient returns a Client for the given origin, "owner/name" repository
// and discussion category. Empty arguments fall back to the package
// defaults.
func NewClient(baseURL, repo, category string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if repo == "" {
		repo = DefaultRepo
	}
	if category == "" {
		category = DefaultCategory
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		repo:       strings.Trim(repo, "/"),
		category:   category,
		extractor:  NewExtractor(repo),
	}
}

// PostToURL is the listing page users should post new opportunities to. The
// same page is scraped to discover what has been posted.
func (c *Client) PostToURL() string {
	return c.baseURL + "/" + c.repo + "/discussions/categories/" + c.category + "/"
}

// Extract returns the discussion links found in text, using the client's
// repository pattern.
func (c *Client) Extract(text string) []DiscussionLink {
	return c.extractor.Extract(text)
}

// ListOpportunities fetches the category listing page and returns every
// discussion link found on it, ascending by id.
func (c *Client) ListOpportunities(ctx context.Context) ([]DiscussionLink, error) {
	body, err := c.get(ctx, c.PostToURL())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discussion listing: %w", err)
	}
	return c.extractor.Extract(string(body)), nil
}

// FetchPost fetches one discussion page and pulls out its author and first
// comment body. A page without recognizable comment markup yields empty
// content rather than an error, and an unresolvable author falls back to
// UnknownAuthor.
func (c *Client) FetchPost(ctx context.Context, link DiscussionLink) (DiscussionPost, error) {
	url := c.resolveURL(link)
	body, err := c.get(ctx, url)
	if err != nil {
		return DiscussionPost{}, fmt.Errorf("failed to fetch discussion %d: %w", link.ID, err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return DiscussionPost{}, fmt.Errorf("failed to parse discussion %d: %w", link.ID, err)
	}

	post := DiscussionPost{Link: link, Author: UnknownAuthor}
	if node := findByClass(doc, "author"); node != nil {
		if name := nodeText(node); name != "" {
			post.Author = name
		}
	}
	if node := findByClass(doc, "comment-body"); node != nil {
		post.Content = Render(node, Options{BoldHeadings: true})
	} else {
		log.Warn().Str("url", url).Msg("No comment body found in discussion page")
	}
	return post, nil
}

// resolveURL maps a link to the URL it should be fetched from. Relative
// paths resolve against the client's configured origin so a client pointed
// at a mirror stays on that mirror.
func (c *Client) resolveURL(l DiscussionLink) string {
	switch {
	case strings.HasPrefix(l.Text, "http"):
		return l.Text
	case strings.HasPrefix(l.Text, "/"):
		return c.baseURL + l.Text
	default:
		return l.URL()
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}

// findByClass returns the first element in depth-first order carrying the
// given class, or nil.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == class {
			return true
		}
	}
	return false
}

// nodeText collects the plain text beneath n, trimmed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.TrimSpace(b.String())
}
