package forum

import (
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// Options control how a parsed HTML tree renders to markdown.
type Options struct {
	// BoldHeadings renders h1-h3 as bold text instead of "#" heading
	// markers, for renderers that do not understand headings.
	BoldHeadings bool
}

// ToMarkdown converts an HTML fragment to markdown using true heading markers.
func ToMarkdown(fragment string) string {
	return convert(fragment, Options{})
}

// ToMarkdownMinimal converts an HTML fragment to markdown for minimal
// renderers. Headings come out as bold text rather than "#" markers.
func ToMarkdownMinimal(fragment string) string {
	return convert(fragment, Options{BoldHeadings: true})
}

func convert(fragment string, opts Options) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// html.Parse only fails when the reader fails, and a
		// strings.Reader never does.
		log.Error().Err(err).Msg("Failed to parse HTML fragment")
		return ""
	}
	return Render(doc, opts)
}

// Render walks an already parsed tree depth-first and returns the collected
// markdown with surrounding whitespace trimmed. Unknown elements contribute
// their children unchanged, so no text is ever dropped except comments.
func Render(n *html.Node, opts Options) string {
	var b strings.Builder
	walk(n, &b, opts)
	return strings.TrimSpace(b.String())
}

func walk(n *html.Node, b *strings.Builder, opts Options) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
	default:
		// Document and doctype nodes carry no text of their own.
		walkChildren(n, b, opts)
		return
	}

	switch n.Data {
	case "p", "div", "tr":
		walkChildren(n, b, opts)
		b.WriteByte('\n')
	case "br":
		b.WriteByte('\n')
	case "a":
		b.WriteByte('[')
		walkChildren(n, b, opts)
		b.WriteByte(']')
		if href, ok := attr(n, "href"); ok {
			b.WriteString("(" + href + ") ")
		}
	case "i", "emph":
		b.WriteByte('_')
		walkChildren(n, b, opts)
		b.WriteByte('_')
	case "b", "strong":
		b.WriteString("**")
		walkChildren(n, b, opts)
		b.WriteString("**")
	case "code":
		b.WriteByte('`')
		walkChildren(n, b, opts)
		b.WriteByte('`')
	case "pre":
		b.WriteString("\n```\n")
		walkChildren(n, b, opts)
		b.WriteString("\n```\n")
	case "h1", "h2", "h3":
		writeHeading(n, b, opts, int(n.Data[1]-'0'))
	case "quote":
		b.WriteString("\n> ")
		walkChildren(n, b, opts)
		b.WriteByte('\n')
	default:
		walkChildren(n, b, opts)
	}
}

func writeHeading(n *html.Node, b *strings.Builder, opts Options, level int) {
	b.WriteByte('\n')
	if opts.BoldHeadings {
		b.WriteString("**")
	} else {
		b.WriteString(strings.Repeat("#", level))
		b.WriteByte(' ')
	}
	walkChildren(n, b, opts)
	if opts.BoldHeadings {
		b.WriteString("**")
	}
	b.WriteByte('\n')
}

func walkChildren(n *html.Node, b *strings.Builder, opts Options) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, b, opts)
	}
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
