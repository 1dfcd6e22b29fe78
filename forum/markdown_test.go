package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "heading and paragraph",
			html: "<div>\n<h1>This is a test</h1>\n<p>Of <i>a</i> thing.</p>\n</div>",
			want: "# This is a test\n\nOf _a_ thing.",
		},
		{
			name: "second level heading",
			html: "<h2>Details</h2>",
			want: "## Details",
		},
		{
			name: "link with target",
			html: `<p>See <a href="https://example.com">the site</a></p>`,
			want: "See [the site](https://example.com)",
		},
		{
			name: "link without target",
			html: "<p><a>nowhere</a></p>",
			want: "[nowhere]",
		},
		{
			name: "bold and strong",
			html: "<p><b>bold</b> and <strong>strong</strong></p>",
			want: "**bold** and **strong**",
		},
		{
			name: "inline code",
			html: "<p>Run <code>go build</code></p>",
			want: "Run `go build`",
		},
		{
			name: "preformatted block",
			html: "<pre>line one\nline two</pre>",
			want: "```\nline one\nline two\n```",
		},
		{
			name: "line break",
			html: "<p>one<br>two</p>",
			want: "one\ntwo",
		},
		{
			name: "quote",
			html: "<quote>wise words</quote>",
			want: "> wise words",
		},
		{
			name: "comment suppressed",
			html: "<p>seen<!-- hidden --></p>",
			want: "seen",
		},
		{
			name: "table row",
			html: "<table><tr><td>a</td><td>b</td></tr></table>",
			want: "ab",
		},
		{
			name: "unknown elements keep their text",
			html: "<span><ul><li>item</li></ul></span>",
			want: "item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMarkdown(tt.html))
		})
	}
}

func TestToMarkdownMinimal(t *testing.T) {
	html := "<div>\n<h1>This is a test</h1>\n<p>Of <i>a</i> thing.</p>\n</div>"
	want := "**This is a test**\n\nOf _a_ thing."
	assert.Equal(t, want, ToMarkdownMinimal(html))
}
