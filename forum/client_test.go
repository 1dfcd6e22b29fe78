package forum

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOpportunities(t *testing.T) {
	listing := `<html><body>
<a href="/UWAppDev/community/discussions/5">Newest opening</a>
<a href="/UWAppDev/community/discussions/3">Older opening</a>
<a href="/UWAppDev/community/discussions/3">Older opening again</a>
<a href="/UWAppDev/other/discussions/99">Unrelated repo</a>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/UWAppDev/community/discussions/categories/opportunities/", r.URL.Path)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(listing))
	}))
	defer server.Close()

	c := NewClient(server.URL, "UWAppDev/community", "opportunities")
	links, err := c.ListOpportunities(context.Background())
	require.NoError(t, err)

	require.Len(t, links, 2)
	assert.Equal(t, uint16(3), links[0].ID)
	assert.Equal(t, uint16(5), links[1].ID)
}

func TestListOpportunitiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "UWAppDev/community", "opportunities")
	_, err := c.ListOpportunities(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchPost(t *testing.T) {
	page := `<html><body>
<a class="author Link--primary">octocat</a>
<div class="comment-body markdown-body"><h2>Internship</h2><p>Apply <a href="https://example.com/apply">here</a></p></div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/UWAppDev/community/discussions/5", r.URL.Path)
		w.Write([]byte(page))
	}))
	defer server.Close()

	c := NewClient(server.URL, "UWAppDev/community", "opportunities")
	link := DiscussionLink{ID: 5, Text: "/UWAppDev/community/discussions/5"}
	post, err := c.FetchPost(context.Background(), link)
	require.NoError(t, err)

	assert.Equal(t, link, post.Link)
	assert.Equal(t, "octocat", post.Author)
	assert.Equal(t, "**Internship**\nApply [here](https://example.com/apply)", post.Content)
}

func TestFetchPostWithoutCommentMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Nothing to see</p></body></html>"))
	}))
	defer server.Close()

	c := NewClient(server.URL, "UWAppDev/community", "opportunities")
	post, err := c.FetchPost(context.Background(), DiscussionLink{ID: 2, Text: "/UWAppDev/community/discussions/2"})
	require.NoError(t, err)

	assert.Equal(t, UnknownAuthor, post.Author)
	assert.Empty(t, post.Content)
}

func TestFetchPostServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL, "UWAppDev/community", "opportunities")
	_, err := c.FetchPost(context.Background(), DiscussionLink{ID: 9, Text: "/UWAppDev/community/discussions/9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discussion 9")
}
