package bot

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opportunities-bot/scanner"
)

// historyTransport serves canned channel history pages keyed by the before
// cursor and records the cursor of every request it answers.
type historyTransport struct {
	pages   map[string][]*discordgo.Message
	cursors []string
}

func (t *historyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	before := req.URL.Query().Get("before")
	t.cursors = append(t.cursors, before)
	body, err := json.Marshal(t.pages[before])
	if err != nil {
		return nil, err
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(string(body))),
		Request:    req,
	}, nil
}

func newHistorySession(t *testing.T, rt *historyTransport) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: rt}
	s.State.User = &discordgo.User{ID: "bot-user"}
	return s
}

func apiMessage(id int, authorID string) *discordgo.Message {
	return &discordgo.Message{
		ID:      strconv.Itoa(id),
		Content: "message " + strconv.Itoa(id),
		Author:  &discordgo.User{ID: authorID, Username: authorID},
	}
}

func TestEachMessagePagination(t *testing.T) {
	// A full first page, ids 300 down to 201, then a short second page. The
	// second request must carry the last id of the first page as its cursor.
	first := make([]*discordgo.Message, 0, historyPageSize)
	for id := 300; id > 300-historyPageSize; id-- {
		first = append(first, apiMessage(id, "alice"))
	}
	second := []*discordgo.Message{apiMessage(200, "alice"), apiMessage(199, "bot-user")}
	rt := &historyTransport{pages: map[string][]*discordgo.Message{
		"":    first,
		"201": second,
	}}
	p := NewSessionPlatform(newHistorySession(t, rt))

	var seen []scanner.Message
	err := p.EachMessage("chan", func(m scanner.Message) bool {
		seen = append(seen, m)
		return true
	})
	require.NoError(t, err)

	require.Len(t, seen, historyPageSize+2)
	assert.Equal(t, "300", seen[0].ID)
	assert.Equal(t, "201", seen[historyPageSize-1].ID)
	assert.Equal(t, "200", seen[historyPageSize].ID)
	assert.Equal(t, "199", seen[historyPageSize+1].ID)
	assert.Equal(t, []string{"", "201"}, rt.cursors)

	assert.Equal(t, "alice", seen[0].Author)
	assert.False(t, seen[0].IsSelf)
	assert.True(t, seen[historyPageSize+1].IsSelf)
}

func TestEachMessageStopsWhenToldTo(t *testing.T) {
	rt := &historyTransport{pages: map[string][]*discordgo.Message{
		"": {apiMessage(3, "alice"), apiMessage(2, "alice"), apiMessage(1, "alice")},
	}}
	p := NewSessionPlatform(newHistorySession(t, rt))

	var seen []string
	err := p.EachMessage("chan", func(m scanner.Message) bool {
		seen = append(seen, m.ID)
		return false
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"3"}, seen)
	assert.Equal(t, []string{""}, rt.cursors)
}

func TestEachMessageSystemMessage(t *testing.T) {
	// Messages without an author, such as pin notices, come through with no
	// author identity and never count as the bot's own.
	rt := &historyTransport{pages: map[string][]*discordgo.Message{
		"": {{ID: "10", Content: "pinned a message"}},
	}}
	p := NewSessionPlatform(newHistorySession(t, rt))

	var seen []scanner.Message
	err := p.EachMessage("chan", func(m scanner.Message) bool {
		seen = append(seen, m)
		return true
	})
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Empty(t, seen[0].AuthorID)
	assert.False(t, seen[0].IsSelf)
}
