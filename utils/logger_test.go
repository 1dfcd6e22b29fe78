package utils

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	mu     sync.Mutex
	paths  []string
	bodies []string
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		req.Body.Close()
		body = string(b)
	}
	rt.mu.Lock()
	rt.paths = append(rt.paths, req.URL.Path)
	rt.bodies = append(rt.bodies, body)
	rt.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader("{}")),
		Request:    req,
	}, nil
}

func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		viper.Set("bot.admin_channel_id", "")
		session = nil
		channelID = ""
	})
}

func TestLogMirrorsToAdminChannel(t *testing.T) {
	resetLogger(t)
	rt := &recordingTransport{}
	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: rt}

	viper.Set("bot.admin_channel_id", "admin-1")
	InitLogger(s)

	Info("scanner", "pass", "finished without findings")

	require.Len(t, rt.paths, 1)
	assert.Contains(t, rt.paths[0], "/channels/admin-1/messages")
	assert.Contains(t, rt.bodies[0], "Log Level: INFO")
	assert.Contains(t, rt.bodies[0], "scanner")
	assert.Contains(t, rt.bodies[0], "finished without findings")
}

func TestLogWithoutAdminChannel(t *testing.T) {
	resetLogger(t)
	rt := &recordingTransport{}
	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: rt}

	InitLogger(s)
	Error("scanner", "pass", "boom")

	assert.Empty(t, rt.paths)
}
