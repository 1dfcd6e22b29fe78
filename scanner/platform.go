package scanner

// Message is one channel message as seen while walking history.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Author    string
	Content   string
	// IsSelf marks messages the bot itself posted.
	IsSelf bool
}

// Platform is the slice of the chat platform the reconciler needs. The live
// Discord session implements it; tests substitute an in-memory fake.
type Platform interface {
	// EachMessage walks a channel's history newest-first, calling fn for
	// every message until fn returns false or history runs out.
	EachMessage(channelID string, fn func(Message) bool) error

	DeleteMessage(channelID, messageID string) error
	SendDirectMessage(userID, content string) error
	SendChannelMessage(channelID, content string) error

	// TargetChannels returns the ids of every channel whose display name
	// equals name.
	TargetChannels(name string) ([]string, error)
}
