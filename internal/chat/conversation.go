package chat

// Topics a rule can leave behind for follow-up questions. Category rules use
// the category key instead.
const (
	TopicFAQ         = "faq"
	TopicHours       = "hours"
	TopicReservation = "reservation"
	TopicContact     = "contact"
	TopicLocation    = "location"
	TopicPrivateHire = "private-hire"
	TopicMenu        = "menu"
	TopicStory       = "story"
	TopicGallery     = "gallery"
)

// Conversation is the per-session memory of the dispatcher.
type Conversation struct {
	// LastTopic is the topic of the most recent topic-bearing reply, or empty.
	LastTopic string `json:"lastTopic,omitempty"`
}

// Reset forgets the conversation history.
func (c *Conversation) Reset() {
	c.LastTopic = ""
}
