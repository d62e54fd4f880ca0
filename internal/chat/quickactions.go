package chat

// QuickAction is a one-tap prompt offered before the first message.
type QuickAction struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

var quickActions = []QuickAction{
	{Action: "reserve", Text: "I'd like to reserve a table"},
	{Action: "menu", Text: "Can I see the menu?"},
	{Action: "hire", Text: "Tell me about private hire"},
	{Action: "hours", Text: "What are your opening hours?"},
	{Action: "call", Text: "What's your phone number?"},
}

// WelcomeMessage is the greeting shown when a chat opens.
func WelcomeMessage() string {
	return welcomeText
}

// QuickActions returns the quick action prompts in display order.
func QuickActions() []QuickAction {
	return append([]QuickAction(nil), quickActions...)
}

// ExpandAction maps a quick action id to its utterance. Unknown ids are
// returned unchanged so they are answered as typed text.
func ExpandAction(action string) string {
	for _, qa := range quickActions {
		if qa.Action == action {
			return qa.Text
		}
	}
	return action
}
