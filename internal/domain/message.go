package domain

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry of a session transcript. Messages are only ever appended.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// UserMessage builds a user-authored message
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-authored message
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
