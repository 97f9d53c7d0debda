package model

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single entry in a conversation's log. Messages are immutable
// once appended; Timestamp holds the display-formatted send time.
type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// SendMessageRequest is the request to send a new message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse is the response after sending a message. Reply is nil
// when no assistant reply was produced.
type SendMessageResponse struct {
	ConversationID string   `json:"conversation_id"`
	Reply          *Message `json:"reply,omitempty"`
}
