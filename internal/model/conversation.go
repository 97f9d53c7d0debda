// Package model defines data structures for the chat platform.
package model

// ModelTarget selects the completion backend for a conversation. It is fixed
// at creation time; a conversation never exists without one.
type ModelTarget string

const (
	TargetOpenAI ModelTarget = "openai"
	TargetGroq   ModelTarget = "groq"
)

// Valid reports whether t is a known backend.
func (t ModelTarget) Valid() bool {
	return t == TargetOpenAI || t == TargetGroq
}

// Section is the recency bucket a conversation was filed under at creation.
// It is never recomputed afterwards.
type Section string

const (
	SectionToday     Section = "today"
	SectionYesterday Section = "yesterday"
	SectionLastWeek  Section = "lastWeek"
)

// Conversation is a titled, sectioned, append-only message log bound to one
// completion backend.
type Conversation struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Section  Section     `json:"section"`
	Messages []Message   `json:"messages"`
	Model    ModelTarget `json:"model"`
}

// Clone returns a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}

// UpdateConversationRequest is the request to rename a conversation.
type UpdateConversationRequest struct {
	Title string `json:"title"`
}

// ListConversationsResponse is the response for listing conversations.
type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
	Total         int            `json:"total"`
}

// ActiveConversation carries the active-conversation pointer; a null ID means
// the fresh new-chat state.
type ActiveConversation struct {
	ID *string `json:"id"`
}

// WebToggle carries the persisted web-augmentation setting.
type WebToggle struct {
	Enabled bool `json:"enabled"`
}
