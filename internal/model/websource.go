package model

// WebSource is one search result backing a piece of web context. Produced
// transiently per fetch and only ever embedded into a prompt, never persisted.
type WebSource struct {
	Title   string `json:"title,omitempty"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
}
