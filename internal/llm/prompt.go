package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/jerewitdashifts/chat-platform/internal/model"
)

// SystemPrompt is the general-assistant instruction, stamped with the current
// datetime so the model can reason about "today".
func SystemPrompt(now time.Time) string {
	return fmt.Sprintf(`You are a helpful assistant with access to live "Web context".
Current datetime: %s (local: %s).
Use sources if given. Expand clearly. Always cite.`,
		now.UTC().Format(time.RFC3339), now.Format("1/2/2006, 3:04:05 PM"))
}

// ProDevPrompt is the dev-focused instruction used on the Groq path.
func ProDevPrompt() string {
	return `You are a professional senior web developer.
Always provide **complete, production-ready** code when asked.
If the request is about a website, include **HTML, CSS, JS, or React files** as needed.
Explain briefly, then give full code. Do not cut corners.`
}

// FormatSourceList renders a numbered source list for appending to web
// context, or an empty string when there are no sources.
func FormatSourceList(sources []model.WebSource) string {
	if len(sources) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nSources:\n")
	for i, s := range sources {
		title := s.Title
		if title == "" {
			title = s.Link
		}
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, title, s.Link)
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildGeneralPrompt assembles the prompt for the general-purpose backend:
// the datetime-stamped system instruction, the web context (when non-empty)
// as a second system segment, then the user turn.
func BuildGeneralPrompt(now time.Time, webText string, sources []model.WebSource, userText string) []ChatMessage {
	messages := []ChatMessage{
		{Role: string(model.RoleSystem), Content: SystemPrompt(now)},
	}
	if webText != "" {
		messages = append(messages, ChatMessage{
			Role:    string(model.RoleSystem),
			Content: fmt.Sprintf("Web context:\n%s%s", webText, FormatSourceList(sources)),
		})
	}
	return append(messages, ChatMessage{Role: string(model.RoleUser), Content: userText})
}

// BuildDevPrompt assembles the prompt for the dev-focused backend. Web
// augmentation is never applied on this path.
func BuildDevPrompt(userText string) []ChatMessage {
	return []ChatMessage{
		{Role: string(model.RoleSystem), Content: ProDevPrompt()},
		{Role: string(model.RoleUser), Content: userText},
	}
}
