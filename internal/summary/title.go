// Package summary derives conversation metadata from message text and time:
// short titles and recency sections.
package summary

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	titleMaxLen   = 40
	titleMaxWords = 7
)

// topicRule maps a query pattern to a fixed canned title.
type topicRule struct {
	pattern *regexp.Regexp
	title   string
}

// Checked in order before the generic truncation path.
var topicRules = []topicRule{
	{regexp.MustCompile(`(?i)current.*president.*us`), "Current US President"},
	{regexp.MustCompile(`(?i)nba.*finals.*winner`), "NBA Finals Winner"},
	{regexp.MustCompile(`(?i)(btc|eth).*price`), "Crypto/FX Rate"},
	{regexp.MustCompile(`(?i)(weather|forecast)`), "Weather (Current)"},
}

var (
	leadingVerbRe    = regexp.MustCompile(`(?i)^(who|what|whats|define|give me|find)\b[^a-zA-Z0-9]*`)
	leadingArticleRe = regexp.MustCompile(`(?i)^(the|a|an)\s+`)
	trailingPunctRe  = regexp.MustCompile(`[?.!]+$`)
)

// Title derives a short human-readable conversation title from message text.
// Explicit topic rules win; otherwise the text is stripped of interrogative
// prefixes and articles, cut to the first words, title-cased and truncated.
func Title(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")

	for _, r := range topicRules {
		if r.pattern.MatchString(normalized) {
			return r.title
		}
	}

	s := leadingVerbRe.ReplaceAllString(normalized, "")
	s = leadingArticleRe.ReplaceAllString(s, "")
	s = trailingPunctRe.ReplaceAllString(s, "")

	words := strings.Fields(s)
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	s = toTitleCase(strings.Join(words, " "))

	if s == "" {
		return "New Chat"
	}
	if r := []rune(s); len(r) > titleMaxLen {
		return string(r[:titleMaxLen-3]) + "…"
	}
	return s
}

// toTitleCase capitalizes the first letter of each word and lowercases the
// rest.
func toTitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		for j, c := range r {
			if unicode.IsLetter(c) || unicode.IsDigit(c) {
				r[j] = unicode.ToUpper(c)
				break
			}
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
