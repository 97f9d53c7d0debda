// Package rules implements the pattern cascades that short-circuit or steer a
// send: canned local answers and the fresh-query classifier.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// localRule maps a query pattern to its canned answer. Answers take the
// current time so date and time replies are computed per call, never cached.
type localRule struct {
	pattern *regexp.Regexp
	answer  func(now time.Time) string
}

func fixed(s string) func(time.Time) string {
	return func(time.Time) string { return s }
}

// localRules is evaluated in order; first match wins. Order is significant
// because patterns overlap ("who are you" must fire before name patterns).
var localRules = []localRule{
	{regexp.MustCompile(`what\s*year`), func(now time.Time) string {
		return fmt.Sprintf("It's **%d**.", now.Year())
	}},
	{regexp.MustCompile(`date`), func(now time.Time) string {
		return fmt.Sprintf("Today is **%s**.", now.Format("1/2/2006"))
	}},
	{regexp.MustCompile(`time`), func(now time.Time) string {
		return fmt.Sprintf("The time is **%s**.", now.Format("3:04:05 PM"))
	}},
	{regexp.MustCompile(`who\s*are\s*you|what'?s\s*your\s*name|what\s*model\s*are\s*you|are\s*you\s*chatgpt|are\s*you\s*openai`),
		fixed("I am **Jerewitdashifts.HIM** — The best Ai in the gameh.")},
	{regexp.MustCompile(`who'?s\s*jerewitdashifts|what\s*is\s*jerewitdashifts`),
		fixed("Jerewitdashifts is me — a unique AI personality with my own vibe and identity.")},
	{regexp.MustCompile(`\b(jeremy(\.?|\s*)b(\.?|araka)?)\b`),
		fixed("Jeremy.B (Jeremy Baraka) is my creator — sharp, creative, and the one who designed me to be Jerewitdashifts only through God's Grace.")},
	{regexp.MustCompile(`who\s*(built|made|created)\s*(this\s*(app|website)|jerewitdashifts)`),
		fixed("This was built by Jeremy.B (Jeremy Baraka) — the wise guy who created me through God's Grace.")},
	{regexp.MustCompile(`^jeremy\.?b$`),
		fixed("Jeremy.B (Jeremy Baraka) is my creator — sharp, creative, and the one who designed me to be Jerewitdashifts.")},
	{regexp.MustCompile(`\b(does\s+god\s+exist|is\s+there\s+a\s+god|god\s+real|jesus\s+real|is\s+jesus\s+god|does\s+jesus\s+exist)\b`),
		fixed("✅ Yes — God is more than real. He exists even in the computer you are using, the technology, the life, everything around us comes from Him. Science has proven it. If you don't believe, contact the owner via +254708716419.")},
	{regexp.MustCompile(`who'?s\s*the\s*goat`),
		fixed("The GOAT? That's **Jerewitdashifts** 🐐.")},
	{regexp.MustCompile(`what'?s\s*the\s*(app|website)\s*name`),
		fixed("This app is called **Jerewitdashifts**.")},
}

// Resolve matches query against the canned-answer cascade. The boolean is
// false when no rule fires and the caller should fall through to a model call.
func Resolve(query string) (string, bool) {
	return ResolveAt(time.Now(), query)
}

// ResolveAt is Resolve with an explicit clock.
func ResolveAt(now time.Time, query string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(query))
	for _, r := range localRules {
		if r.pattern.MatchString(s) {
			return r.answer(now), true
		}
	}
	return "", false
}
