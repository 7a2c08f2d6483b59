package utils

import (
	"regexp"
)

var (
	markdownLinkRegex    = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	markdownHeadingRegex = regexp.MustCompile(`(?m)^#+\s*(.+)$`)
	markdownBoldRegex    = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// TruncateRunes cuts s to at most limit runes and reports whether anything was dropped
func TruncateRunes(s string, limit int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}

// ConvertMarkdownToSlack rewrites the markdown a completion service usually replies with into Slack mrkdwn
func ConvertMarkdownToSlack(message string) string {
	// Links go first so their brackets don't collide with the other rules
	result := markdownLinkRegex.ReplaceAllString(message, "<$2|$1>")

	result = markdownHeadingRegex.ReplaceAllStringFunc(result, func(match string) string {
		content := markdownHeadingRegex.ReplaceAllString(match, "$1")
		content = markdownBoldRegex.ReplaceAllString(content, "$1")
		return "*" + content + "*"
	})

	return markdownBoldRegex.ReplaceAllString(result, "*$1*")
}
