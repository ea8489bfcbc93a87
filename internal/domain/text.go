package domain

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// RemoveTags strips client markup such as <col=ff0000> and <br> from text.
func RemoveTags(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	return tagPattern.ReplaceAllString(text, "")
}

// CleanName removes markup and non-breaking spaces from an actor name.
func CleanName(raw string) string {
	cleaned := RemoveTags(raw)
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", " ")
	return strings.TrimSpace(cleaned)
}
