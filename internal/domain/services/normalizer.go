package services

import (
	"regexp"
	"strings"
)

var (
	horizontalWhitespace = regexp.MustCompile(`[ \t\x{3000}]+`)
	paddedNewline        = regexp.MustCompile(` *\n *`)
)

// NormalizeText trims the input and collapses line-ending variants and
// runs of horizontal whitespace. Empty or whitespace-only input yields "".
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalWhitespace.ReplaceAllString(text, " ")
	text = paddedNewline.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
