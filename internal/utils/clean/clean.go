package clean

import (
	"regexp"
	"strings"
)

var (
	newlines     = regexp.MustCompile(`\n+`)
	nonPrintable = regexp.MustCompile(`[^\p{L}\p{N}\p{P}\p{Z}]`)
)

func Clean(text string) string {
	text = newlines.ReplaceAllString(text, " ")

	text = nonPrintable.ReplaceAllString(text, "")

	text = strings.TrimSpace(text)

	return text
}
