package sanitizer

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeWhitespace collapses runs of whitespace into one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// NormalizeEmail trims and lower-cases an address. The local part is kept
// otherwise intact; the server owns mailbox equivalence.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
