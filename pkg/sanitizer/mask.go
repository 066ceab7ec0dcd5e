package sanitizer

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail keeps the first character of the local part and the domain:
// "alice@example.com" becomes "a****@example.com".
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return MaskString(email, 1)
	}
	return MaskString(local, 1) + "@" + domain
}

// MaskString keeps the first visible runes of s and stars the rest.
func MaskString(s string, visible int) string {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return ""
	}
	visible = min(max(visible, 0), n-1)

	var b strings.Builder
	for i, r := range []rune(s) {
		if i < visible {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('*')
	}
	return b.String()
}
