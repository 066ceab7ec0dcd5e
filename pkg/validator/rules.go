package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsOnly = regexp.MustCompile(`^[0-9]+$`)
)

func rule(field, message string, check func() bool) Rule {
	return Rule{Check: check, Error: ValidationError{Field: field, Message: message}}
}

// Required fails for empty or whitespace-only values.
func Required(field, value, message string) Rule {
	if message == "" {
		message = "field is required"
	}
	return rule(field, message, func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinLen counts characters, not bytes.
func MinLen(field, value string, min int, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("must be at least %d characters long", min)
	}
	return rule(field, message, func() bool {
		return utf8.RuneCountInString(value) >= min
	})
}

// Email accepts local@domain.tld with no whitespace.
func Email(field, value, message string) Rule {
	if message == "" {
		message = "must be a valid email address"
	}
	return rule(field, message, func() bool {
		return emailRegex.MatchString(value)
	})
}

// Digits accepts between min and max ASCII digits and nothing else.
func Digits(field, value string, min, max int, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("must contain %d-%d digits", min, max)
	}
	return rule(field, message, func() bool {
		return digitsOnly.MatchString(value) && len(value) >= min && len(value) <= max
	})
}

// HasUppercase requires at least one upper-case letter.
func HasUppercase(field, value, message string) Rule {
	if message == "" {
		message = "must contain at least one uppercase letter"
	}
	return rule(field, message, func() bool {
		return strings.ContainsFunc(value, unicode.IsUpper)
	})
}

// Equal requires value to equal other, e.g. a password confirmation.
func Equal(field, value, other, message string) Rule {
	if message == "" {
		message = "values do not match"
	}
	return rule(field, message, func() bool {
		return value == other
	})
}
